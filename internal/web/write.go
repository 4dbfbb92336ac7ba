package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"ciutil/internal/model"
)

// errorBody is what an API error looks like on the wire.
type errorBody struct {
	Code    model.ErrorKind `json:"code"`
	Message string          `json:"message"`
	Input   string          `json:"input,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeErrorFromErr(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	var se *model.StepError
	if errors.As(err, &se) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    se.Kind,
			Message: se.Error(),
			Input:   se.Input,
		}})
		return
	}

	// Fallback: internal bug.
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorBody{
		Code:    "INTERNAL_ERROR",
		Message: err.Error(),
	}})
}
