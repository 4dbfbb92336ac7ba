// Package web serves a JSON preview of the steps so patterns and credential lists can be checked
// before they go into a workflow.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"ciutil/internal/action"
	"ciutil/internal/align"
	"ciutil/internal/config"
	"ciutil/internal/model"
	"ciutil/internal/roots"
)

//go:embed help.md
var helpMD string

// maxBody caps request bodies; path lists are large but not that large.
const maxBody = 4 << 20

// ShutdownTimeout is how long Serve waits for in-flight requests after ctx is done.
var ShutdownTimeout = 10 * time.Second

type handler struct {
	cfg *config.Config
	log *zap.Logger
}

// NewHandler returns the API mux. Presets from cfg resolve "@name" patterns.
func NewHandler(cfg *config.Config, log *zap.Logger) http.Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	h := &handler{cfg: cfg, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /api/help", handleHelp)
	mux.HandleFunc("GET /api/presets", h.handlePresets)
	mux.HandleFunc("POST /api/roots", h.handleRoots)
	mux.HandleFunc("POST /api/align", h.handleAlign)
	return mux
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info(fmt.Sprintf("%s Serving ciutil preview API at http://%s", model.IconSearch, addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")

		shCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			log.Warn("graceful shutdown failed", zap.Error(err))
			_ = srv.Close()
		}

		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok\n")
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	text := strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

type presetsResponse struct {
	Presets map[string]string `json:"presets"`
	Names   []string          `json:"names"`
}

func (h *handler) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presetsResponse{Presets: h.cfg.Patterns, Names: h.cfg.PresetNames()})
}

type rootsRequest struct {
	Pattern string   `json:"pattern"`
	Paths   []string `json:"paths"`
	Format  string   `json:"format"`
	Exclude []string `json:"exclude"`
	Engine  string   `json:"engine"`
}

type rootsResponse struct {
	Roots   []string          `json:"roots"`
	Output  string            `json:"output"`
	Matches []model.RootMatch `json:"matches"`
}

func (h *handler) handleRoots(w http.ResponseWriter, r *http.Request) {
	var req rootsRequest
	if err := decode(w, r, &req); err != nil {
		writeErrorFromErr(w, err)
		return
	}

	pattern, err := h.cfg.ResolvePattern(req.Pattern)
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}
	format, err := model.ParseOutputFormat(req.Format)
	if err != nil {
		writeErrorFromErr(w, invalidInput("format", err))
		return
	}
	engine, err := roots.ParseEngine(req.Engine)
	if err != nil {
		writeErrorFromErr(w, invalidInput("engine", err))
		return
	}

	e, err := roots.New(pattern, roots.WithEngine(engine), roots.WithExclude(req.Exclude...))
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}
	matches, err := e.Explain(req.Paths)
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}
	found := []string{}
	for _, m := range matches {
		if m.Emitted() {
			found = append(found, m.Root)
		}
	}
	out, err := roots.Format(found, format)
	if err != nil {
		writeErrorFromErr(w, err)
		return
	}

	h.log.Debug("roots preview", zap.String("pattern", pattern), zap.Int("paths", len(matches)), zap.Int("roots", len(found)))
	writeJSON(w, http.StatusOK, rootsResponse{Roots: found, Output: out, Matches: matches})
}

type alignRequest struct {
	Names     string `json:"names"`
	Usernames string `json:"usernames"`
	Passwords string `json:"passwords"`
	URLs      string `json:"urls"`
}

type alignResponse struct {
	Count   int               `json:"count"`
	Outputs map[string]string `json:"outputs"`
	Summary string            `json:"summary"`
}

// passwordMask replaces each aligned password in responses.
const passwordMask = "***"

func (h *handler) handleAlign(w http.ResponseWriter, r *http.Request) {
	var req alignRequest
	if err := decode(w, r, &req); err != nil {
		writeErrorFromErr(w, err)
		return
	}

	a := align.Align(model.CredentialLists{
		Names:     req.Names,
		Usernames: req.Usernames,
		Passwords: req.Passwords,
		URLs:      req.URLs,
	}, func(msg string) { h.log.Debug(msg) })

	masked := make([]string, len(a.Passwords))
	for i := range masked {
		masked[i] = passwordMask
	}
	a.Passwords = masked

	sink := action.NewMemorySink()
	for _, o := range align.Outputs(a) {
		if err := sink.Set(o.Name, o.Value); err != nil {
			writeErrorFromErr(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, alignResponse{Count: a.Count, Outputs: sink.Map(), Summary: align.Summary(a)})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &model.StepError{Kind: model.KindInvalidInput, Message: "request body is empty"}
		}
		return &model.StepError{Kind: model.KindInvalidInput, Message: "invalid JSON body", Cause: err}
	}
	return nil
}

func invalidInput(field string, err error) error {
	return &model.StepError{Kind: model.KindInvalidInput, Input: field, Message: err.Error()}
}
