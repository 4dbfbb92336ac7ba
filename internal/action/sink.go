package action

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"ciutil/internal/model"
)

// Sink receives the structured outputs of a step.
type Sink interface {
	Set(name, value string) error
}

// FileSink appends name=value lines to the runner's output file.
type FileSink struct {
	path string
}

// NewFileSink fails with OUTPUT_SINK_UNAVAILABLE when path is empty.
func NewFileSink(path string) (*FileSink, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &model.StepError{
			Kind:    model.KindOutputSinkUnavailable,
			Input:   OutputFileEnv,
			Message: OutputFileEnv + " not set",
		}
	}
	return &FileSink{path: path}, nil
}

func (s *FileSink) Path() string { return s.path }

// Set appends one line. Values containing newlines are rejected since they would split the line.
func (s *FileSink) Set(name, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return &model.StepError{
			Kind:    model.KindInvalidInput,
			Message: fmt.Sprintf("output %s contains a newline", name),
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &model.StepError{
			Kind:    model.KindOutputSinkUnavailable,
			Input:   OutputFileEnv,
			Message: "cannot open " + s.path,
			Cause:   err,
		}
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
		return &model.StepError{
			Kind:    model.KindOutputSinkUnavailable,
			Input:   OutputFileEnv,
			Message: "cannot write " + s.path,
			Cause:   err,
		}
	}
	return nil
}

// MemorySink keeps outputs in memory, in the order they were set.
type MemorySink struct {
	mu     sync.Mutex
	names  []string
	values map[string]string
}

func NewMemorySink() *MemorySink {
	return &MemorySink{values: make(map[string]string)}
}

func (s *MemorySink) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
	return nil
}

func (s *MemorySink) Get(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[name]
}

// Map returns a copy of all outputs.
func (s *MemorySink) Map() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Lines renders the outputs as they would appear in the output file.
func (s *MemorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.names))
	for i, n := range s.names {
		out[i] = n + "=" + s.values[n]
	}
	return out
}
