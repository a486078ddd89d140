// Package logger provides structured one-line JSON logging for the
// cafeteria services. Recovery events (corrupt storage, ignored
// transitions) are logged here rather than surfaced to callers.
package logger

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

type Logger interface {
	Info(action, message string, details map[string]any)
	Debug(action, message string, details map[string]any)
	Error(action, message string, details map[string]any, err error)
}

type jsonLogger struct {
	service  string
	hostname string
	out      io.Writer
	mu       sync.Mutex
}

// New returns a Logger writing JSON entries to stderr, keeping stdout free
// for command output.
func New(service string) Logger {
	return NewWriter(service, os.Stderr)
}

// NewWriter returns a Logger writing JSON entries to w.
func NewWriter(service string, w io.Writer) Logger {
	hostname, _ := os.Hostname()
	return &jsonLogger{
		service:  service,
		hostname: hostname,
		out:      w,
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewWriter("", io.Discard)
}

func (l *jsonLogger) Info(action, message string, details map[string]any) {
	l.log("INFO", action, message, details, nil)
}

func (l *jsonLogger) Debug(action, message string, details map[string]any) {
	l.log("DEBUG", action, message, details, nil)
}

func (l *jsonLogger) Error(action, message string, details map[string]any, err error) {
	l.log("ERROR", action, message, details, err)
}

func (l *jsonLogger) log(level, action, message string, details map[string]any, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Service:   l.service,
		Hostname:  l.hostname,
		Action:    action,
		Message:   message,
		Details:   details,
	}

	if err != nil {
		entry.Error = &ErrorInfo{Msg: err.Error()}
	}

	json.NewEncoder(l.out).Encode(entry)
}
