// Package logger defines the logging interface used across the module
// and a zap-backed implementation. The default everywhere is Noop.
package logger

// Logger is a minimal leveled logger with structured fields.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// Noop discards all log output.
type Noop struct{}

func (Noop) Debug(string, map[string]any) {}
func (Noop) Info(string, map[string]any)  {}
func (Noop) Warn(string, map[string]any)  {}
func (Noop) Error(string, map[string]any) {}
