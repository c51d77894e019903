package port

import "makedoc2rst/internal/domain"

// DiagnosticSink receives advisory notices. Reporting is best effort and
// never fails the conversion.
type DiagnosticSink interface {
	Report(d domain.Diagnostic)
}

// Logger is the structured logging surface used across the tool.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
