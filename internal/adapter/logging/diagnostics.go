package logging

import (
	"makedoc2rst/internal/domain"
	"makedoc2rst/internal/port"
)

// DiagnosticSink writes diagnostics to a logger as warnings.
type DiagnosticSink struct {
	logger port.Logger
}

func NewDiagnosticSink(logger port.Logger) *DiagnosticSink {
	if logger == nil {
		logger = NoOp()
	}
	return &DiagnosticSink{logger: logger}
}

func (s *DiagnosticSink) Report(d domain.Diagnostic) {
	args := []any{"kind", string(d.Kind)}
	if d.Source != "" {
		args = append(args, "source", d.Source)
	}
	if d.Command != "" {
		args = append(args, "command", d.Command)
	}
	s.logger.Warn(d.Message, args...)
}

type discardSink struct{}

func (discardSink) Report(domain.Diagnostic) {}

// Discard returns a sink that drops every diagnostic.
func Discard() port.DiagnosticSink {
	return discardSink{}
}
