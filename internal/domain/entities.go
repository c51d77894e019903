package domain

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Record is one (command, body) pair from a documentation comment.
type Record struct {
	Command string `json:"command" yaml:"command"`
	Body    string `json:"body" yaml:"body"`
}

// MarshalYAML writes the body double-quoted. Block scalars cannot carry the
// tab indentation common in makedoc bodies.
func (r Record) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "command"},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Command},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "body"},
			{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: r.Body},
		},
	}, nil
}

// ExtractionMode selects how the documentation comment is located.
type ExtractionMode int

const (
	// ModeUnanchored takes the comment that opens at the very start of the file.
	ModeUnanchored ExtractionMode = iota
	// ModeAnchored takes the first comment, anywhere in the file, whose first
	// line is the FUNCTION command.
	ModeAnchored
)

func (m ExtractionMode) String() string {
	switch m {
	case ModeUnanchored:
		return "unanchored"
	case ModeAnchored:
		return "anchored"
	default:
		return "unknown"
	}
}

// Strategy names a rendering shape for a record.
type Strategy string

const (
	StrategySummary    Strategy = "summary"
	StrategyCode       Strategy = "code"
	StrategyLabeled    Strategy = "labeled"
	StrategySuppressed Strategy = "suppressed"
)

// ParseStrategy maps a configuration name onto a Strategy.
func ParseStrategy(name string) (Strategy, bool) {
	switch s := Strategy(name); s {
	case StrategySummary, StrategyCode, StrategyLabeled, StrategySuppressed:
		return s, true
	}
	return "", false
}

type DiagnosticKind string

const (
	DiagNoDocumentation     DiagnosticKind = "no_documentation"
	DiagUnrecognizedCommand DiagnosticKind = "unrecognized_command"
)

// Diagnostic is an advisory, non-fatal notice produced during conversion.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Source  string         `json:"source,omitempty" yaml:"source,omitempty"`
	Command string         `json:"command,omitempty" yaml:"command,omitempty"`
	Message string         `json:"message" yaml:"message"`
}

// Conversion is the outcome of running one source through the pipeline.
type Conversion struct {
	Source      string
	Output      string
	Records     []Record
	Diagnostics []Diagnostic
	Found       bool
}

type ManifestStatus string

const (
	StatusConverted       ManifestStatus = "converted"
	StatusNoDocumentation ManifestStatus = "no_documentation"
)

// ManifestEntry tracks the last conversion of one source file.
type ManifestEntry struct {
	SourcePath  string
	OutputPath  string
	ContentHash string
	RunID       string
	ConvertedAt time.Time
	Status      ManifestStatus
}
