package rst

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"makedoc2rst/internal/adapter/makedoc"
	"makedoc2rst/internal/domain"
)

// Renderer turns records into reStructuredText. It holds no mutable state.
type Renderer struct {
	table *CommandTable
}

func NewRenderer(table *CommandTable) *Renderer {
	if table == nil {
		table = DefaultTable()
	}
	return &Renderer{table: table}
}

// Table returns the command table the renderer dispatches on.
func (r *Renderer) Table() *CommandTable {
	return r.table
}

// Render concatenates the fragment of every record in order. Unknown commands
// render as a blank line and are reported in the returned diagnostics.
func (r *Renderer) Render(records []domain.Record) (string, []domain.Diagnostic) {
	var out strings.Builder
	var diags []domain.Diagnostic

	for _, rec := range records {
		strategy, ok := r.table.Lookup(rec.Command)
		if !ok {
			diags = append(diags, domain.Diagnostic{
				Kind:    domain.DiagUnrecognizedCommand,
				Command: rec.Command,
				Message: fmt.Sprintf("command %s is not recognized, skipping it", rec.Command),
			})
			strategy = domain.StrategySuppressed
		}
		out.WriteString(fragment(strategy, rec))
	}

	return out.String(), diags
}

func fragment(s domain.Strategy, rec domain.Record) string {
	switch s {
	case domain.StrategySummary:
		return functionSummary(rec.Body)
	case domain.StrategyCode:
		return codeBlock(rec.Command, rec.Body)
	case domain.StrategyLabeled:
		return labeledBlock(rec.Command, rec.Body)
	default:
		return suppressed()
	}
}

func functionSummary(body string) string {
	name := makedoc.FunctionName(body)
	summary := makedoc.Summary(body)

	var b strings.Builder
	fmt.Fprintf(&b, ".. %s:\n\n", name)
	fmt.Fprintf(&b, "%s - %s\n", name, capitalize(summary))
	b.WriteString(strings.Repeat("-", utf8.RuneCountInString(body)))
	b.WriteString("\n")
	fmt.Fprintf(&b, ".. index:: %s\n", name)
	fmt.Fprintf(&b, ".. index:: %s\n\n", summary)
	return b.String()
}

// capitalize upper-cases the first rune and lower-cases the rest. Casers
// carry state, so each call gets its own.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}

func codeBlock(command, body string) string {
	return fmt.Sprintf("**%s:**\n\n.. code-block:: c\n\n%s\n\n", command, body)
}

func labeledBlock(command, body string) string {
	return fmt.Sprintf("**%s:**\n\n%s\n\n", command, body)
}

func suppressed() string {
	return "\n\n"
}
