package makedoc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"makedoc2rst/internal/domain"
)

// commandLine allows the same trailing whitespace as isSpace.
var commandLine = regexp.MustCompile(`^[A-Z_]{3,}[\t\n\v\f\r\x1c-\x1f\x{85}\p{Z}]*$`)

// IsCommand reports whether line introduces a new record.
func IsCommand(line string) bool {
	return commandLine.MatchString(line)
}

// Segment splits comment text into records in source order. Text before the
// first command is discarded and commands whose body stays empty are dropped.
func Segment(comment string) []domain.Record {
	var records []domain.Record
	var command string
	var body strings.Builder

	flush := func() {
		if command != "" && body.Len() > 0 {
			records = append(records, domain.Record{Command: command, Body: body.String()})
		}
	}

	for _, line := range splitLines(comment) {
		if IsCommand(line) {
			flush()
			command = strings.TrimRightFunc(line, isSpace)
			body.Reset()
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()

	return records
}

// splitLines breaks text at every line boundary (\n, \r, \r\n, \v, \f,
// \x1c-\x1e, U+0085, U+2028, U+2029) without yielding a trailing empty line.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBoundary(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// isSpace is unicode.IsSpace widened by the \x1c-\x1f separators.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
