package makedoc

import (
	"strings"

	"makedoc2rst/internal/domain"
)

const (
	commentOpen  = "/*"
	commentClose = "*/"

	// anchorMarker is the opening of a block whose first line is FUNCTION.
	anchorMarker = commentOpen + "\nFUNCTION"
)

// Extract returns the interior of the documentation comment in content, or
// "" when there is none.
func Extract(content string, mode domain.ExtractionMode) string {
	var start int
	var scanFrom int

	switch mode {
	case domain.ModeAnchored:
		start = strings.Index(content, anchorMarker)
		if start < 0 {
			return ""
		}
		scanFrom = start + len(anchorMarker)
	default:
		if !strings.HasPrefix(content, commentOpen) {
			return ""
		}
		scanFrom = len(commentOpen)
	}

	// The first "*/" closes the block; a "*" not followed by "/" does not.
	end := strings.Index(content[scanFrom:], commentClose)
	if end < 0 {
		return ""
	}
	block := content[start : scanFrom+end+len(commentClose)]

	return strip(block)
}

func strip(block string) string {
	block = strings.TrimLeft(block, "/*")
	block = strings.TrimRight(block, "*/")
	return strings.TrimFunc(block, isSpace)
}
