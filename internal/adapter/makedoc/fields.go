package makedoc

import "strings"

const summarySeparator = "---"

// FunctionName returns the first <<name>> of a FUNCTION body. The marker must
// follow at least one leading whitespace character.
func FunctionName(body string) string {
	rest := strings.TrimLeftFunc(body, isSpace)
	if len(rest) == len(body) || !strings.HasPrefix(rest, "<<") {
		return ""
	}
	rest = rest[2:]
	end := strings.Index(rest, ">>")
	if end < 0 {
		return ""
	}
	return strings.TrimLeft(rest[:end], "<")
}

// Summary returns the text after the last "---" of a FUNCTION body, or the
// whole body when there is no separator.
func Summary(body string) string {
	if i := strings.LastIndex(body, summarySeparator); i >= 0 {
		body = body[i+len(summarySeparator):]
	}
	return strings.TrimFunc(body, isSpace)
}
