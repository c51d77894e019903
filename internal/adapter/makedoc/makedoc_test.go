package makedoc

import (
	"reflect"
	"strings"
	"testing"

	"makedoc2rst/internal/domain"
)

const absSource = `/*
FUNCTION
<<abs>>---integer absolute value (magnitude)

INDEX
	abs

SYNOPSIS
	#include <stdlib.h>
	int abs(int <[i]>);

DESCRIPTION
<<abs>> returns the absolute value of <[i]> (also called the
magnitude of <[i]>).  That is, if <[i]> is negative, the result is
the opposite of <[i]>, but if <[i]> is nonnegative the result is <[i]>.

RETURNS
The result is a nonnegative integer.

PORTABILITY
<<abs>> is ANSI.

QUICKREF
	abs ansi pure
*/

#include <stdlib.h>

int
abs (int i)
{
  return (i < 0) ? -i : i;
}
`

func TestExtractUnanchored(t *testing.T) {
	got := Extract(absSource, domain.ModeUnanchored)

	if !strings.HasPrefix(got, "FUNCTION\n") {
		t.Errorf("expected comment to start with FUNCTION, got %q", got[:20])
	}
	if !strings.HasSuffix(got, "abs ansi pure") {
		t.Errorf("expected trailing whitespace and delimiter stripped, got %q", got[len(got)-20:])
	}
	if strings.Contains(got, "return (i < 0)") {
		t.Error("extraction ran past the closing delimiter")
	}
}

func TestExtractUnanchoredRequiresLeadingComment(t *testing.T) {
	content := "#include <math.h>\n" + absSource
	if got := Extract(content, domain.ModeUnanchored); got != "" {
		t.Errorf("expected empty extraction, got %q", got)
	}
}

func TestExtractAnchoredFindsLaterBlock(t *testing.T) {
	content := "/* Copyright (c) 1990 */\n#include <stdio.h>\n" + absSource

	got := Extract(content, domain.ModeAnchored)

	if !strings.HasPrefix(got, "FUNCTION") {
		t.Errorf("expected FUNCTION block, got %q", got)
	}
	if strings.Contains(got, "Copyright") {
		t.Error("anchored extraction returned the licence block")
	}

	if got := Extract(content, domain.ModeUnanchored); !strings.HasPrefix(got, "Copyright") {
		t.Errorf("expected unanchored extraction to return the leading block, got %q", got)
	}
}

func TestExtractLoneStarDoesNotTerminate(t *testing.T) {
	content := "/*\nFUNCTION\n   <<mul>> --- a * b, **p\n*/ tail */"

	for _, mode := range []domain.ExtractionMode{domain.ModeUnanchored, domain.ModeAnchored} {
		got := Extract(content, mode)
		want := "FUNCTION\n   <<mul>> --- a * b, **p"
		if got != want {
			t.Errorf("%s: expected %q, got %q", mode, want, got)
		}
	}
}

func TestExtractNoComment(t *testing.T) {
	tests := []string{
		"",
		"int main(void) { return 0; }\n",
		"/* never closed\nFUNCTION\n",
	}
	for _, content := range tests {
		if got := Extract(content, domain.ModeUnanchored); got != "" {
			t.Errorf("unanchored %q: expected empty, got %q", content, got)
		}
		if got := Extract(content, domain.ModeAnchored); got != "" {
			t.Errorf("anchored %q: expected empty, got %q", content, got)
		}
	}
}

func TestIsCommand(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"FUNCTION", true},
		{"ANSI_SYNOPSIS", true},
		{"END", true},
		{"NOTES  \t", true},
		{"NOTES\v", true},
		{"NOTES\f", true},
		{"NOTES\u00a0", true},
		{"NOTES\u3000", true},
		{"NOTES\x1f", true},
		{"___", true},
		{"IS", false},
		{"A", false},
		{"", false},
		{"Function", false},
		{"FUNCTION2", false},
		{"SEE-ALSO", false},
		{"RETURNS:", false},
		{" FUNCTION", false},
		{"TWO WORDS", false},
	}
	for _, tt := range tests {
		if got := IsCommand(tt.line); got != tt.want {
			t.Errorf("IsCommand(%q): expected %v, got %v", tt.line, tt.want, got)
		}
	}
}

func TestSegment(t *testing.T) {
	comment := "preamble text\nFUNCTION\n   <<f>> --- x\nRETURNS\nA\n\nB\nNOTES\nC"

	got := Segment(comment)

	want := []domain.Record{
		{Command: "FUNCTION", Body: "   <<f>> --- x\n"},
		{Command: "RETURNS", Body: "A\n\nB\n"},
		{Command: "NOTES", Body: "C\n"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %#v, got %#v", want, got)
	}
}

func TestSegmentDropsEmptyBodies(t *testing.T) {
	comment := "FUNCTION\n  <<f>>\nNEWPAGE\nRETURNS\nok\nEND"

	got := Segment(comment)

	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d: %#v", len(got), got)
	}
	for _, r := range got {
		if r.Command == "NEWPAGE" || r.Command == "END" {
			t.Errorf("empty-bodied command %s was kept", r.Command)
		}
	}
}

func TestSegmentKeepsDuplicatesInOrder(t *testing.T) {
	comment := "NOTES\none\nRETURNS\nr\nNOTES\ntwo"

	got := Segment(comment)

	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].Body != "one\n" || got[2].Body != "two\n" {
		t.Errorf("duplicate bodies out of order: %#v", got)
	}
}

func TestSegmentTrimsCommandAndHandlesCRLF(t *testing.T) {
	got := Segment("RETURNS  \r\nzero\r\n")

	if len(got) != 1 || got[0].Command != "RETURNS" || got[0].Body != "zero\n" {
		t.Errorf("unexpected records: %#v", got)
	}
}

func TestSegmentSplitsOnEveryLineBoundary(t *testing.T) {
	for _, sep := range []string{"\v", "\f", "\x1c", "\x1d", "\x1e", "\u0085", "\u2028", "\u2029"} {
		got := Segment("NOTES" + sep + "a" + sep + "b")

		if len(got) != 1 || got[0].Command != "NOTES" || got[0].Body != "a\nb\n" {
			t.Errorf("separator %q: unexpected records %#v", sep, got)
		}
	}
}

func TestSegmentTrimsUnicodeSpaceFromCommand(t *testing.T) {
	got := Segment("RETURNS\u00a0\x1f\nzero")

	if len(got) != 1 || got[0].Command != "RETURNS" {
		t.Errorf("unexpected records: %#v", got)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"a\r\nb\rc", []string{"a", "b", "c"}},
		{"a\fb\n", []string{"a", "b"}},
		{"a\r\n\r\n", []string{"a", ""}},
	}
	for _, tt := range tests {
		if got := splitLines(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitLines(%q): expected %#v, got %#v", tt.text, tt.want, got)
		}
	}
}

func TestSegmentLowercaseLinesStayInBody(t *testing.T) {
	got := Segment("DESCRIPTION\nok\nIO\nabc\nFOO1")

	if len(got) != 1 {
		t.Fatalf("expected a single record, got %#v", got)
	}
	if got[0].Body != "ok\nIO\nabc\nFOO1\n" {
		t.Errorf("unexpected body %q", got[0].Body)
	}
}

func TestFunctionName(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"   <<foo>> --- does a thing\n", "foo"},
		{"\t<<abs>>, <<labs>>---integer absolute value\n", "abs"},
		{"\n<<a>b>>---odd\n", "a>b"},
		{"<<foo>>---no leading space\n", ""},
		{"   foo --- missing markers\n", ""},
		{"   <<open --- never closed\n", ""},
	}
	for _, tt := range tests {
		if got := FunctionName(tt.body); got != tt.want {
			t.Errorf("FunctionName(%q): expected %q, got %q", tt.body, tt.want, got)
		}
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"   <<foo>> --- does a thing\n", "does a thing"},
		{"<<a>>---b---last part  \n\n", "last part"},
		{"   just text\n", "just text"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Summary(tt.body); got != tt.want {
			t.Errorf("Summary(%q): expected %q, got %q", tt.body, tt.want, got)
		}
	}
}

func TestMinimalAnchoredInput(t *testing.T) {
	comment := Extract("/*\nFUNCTION\n   <<foo>> --- does a thing\n*/", domain.ModeAnchored)
	records := Segment(comment)

	if len(records) != 1 || records[0].Command != "FUNCTION" {
		t.Fatalf("expected one FUNCTION record, got %#v", records)
	}
	if name := FunctionName(records[0].Body); name != "foo" {
		t.Errorf("expected name foo, got %q", name)
	}
	if summary := Summary(records[0].Body); summary != "does a thing" {
		t.Errorf("expected summary 'does a thing', got %q", summary)
	}
}
