package domain

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRecordYAMLKeepsTabIndentedBodies(t *testing.T) {
	records := []Record{
		{Command: "FUNCTION", Body: "\t<<sqrt>>---positive square root\n\n"},
		{Command: "SYNOPSIS", Body: "\t#include <math.h>\n\tdouble sqrt(double <[x]>);\n"},
		{Command: "NULL", Body: "null"},
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if strings.Contains(string(data), "|") {
		t.Errorf("expected no block scalars, got:\n%s", data)
	}

	var got []Record
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("expected output to parse, got %v:\n%s", err, data)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("record %d: expected %+v, got %+v", i, records[i], got[i])
		}
	}
}
