package main

import (
	"errors"
	"strings"
	"testing"

	"fshare/internal/api"
)

func TestFormatCLIErrorNil(t *testing.T) {
	if lines := formatCLIError(nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}

func TestFormatCLIErrorPlain(t *testing.T) {
	lines := formatCLIError(errors.New("boom"))
	if len(lines) != 1 || lines[0] != "boom" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestFormatCLIErrorQuotaHint(t *testing.T) {
	err := &api.APIError{Status: 413, Code: "payload_too_large", Message: "quota exhausted"}
	lines := formatCLIError(err)
	if len(lines) < 2 {
		t.Fatalf("expected hint line, got %v", lines)
	}
	if !strings.Contains(lines[1], "fshare info") {
		t.Fatalf("expected quota hint, got %q", lines[1])
	}
}

func TestFormatCLIErrorServerErrorHint(t *testing.T) {
	err := &api.APIError{Status: 500, Code: "internal", Message: "internal error"}
	lines := formatCLIError(err)
	found := false
	for _, line := range lines {
		if strings.Contains(line, "server logs") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected server log hint, got %v", lines)
	}
}

func TestUniqueLinesDropsDuplicatesAndEmpties(t *testing.T) {
	got := uniqueLines([]string{"a", "", "a", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected result: %v", got)
	}
}
