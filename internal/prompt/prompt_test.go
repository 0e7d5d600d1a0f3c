package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/repofill/repofill/internal/model"
)

func TestModePrompt(t *testing.T) {
	tests := []struct {
		input    string
		expected model.Mode
	}{
		{"s\n", model.ModeSlow},
		{"S\n", model.ModeSlow},
		{"f\n", model.ModeFast},
		{"whatever\n", model.ModeFast},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		p := New(strings.NewReader(tt.input), &out)

		mode, err := p.Mode()
		if err != nil {
			t.Fatalf("Mode(%q): %v", tt.input, err)
		}
		if mode != tt.expected {
			t.Errorf("Mode(%q) = %v, want %v", tt.input, mode, tt.expected)
		}
		if !strings.Contains(out.String(), "SUPER FAST") {
			t.Errorf("prompt text missing: %q", out.String())
		}
	}
}

func TestCountPrompt(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("12\n"), &out)

	n, err := p.Count("Enter the number of repositories to create", 1)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 12 {
		t.Errorf("got %d, want 12", n)
	}
	if !strings.Contains(out.String(), "repositories") {
		t.Errorf("label missing from prompt: %q", out.String())
	}
}

func TestCountPromptZeroAllowed(t *testing.T) {
	p := New(strings.NewReader("0\n"), &bytes.Buffer{})
	n, err := p.Count("size", 0)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("got %d, want 0", n)
	}
}

func TestCountPromptEnforcesMinimum(t *testing.T) {
	p := New(strings.NewReader("0\n"), &bytes.Buffer{})
	if _, err := p.Count("count", 1); err == nil {
		t.Error("expected error for 0 when minimum is 1")
	}
}

func TestCountPromptRejectsInvalid(t *testing.T) {
	for _, input := range []string{"abc\n", "1.5\n", "-2\n", ""} {
		p := New(strings.NewReader(input), &bytes.Buffer{})
		if _, err := p.Count("count", 0); err == nil {
			t.Errorf("input %q: expected error", input)
		}
	}
}

func TestScriptedSession(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("s\n3\n10\n256\n"), &out)

	mode, err := p.Mode()
	if err != nil {
		t.Fatalf("Mode: %v", err)
	}
	if mode != model.ModeSlow {
		t.Errorf("mode: got %v", mode)
	}

	for i, want := range []int{3, 10, 256} {
		n, err := p.Count("value", 1)
		if err != nil {
			t.Fatalf("Count %d: %v", i, err)
		}
		if n != want {
			t.Errorf("Count %d: got %d, want %d", i, n, want)
		}
	}
}
