package ui

import (
	"strings"
	"testing"
)

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel(true); got != "done" {
		t.Errorf("StatusLabel(true) = %q, want \"done\"", got)
	}
	if got := StatusLabel(false); got != "open" {
		t.Errorf("StatusLabel(false) = %q, want \"open\"", got)
	}
}

func TestRenderStatusText(t *testing.T) {
	if got := RenderStatusText(true); !strings.Contains(got, "done") {
		t.Errorf("RenderStatusText(true) = %q, want it to contain \"done\"", got)
	}
	if got := RenderStatusText(false); !strings.Contains(got, "open") {
		t.Errorf("RenderStatusText(false) = %q, want it to contain \"open\"", got)
	}
}

func TestRenderTitle(t *testing.T) {
	if got := RenderTitle("Buy milk", false); got != "Buy milk" {
		t.Errorf("RenderTitle(open) = %q, want unchanged title", got)
	}
	if got := RenderTitle("Buy milk", true); !strings.Contains(got, "Buy milk") {
		t.Errorf("RenderTitle(done) = %q, want it to contain the title", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "milk", 10, "milk"},
		{"exact", "milk", 4, "milk"},
		{"cut", "Buy some milk", 8, "Buy s..."},
		{"tiny max", "Buy milk", 2, "Bu"},
		{"multibyte", "äöüäöüäöü", 5, "äö..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
