package task

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
		wantMsg string
	}{
		{"simple", "Buy milk", false, ""},
		{"single char", "x", false, ""},
		{"surrounding spaces", "  padded  ", false, ""},
		{"unicode", "Café ☕", false, ""},
		{"empty", "", true, "must not be empty"},
		{"spaces only", "   ", true, "must not be blank"},
		{"tabs and newlines", "\t\n ", true, "must not be blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("ValidateTitle(%q) error = %v, want nil", tt.title, err)
				}
				return
			}

			if err == nil {
				t.Fatalf("ValidateTitle(%q) = nil, want error", tt.title)
			}
			if !errors.Is(err, ErrInvalidTitle) {
				t.Errorf("errors.Is(err, ErrInvalidTitle) = false for %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %T is not a *ValidationError", err)
			}
			if ve.Field != "title" {
				t.Errorf("Field = %q, want \"title\"", ve.Field)
			}
			if ve.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", ve.Message, tt.wantMsg)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != IDLength {
			t.Fatalf("len(NewID()) = %d, want %d", len(id), IDLength)
		}
		for _, r := range id {
			if !strings.ContainsRune(IDAlphabet, r) {
				t.Fatalf("NewID() = %q contains %q outside the alphabet", id, r)
			}
		}
		if seen[id] {
			t.Fatalf("NewID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestTableName(t *testing.T) {
	if got := (Task{}).TableName(); got != "tasks" {
		t.Errorf("TableName() = %q, want \"tasks\"", got)
	}
}
