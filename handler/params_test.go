package handler

import (
	"errors"
	"testing"
	"time"

	"main/usecase"
)

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"empty falls back", "", 20},
		{"valid", "3", 3},
		{"zero falls back", "0", 20},
		{"negative falls back", "-5", 20},
		{"non-numeric falls back", "abc", 20},
		{"float falls back", "2.5", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parsePositiveInt(tt.value, 20); got != tt.want {
				t.Errorf("parsePositiveInt(%q, 20) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseCompleted(t *testing.T) {
	if got := parseCompleted("true"); got == nil || !*got {
		t.Errorf("parseCompleted(true) = %v, want true", got)
	}
	if got := parseCompleted("false"); got == nil || *got {
		t.Errorf("parseCompleted(false) = %v, want false", got)
	}
	for _, value := range []string{"", "1", "TRUE", "yes"} {
		if got := parseCompleted(value); got != nil {
			t.Errorf("parseCompleted(%q) = %v, want nil", value, got)
		}
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc3339", "2025-06-01T09:00:00Z", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
		{"local datetime", "2025-06-01T09:00:00", time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local)},
		{"date only", "2025-06-01", time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDueDate(tt.value)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseDueDate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := parseDueDate("next tuesday")
		var verr *usecase.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("parseDueDate() = %v, want a validation error", err)
		}
		if verr.Field != "dueDate" {
			t.Errorf("field = %s, want dueDate", verr.Field)
		}
	})
}
