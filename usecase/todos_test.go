package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"main/model"
)

func TestApplyTodoDefaults(t *testing.T) {
	todo := &model.Todo{Title: "Buy milk"}
	ApplyTodoDefaults(todo)

	if todo.Priority != model.PriorityMedium {
		t.Errorf("priority = %s, want %s", todo.Priority, model.PriorityMedium)
	}
	if todo.Category != model.DefaultCategory {
		t.Errorf("category = %s, want %s", todo.Category, model.DefaultCategory)
	}

	explicit := &model.Todo{Title: "Taxes", Priority: model.PriorityUrgent, Category: "Finance"}
	ApplyTodoDefaults(explicit)

	if explicit.Priority != model.PriorityUrgent || explicit.Category != "Finance" {
		t.Errorf("explicit values should survive defaulting, got %s/%s", explicit.Priority, explicit.Category)
	}

	blank := &model.Todo{Title: "x", Category: "   "}
	ApplyTodoDefaults(blank)
	if blank.Category != model.DefaultCategory {
		t.Errorf("whitespace category should default, got %q", blank.Category)
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{"nil stays nil", nil, nil},
		{"empty stays nil", []string{}, nil},
		{"trims whitespace", []string{" work ", "home"}, []string{"work", "home"}},
		{"drops blanks", []string{"", "  ", "keep"}, []string{"keep"}},
		{"all blank collapses to nil", []string{"", "   "}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.tags)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestValidateTodoFields(t *testing.T) {
	tests := []struct {
		name      string
		todo      model.Todo
		wantField string
	}{
		{"valid", model.Todo{Title: "ok", Priority: model.PriorityLow}, ""},
		{"missing title", model.Todo{}, "title"},
		{"whitespace title", model.Todo{Title: "   "}, "title"},
		{"title too long", model.Todo{Title: strings.Repeat("a", MaxTitleLength+1)}, "title"},
		{"description too long", model.Todo{Title: "ok", Description: strings.Repeat("b", MaxDescriptionLength+1)}, "description"},
		{"category too long", model.Todo{Title: "ok", Category: strings.Repeat("c", MaxCategoryLength+1)}, "category"},
		{"notes too long", model.Todo{Title: "ok", Notes: strings.Repeat("d", MaxNotesLength+1)}, "notes"},
		{"bad priority", model.Todo{Title: "ok", Priority: "critical"}, "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTodoFields(&tt.todo)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateTodoFields() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateTodoFields() = %v, want a validation error", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %s, want %s", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidatePriority(t *testing.T) {
	for _, p := range []model.Priority{model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityUrgent} {
		if err := ValidatePriority(p); err != nil {
			t.Errorf("ValidatePriority(%s) = %v, want nil", p, err)
		}
	}
	if err := ValidatePriority("critical"); err == nil {
		t.Error("ValidatePriority(critical) should fail")
	}
}

func TestBuildUpdateSet(t *testing.T) {
	title := "  New title  "
	description := "details"
	priority := model.PriorityHigh
	archived := true

	set, err := BuildUpdateSet(&TodoUpdate{
		Title:       &title,
		Description: &description,
		Priority:    &priority,
		Tags:        []string{" a ", ""},
		IsArchived:  &archived,
	})
	if err != nil {
		t.Fatal(err)
	}

	if set["title"] != "New title" {
		t.Errorf("title = %v, want trimmed New title", set["title"])
	}
	if set["description"] != "details" {
		t.Errorf("description = %v", set["description"])
	}
	if set["priority"] != model.PriorityHigh {
		t.Errorf("priority = %v", set["priority"])
	}
	if tags, ok := set["tags"].([]string); !ok || len(tags) != 1 || tags[0] != "a" {
		t.Errorf("tags = %v, want [a]", set["tags"])
	}
	if set["is_archived"] != true {
		t.Errorf("is_archived = %v", set["is_archived"])
	}
	if _, ok := set["completed"]; ok {
		t.Error("completion must never land in the update set")
	}
}

func TestBuildUpdateSetDueDate(t *testing.T) {
	due := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	set, err := BuildUpdateSet(&TodoUpdate{DueDate: &due})
	if err != nil {
		t.Fatal(err)
	}
	if set["due_date"] != due {
		t.Errorf("due_date = %v, want %v", set["due_date"], due)
	}

	// The zero time clears the stored due date.
	zero := time.Time{}
	set, err = BuildUpdateSet(&TodoUpdate{DueDate: &zero})
	if err != nil {
		t.Fatal(err)
	}
	if value, ok := set["due_date"]; !ok || value != nil {
		t.Errorf("due_date = %v, want explicit nil", value)
	}
}

func TestBuildUpdateSetRejections(t *testing.T) {
	empty := "   "
	if _, err := BuildUpdateSet(&TodoUpdate{Title: &empty}); err == nil {
		t.Error("blank title should be rejected")
	}

	long := strings.Repeat("x", MaxNotesLength+1)
	if _, err := BuildUpdateSet(&TodoUpdate{Notes: &long}); err == nil {
		t.Error("oversized notes should be rejected")
	}

	bad := model.Priority("critical")
	if _, err := BuildUpdateSet(&TodoUpdate{Priority: &bad}); err == nil {
		t.Error("unknown priority should be rejected")
	}

	blankCategory := ""
	set, err := BuildUpdateSet(&TodoUpdate{Category: &blankCategory})
	if err != nil {
		t.Fatal(err)
	}
	if set["category"] != model.DefaultCategory {
		t.Errorf("blank category = %v, want %s", set["category"], model.DefaultCategory)
	}
}

func TestBuildUpdateSetEmpty(t *testing.T) {
	set, err := BuildUpdateSet(&TodoUpdate{})
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 0 {
		t.Errorf("empty update should produce an empty set, got %v", set)
	}
}
