package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultCategory is applied when a todo is created without one.
const DefaultCategory = "General"

type Attachment struct {
	Filename   string    `bson:"filename" json:"filename"`
	URL        string    `bson:"url" json:"url"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

type Todo struct {
	TodoID      string       `bson:"_id,omitempty" json:"id"`
	UserID      string       `bson:"user" json:"user"`
	Title       string       `bson:"title" json:"title" binding:"required"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	Completed   bool         `bson:"completed" json:"completed"`
	Priority    Priority     `bson:"priority" json:"priority"`
	Category    string       `bson:"category" json:"category"`
	Tags        []string     `bson:"tags,omitempty" json:"tags,omitempty"`
	DueDate     time.Time    `bson:"due_date,omitempty" json:"due_date,omitempty"`
	CompletedAt time.Time    `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	Position    int64        `bson:"position" json:"position"`
	IsArchived  bool         `bson:"is_archived" json:"is_archived"`
	Attachments []Attachment `bson:"attachments,omitempty" json:"attachments,omitempty"`
	Notes       string       `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `bson:"updated_at" json:"updated_at"`
}

// IsOverdue reports whether the todo is past due and still pending.
func (t *Todo) IsOverdue(now time.Time) bool {
	if t.DueDate.IsZero() || t.Completed {
		return false
	}
	return t.DueDate.Before(now)
}
