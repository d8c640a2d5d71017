package usecase

import (
	"errors"
	"testing"

	"main/model"
	"main/repository"
)

func analyticsRow(user string, completed bool, priority string, count int64) repository.AnalyticsGroup {
	var row repository.AnalyticsGroup
	row.ID.User = user
	row.ID.Completed = completed
	row.ID.Priority = priority
	row.Count = count
	return row
}

func TestBuildAnalytics(t *testing.T) {
	rows := []repository.AnalyticsGroup{
		analyticsRow("u1", true, "high", 3),
		analyticsRow("u1", false, "high", 2),
		analyticsRow("u1", false, "low", 1),
		analyticsRow("u2", false, "urgent", 10),
		analyticsRow("ghost", true, "medium", 4),
		analyticsRow("", false, "", 5), // ownerless rows roll up by priority only
	}
	users := map[string]*model.User{
		"u1": {UserID: "u1", Username: "alice", Email: "alice@example.com"},
		"u2": {UserID: "u2", Username: "bob", Email: "bob@example.com"},
	}

	analytics := BuildAnalytics(rows, users)

	if len(analytics.PerUser) != 3 {
		t.Fatalf("got %d user rollups, want 3", len(analytics.PerUser))
	}

	// Sorted by total desc: u2 (10), u1 (6), ghost (4).
	if analytics.PerUser[0].UserID != "u2" || analytics.PerUser[0].Total != 10 {
		t.Errorf("first rollup = %s/%d, want u2/10", analytics.PerUser[0].UserID, analytics.PerUser[0].Total)
	}
	if analytics.PerUser[1].UserID != "u1" {
		t.Errorf("second rollup = %s, want u1", analytics.PerUser[1].UserID)
	}
	if analytics.PerUser[1].Completed != 3 || analytics.PerUser[1].Pending != 3 {
		t.Errorf("u1 completed/pending = %d/%d, want 3/3", analytics.PerUser[1].Completed, analytics.PerUser[1].Pending)
	}
	if analytics.PerUser[1].Username != "alice" || analytics.PerUser[1].Email != "alice@example.com" {
		t.Errorf("u1 identity = %s/%s", analytics.PerUser[1].Username, analytics.PerUser[1].Email)
	}

	// An owner with no matching account falls back to Unknown.
	if analytics.PerUser[2].UserID != "ghost" || analytics.PerUser[2].Username != "Unknown" || analytics.PerUser[2].Email != "" {
		t.Errorf("ghost rollup = %+v, want Unknown identity", analytics.PerUser[2])
	}

	// Priority order is urgent, high, medium, low, uncategorized.
	wantOrder := []string{"urgent", "high", "medium", "low", UncategorizedPriority}
	if len(analytics.PerPriority) != len(wantOrder) {
		t.Fatalf("got %d priority rollups, want %d", len(analytics.PerPriority), len(wantOrder))
	}
	for i, want := range wantOrder {
		if analytics.PerPriority[i].Priority != want {
			t.Errorf("priority[%d] = %s, want %s", i, analytics.PerPriority[i].Priority, want)
		}
	}

	// The ownerless row still counts against its priority bucket.
	if analytics.PerPriority[4].Pending != 5 {
		t.Errorf("uncategorized pending = %d, want 5", analytics.PerPriority[4].Pending)
	}
	if analytics.PerPriority[1].Completed != 3 || analytics.PerPriority[1].Pending != 2 {
		t.Errorf("high completed/pending = %d/%d, want 3/2", analytics.PerPriority[1].Completed, analytics.PerPriority[1].Pending)
	}
}

func TestBuildAnalyticsEmpty(t *testing.T) {
	analytics := BuildAnalytics(nil, nil)

	if analytics.PerUser == nil || analytics.PerPriority == nil {
		t.Fatal("rollups should be empty slices, not nil")
	}
	if len(analytics.PerUser) != 0 || len(analytics.PerPriority) != 0 {
		t.Errorf("empty input should produce empty rollups, got %+v", analytics)
	}
}

func TestValidateRoleChange(t *testing.T) {
	tests := []struct {
		name     string
		actorID  string
		targetID string
		role     model.Role
		wantErr  error
	}{
		{"promote another user", "admin-1", "user-1", model.RoleAdmin, nil},
		{"demote another admin", "admin-1", "admin-2", model.RoleUser, nil},
		{"self promotion is a no-op but allowed", "admin-1", "admin-1", model.RoleAdmin, nil},
		{"self demotion rejected", "admin-1", "admin-1", model.RoleUser, ErrSelfDemotion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoleChange(tt.actorID, tt.targetID, tt.role)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRoleChange() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("unknown role rejected", func(t *testing.T) {
		err := ValidateRoleChange("admin-1", "user-1", model.Role("superuser"))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("ValidateRoleChange() = %v, want a validation error", err)
		}
		if verr.Field != "role" {
			t.Errorf("field = %s, want role", verr.Field)
		}
	})
}
