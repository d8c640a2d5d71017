package usecase

import (
	"testing"
	"time"

	"main/model"
	"main/repository"
)

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		total     int64
		want      float64
	}{
		{"zero total", 0, 0, 0},
		{"all completed", 5, 5, 100},
		{"half completed", 5, 10, 50},
		{"rounds to two decimals", 1, 3, 33.33},
		{"rounds up", 2, 3, 66.67},
		{"none completed", 0, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletionRate(tt.completed, tt.total)
			if got != tt.want {
				t.Errorf("CompletionRate(%d, %d) = %v, want %v", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestSeedPriorityCounts(t *testing.T) {
	rows := []repository.GroupCount{
		{Key: "high", Count: 3},
		{Key: "urgent", Count: 1},
		{Key: "bogus", Count: 9},
	}

	counts := SeedPriorityCounts(rows)

	want := map[string]int64{"low": 0, "medium": 0, "high": 3, "urgent": 1}
	if len(counts) != len(want) {
		t.Fatalf("got %d keys, want %d", len(counts), len(want))
	}
	for key, count := range want {
		if counts[key] != count {
			t.Errorf("counts[%q] = %d, want %d", key, counts[key], count)
		}
	}
	if _, ok := counts["bogus"]; ok {
		t.Error("unknown priority key should not appear in the seeded map")
	}
}

func TestCategoryCounts(t *testing.T) {
	rows := []repository.GroupCount{
		{Key: "Work", Count: 4},
		{Key: "", Count: 2},
		{Key: model.DefaultCategory, Count: 1},
	}

	counts := CategoryCounts(rows)

	if counts["Work"] != 4 {
		t.Errorf("counts[Work] = %d, want 4", counts["Work"])
	}
	if counts[model.DefaultCategory] != 1 {
		t.Errorf("counts[%s] = %d, want 1", model.DefaultCategory, counts[model.DefaultCategory])
	}
	// Stored keys pass through untouched, including legacy empties.
	if counts[""] != 2 {
		t.Errorf("counts[\"\"] = %d, want 2", counts[""])
	}
	if len(counts) != 3 {
		t.Errorf("got %d keys, want 3", len(counts))
	}
}

func TestClampTrendDays(t *testing.T) {
	tests := []struct {
		name string
		days int
		want int
	}{
		{"zero falls back to default", 0, DefaultTrendDays},
		{"negative falls back to default", -5, DefaultTrendDays},
		{"in range passes through", 30, 30},
		{"one is valid", 1, 1},
		{"capped at max", 365, MaxTrendDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampTrendDays(tt.days); got != tt.want {
				t.Errorf("ClampTrendDays(%d) = %d, want %d", tt.days, got, tt.want)
			}
		})
	}
}

func TestBucketTrend(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	days := 7

	todos := []*model.Todo{
		{TodoID: "a", CompletedAt: now.Add(-2 * time.Hour)},
		{TodoID: "b", CompletedAt: now.AddDate(0, 0, -1)},
		{TodoID: "c", CompletedAt: now.AddDate(0, 0, -1).Add(time.Hour)},
		{TodoID: "d"}, // zero CompletedAt is skipped
		{TodoID: "e", CompletedAt: now.AddDate(0, 0, -30)}, // outside the window
	}

	points := BucketTrend(todos, days, now)

	if len(points) != days {
		t.Fatalf("got %d points, want %d", len(points), days)
	}
	if points[0].Date != "2025-03-04" {
		t.Errorf("first date = %s, want 2025-03-04", points[0].Date)
	}
	if points[days-1].Date != "2025-03-10" {
		t.Errorf("last date = %s, want 2025-03-10", points[days-1].Date)
	}

	byDate := map[string]int64{}
	for _, p := range points {
		byDate[p.Date] = p.Count
	}
	if byDate["2025-03-10"] != 1 {
		t.Errorf("count on 2025-03-10 = %d, want 1", byDate["2025-03-10"])
	}
	if byDate["2025-03-09"] != 2 {
		t.Errorf("count on 2025-03-09 = %d, want 2", byDate["2025-03-09"])
	}
	if byDate["2025-03-05"] != 0 {
		t.Errorf("count on 2025-03-05 = %d, want 0", byDate["2025-03-05"])
	}
}
