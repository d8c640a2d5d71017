package usecase

import (
	"context"
	"math"
	"time"

	"main/model"
	"main/repository"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultTrendDays = 14
	MaxTrendDays     = 90
)

type StatsService struct {
	repo *repository.TodosRepo
}

func NewStatsService(repo *repository.TodosRepo) *StatsService {
	return &StatsService{repo: repo}
}

// Overview computes the headline counts for one owner. Each count runs
// its own predicate; pending is never derived by subtraction.
func (svc *StatsService) Overview(ctx context.Context, userID string) (*model.TodoStats, error) {
	predicates := []bson.M{
		{"user": userID},
		{"user": userID, "completed": true},
		{"user": userID, "completed": false},
		{"user": userID, "completed": false, "due_date": bson.M{"$lt": time.Now()}},
		{"user": userID, "completed": false, "priority": model.PriorityHigh},
		{"user": userID, "completed": false, "priority": model.PriorityUrgent},
	}

	counts := make([]int64, len(predicates))
	for i, predicate := range predicates {
		count, err := svc.repo.CountTodos(ctx, predicate)
		if err != nil {
			return nil, err
		}
		counts[i] = count
	}

	return &model.TodoStats{
		Total:          counts[0],
		Completed:      counts[1],
		Pending:        counts[2],
		Overdue:        counts[3],
		HighPriority:   counts[4],
		Urgent:         counts[5],
		CompletionRate: CompletionRate(counts[1], counts[0]),
	}, nil
}

// Breakdown groups one owner's todos by priority and by category.
func (svc *StatsService) Breakdown(ctx context.Context, userID string) (*model.Breakdown, error) {
	byPriority, err := svc.repo.CountByPriority(ctx, userID)
	if err != nil {
		return nil, err
	}
	byCategory, err := svc.repo.CountByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.Breakdown{
		Priority: SeedPriorityCounts(byPriority),
		Category: CategoryCounts(byCategory),
	}, nil
}

// Trend returns one entry per calendar day over the requested window,
// counting completions bucketed by local day.
func (svc *StatsService) Trend(ctx context.Context, userID string, days int) ([]model.TrendPoint, error) {
	days = ClampTrendDays(days)

	now := time.Now()
	since := startOfDay(now).AddDate(0, 0, -(days - 1))

	todos, err := svc.repo.CompletedSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	return BucketTrend(todos, days, now), nil
}

// CompletionRate is completed/total as a percentage rounded to two
// decimal places; zero when there is nothing to complete.
func CompletionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(completed) / float64(total) * 100
	return math.Round(rate*100) / 100
}

// SeedPriorityCounts folds group rows into a map seeded with all four
// priorities, so priorities with no items still appear as zero.
func SeedPriorityCounts(rows []repository.GroupCount) map[string]int64 {
	counts := map[string]int64{
		string(model.PriorityLow):    0,
		string(model.PriorityMedium): 0,
		string(model.PriorityHigh):   0,
		string(model.PriorityUrgent): 0,
	}
	for _, row := range rows {
		if _, ok := counts[row.Key]; ok {
			counts[row.Key] = row.Count
		}
	}
	return counts
}

// CategoryCounts folds group rows into a map keyed by the stored
// category strings, exactly as grouped. The map is unseeded; absent
// categories simply don't appear.
func CategoryCounts(rows []repository.GroupCount) map[string]int64 {
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts
}

// ClampTrendDays bounds the trend window: the default when the caller
// gave nothing usable, hard-capped to keep the query window bounded.
func ClampTrendDays(days int) int {
	if days < 1 {
		return DefaultTrendDays
	}
	if days > MaxTrendDays {
		return MaxTrendDays
	}
	return days
}

// BucketTrend buckets completions by local calendar day over
// [now - days + 1, now], zero-filling days without completions. The
// result always has exactly days entries keyed YYYY-MM-DD.
func BucketTrend(todos []*model.Todo, days int, now time.Time) []model.TrendPoint {
	counts := make(map[string]int64, days)
	for _, todo := range todos {
		if todo.CompletedAt.IsZero() {
			continue
		}
		counts[todo.CompletedAt.In(now.Location()).Format("2006-01-02")]++
	}

	start := startOfDay(now).AddDate(0, 0, -(days - 1))
	points := make([]model.TrendPoint, days)
	for i := 0; i < days; i++ {
		key := start.AddDate(0, 0, i).Format("2006-01-02")
		points[i] = model.TrendPoint{Date: key, Count: counts[key]}
	}
	return points
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
