package model

type TodoStats struct {
	Total          int64   `json:"total"`
	Completed      int64   `json:"completed"`
	Pending        int64   `json:"pending"`
	Overdue        int64   `json:"overdue"`
	HighPriority   int64   `json:"highPriority"`
	Urgent         int64   `json:"urgent"`
	CompletionRate float64 `json:"completionRate"`
}

type Breakdown struct {
	Priority map[string]int64 `json:"priority"`
	Category map[string]int64 `json:"category"`
}

type TrendPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// Admin-wide aggregates.

type AdminStats struct {
	UsersCount  int64 `json:"usersCount"`
	AdminsCount int64 `json:"adminsCount"`
	TodosCount  int64 `json:"todosCount"`
}

type UserRollup struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Completed int64  `json:"completed"`
	Pending   int64  `json:"pending"`
	Total     int64  `json:"total"`
}

type PriorityRollup struct {
	Priority  string `json:"priority"`
	Completed int64  `json:"completed"`
	Pending   int64  `json:"pending"`
}

type AdminAnalytics struct {
	PerUser     []UserRollup     `json:"perUser"`
	PerPriority []PriorityRollup `json:"perPriority"`
}
