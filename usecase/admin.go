package usecase

import (
	"context"
	"errors"
	"sort"

	"main/model"
	"main/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// UncategorizedPriority buckets items whose priority value is absent.
const UncategorizedPriority = "uncategorized"

var ErrSelfDemotion = errors.New("admins cannot demote themselves")

type AdminService struct {
	todos *repository.TodosRepo
	users *repository.UserRepo
}

func NewAdminService(todos *repository.TodosRepo, users *repository.UserRepo) *AdminService {
	return &AdminService{todos: todos, users: users}
}

// Stats returns the overall user/admin/todo counts.
func (svc *AdminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	usersCount, err := svc.users.CountUsers(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	adminsCount, err := svc.users.CountUsers(ctx, bson.M{"role": model.RoleAdmin})
	if err != nil {
		return nil, err
	}
	todosCount, err := svc.todos.CountTodos(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	return &model.AdminStats{
		UsersCount:  usersCount,
		AdminsCount: adminsCount,
		TodosCount:  todosCount,
	}, nil
}

// ListUsers returns every account, newest first.
func (svc *AdminService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return svc.users.ListUsers(ctx)
}

// UpdateUserRole changes a user's role. Role transitions are admin-only
// (enforced at the route) and an admin may never demote itself.
func (svc *AdminService) UpdateUserRole(ctx context.Context, actorID, targetID string, role model.Role) (*model.User, error) {
	if err := ValidateRoleChange(actorID, targetID, role); err != nil {
		return nil, err
	}
	return svc.users.UpdateUser(ctx, targetID, bson.M{"role": role})
}

// ValidateRoleChange rejects unknown roles and self-demotion.
func ValidateRoleChange(actorID, targetID string, role model.Role) error {
	switch role {
	case model.RoleUser, model.RoleAdmin:
	default:
		return &ValidationError{Field: "role", Message: "role must be user or admin"}
	}
	if actorID == targetID && role != model.RoleAdmin {
		return ErrSelfDemotion
	}
	return nil
}

// Analytics aggregates all todos by (owner, completion, priority) and
// rolls the groups up per user and per priority.
func (svc *AdminService) Analytics(ctx context.Context) (*model.AdminAnalytics, error) {
	rows, err := svc.todos.GroupForAnalytics(ctx)
	if err != nil {
		return nil, err
	}

	users, err := svc.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]*model.User, len(users))
	for _, user := range users {
		lookup[user.UserID] = user
	}

	return BuildAnalytics(rows, lookup), nil
}

// priorityRank fixes the per-priority rollup order.
var priorityRank = map[string]int{
	string(model.PriorityUrgent): 0,
	string(model.PriorityHigh):   1,
	string(model.PriorityMedium): 2,
	string(model.PriorityLow):    3,
	UncategorizedPriority:        4,
}

// BuildAnalytics turns aggregation rows into the admin rollups. Rows
// with no owner contribute to the per-priority rollup only, so no
// owner is ever double-counted.
func BuildAnalytics(rows []repository.AnalyticsGroup, users map[string]*model.User) *model.AdminAnalytics {
	perUser := map[string]*model.UserRollup{}
	perPriority := map[string]*model.PriorityRollup{}

	for _, row := range rows {
		priority := row.ID.Priority
		if priority == "" {
			priority = UncategorizedPriority
		}

		if row.ID.User != "" {
			entry, ok := perUser[row.ID.User]
			if !ok {
				username, email := "Unknown", ""
				if user, found := users[row.ID.User]; found {
					username, email = user.Username, user.Email
				}
				entry = &model.UserRollup{UserID: row.ID.User, Username: username, Email: email}
				perUser[row.ID.User] = entry
			}
			if row.ID.Completed {
				entry.Completed += row.Count
			} else {
				entry.Pending += row.Count
			}
		}

		pEntry, ok := perPriority[priority]
		if !ok {
			pEntry = &model.PriorityRollup{Priority: priority}
			perPriority[priority] = pEntry
		}
		if row.ID.Completed {
			pEntry.Completed += row.Count
		} else {
			pEntry.Pending += row.Count
		}
	}

	analytics := &model.AdminAnalytics{
		PerUser:     make([]model.UserRollup, 0, len(perUser)),
		PerPriority: make([]model.PriorityRollup, 0, len(perPriority)),
	}

	for _, entry := range perUser {
		entry.Total = entry.Completed + entry.Pending
		analytics.PerUser = append(analytics.PerUser, *entry)
	}
	sort.Slice(analytics.PerUser, func(i, j int) bool {
		if analytics.PerUser[i].Total != analytics.PerUser[j].Total {
			return analytics.PerUser[i].Total > analytics.PerUser[j].Total
		}
		return analytics.PerUser[i].UserID < analytics.PerUser[j].UserID
	})

	for _, entry := range perPriority {
		analytics.PerPriority = append(analytics.PerPriority, *entry)
	}
	sort.Slice(analytics.PerPriority, func(i, j int) bool {
		return priorityRank[analytics.PerPriority[i].Priority] < priorityRank[analytics.PerPriority[j].Priority]
	})

	return analytics
}
