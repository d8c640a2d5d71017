package repository

import (
	"reflect"
	"testing"

	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestTodoFilterQuery(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		filter TodoFilter
		want   bson.M
	}{
		{
			name:   "No Filters Scopes To Owner",
			userID: "user-1",
			filter: TodoFilter{},
			want:   bson.M{"user": "user-1"},
		},
		{
			name:   "Completed False Is Still A Filter",
			userID: "user-1",
			filter: TodoFilter{Completed: boolPtr(false)},
			want:   bson.M{"user": "user-1", "completed": false},
		},
		{
			name:   "Category And Priority Exact Match",
			userID: "user-1",
			filter: TodoFilter{Category: "Work", Priority: model.PriorityUrgent},
			want:   bson.M{"user": "user-1", "category": "Work", "priority": model.PriorityUrgent},
		},
		{
			name:   "Search Builds Case Insensitive Or",
			userID: "user-1",
			filter: TodoFilter{Search: "groceries"},
			want: bson.M{
				"user": "user-1",
				"$or": bson.A{
					bson.M{"title": primitive.Regex{Pattern: "groceries", Options: "i"}},
					bson.M{"description": primitive.Regex{Pattern: "groceries", Options: "i"}},
					bson.M{"tags": primitive.Regex{Pattern: "groceries", Options: "i"}},
				},
			},
		},
		{
			name:   "Search Input Is Never A Regex",
			userID: "user-1",
			filter: TodoFilter{Search: "a.b*"},
			want: bson.M{
				"user": "user-1",
				"$or": bson.A{
					bson.M{"title": primitive.Regex{Pattern: `a\.b\*`, Options: "i"}},
					bson.M{"description": primitive.Regex{Pattern: `a\.b\*`, Options: "i"}},
					bson.M{"tags": primitive.Regex{Pattern: `a\.b\*`, Options: "i"}},
				},
			},
		},
		{
			name:   "Empty Owner Matches All Users",
			userID: "",
			filter: TodoFilter{Completed: boolPtr(true)},
			want:   bson.M{"completed": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Query(tt.userID)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Query() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortSpec(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      bson.D
	}{
		{
			name: "Default Is Position Then Newest",
			want: bson.D{
				{Key: "position", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			name:      "Explicit Sort Overrides Entirely",
			sortBy:    "dueDate",
			sortOrder: "asc",
			want:      bson.D{{Key: "due_date", Value: 1}},
		},
		{
			name:   "Order Defaults To Descending",
			sortBy: "createdAt",
			want:   bson.D{{Key: "created_at", Value: -1}},
		},
		{
			name:      "Unknown Field Falls Back To Default",
			sortBy:    "password",
			sortOrder: "asc",
			want: bson.D{
				{Key: "position", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortSpec(tt.sortBy, tt.sortOrder)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SortSpec(%q, %q) = %v, want %v", tt.sortBy, tt.sortOrder, got, tt.want)
			}
		})
	}
}
