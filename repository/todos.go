package repository

import (
	"context"
	"errors"
	"os"
	"regexp"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrTodoNotFound = errors.New("todo not found")

type TodosRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for todos
func GetTodosRepo(client *mongo.Client) *TodosRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("TODOS_COLLECTION", "todos")
	return &TodosRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// TodoFilter is the optional filter set on list endpoints. Zero values
// mean "not given" (Completed is a pointer so false is still a filter).
type TodoFilter struct {
	Completed *bool
	Category  string
	Priority  model.Priority
	Search    string
}

// Query translates the filter into a store query. userID scopes the
// query to one owner; an empty userID matches todos across all owners
// (admin listing only).
func (f TodoFilter) Query(userID string) bson.M {
	query := bson.M{}
	if userID != "" {
		query["user"] = userID
	}
	if f.Completed != nil {
		query["completed"] = *f.Completed
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Priority != "" {
		query["priority"] = f.Priority
	}
	if f.Search != "" {
		// Case-insensitive substring match over title, description, and
		// tags. The pattern is quoted so search input is never treated
		// as a regular expression.
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"tags": pattern},
		}
	}
	return query
}

// sortableFields is the allow-list of caller-suppliable sort keys,
// mapped to their stored field names. Unknown keys fall back to the
// default ordering.
var sortableFields = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"dueDate":     "due_date",
	"completedAt": "completed_at",
	"title":       "title",
	"priority":    "priority",
	"category":    "category",
	"position":    "position",
}

// SortSpec resolves the caller's sortBy/sortOrder pair. An explicit,
// allow-listed sortBy overrides the ordering entirely; otherwise todos
// come back in manual order: position ascending, newest-first tiebreak.
func SortSpec(sortBy, sortOrder string) bson.D {
	if field, ok := sortableFields[sortBy]; ok {
		direction := -1
		if sortOrder == "asc" {
			direction = 1
		}
		return bson.D{{Key: field, Value: direction}}
	}
	return bson.D{
		{Key: "position", Value: 1},
		{Key: "created_at", Value: -1},
	}
}

// ListTodos runs a paginated query along with the total matching count.
func (r *TodosRepo) ListTodos(ctx context.Context, query bson.M, sort bson.D, page, limit int) ([]*model.Todo, int64, error) {
	timer := utils.TrackDBOperation("find", "todos")
	defer timer.ObserveDuration()

	total, err := r.MongoCollection.CountDocuments(ctx, query)
	if err != nil {
		utils.TrackError("database", "todo_count_failed")
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.MongoCollection.Find(ctx, query, opts)
	if err != nil {
		utils.TrackError("database", "todo_fetch_failed")
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	todos := []*model.Todo{}
	if err = cursor.All(ctx, &todos); err != nil {
		utils.TrackError("database", "todo_decode_failed")
		return nil, 0, err
	}
	return todos, total, nil
}

// GetUserTodos retrieves every todo for a user in manual order.
func (r *TodosRepo) GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	timer := utils.TrackDBOperation("find", "todos")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(SortSpec("", ""))
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		utils.TrackError("database", "todo_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	todos := []*model.Todo{}
	if err = cursor.All(ctx, &todos); err != nil {
		utils.TrackError("database", "todo_decode_failed")
		return nil, err
	}
	return todos, nil
}

// GetTodoByID fetches one todo. A non-empty userID restricts the match
// to that owner so callers cannot read other users' todos.
func (r *TodosRepo) GetTodoByID(ctx context.Context, todoID, userID string) (*model.Todo, error) {
	timer := utils.TrackDBOperation("find", "todos")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": todoID}
	if userID != "" {
		filter["user"] = userID
	}

	var todo model.Todo
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&todo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "todo_lookup_error")
		return nil, err
	}
	return &todo, nil
}

// CreateTodo inserts a new todo document.
func (r *TodosRepo) CreateTodo(ctx context.Context, todo *model.Todo) error {
	timer := utils.TrackDBOperation("insert", "todos")
	defer timer.ObserveDuration()

	if todo.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, todo)
	if err != nil {
		utils.TrackError("database", "todo_creation_failed")
		return err
	}
	return nil
}

// UpdateTodo applies a partial $set to one todo.
func (r *TodosRepo) UpdateTodo(ctx context.Context, todoID, userID string, set bson.M) error {
	timer := utils.TrackDBOperation("update", "todos")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": todoID}
	if userID != "" {
		filter["user"] = userID
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		utils.TrackError("database", "todo_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// SetCompletion flips the completion flag in a single atomic update.
// completed_at is set exactly when the flag transitions true and
// removed when it transitions false.
func (r *TodosRepo) SetCompletion(ctx context.Context, todoID, userID string, completed bool, now time.Time) error {
	timer := utils.TrackDBOperation("update", "todos")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": todoID}
	if userID != "" {
		filter["user"] = userID
	}

	update := bson.M{
		"$set": bson.M{
			"completed":  completed,
			"updated_at": now,
		},
	}
	if completed {
		update["$set"].(bson.M)["completed_at"] = now
	} else {
		update["$unset"] = bson.M{"completed_at": ""}
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "todo_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return ErrTodoNotFound
	}

	if completed {
		utils.TrackTodoCompletion()
	}
	return nil
}

// DeleteTodo removes a todo permanently.
func (r *TodosRepo) DeleteTodo(ctx context.Context, todoID, userID string) error {
	timer := utils.TrackDBOperation("delete", "todos")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": todoID}
	if userID != "" {
		filter["user"] = userID
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "todo_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// CountTodos counts documents matching an arbitrary stats predicate.
func (r *TodosRepo) CountTodos(ctx context.Context, query bson.M) (int64, error) {
	timer := utils.TrackDBOperation("count", "todos")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, query)
	if err != nil {
		utils.TrackError("database", "todo_count_failed")
		return 0, err
	}
	return count, nil
}

// DistinctCategories lists the category values a user has stored.
func (r *TodosRepo) DistinctCategories(ctx context.Context, userID string) ([]string, error) {
	timer := utils.TrackDBOperation("distinct", "todos")
	defer timer.ObserveDuration()

	values, err := r.MongoCollection.Distinct(ctx, "category", bson.M{"user": userID})
	if err != nil {
		utils.TrackError("database", "category_fetch_failed")
		return nil, err
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

// CompletedSince retrieves a user's todos completed at or after the
// cutoff, for trend bucketing.
func (r *TodosRepo) CompletedSince(ctx context.Context, userID string, since time.Time) ([]*model.Todo, error) {
	timer := utils.TrackDBOperation("find", "todos")
	defer timer.ObserveDuration()

	query := bson.M{
		"user":         userID,
		"completed":    true,
		"completed_at": bson.M{"$gte": since},
	}

	cursor, err := r.MongoCollection.Find(ctx, query)
	if err != nil {
		utils.TrackError("database", "trend_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	todos := []*model.Todo{}
	if err = cursor.All(ctx, &todos); err != nil {
		utils.TrackError("database", "todo_decode_failed")
		return nil, err
	}
	return todos, nil
}

// DueBefore lists pending todos across all owners due at or before the
// cutoff, oldest due date first, for the notification poller. Todos
// without a due date never match.
func (r *TodosRepo) DueBefore(ctx context.Context, cutoff time.Time) ([]*model.Todo, error) {
	timer := utils.TrackDBOperation("find", "todos")
	defer timer.ObserveDuration()

	query := bson.M{
		"completed": false,
		"due_date":  bson.M{"$lte": cutoff},
	}

	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, query, opts)
	if err != nil {
		utils.TrackError("database", "todo_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	todos := []*model.Todo{}
	if err = cursor.All(ctx, &todos); err != nil {
		utils.TrackError("database", "todo_decode_failed")
		return nil, err
	}
	return todos, nil
}

// GroupCount is one row of a single-key $group aggregation.
type GroupCount struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

// CountByPriority groups one user's todos by priority.
func (r *TodosRepo) CountByPriority(ctx context.Context, userID string) ([]GroupCount, error) {
	return r.groupBy(ctx, userID, "$priority")
}

// CountByCategory groups one user's todos by category.
func (r *TodosRepo) CountByCategory(ctx context.Context, userID string) ([]GroupCount, error) {
	return r.groupBy(ctx, userID, "$category")
}

func (r *TodosRepo) groupBy(ctx context.Context, userID, field string) ([]GroupCount, error) {
	timer := utils.TrackDBOperation("aggregate", "todos")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   field,
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "aggregation_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []GroupCount{}
	if err = cursor.All(ctx, &rows); err != nil {
		utils.TrackError("database", "aggregation_decode_failed")
		return nil, err
	}
	return rows, nil
}

// AnalyticsGroup is one row of the admin-wide (user, completed,
// priority) aggregation.
type AnalyticsGroup struct {
	ID struct {
		User      string `bson:"user"`
		Completed bool   `bson:"completed"`
		Priority  string `bson:"priority"`
	} `bson:"_id"`
	Count int64 `bson:"count"`
}

// GroupForAnalytics aggregates todos across all owners by the
// composite (user, completed, priority) key.
func (r *TodosRepo) GroupForAnalytics(ctx context.Context) ([]AnalyticsGroup, error) {
	timer := utils.TrackDBOperation("aggregate", "todos")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"user":      "$user",
				"completed": "$completed",
				"priority":  "$priority",
			},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "aggregation_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []AnalyticsGroup{}
	if err = cursor.All(ctx, &rows); err != nil {
		utils.TrackError("database", "aggregation_decode_failed")
		return nil, err
	}
	return rows, nil
}
