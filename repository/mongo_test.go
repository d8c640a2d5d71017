package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// testCollection connects to the test Mongo instance and hands back a
// dropped-clean collection. Tests that need live storage skip when no
// instance is reachable.
func testCollection(t *testing.T, name string) *mongo.Collection {
	t.Helper()

	uri := utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}

	coll := client.Database(utils.GetEnvAsString("MONGO_TEST_DB", "taskflow_test")).Collection(name)
	if err := coll.Drop(ctx); err != nil {
		t.Fatalf("failed to reset collection: %v", err)
	}

	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = coll.Drop(cleanupCtx)
		_ = client.Disconnect(cleanupCtx)
	})

	return coll
}

func TestSetCompletionTransitions(t *testing.T) {
	repo := &TodosRepo{MongoCollection: testCollection(t, "todos")}
	ctx := context.Background()

	now := time.Now()
	todo := &model.Todo{
		TodoID:    "todo-1",
		UserID:    "user-1",
		Title:     "Write report",
		Priority:  model.PriorityMedium,
		Category:  model.DefaultCategory,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.CreateTodo(ctx, todo); err != nil {
		t.Fatal(err)
	}

	if err := repo.SetCompletion(ctx, "todo-1", "user-1", true, time.Now()); err != nil {
		t.Fatal(err)
	}

	stored, err := repo.GetTodoByID(ctx, "todo-1", "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if !stored.Completed {
		t.Error("completing should set the completion flag")
	}
	if stored.CompletedAt.IsZero() {
		t.Error("completing should set completed_at")
	}

	if err := repo.SetCompletion(ctx, "todo-1", "user-1", false, time.Now()); err != nil {
		t.Fatal(err)
	}

	stored, err = repo.GetTodoByID(ctx, "todo-1", "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Completed {
		t.Error("un-completing should clear the completion flag")
	}
	if !stored.CompletedAt.IsZero() {
		t.Error("un-completing should clear completed_at")
	}

	// The field is removed outright, not rewritten as a zero value.
	var raw bson.M
	if err := repo.MongoCollection.FindOne(ctx, bson.M{"_id": "todo-1"}).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["completed_at"]; ok {
		t.Error("completed_at should be absent from the stored document after un-completing")
	}

	if err := repo.SetCompletion(ctx, "missing", "user-1", true, time.Now()); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("SetCompletion on a missing todo = %v, want ErrTodoNotFound", err)
	}
}

func TestNextPositionMonotonic(t *testing.T) {
	repo := &CountersRepo{MongoCollection: testCollection(t, "todo_counters")}
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		position, err := repo.NextPosition(ctx, "user-1")
		if err != nil {
			t.Fatal(err)
		}
		if position <= last {
			t.Fatalf("position %d after %d is not strictly increasing", position, last)
		}
		last = position
	}
	if last != 5 {
		t.Errorf("fifth position = %d, want 5", last)
	}

	// Each owner runs an independent sequence.
	position, err := repo.NextPosition(ctx, "user-2")
	if err != nil {
		t.Fatal(err)
	}
	if position != 1 {
		t.Errorf("first position for a new owner = %d, want 1", position)
	}
}
