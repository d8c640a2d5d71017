package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := client.Database(os.Getenv("MONGO_DB"))
	usersCollection := db.Collection(utils.GetEnvAsString("USERS_COLLECTION", "users"))
	todosCollection := db.Collection(utils.GetEnvAsString("TODOS_COLLECTION", "todos"))

	userIndexes := []mongo.IndexModel{
		// Username and email are globally unique
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("unique_username").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("unique_email").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_index").
				SetUnique(true),
		},
	}

	todoIndexes := []mongo.IndexModel{
		// Matches the stats predicates: owner + completion + due date
		{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "completed", Value: 1},
				{Key: "due_date", Value: 1},
			},
			Options: options.Index().
				SetName("user_completed_due"),
		},
		{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "category", Value: 1},
			},
			Options: options.Index().
				SetName("user_category"),
		},
		{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "priority", Value: 1},
			},
			Options: options.Index().
				SetName("user_priority"),
		},
		// Manual ordering
		{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "position", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_position_order"),
		},
	}

	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	if _, err := todosCollection.Indexes().CreateMany(ctx, todoIndexes); err != nil {
		return fmt.Errorf("failed to create todos indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
