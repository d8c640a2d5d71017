package repository

import (
	"context"
	"os"

	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CountersRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for per-user position counters
func GetCountersRepo(client *mongo.Client) *CountersRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("COUNTERS_COLLECTION", "todo_counters")
	return &CountersRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// NextPosition atomically increments and returns the position counter
// for one owner, so concurrent creates never hand out the same value.
func (r *CountersRepo) NextPosition(ctx context.Context, userID string) (int64, error) {
	timer := utils.TrackDBOperation("update", "todo_counters")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": userID}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.MongoCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		utils.TrackError("database", "position_counter_failed")
		return 0, err
	}
	return doc.Seq, nil
}
