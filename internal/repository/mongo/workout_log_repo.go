package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"fitnessfreaks/api/internal/domain"
	"fitnessfreaks/api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutLogCollectionName = "workout_logs"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a new WorkoutLog repository.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

// Create inserts a new workout log.
func (r *mongoWorkoutLogRepository) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	if log.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout log requires userId")
	}

	log.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now
	if log.Date.IsZero() {
		log.Date = now
	}
	if log.Exercises == nil {
		log.Exercises = []domain.ExerciseLog{}
	}

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted log ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout log by its ID.
func (r *mongoWorkoutLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error) {
	var log domain.WorkoutLog
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// GetByUserID retrieves all logs owned by the user, most recent date first.
func (r *mongoWorkoutLogRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	var logs []domain.WorkoutLog
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	if logs == nil {
		logs = []domain.WorkoutLog{}
	}
	return logs, nil
}

// Delete removes a workout log by ID. Ownership is verified at the service
// layer on the fetched record before this is called.
func (r *mongoWorkoutLogRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByUser counts all logs owned by the user.
func (r *mongoWorkoutLogRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID})
}

// TotalDurationByUser sums the duration field across all of the user's logs.
// Returns 0 when the user has no logs.
func (r *mongoWorkoutLogRepository) TotalDurationByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalDuration": bson.M{"$sum": "$duration"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalDuration int64 `bson:"totalDuration"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].TotalDuration, nil
}

// DailyCountsSince groups the user's logs from the given instant onwards by
// calendar day and counts them, ordered by date ascending. Days without logs
// do not appear.
func (r *mongoWorkoutLogRepository) DailyCountsSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.DailyWorkoutCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"userId": userID,
			"date":   bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$date"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
		{{Key: "$project", Value: bson.M{
			"date":  "$_id",
			"count": 1,
			"_id":   0,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []domain.DailyWorkoutCount
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []domain.DailyWorkoutCount{}
	}
	return counts, nil
}

// MostUsedMuscleGroup joins each logged exercise entry to the exercise
// library and returns the muscle group with the highest entry count. Returns
// an empty string when no entry can be joined.
func (r *mongoWorkoutLogRepository) MostUsedMuscleGroup(ctx context.Context, userID primitive.ObjectID) (string, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$unwind", Value: "$exercises"}},
		{{Key: "$match", Value: bson.M{"exercises.exerciseId": bson.M{"$ne": nil}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         exerciseCollectionName,
			"localField":   "exercises.exerciseId",
			"foreignField": "_id",
			"as":           "exercise",
		}}},
		{{Key: "$unwind", Value: "$exercise"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$exercise.muscleGroup",
			"count": bson.M{"$sum": 1},
		}}},
		// Ties resolve to the alphabetically first group.
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: 1}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return "", err
	}
	defer cursor.Close(ctx)

	var results []struct {
		MuscleGroup string `bson:"_id"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0].MuscleGroup, nil
}

// EnsureWorkoutLogIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Every read path is scoped to the owner, usually by date.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is non-fatal; queries still work unindexed.
		log.Printf("WARN: failed to create indexes for %s: %v", collection.Name(), err)
	}
}
