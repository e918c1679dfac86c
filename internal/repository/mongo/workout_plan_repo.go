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

const workoutPlanCollectionName = "workout_plans"

// mongoWorkoutPlanRepository implements repository.WorkoutPlanRepository
type mongoWorkoutPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutPlanRepository creates a new WorkoutPlan repository.
func NewMongoWorkoutPlanRepository(db *mongo.Database) repository.WorkoutPlanRepository {
	return &mongoWorkoutPlanRepository{
		collection: db.Collection(workoutPlanCollectionName),
	}
}

// Create inserts a new workout plan.
func (r *mongoWorkoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.Title == "" || plan.CreatedBy == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan requires title and createdBy")
	}

	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	if plan.Exercises == nil {
		plan.Exercises = []domain.PlanExercise{}
	}

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout plan by its ID.
func (r *mongoWorkoutPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// List retrieves plans visible to the filter's viewer, newest first.
func (r *mongoWorkoutPlanRepository) List(ctx context.Context, filter repository.PlanFilter) ([]domain.WorkoutPlan, error) {
	var plans []domain.WorkoutPlan

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, PlanListFilter(filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	if plans == nil {
		plans = []domain.WorkoutPlan{}
	}
	return plans, nil
}

// Update overwrites the mutable fields of an existing plan. Ownership is
// verified at the service layer before this is called; CreatedBy and
// CreatedAt are never touched here.
func (r *mongoWorkoutPlanRepository) Update(ctx context.Context, plan *domain.WorkoutPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("plan ID is required for update")
	}

	filter := bson.M{"_id": plan.ID}
	updateDoc := bson.M{
		"$set": bson.M{
			"title":       plan.Title,
			"description": plan.Description,
			"category":    plan.Category,
			"difficulty":  plan.Difficulty,
			"duration":    plan.Duration,
			"exercises":   plan.Exercises,
			"isPublic":    plan.IsPublic,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a plan by ID.
func (r *mongoWorkoutPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutPlanIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Listing is always visibility-filtered and sorted newest first.
			Keys:    bson.D{{Key: "isPublic", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is non-fatal; queries still work unindexed.
		log.Printf("WARN: failed to create indexes for %s: %v", collection.Name(), err)
	}
}
