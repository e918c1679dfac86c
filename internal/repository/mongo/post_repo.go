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

const postCollectionName = "posts"

// mongoPostRepository implements repository.PostRepository
type mongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new Post repository backed by MongoDB.
func NewMongoPostRepository(db *mongo.Database) repository.PostRepository {
	return &mongoPostRepository{
		collection: db.Collection(postCollectionName),
	}
}

// Create inserts a new post.
func (r *mongoPostRepository) Create(ctx context.Context, post *domain.Post) (primitive.ObjectID, error) {
	if post.Title == "" || post.Author == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("post requires title and author")
	}

	post.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.Comments == nil {
		post.Comments = []domain.Comment{}
	}
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted post ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single post by its ID.
func (r *mongoPostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var post domain.Post
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetAll retrieves every post, newest first.
func (r *mongoPostRepository) GetAll(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

// AddComment appends a comment to the post's comment sequence as a single
// atomic $push.
func (r *mongoPostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment *domain.Comment) error {
	if comment.ID == primitive.NilObjectID {
		comment.ID = primitive.NewObjectID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	filter := bson.M{"_id": postID}
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ToggleLike flips the user's membership in the post's like set. Each branch
// is one conditional update, so two concurrent toggles from different users
// cannot lose each other's writes.
func (r *mongoPostRepository) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	now := time.Now().UTC()

	// Unlike: only matches when the user is currently in the set.
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID, "likes": userID},
		bson.M{
			"$pull": bson.M{"likes": userID},
			"$set":  bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// Like: $addToSet keeps the set property even if the first update raced
	// with another toggle from the same user.
	result, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{
			"$addToSet": bson.M{"likes": userID},
			"$set":      bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePostIndexes creates necessary indexes. Call during startup.
func EnsurePostIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Feed listing sorts by creation time.
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "author", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is non-fatal; queries still work unindexed.
		log.Printf("WARN: failed to create indexes for %s: %v", collection.Name(), err)
	}
}
