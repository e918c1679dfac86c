package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a sub-entity embedded in a Post. Comments are append-only.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string             `bson:"content" json:"content"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Post is a community feed entry. Likes is a set of user IDs: each user
// appears at most once.
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	Content   string               `bson:"content" json:"content"`
	Tags      []string             `bson:"tags" json:"tags"`
	Author    primitive.ObjectID   `bson:"author" json:"author"`
	Comments  []Comment            `bson:"comments" json:"comments"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
