package service

import (
	"context"
	"testing"

	"fitnessfreaks/api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreatePostAndResolveAuthor(t *testing.T) {
	ctx := context.Background()
	author := domain.User{ID: primitive.NewObjectID(), Name: "Sam"}
	svc := NewPostService(newFakePostRepo(), newFakeUserRepo(author))

	view, err := svc.CreatePost(ctx, author.ID, CreatePostInput{
		Title:   "First pull-up!",
		Content: "Six months of negatives finally paid off.",
	})
	require.NoError(t, err)
	assert.Equal(t, "First pull-up!", view.Post.Title)
	assert.Equal(t, "Sam", view.AuthorNames[author.ID])
	assert.NotNil(t, view.Post.Tags)
	assert.Empty(t, view.Post.Likes)
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	author := domain.User{ID: primitive.NewObjectID(), Name: "Sam"}
	commenter := domain.User{ID: primitive.NewObjectID(), Name: "Riley"}

	post := domain.Post{ID: primitive.NewObjectID(), Title: "Leg day", Author: author.ID}
	svc := NewPostService(newFakePostRepo(post), newFakeUserRepo(author, commenter))

	view, err := svc.AddComment(ctx, commenter.ID, post.ID, "Nice work!")
	require.NoError(t, err)
	require.Len(t, view.Post.Comments, 1)

	comment := view.Post.Comments[0]
	assert.Equal(t, "Nice work!", comment.Content)
	assert.Equal(t, commenter.ID, comment.Author)
	assert.False(t, comment.ID.IsZero())
	assert.Equal(t, "Riley", view.AuthorNames[comment.Author])

	_, err = svc.AddComment(ctx, commenter.ID, primitive.NewObjectID(), "lost")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()
	author := domain.User{ID: primitive.NewObjectID(), Name: "Sam"}
	liker := primitive.NewObjectID()

	post := domain.Post{ID: primitive.NewObjectID(), Title: "PR day", Author: author.ID}
	svc := NewPostService(newFakePostRepo(post), newFakeUserRepo(author))

	view, err := svc.ToggleLike(ctx, liker, post.ID)
	require.NoError(t, err)
	assert.Contains(t, view.Post.Likes, liker)

	// A second toggle removes the like again.
	view, err = svc.ToggleLike(ctx, liker, post.ID)
	require.NoError(t, err)
	assert.NotContains(t, view.Post.Likes, liker)

	_, err = svc.ToggleLike(ctx, liker, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListPostsResolvesCommentAuthors(t *testing.T) {
	ctx := context.Background()
	author := domain.User{ID: primitive.NewObjectID(), Name: "Sam"}
	commenter := domain.User{ID: primitive.NewObjectID(), Name: "Riley"}
	deleted := primitive.NewObjectID() // Account removed since commenting.

	post := domain.Post{
		ID:     primitive.NewObjectID(),
		Title:  "Check-in",
		Author: author.ID,
		Comments: []domain.Comment{
			{ID: primitive.NewObjectID(), Content: "Keep going", Author: commenter.ID},
			{ID: primitive.NewObjectID(), Content: "orphaned", Author: deleted},
		},
	}
	svc := NewPostService(newFakePostRepo(post), newFakeUserRepo(author, commenter))

	views, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)

	names := views[0].AuthorNames
	assert.Equal(t, "Sam", names[author.ID])
	assert.Equal(t, "Riley", names[commenter.ID])
	_, found := names[deleted]
	assert.False(t, found, "deleted users stay absent from the name map")
}
