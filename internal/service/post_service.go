package service

import (
	"context"
	"errors"

	"fitnessfreaks/api/internal/domain"
	"fitnessfreaks/api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPostNotFound = errors.New("post not found")
)

// CreatePostInput carries the fields for a new community post.
type CreatePostInput struct {
	Title   string
	Content string
	Tags    []string
}

// PostView pairs a post with the display names of its author and comment
// authors, keyed by user ID.
type PostView struct {
	Post        domain.Post
	AuthorNames map[primitive.ObjectID]string
}

// PostService manages the community feed: posts, comments and likes.
type PostService interface {
	ListPosts(ctx context.Context) ([]PostView, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*PostView, error)
	CreatePost(ctx context.Context, author primitive.ObjectID, input CreatePostInput) (*PostView, error)
	AddComment(ctx context.Context, caller, postID primitive.ObjectID, content string) (*PostView, error)
	ToggleLike(ctx context.Context, caller, postID primitive.ObjectID) (*PostView, error)
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService creates a new instance of postService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// ListPosts returns every post, newest first, with author names resolved.
func (s *postService) ListPosts(ctx context.Context) ([]PostView, error) {
	posts, err := s.postRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	names, err := s.resolveAuthorNames(ctx, posts)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, len(posts))
	for i, post := range posts {
		views[i] = PostView{Post: post, AuthorNames: names}
	}
	return views, nil
}

// GetPostByID returns one post with author names resolved.
func (s *postService) GetPostByID(ctx context.Context, id primitive.ObjectID) (*PostView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return s.viewOf(ctx, post)
}

// CreatePost persists a new post authored by the caller. Tags default to an
// empty list.
func (s *postService) CreatePost(ctx context.Context, author primitive.ObjectID, input CreatePostInput) (*PostView, error) {
	post := &domain.Post{
		Title:   input.Title,
		Content: input.Content,
		Tags:    input.Tags,
		Author:  author,
	}

	postID, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	created, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.viewOf(ctx, created)
}

// AddComment appends a comment by the caller and returns the refreshed post.
func (s *postService) AddComment(ctx context.Context, caller, postID primitive.ObjectID, content string) (*PostView, error) {
	comment := &domain.Comment{
		Content: content,
		Author:  caller,
	}

	if err := s.postRepo.AddComment(ctx, postID, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return s.viewOf(ctx, post)
}

// ToggleLike flips the caller's like on the post: liked posts are unliked,
// others are liked. Returns the refreshed post.
func (s *postService) ToggleLike(ctx context.Context, caller, postID primitive.ObjectID) (*PostView, error) {
	if err := s.postRepo.ToggleLike(ctx, postID, caller); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return s.viewOf(ctx, post)
}

func (s *postService) viewOf(ctx context.Context, post *domain.Post) (*PostView, error) {
	names, err := s.resolveAuthorNames(ctx, []domain.Post{*post})
	if err != nil {
		return nil, err
	}
	return &PostView{Post: *post, AuthorNames: names}, nil
}

// resolveAuthorNames maps every post author and comment author in the given
// posts to a display name. Deleted users stay absent from the map.
func (s *postService) resolveAuthorNames(ctx context.Context, posts []domain.Post) (map[primitive.ObjectID]string, error) {
	var ids []primitive.ObjectID
	for _, post := range posts {
		ids = append(ids, post.Author)
		for _, comment := range post.Comments {
			ids = append(ids, comment.Author)
		}
	}

	users, err := s.userRepo.GetManyByIDs(ctx, dedupeIDs(ids))
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}
