package api

import (
	"errors"
	"net/http"
	"time"

	"fitnessfreaks/api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler holds the community post service dependency.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// --- DTOs ---

// CreatePostRequest defines the expected JSON for creating a post.
type CreatePostRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

// AddCommentRequest defines the expected JSON for commenting on a post.
type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse is one comment with its author resolved.
type CommentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    AuthorRef `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostResponse is the DTO for returning a community post.
type PostResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Tags      []string          `json:"tags"`
	Author    AuthorRef         `json:"author"`
	Comments  []CommentResponse `json:"comments"`
	Likes     []string          `json:"likes"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// MapPostViewToResponse converts a service.PostView to PostResponse.
// Authors deleted since posting keep their ID but get an empty name.
func MapPostViewToResponse(view *service.PostView) PostResponse {
	if view == nil {
		return PostResponse{}
	}
	post := view.Post

	comments := make([]CommentResponse, len(post.Comments))
	for i, comment := range post.Comments {
		comments[i] = CommentResponse{
			ID:        comment.ID.Hex(),
			Content:   comment.Content,
			Author:    authorRefOf(comment.Author, view.AuthorNames),
			CreatedAt: comment.CreatedAt,
		}
	}

	likes := make([]string, len(post.Likes))
	for i, id := range post.Likes {
		likes[i] = id.Hex()
	}

	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}

	return PostResponse{
		ID:        post.ID.Hex(),
		Title:     post.Title,
		Content:   post.Content,
		Tags:      tags,
		Author:    authorRefOf(post.Author, view.AuthorNames),
		Comments:  comments,
		Likes:     likes,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func authorRefOf(id primitive.ObjectID, names map[primitive.ObjectID]string) AuthorRef {
	return AuthorRef{ID: id.Hex(), Name: names[id]}
}

// --- Handler Methods ---

// ListPosts godoc
// @Summary List community posts
// @Description Returns all posts, newest first, with author names resolved.
// @Tags Posts
// @Produce json
// @Success 200 {array} PostResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	views, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	responses := make([]PostResponse, len(views))
	for i := range views {
		responses[i] = MapPostViewToResponse(&views[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetPostByID godoc
// @Summary Get one community post
// @Tags Posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 404 {object} gin.H "Post not found"
// @Router /posts/{id} [get]
func (h *PostHandler) GetPostByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Post not found")
		return
	}

	view, err := h.postService.GetPostByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapPostViewToResponse(view))
}

// CreatePost godoc
// @Summary Create a community post
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body CreatePostRequest true "Post details"
// @Success 201 {object} PostResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	callerID, err := callerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	view, err := h.postService.CreatePost(c.Request.Context(), callerID, service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, MapPostViewToResponse(view))
}

// AddComment godoc
// @Summary Comment on a post
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param comment body AddCommentRequest true "Comment content"
// @Success 200 {object} PostResponse
// @Failure 404 {object} gin.H "Post not found"
// @Router /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	callerID, err := callerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Post not found")
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	view, err := h.postService.AddComment(c.Request.Context(), callerID, postID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapPostViewToResponse(view))
}

// ToggleLike godoc
// @Summary Like or unlike a post
// @Description Flips the caller's like. Repeating the call restores the previous state.
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 404 {object} gin.H "Post not found"
// @Router /posts/{id}/like [put]
func (h *PostHandler) ToggleLike(c *gin.Context) {
	callerID, err := callerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Post not found")
		return
	}

	view, err := h.postService.ToggleLike(c.Request.Context(), callerID, postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapPostViewToResponse(view))
}
