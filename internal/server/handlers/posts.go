package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/seguridad-cloud-uniandes/CloudSecurity/internal/server/service"
	"github.com/seguridad-cloud-uniandes/CloudSecurity/pkg/api"
)

// PostsHandler handles post CRUD requests
type PostsHandler struct {
	logger *slog.Logger
	posts  *service.PostService
}

// NewPostsHandler creates a new handler for post endpoints
func NewPostsHandler(logger *slog.Logger, posts *service.PostService) *PostsHandler {
	return &PostsHandler{
		logger: logger,
		posts:  posts,
	}
}

// Create handles POST /api/v1/posts (auth required; author = token subject)
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode post request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.posts.CreatePost(ctx, userID, req.Title, req.Content, req.IsPublished, req.TagIDs)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	resp := toPostResponse(service.PostWithRating{Post: post})
	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// List handles GET /api/v1/posts?page=&size=&tag_name=
// Works with or without authentication; authenticated callers also get
// their own rating per post.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 10)
	if size > 100 {
		size = 100
	}
	tagName := r.URL.Query().Get("tag_name")

	userID, _ := UserIDFromContext(ctx)

	result, err := h.posts.ListPosts(ctx, page, size, tagName, userID)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	resp := api.PostListResponse{
		Total: result.Total,
		Page:  result.Page,
		Size:  result.Size,
		Posts: make([]api.PostResponse, 0, len(result.Posts)),
	}
	for _, item := range result.Posts {
		resp.Posts = append(resp.Posts, toPostResponse(item))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Get handles GET /api/v1/posts/{id}
func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, _ := UserIDFromContext(ctx)

	result, err := h.posts.GetPost(ctx, r.PathValue("id"), userID)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, toPostResponse(*result), http.StatusOK)
}

// Update handles PUT /api/v1/posts/{id} (author only)
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode post request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.posts.UpdatePost(ctx, r.PathValue("id"), userID, req.Title, req.Content, req.IsPublished, req.TagIDs)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, toPostResponse(service.PostWithRating{Post: post}), http.StatusOK)
}

// Publish handles PATCH /api/v1/posts/{id}/publish?publish= (author only)
func (h *PostsHandler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	publish, err := strconv.ParseBool(r.URL.Query().Get("publish"))
	if err != nil {
		sendError(h.logger, w, "publish query parameter must be true or false", http.StatusBadRequest)
		return
	}

	post, err := h.posts.SetPublished(ctx, r.PathValue("id"), userID, publish)
	if err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, toPostResponse(service.PostWithRating{Post: post}), http.StatusOK)
}

// Delete handles DELETE /api/v1/posts/{id} (author only)
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.posts.DeletePost(ctx, r.PathValue("id"), userID); err != nil {
		sendServiceError(ctx, h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Post deleted successfully"}, http.StatusOK)
}

func toPostResponse(item service.PostWithRating) api.PostResponse {
	post := item.Post

	resp := api.PostResponse{
		ID:            post.ID,
		Title:         post.Title,
		Content:       post.Content,
		IsPublished:   post.IsPublished,
		AuthorID:      post.AuthorID,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
		Tags:          make([]api.TagResponse, 0, len(post.Tags)),
		AverageRating: item.AverageRating,
		UserRating:    item.UserRating,
	}

	for _, tag := range post.Tags {
		resp.Tags = append(resp.Tags, api.TagResponse{ID: tag.ID, Name: tag.Name})
	}

	return resp
}

// queryInt parses an integer query parameter with a fallback default
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return def
	}
	return value
}
