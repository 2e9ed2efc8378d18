package handler

import (
	"errors"
	"log"
	"net/http"

	"picboard/internal/httputil"
	"picboard/internal/model"
	"picboard/internal/service"
	"picboard/internal/transport/http/middleware"
)

const (
	// maxPostBody leaves room for one image over the limit so the count check
	// can report it, plus form overhead.
	maxPostBody       = (model.MaxPostImages+1)*model.MaxImageSize + 1<<20
	multipartMemLimit = 32 << 20
)

type PostHandler struct {
	postService  *service.PostService
	mediaService *service.MediaService
}

func NewPostHandler(postService *service.PostService, mediaService *service.MediaService) *PostHandler {
	return &PostHandler{
		postService:  postService,
		mediaService: mediaService,
	}
}

// Create handles POST /posts
// Multipart form: "content" text and up to five "images" files.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPostBody)
	if err := r.ParseMultipartForm(multipartMemLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrNotMultipart):
			httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
		case errors.As(err, &maxBytesErr):
			httputil.WriteBadRequestWithCode(w, model.CodeFileTooLarge, "File too large. Max size is 5MB.")
		default:
			httputil.WriteBadRequest(w, "Invalid form data")
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	content := r.FormValue(model.PostContentField)
	files := r.MultipartForm.File[model.PostImagesField]

	post, err := h.postService.Create(r.Context(), userID, content, files)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostContentRequired):
			httputil.WriteBadRequest(w, "Content is required")
		case errors.Is(err, model.ErrTooManyFiles):
			httputil.WriteBadRequestWithCode(w, model.CodeTooManyFiles, "Too many files. Max is 5 images per post.")
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequestWithCode(w, model.CodeFileTooLarge, "File too large. Max size is 5MB.")
		case errors.Is(err, model.ErrImageTooLarge):
			httputil.WriteBadRequestWithCode(w, model.CodeImageTooLarge, "Image too large. Max is 50 megapixels.")
		case errors.Is(err, model.ErrInvalidFileType):
			httputil.WriteBadRequestWithCode(w, model.CodeInvalidFileType, "Invalid file type. Only JPEG, PNG, GIF and WebP images are allowed.")
		default:
			log.Printf("[ERROR] Create post handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, "Failed to create post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, model.CreatePostResponse{
		Message: "Post created successfully",
		PostID:  post.ID,
	})
}

// List handles GET /posts
// Returns every post, newest first, with the caller's like status.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	posts, err := h.postService.List(r.Context(), userID)
	if err != nil {
		log.Printf("[ERROR] List posts handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to get posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toPostResponses(posts, h.mediaService.URL))
}

// GetByID handles GET /posts/{postId}
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := httputil.IDParam(r, "postId")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	post, err := h.postService.Get(r.Context(), postID, userID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Get post handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to get post")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toPostDetailResponse(*post, h.mediaService.URL))
}

// Delete handles DELETE /posts/{postId}
// Only the owner can delete; anyone else gets 404.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, ok := httputil.IDParam(r, "postId")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	err := h.postService.Delete(r.Context(), postID, userID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Delete post handler: user=%d post=%d err=%v", userID, postID, err)
		httputil.WriteInternalError(w, "Failed to delete post")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Post deleted successfully")
}
