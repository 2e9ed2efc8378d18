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

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Like handles POST /likes/{postId}
func (h *LikeHandler) Like(w http.ResponseWriter, r *http.Request) {
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

	like, err := h.likeService.Like(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyLiked):
			httputil.WriteBadRequestWithCode(w, model.CodeAlreadyLiked, "Post already liked")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		default:
			log.Printf("[ERROR] Like handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to like post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toLikeResponse(*like))
}

// ListByPost handles GET /likes/post/{postId}
// Public: returns every like of the post with the liker's name.
func (h *LikeHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := httputil.IDParam(r, "postId")
	if !ok {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	likes, err := h.likeService.ListByPost(r.Context(), postID)
	if err != nil {
		log.Printf("[ERROR] List likes handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to get likes")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toLikeWithUserResponses(likes))
}

// Unlike handles DELETE /likes/{postId}
// Removing a like that does not exist is a server error, not a 404.
func (h *LikeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
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

	if err := h.likeService.Unlike(r.Context(), userID, postID); err != nil {
		log.Printf("[ERROR] Unlike handler: user=%d post=%d err=%v", userID, postID, err)
		httputil.WriteInternalError(w, "Failed to remove like")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Like removed successfully")
}
