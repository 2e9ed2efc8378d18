package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"picboard/internal/httputil"
	"picboard/internal/model"
	"picboard/internal/service"
	"picboard/internal/transport/http/middleware"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	_, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameRequired):
			httputil.WriteBadRequest(w, "Username is required")
		case errors.Is(err, model.ErrPasswordRequired):
			httputil.WriteBadRequest(w, "Password is required")
		case errors.Is(err, model.ErrPasswordTooLong):
			httputil.WriteBadRequest(w, "Password too long")
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Username already exists")
		default:
			log.Printf("[ERROR] Register handler: username=%q err=%v", req.Username, err)
			httputil.WriteInternalError(w, "Failed to create user")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusCreated, "User created successfully")
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.Username == "" {
		httputil.WriteBadRequest(w, "Username is required")
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}

	token, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrInvalidPassword):
			httputil.WriteUnauthorized(w, "Invalid password")
		default:
			log.Printf("[ERROR] Login handler: username=%q err=%v", req.Username, err)
			httputil.WriteInternalError(w, "Failed to login")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.LoginResponse{Token: token})
}

// Profile handles GET /auth/profile
// Returns the authenticated user with counts of their posts, likes and comments.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Profile handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to get profile")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}
