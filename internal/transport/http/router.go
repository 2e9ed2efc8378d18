package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"picboard/internal/handler"
	"picboard/internal/httputil"
	authmw "picboard/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	PostHandler    *handler.PostHandler
	LikeHandler    *handler.LikeHandler
	CommentHandler *handler.CommentHandler

	Verifier authmw.TokenVerifier

	// Limiter guards register and login. Nil disables rate limiting.
	Limiter        authmw.Limiter
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// TrustProxy installs middleware.RealIP so rate limiting keys on the
	// forwarded client address.
	TrustProxy bool

	// Uploads serves stored images under /uploads/. Nil when images live elsewhere.
	Uploads http.Handler
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(authmw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	if cfg.Uploads != nil {
		r.Handle("/uploads/*", http.StripPrefix("/uploads", cfg.Uploads))
	}

	requireAuth := authmw.AuthMiddleware(cfg.Verifier)
	rateLimit := func(resource string) func(http.Handler) http.Handler {
		return authmw.RateLimit(cfg.Limiter, resource, cfg.AuthRateLimit, cfg.AuthRateWindow)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(rateLimit("register")).Post("/register", cfg.AuthHandler.Register)
			r.With(rateLimit("login")).Post("/login", cfg.AuthHandler.Login)
			r.With(requireAuth).Get("/profile", cfg.AuthHandler.Profile)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", cfg.PostHandler.Create)
			r.Get("/", cfg.PostHandler.List)
			r.Get("/{postId}", cfg.PostHandler.GetByID)
			r.Delete("/{postId}", cfg.PostHandler.Delete)
		})

		r.Route("/likes", func(r chi.Router) {
			// Public
			r.Get("/post/{postId}", cfg.LikeHandler.ListByPost)

			r.With(requireAuth).Post("/{postId}", cfg.LikeHandler.Like)
			r.With(requireAuth).Delete("/{postId}", cfg.LikeHandler.Unlike)
		})

		r.Route("/comments", func(r chi.Router) {
			// Public
			r.Get("/post/{postId}", cfg.CommentHandler.ListByPost)

			r.With(requireAuth).Post("/{id}", cfg.CommentHandler.Create)
			r.With(requireAuth).Put("/{id}", cfg.CommentHandler.Update)
			r.With(requireAuth).Delete("/{id}", cfg.CommentHandler.Delete)
		})
	})

	return r
}
