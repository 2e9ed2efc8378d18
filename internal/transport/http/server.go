package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"picboard/internal/config"
	"picboard/internal/database"
	"picboard/internal/handler"
	"picboard/internal/queue"
	"picboard/internal/redis"
	"picboard/internal/repository"
	"picboard/internal/service"
	"picboard/internal/storage"
	authmw "picboard/internal/transport/http/middleware"
	"picboard/internal/worker"
)

// Run wires every dependency, serves HTTP until SIGINT/SIGTERM and then shuts
// down gracefully.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database and migrate
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	// 3. Image storage
	store, uploads, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	mediaService := service.NewMediaService(store)

	// 4. Optional Redis for rate limiting and background image cleanup
	var limiter authmw.Limiter
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		if err := redisClient.Ping(ctx); err != nil {
			log.Printf("[Server] Redis unavailable, auth rate limiting will fail open: %v", err)
		}
		limiter = redisClient

		publisher := queue.NewPublisher(redisClient.Client)
		scheduler := queue.NewScheduler(redisClient.Client)
		mediaService.SetCleanupQueue(publisher)

		cleanupHandler := worker.NewHandler(store, scheduler, worker.DefaultMaxAttempts, worker.DefaultRetryDelay)
		workers := worker.NewManager(queue.NewConsumer(redisClient.Client), scheduler, cleanupHandler, worker.DefaultManagerConfig())
		if err := workers.Start(ctx); err != nil {
			log.Printf("[Server] Image cleanup workers not started: %v", err)
		} else {
			defer workers.Stop()
		}
	}

	// 5. Repositories, services, handlers
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo, authService)
	postService := service.NewPostService(postRepo, mediaService)
	likeService := service.NewLikeService(likeRepo)
	commentService := service.NewCommentService(commentRepo)

	router := NewRouter(RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userService),
		PostHandler:    handler.NewPostHandler(postService, mediaService),
		LikeHandler:    handler.NewLikeHandler(likeService),
		CommentHandler: handler.NewCommentHandler(commentService),
		Verifier:       authService,
		Limiter:        limiter,
		AuthRateLimit:  cfg.AuthRateLimit,
		AuthRateWindow: cfg.AuthRateWindow,
		TrustProxy:     cfg.TrustProxy,
		Uploads:        uploads,
	})

	// 6. Serve
	srv := &stdhttp.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s (storage=%s)", cfg.ServerPort, cfg.StorageDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, stdhttp.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// newStore returns the configured image store and, for the local driver, the
// handler that serves its files.
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, stdhttp.Handler, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverR2:
		store, err := storage.NewR2Store(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	default:
		store, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Handler(), nil
	}
}
