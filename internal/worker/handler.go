package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"picboard/internal/metrics"
	"picboard/internal/queue"
)

const (
	// DefaultMaxAttempts is how many times a key is tried before it is abandoned.
	DefaultMaxAttempts = 5

	// DefaultRetryDelay is multiplied by the failed attempt number to space out retries.
	DefaultRetryDelay = 10 * time.Second
)

// ImageDeleter removes a stored image file. storage.Store satisfies it.
type ImageDeleter interface {
	Delete(ctx context.Context, key string) error
}

// RetryScheduler holds a retry event back until it is due. queue.Scheduler satisfies it.
type RetryScheduler interface {
	Schedule(ctx context.Context, event queue.ImageEvent, due time.Time) error
}

// Handler processes image cleanup events from the queue.
type Handler struct {
	deleter     ImageDeleter
	retries     RetryScheduler
	maxAttempts int
	retryDelay  time.Duration
	now         func() time.Time
}

// NewHandler creates a new event handler. Keys that still fail are scheduled
// for another attempt after attempt*retryDelay until maxAttempts is reached.
func NewHandler(deleter ImageDeleter, retries RetryScheduler, maxAttempts int, retryDelay time.Duration) *Handler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if retryDelay < 0 {
		retryDelay = DefaultRetryDelay
	}
	return &Handler{
		deleter:     deleter,
		retries:     retries,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		now:         time.Now,
	}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.ImageEvent) error {
	startTime := time.Now()
	var err error

	switch event.Type {
	case queue.EventImagesOrphaned:
		err = h.handleImagesOrphaned(ctx, event)
	default:
		log.Printf("[Worker] Unknown event type: %s", event.Type)
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	if err != nil {
		log.Printf("[Worker] HandleEvent FAILED: type=%s duration=%v err=%v",
			event.Type, time.Since(startTime), err)
		return err
	}
	return nil
}

// handleImagesOrphaned deletes every key of the event and schedules the ones
// that still fail.
func (h *Handler) handleImagesOrphaned(ctx context.Context, event queue.ImageEvent) error {
	var failed []string
	for _, key := range event.Keys {
		if err := h.deleter.Delete(ctx, key); err != nil {
			log.Printf("[Worker] ImagesOrphaned: delete %s failed (attempt %d): %v", key, event.Attempt, err)
			failed = append(failed, key)
		}
	}

	log.Printf("[Worker] ImagesOrphaned DONE: keys=%d failed=%d attempt=%d",
		len(event.Keys), len(failed), event.Attempt)

	if len(failed) == 0 {
		return nil
	}
	if event.Attempt >= h.maxAttempts {
		metrics.ImagesAbandoned.Add(float64(len(failed)))
		log.Printf("[Worker] ImagesOrphaned: giving up on %v", failed)
		return nil
	}

	due := h.now().Add(time.Duration(event.Attempt) * h.retryDelay)
	if err := h.retries.Schedule(ctx, event.Retry(failed), due); err != nil {
		return fmt.Errorf("schedule retry of %d images: %w", len(failed), err)
	}
	return nil
}
