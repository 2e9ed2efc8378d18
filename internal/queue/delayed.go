package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DelayedImages is the sorted set holding retry events until they are due.
// Scores are due times in unix milliseconds.
const DelayedImages = "picboard:delayed:images"

// Scheduler holds events back until a due time and then moves them onto the stream.
type Scheduler interface {
	// Schedule stores event until due.
	Schedule(ctx context.Context, event ImageEvent, due time.Time) error

	// PromoteDue publishes up to limit events that are due at now and
	// returns how many were moved.
	PromoteDue(ctx context.Context, now time.Time, limit int64) (int, error)
}

// RedisScheduler implements Scheduler with a sorted set in front of the image stream.
type RedisScheduler struct {
	client    *redis.Client
	publisher Publisher
}

// NewScheduler creates a Scheduler that promotes due events to StreamImages.
func NewScheduler(client *redis.Client) *RedisScheduler {
	return &RedisScheduler{client: client, publisher: NewPublisher(client)}
}

// Schedule adds the event to the delayed set with its due time as score.
func (s *RedisScheduler) Schedule(ctx context.Context, event ImageEvent, due time.Time) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = s.client.ZAdd(ctx, DelayedImages, redis.Z{
		Score:  float64(due.UnixMilli()),
		Member: string(data),
	}).Err()
	if err != nil {
		log.Printf("[Scheduler] Schedule FAILED: keys=%d attempt=%d err=%v", len(event.Keys), event.Attempt, err)
		return fmt.Errorf("zadd delayed event: %w", err)
	}

	log.Printf("[Scheduler] Schedule OK: keys=%d attempt=%d due=%s", len(event.Keys), event.Attempt, due.Format(time.RFC3339))
	return nil
}

// PromoteDue moves due events from the delayed set to the stream. An event is
// claimed by removing it from the set, so concurrent promoters never publish
// it twice.
func (s *RedisScheduler) PromoteDue(ctx context.Context, now time.Time, limit int64) (int, error) {
	members, err := s.client.ZRangeByScore(ctx, DelayedImages, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.UnixMilli(), 10),
		Count: limit,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("zrangebyscore delayed events: %w", err)
	}

	promoted := 0
	for _, member := range members {
		removed, err := s.client.ZRem(ctx, DelayedImages, member).Result()
		if err != nil {
			return promoted, fmt.Errorf("zrem delayed event: %w", err)
		}
		if removed == 0 {
			continue
		}

		var event ImageEvent
		if err := json.Unmarshal([]byte(member), &event); err != nil {
			log.Printf("[Scheduler] Dropping malformed delayed event: err=%v", err)
			continue
		}

		if _, err := s.publisher.Publish(ctx, StreamImages, event); err != nil {
			// Put it back so the next tick tries again.
			s.client.ZAdd(ctx, DelayedImages, redis.Z{Score: float64(now.UnixMilli()), Member: member})
			return promoted, err
		}
		promoted++
	}
	return promoted, nil
}
