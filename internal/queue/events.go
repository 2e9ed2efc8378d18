package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the image stream
const (
	EventImagesOrphaned = "images_orphaned"
)

// Stream names
const (
	StreamImages = "picboard:stream:images"
)

// Consumer group name for image cleanup workers
const (
	ConsumerGroupImages = "image_cleaners"
)

// ImageEvent is published when stored image files could not be removed right
// away. Workers retry the deletes.
type ImageEvent struct {
	Type      string   `json:"type"`
	Timestamp int64    `json:"timestamp"`
	Keys      []string `json:"keys"`
	Attempt   int      `json:"attempt"`
}

// NewImagesOrphanedEvent creates a first-attempt cleanup event for keys.
func NewImagesOrphanedEvent(keys []string) ImageEvent {
	return ImageEvent{
		Type:      EventImagesOrphaned,
		Timestamp: time.Now().Unix(),
		Keys:      keys,
		Attempt:   1,
	}
}

// Retry returns the event for the next attempt on the keys that still failed.
func (e ImageEvent) Retry(keys []string) ImageEvent {
	return ImageEvent{
		Type:      e.Type,
		Timestamp: time.Now().Unix(),
		Keys:      keys,
		Attempt:   e.Attempt + 1,
	}
}

// ToMap converts the event to a map for Redis XADD.
// Redis Streams store field-value pairs, so we serialize to JSON in a "data" field.
func (e ImageEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseImageEvent parses an ImageEvent from Redis stream message values.
func ParseImageEvent(values map[string]interface{}) (ImageEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return ImageEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event ImageEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return ImageEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
