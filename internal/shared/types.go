package shared

import "github.com/google/uuid"

// Task types handled by cmd/worker.
const (
	TypeProcessItemImage = "item:process_image"
	TypeDeleteObjects    = "storage:delete_objects"
	TypeRecountReactions = "reaction:recount"
)

// Queue names with their asynq priority weights.
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

var QueuePriorities = map[string]int{
	QueueHigh:    6,
	QueueDefault: 3,
	QueueLow:     1,
}

// ProcessItemImagePayload asks the worker to build a thumbnail for an item image.
type ProcessItemImagePayload struct {
	ItemID     uuid.UUID `json:"item_id"`
	WishlistID uuid.UUID `json:"wishlist_id"`
	ObjectKey  string    `json:"object_key"`
}

// DeleteObjectsPayload removes objects by key, or everything under Prefix.
type DeleteObjectsPayload struct {
	Bucket string   `json:"bucket"`
	Keys   []string `json:"keys,omitempty"`
	Prefix string   `json:"prefix,omitempty"`
}

// RecountReactionsPayload limits the recount to one wishlist; zero means all.
type RecountReactionsPayload struct {
	WishlistID uuid.UUID `json:"wishlist_id,omitempty"`
}
