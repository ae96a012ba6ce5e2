package item

import (
	"context"

	"github.com/google/uuid"

	"wishlist-backend/internal/shared"
)

// Service - business logic cho items. userID là owner đang đăng nhập.
type Service interface {
	List(ctx context.Context, userID, wishlistID uuid.UUID, q ListQuery) (*ListResponse, error)
	Create(ctx context.Context, userID, wishlistID uuid.UUID, req CreateItemRequest) (*Item, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*Item, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	UploadImage(ctx context.Context, userID, wishlistID uuid.UUID, filename string, data []byte) (*UploadResponse, error)

	// ProcessImage runs in the worker: builds and stores the thumbnail.
	ProcessImage(ctx context.Context, payload shared.ProcessItemImagePayload) error
}
