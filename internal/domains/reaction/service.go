package reaction

import (
	"context"

	"github.com/google/uuid"

	"wishlist-backend/internal/shared"
)

type Service interface {
	React(ctx context.Context, itemID uuid.UUID, req ReactRequest, clientIP, userAgent string) (*ReactResponse, error)
	Recount(ctx context.Context, p shared.RecountReactionsPayload) (int64, error)
}
