package category

import (
	"context"

	"github.com/google/uuid"
)

// CategoryService - business logic. Mọi method nhận userID để kiểm tra
// quyền sở hữu wishlist.
type CategoryService interface {
	Create(ctx context.Context, userID, wishlistID uuid.UUID, req CreateCategoryReq) (*Category, error)
	List(ctx context.Context, userID, wishlistID uuid.UUID) ([]Category, error)
	Update(ctx context.Context, userID, categoryID uuid.UUID, req UpdateCategoryReq) (*Category, error)
	Delete(ctx context.Context, userID, categoryID uuid.UUID) (*DeleteCategoryResp, error)
}
