package reaction

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Record inserts the interaction and bumps the matching counter in one
	// transaction. A duplicate is not an error: Outcome.Recorded is false.
	// Items that are missing or on a private wishlist return ErrItemNotFound.
	Record(ctx context.Context, in *Interaction) (*Outcome, error)
	// Recount rebuilds heart_count and thumbs_up_count from item_interactions.
	// uuid.Nil means every wishlist. Returns the number of items corrected.
	Recount(ctx context.Context, wishlistID uuid.UUID) (int64, error)
}
