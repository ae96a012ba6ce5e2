package reaction

import "errors"

var (
	// ErrItemNotFound covers both missing items and items on private wishlists.
	ErrItemNotFound = errors.New("item not found")
	ErrInvalidKind  = errors.New("reaction type must be heart or thumbs_up")
)
