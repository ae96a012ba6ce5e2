package wishlist

import "errors"

var (
	ErrWishlistNotFound = errors.New("wishlist not found")
	ErrForbidden        = errors.New("you do not own this wishlist")
	ErrSlugTaken        = errors.New("wishlist slug already exists")
	ErrInvalidLogo      = errors.New("invalid logo image")
	ErrExportFailed     = errors.New("failed to export wishlist")
)
