package item

import "errors"

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrCategoryNotInList = errors.New("category does not belong to this wishlist")
	ErrInvalidImage      = errors.New("invalid image")
	ErrImageTooLarge     = errors.New("image too large")
	ErrImageUploadFailed = errors.New("image upload failed")
)
