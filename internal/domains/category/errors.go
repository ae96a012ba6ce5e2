package category

import "errors"

// ErrCategoryNotFound: GET/PATCH/DELETE với id không thuộc wishlist => 404.
// Category của wishlist khác cũng trả về not found, không phải 403.
var ErrCategoryNotFound = errors.New("category not found")

// ErrInvalidCategoryID: path param không phải UUID => 400.
var ErrInvalidCategoryID = errors.New("invalid category id")
