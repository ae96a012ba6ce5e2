package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User là tài khoản chủ wishlist. Khách xem trang public không cần tài khoản.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserDTO is the public view of a user.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

// NormalizeEmail - email so sánh không phân biệt hoa thường.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
