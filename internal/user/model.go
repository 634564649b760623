package user

import "time"

type User struct {
	ID           string    `json:"id"`
	RoleID       string    `json:"role_id"`
	RoleName     string    `json:"role_name,omitempty"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUserRequest payload of creation.
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	RoleID   string `json:"role_id"`
	Phone    string `json:"phone"`
	Email    string `json:"email" example:"user@shop.ru"`
	Password string `json:"password"`
}

// UpdateUserRequest payload of partial update.
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	RoleID   string `json:"role_id"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
