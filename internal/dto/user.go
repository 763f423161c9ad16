package dto

import (
	"time"

	"eshop/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	IsAdmin  bool   `json:"isAdmin"`

	JoinedAt time.Time `json:"joinedAt"`
}

// UserWithToken mirrors UserResponse plus a fresh access token, returned on
// login and profile updates.
type UserWithToken struct {
	UserResponse
	Token string `json:"token"`
}

func FromUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Name:     u.Name,
		IsActive: u.IsActive,
		IsAdmin:  u.IsStaff,
		JoinedAt: u.CreatedAt,
	}
}

func FromUserWithToken(u *domain.User, token string) UserWithToken {
	return UserWithToken{UserResponse: FromUser(u), Token: token}
}
