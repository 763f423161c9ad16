package service

import (
	"context"

	"eshop/internal/domain"
	"eshop/internal/dto"

	"github.com/google/uuid"
)

// RegisterOutcome is the client-facing result of a registration attempt.
// The transport layer maps each outcome to a status code and message.
type RegisterOutcome int

const (
	RegisterFailed        RegisterOutcome = iota // unexpected persistence error
	RegisterCreated                              // fresh account, activation email sent
	RegisterResent                               // inactive account, credential replaced, email re-sent
	RegisterAlreadyActive                        // active account, nothing mutated
	RegisterEmailFailed                          // account persisted but the email did not go out
)

type UserService interface {
	// Register runs the create-or-reactivate state machine keyed by email.
	Register(ctx context.Context, r dto.RegisterRequest) (RegisterOutcome, error)
	// Activate consumes an activation token and flips the account active.
	Activate(ctx context.Context, token string) error
	Login(ctx context.Context, r dto.LoginRequest) (*dto.UserWithToken, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, r dto.UpdateProfileRequest) (*dto.UserWithToken, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
}
