package service

import "github.com/google/uuid"

// TokenService mints and verifies the two short-lived HS256 token kinds:
// activation tokens embedded in emailed links and access tokens returned on
// login. Activation tokens stay valid until expiry; there is no revocation.
type TokenService interface {
	IssueActivation(userID uuid.UUID) (string, error)
	VerifyActivation(token string) (uuid.UUID, error)
	IssueAccess(userID uuid.UUID) (string, error)
	VerifyAccess(token string) (uuid.UUID, error)
}
