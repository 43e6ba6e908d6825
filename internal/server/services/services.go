// Package services contains server-side business logic: authentication,
// account management and ownership-scoped quiz management.
package services

import (
	"context"

	"github.com/dmitrijs2005/triviaquiz/internal/server/auth"
	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
)

// PasswordHasher hashes and verifies stored credentials.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) bool
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(identity *models.Identity) (auth.AuthToken, error)
	Verify(token string) (*auth.TokenPayload, error)
}
