package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/triviaquiz/internal/common"
	"github.com/dmitrijs2005/triviaquiz/internal/logging"
	"github.com/dmitrijs2005/triviaquiz/internal/server/auth"
	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
	"github.com/dmitrijs2005/triviaquiz/internal/server/repositories/repomanager"
)

// AuthService resolves credentials and bearer tokens to identities.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      logging.Logger
	dummyHash   string
}

// NewAuthService constructs an AuthService. A dummy hash is derived once so
// that logins for unknown emails cost the same as real ones.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher, t TokenIssuer, l logging.Logger) (*AuthService, error) {
	dummy, err := h.Hash(context.Background(), "dummy-password")
	if err != nil {
		return nil, fmt.Errorf("derive dummy hash: %w", err)
	}

	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      h,
		tokens:      t,
		logger:      l,
		dummyHash:   dummy,
	}, nil
}

// Authenticate checks email and password. Unknown email and wrong password
// both return common.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(ctx, password, s.dummyHash)
			s.logger.Debug(ctx, "authentication failed", "reason", "unknown email")
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Debug(ctx, "authentication failed", "reason", "password mismatch", "user_id", user.ID)
		return nil, common.ErrInvalidCredentials
	}

	return user.Identity(), nil
}

// IssueToken signs an access token for identity.
func (s *AuthService) IssueToken(identity *models.Identity) (auth.AuthToken, error) {
	return s.tokens.Issue(identity)
}

// ResolveToken verifies token and then confirms the subject still exists.
// A valid token for a deleted user yields common.ErrUnknownIdentity.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.Identity, error) {
	payload, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "reason", err.Error())
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).FindByID(ctx, payload.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Debug(ctx, "token subject no longer exists", "user_id", payload.Subject, "issuer", payload.Issuer)
			return nil, common.ErrUnknownIdentity
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}

	return user.Identity(), nil
}

// Me returns the authenticated user's account.
func (s *AuthService) Me(ctx context.Context, identity *models.Identity) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownIdentity
		}
		return nil, fmt.Errorf("me: %w", err)
	}
	return user, nil
}
