package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/triviaquiz/internal/common"
	"github.com/dmitrijs2005/triviaquiz/internal/dbx"
	"github.com/dmitrijs2005/triviaquiz/internal/logging"
	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
	"github.com/dmitrijs2005/triviaquiz/internal/server/permissions"
	"github.com/dmitrijs2005/triviaquiz/internal/server/repositories/repomanager"
)

// UserInput is a validated account payload. Password is plain text and is
// hashed before it reaches storage.
type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UserService provides account operations:
//   - Register: public sign-up
//   - Update / Delete: self-service changes, authorized by the User rule
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	logger      logging.Logger
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher, l logging.Logger) *UserService {
	return &UserService{db: db, repomanager: m, hasher: h, logger: l}
}

// Register creates an account. A taken email yields
// common.ErrEmailAlreadyRegistered.
func (s *UserService) Register(ctx context.Context, in UserInput) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	taken, err := repo.ExistsByEmail(ctx, in.Email, "")
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if taken {
		return nil, common.ErrEmailAlreadyRegistered
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := repo.Create(ctx, &models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Update replaces the account identified by id. The account must exist
// (common.ErrorNotFound) and be the caller's own (common.ErrPermissionDenied).
// The email check and the write run in one transaction. The new password is
// hashed only once the caller is known to be allowed to write.
func (s *UserService) Update(ctx context.Context, identity *models.Identity, id string, in UserInput) (*models.User, error) {
	var updated *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if permissions.ForIdentity(identity).Cannot(permissions.Update, current) {
			return common.ErrPermissionDenied
		}

		taken, err := repo.ExistsByEmail(ctx, in.Email, id)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrEmailAlreadyRegistered
		}

		hash, err := s.hasher.Hash(ctx, in.Password)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}

		current.FirstName = in.FirstName
		current.LastName = in.LastName
		current.Email = in.Email
		current.PasswordHash = hash

		updated, err = repo.Update(ctx, current)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user updated", "user_id", updated.ID)
	return updated, nil
}

// Delete removes the caller's own account. Quizzes owned by it go with it.
func (s *UserService) Delete(ctx context.Context, identity *models.Identity, id string) error {
	repo := s.repomanager.Users(s.db)

	current, err := repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if permissions.ForIdentity(identity).Cannot(permissions.Delete, current) {
		return common.ErrPermissionDenied
	}

	if err := repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}
