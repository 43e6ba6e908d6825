// Package rest exposes the trivia quiz API over HTTP using gin.
package rest

import (
	"context"

	"github.com/dmitrijs2005/triviaquiz/internal/logging"
	"github.com/dmitrijs2005/triviaquiz/internal/server/auth"
	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
	"github.com/dmitrijs2005/triviaquiz/internal/server/services"
)

// AuthService authenticates callers.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*models.Identity, error)
	IssueToken(identity *models.Identity) (auth.AuthToken, error)
	ResolveToken(ctx context.Context, token string) (*models.Identity, error)
	Me(ctx context.Context, identity *models.Identity) (*models.User, error)
}

// UserService manages accounts.
type UserService interface {
	Register(ctx context.Context, in services.UserInput) (*models.User, error)
	Update(ctx context.Context, identity *models.Identity, id string, in services.UserInput) (*models.User, error)
	Delete(ctx context.Context, identity *models.Identity, id string) error
}

// QuizService manages quizzes on behalf of an identity.
type QuizService interface {
	Create(ctx context.Context, identity *models.Identity, in services.QuizInput) (*models.Quiz, error)
	Find(ctx context.Context, identity *models.Identity, page models.PageRequest) (models.Paginated[models.Quiz], error)
	Get(ctx context.Context, identity *models.Identity, id string) (*models.Quiz, error)
	Update(ctx context.Context, identity *models.Identity, id string, in services.QuizInput) (*models.Quiz, error)
	Delete(ctx context.Context, identity *models.Identity, id string) error
}

// Pinger reports database reachability. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler holds the dependencies of every route.
type Handler struct {
	auth    AuthService
	users   UserService
	quizzes QuizService
	db      Pinger
	logger  logging.Logger
}

// NewHandler constructs a Handler.
func NewHandler(a AuthService, u UserService, q QuizService, db Pinger, l logging.Logger) *Handler {
	return &Handler{
		auth:    a,
		users:   u,
		quizzes: q,
		db:      db,
		logger:  l.With("module", "http"),
	}
}
