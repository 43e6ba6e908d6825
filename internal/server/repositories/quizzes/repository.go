package quizzes

import (
	"context"

	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
)

// Repository stores quizzes. Lookups and writes on a missing id return
// common.ErrorNotFound.
type Repository interface {
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error)
	// Update replaces name and questions. The owner is never rewritten.
	Update(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, filter models.QuizFilter, page models.PageRequest) ([]models.Quiz, error)
	Count(ctx context.Context, filter models.QuizFilter) (int, error)
}
