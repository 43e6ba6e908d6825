package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/triviaquiz/internal/common"
	"github.com/dmitrijs2005/triviaquiz/internal/logging"
	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
	"github.com/dmitrijs2005/triviaquiz/internal/server/permissions"
	"github.com/dmitrijs2005/triviaquiz/internal/server/repositories/repomanager"
)

// QuizInput is a validated quiz payload.
type QuizInput struct {
	Name      string
	Questions []models.Question
}

// QuizService enforces ownership on every quiz operation. Single-quiz
// operations load first (common.ErrorNotFound), then evaluate the
// caller's ability (common.ErrPermissionDenied), then act.
type QuizService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewQuizService constructs a QuizService.
func NewQuizService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *QuizService {
	return &QuizService{db: db, repomanager: m, logger: l}
}

// Create stores a quiz owned by identity.
func (s *QuizService) Create(ctx context.Context, identity *models.Identity, in QuizInput) (*models.Quiz, error) {
	q, err := s.repomanager.Quizzes(s.db).Create(ctx, &models.Quiz{
		Name:      in.Name,
		Questions: in.Questions,
		UserID:    identity.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating quiz: %w", err)
	}

	s.logger.Info(ctx, "quiz created", "quiz_id", q.ID, "user_id", identity.ID)
	return q, nil
}

// Find lists the caller's own quizzes.
func (s *QuizService) Find(ctx context.Context, identity *models.Identity, page models.PageRequest) (models.Paginated[models.Quiz], error) {
	if identity == nil || identity.ID == "" {
		return models.Paginated[models.Quiz]{}, common.ErrUnknownIdentity
	}

	page = page.Normalize()
	repo := s.repomanager.Quizzes(s.db)
	filter := models.QuizFilter{UserID: identity.ID}

	data, err := repo.Find(ctx, filter, page)
	if err != nil {
		return models.Paginated[models.Quiz]{}, fmt.Errorf("error listing quizzes: %w", err)
	}

	total, err := repo.Count(ctx, filter)
	if err != nil {
		return models.Paginated[models.Quiz]{}, fmt.Errorf("error counting quizzes: %w", err)
	}

	return models.NewPaginated(data, total, page), nil
}

// Get returns one quiz the caller may read.
func (s *QuizService) Get(ctx context.Context, identity *models.Identity, id string) (*models.Quiz, error) {
	return s.load(ctx, identity, permissions.Read, id)
}

// Update replaces name and questions. The owner is kept.
func (s *QuizService) Update(ctx context.Context, identity *models.Identity, id string, in QuizInput) (*models.Quiz, error) {
	current, err := s.load(ctx, identity, permissions.Update, id)
	if err != nil {
		return nil, err
	}

	current.Name = in.Name
	current.Questions = in.Questions

	updated, err := s.repomanager.Quizzes(s.db).Update(ctx, current)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "quiz updated", "quiz_id", id, "user_id", identity.ID)
	return updated, nil
}

// Delete removes one quiz the caller owns.
func (s *QuizService) Delete(ctx context.Context, identity *models.Identity, id string) error {
	if _, err := s.load(ctx, identity, permissions.Delete, id); err != nil {
		return err
	}

	if err := s.repomanager.Quizzes(s.db).Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info(ctx, "quiz deleted", "quiz_id", id, "user_id", identity.ID)
	return nil
}

func (s *QuizService) load(ctx context.Context, identity *models.Identity, action permissions.Action, id string) (*models.Quiz, error) {
	q, err := s.repomanager.Quizzes(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if permissions.ForIdentity(identity).Cannot(action, q) {
		s.logger.Warn(ctx, "quiz access denied", "action", string(action), "quiz_id", id, "user_id", identity.ID)
		return nil, common.ErrPermissionDenied
	}
	return q, nil
}
