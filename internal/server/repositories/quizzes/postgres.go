package quizzes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/triviaquiz/internal/common"
	"github.com/dmitrijs2005/triviaquiz/internal/dbx"
	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const quizColumns = `id, name, questions, user_id, created_at, updated_at`

func scanQuiz(row interface{ Scan(...any) error }) (*models.Quiz, error) {
	q := &models.Quiz{}
	var questions []byte

	if err := row.Scan(&q.ID, &q.Name, &questions, &q.UserID, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &q.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return q, nil
}

func encodeQuestions(questions []models.Question) ([]byte, error) {
	if questions == nil {
		questions = []models.Question{}
	}
	b, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1`

	q, err := scanQuiz(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}

func (r *PostgresRepository) Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	questions, err := encodeQuestions(quiz.Questions)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO quizzes (name, questions, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING ` + quizColumns

	created, err := scanQuiz(r.db.QueryRowContext(ctx, query, quiz.Name, questions, quiz.UserID))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	questions, err := encodeQuestions(quiz.Questions)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE quizzes
		 SET name = $2, questions = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + quizColumns

	updated, err := scanQuiz(r.db.QueryRowContext(ctx, query, quiz.ID, quiz.Name, questions))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, filter models.QuizFilter, page models.PageRequest) ([]models.Quiz, error) {
	page = page.Normalize()

	query :=
		`SELECT ` + quizColumns + `
		 FROM quizzes
		 WHERE user_id = $1::uuid
		 ORDER BY created_at, id
		 LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, filter.UserID, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Quiz, 0)
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context, filter models.QuizFilter) (int, error) {
	query := `SELECT count(*) FROM quizzes WHERE user_id = $1::uuid`

	var n int
	if err := r.db.QueryRowContext(ctx, query, filter.UserID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
