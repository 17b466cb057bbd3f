package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"metizcare/internal/domain"
)

// QuizRepository persiste las respuestas del quiz con su analisis.
type QuizRepository interface {
	Create(ctx context.Context, quiz domain.QuizResponse) error
	GetActiveBySessionID(ctx context.Context, sessionID string) (domain.QuizResponse, error)
	ListActiveResponses(ctx context.Context) ([]domain.Profile, error)
}

type PgQuizRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuizRepository(pool *pgxpool.Pool) *PgQuizRepository {
	return &PgQuizRepository{pool: pool}
}

func (r *PgQuizRepository) Create(ctx context.Context, quiz domain.QuizResponse) error {
	responses, err := json.Marshal(quiz.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}
	analysis, err := json.Marshal(quiz.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	const query = `
		INSERT INTO quiz_responses (id, user_id, session_id, responses, analysis, is_active, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var userID interface{}
	if quiz.UserID != "" {
		userID = quiz.UserID
	}

	_, err = r.pool.Exec(ctx, query,
		quiz.ID,
		userID,
		quiz.SessionID,
		responses,
		analysis,
		quiz.IsActive,
		quiz.CompletedAt,
		quiz.CreatedAt,
	)
	return err
}

func (r *PgQuizRepository) GetActiveBySessionID(ctx context.Context, sessionID string) (domain.QuizResponse, error) {
	const query = `
		SELECT id, user_id, session_id, responses, analysis, is_active, completed_at, created_at
		FROM quiz_responses
		WHERE session_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`
	var (
		q         domain.QuizResponse
		userID    *string
		responses []byte
		analysis  []byte
	)
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&q.ID,
		&userID,
		&q.SessionID,
		&responses,
		&analysis,
		&q.IsActive,
		&q.CompletedAt,
		&q.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuizResponse{}, err
	}
	if err != nil {
		return domain.QuizResponse{}, err
	}
	q.UserID = deref(userID)
	if err := json.Unmarshal(responses, &q.Responses); err != nil {
		return domain.QuizResponse{}, fmt.Errorf("unmarshal responses: %w", err)
	}
	if err := json.Unmarshal(analysis, &q.Analysis); err != nil {
		return domain.QuizResponse{}, fmt.Errorf("unmarshal analysis: %w", err)
	}
	return q, nil
}

// ListActiveResponses devuelve solo las respuestas crudas, en orden de creacion, para las estadisticas.
func (r *PgQuizRepository) ListActiveResponses(ctx context.Context) ([]domain.Profile, error) {
	const query = `
		SELECT responses
		FROM quiz_responses
		WHERE is_active = TRUE
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResponses(rows)
}

func scanResponses(rows pgxRows) ([]domain.Profile, error) {
	profiles := []domain.Profile{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var p domain.Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("unmarshal responses: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}
