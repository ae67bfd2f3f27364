package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/surveypay/backend/internal/domain"
)

// SubmissionRepository handles database operations for form submissions.
type SubmissionRepository struct {
	db *pgxpool.Pool
}

func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.FormSubmission) error {
	query := `
		INSERT INTO form_submissions (id, email, full_name, survey_url, survey_title, platform, question_count, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.Email, s.FullName, s.SurveyURL, s.SurveyTitle, string(s.Platform),
		s.QuestionCount, s.PaymentStatus, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*domain.FormSubmission, error) {
	query := `
		SELECT id, email, full_name, survey_url, COALESCE(survey_title, ''), COALESCE(platform, ''), question_count, payment_status, created_at, updated_at
		FROM form_submissions WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)

	var s domain.FormSubmission
	var platform string
	err := row.Scan(&s.ID, &s.Email, &s.FullName, &s.SurveyURL, &s.SurveyTitle, &platform,
		&s.QuestionCount, &s.PaymentStatus, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	s.Platform = domain.Platform(platform)
	return &s, nil
}

// UpdatePaymentStatus cascades a transaction status to its submission.
func (r *SubmissionRepository) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE form_submissions SET payment_status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update submission payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("submission %s not found", id)
	}
	return nil
}

// ListRecent returns recent submissions, newest first.
func (r *SubmissionRepository) ListRecent(ctx context.Context, limit int) ([]*domain.FormSubmission, error) {
	query := `
		SELECT id, email, full_name, survey_url, COALESCE(survey_title, ''), COALESCE(platform, ''), question_count, payment_status, created_at, updated_at
		FROM form_submissions ORDER BY created_at DESC LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var out []*domain.FormSubmission
	for rows.Next() {
		var s domain.FormSubmission
		var platform string
		if err := rows.Scan(&s.ID, &s.Email, &s.FullName, &s.SurveyURL, &s.SurveyTitle, &platform,
			&s.QuestionCount, &s.PaymentStatus, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		s.Platform = domain.Platform(platform)
		out = append(out, &s)
	}
	return out, nil
}
