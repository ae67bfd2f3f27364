package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/surveypay/backend/internal/domain"
)

// FailureRepository persists partial reconciliation failures for operators.
type FailureRepository struct {
	db *pgxpool.Pool
}

func NewFailureRepository(db *pgxpool.Pool) *FailureRepository {
	return &FailureRepository{db: db}
}

func (r *FailureRepository) Record(ctx context.Context, f *domain.ReconciliationFailure) error {
	query := `
		INSERT INTO reconciliation_failures (id, payment_id, status, failed_record, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, f.ID, f.PaymentID, f.Status, f.FailedRecord, f.Detail, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record reconciliation failure: %w", err)
	}
	return nil
}

func (r *FailureRepository) ListRecent(ctx context.Context, limit int) ([]*domain.ReconciliationFailure, error) {
	query := `
		SELECT id, payment_id, status, failed_record, COALESCE(detail, ''), created_at
		FROM reconciliation_failures ORDER BY created_at DESC LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliation failures: %w", err)
	}
	defer rows.Close()

	var out []*domain.ReconciliationFailure
	for rows.Next() {
		var f domain.ReconciliationFailure
		if err := rows.Scan(&f.ID, &f.PaymentID, &f.Status, &f.FailedRecord, &f.Detail, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation failure: %w", err)
		}
		out = append(out, &f)
	}
	return out, nil
}
