package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/surveypay/backend/internal/domain"
)

// TransactionRepository handles database operations for payment transactions.
type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new transaction. payment_id is unique; a duplicate insert
// for the same provider payment fails here.
func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, form_submission_id, payment_id, status, amount, payment_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		t.ID, t.FormSubmissionID, t.PaymentID, t.Status, t.Amount, t.PaymentURL,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// FindByPaymentID returns the transaction for a provider payment id, or nil
// when none exists.
func (r *TransactionRepository) FindByPaymentID(ctx context.Context, paymentID string) (*domain.Transaction, error) {
	query := `
		SELECT id, form_submission_id, payment_id, status, amount, COALESCE(payment_url, ''), created_at, updated_at
		FROM transactions WHERE payment_id = $1
	`
	row := r.db.QueryRow(ctx, query, paymentID)

	var t domain.Transaction
	err := row.Scan(&t.ID, &t.FormSubmissionID, &t.PaymentID, &t.Status, &t.Amount, &t.PaymentURL, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return &t, nil
}

// UpdateStatus moves a transaction from one status to another. The WHERE
// clause is a compare-and-set so concurrent webhook deliveries for the same
// payment cannot both win; the loser sees applied=false.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, paymentID, from, to string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE transactions SET status = $1, updated_at = NOW() WHERE payment_id = $2 AND status = $3`,
		to, paymentID, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update transaction status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List returns recent transactions, optionally filtered by status.
func (r *TransactionRepository) List(ctx context.Context, status string, limit int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, form_submission_id, payment_id, status, amount, COALESCE(payment_url, ''), created_at, updated_at
		FROM transactions
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.FormSubmissionID, &t.PaymentID, &t.Status, &t.Amount, &t.PaymentURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, nil
}
