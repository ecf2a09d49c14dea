package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/models"
)

// PaymentRepository handles payment database operations.
// Payments are immutable: there is no update or delete.
type PaymentRepository struct {
	db database.PGXDB
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db database.PGXDB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create records a payment. Status defaults to Confirmado.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.PaymentStatus == "" {
		payment.PaymentStatus = models.PaymentStatusConfirmed
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO payments (user_id, bill_id, amount_paid, payment_method, payment_status, payment_date)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, payment_date
	`, payment.UserID, payment.BillID, payment.AmountPaid, payment.PaymentMethod, payment.PaymentStatus).
		Scan(&payment.ID, &payment.PaymentDate)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByUserID retrieves all payments made by a user, newest first.
func (r *PaymentRepository) GetByUserID(ctx context.Context, userID string) ([]models.Payment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, bill_id, amount_paid, payment_method, payment_status, payment_date
		FROM payments
		WHERE user_id = $1
		ORDER BY payment_date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// GetByBillID retrieves the payments recorded against one bill.
func (r *PaymentRepository) GetByBillID(ctx context.Context, userID string, billID int) ([]models.Payment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, bill_id, amount_paid, payment_method, payment_status, payment_date
		FROM payments
		WHERE user_id = $1 AND bill_id = $2
		ORDER BY payment_date DESC, id DESC
	`, userID, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments by bill: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// scanPayments is a helper to scan payment rows.
func scanPayments(rows pgx.Rows) ([]models.Payment, error) {
	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.BillID, &p.AmountPaid,
			&p.PaymentMethod, &p.PaymentStatus, &p.PaymentDate); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}
	return payments, nil
}
