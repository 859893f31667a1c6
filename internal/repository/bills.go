package repository

import (
	"context"
	"time"

	"github.com/postalclerk/clerk-server/internal/models"
)

func (r *PostgresRepository) CreateBill(ctx context.Context, bill *models.Bill) error {
	query := `
		INSERT INTO bills (type, amount, status, clerk_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	return r.db.QueryRowxContext(ctx, query,
		bill.Type, bill.Amount, bill.Status, bill.ClerkID, bill.CreatedAt, bill.UpdatedAt).Scan(&bill.ID)
}

// ListBills returns bills whose type contains typeFilter, ignoring case.
// An empty filter matches every bill.
func (r *PostgresRepository) ListBills(ctx context.Context, typeFilter string) ([]models.Bill, error) {
	query := `
		SELECT id, type, amount, status, clerk_id, created_at, updated_at
		FROM bills
		WHERE $1 = '' OR strpos(lower(type), lower($1)) > 0
		ORDER BY id
	`

	bills := []models.Bill{}
	if err := r.db.SelectContext(ctx, &bills, query, typeFilter); err != nil {
		return nil, err
	}

	return bills, nil
}

func (r *PostgresRepository) UpdateBill(ctx context.Context, bill *models.Bill) error {
	query := `
		UPDATE bills SET type = $1, amount = $2, status = $3, updated_at = $4
		WHERE id = $5
	`

	bill.UpdatedAt = time.Now().UTC()

	return r.execAffectingOne(ctx, query, bill.Type, bill.Amount, bill.Status, bill.UpdatedAt, bill.ID)
}

func (r *PostgresRepository) DeleteBill(ctx context.Context, id int64) error {
	return r.execAffectingOne(ctx, `DELETE FROM bills WHERE id = $1`, id)
}
