package repository

import (
	"context"
	"time"

	"github.com/postalclerk/clerk-server/internal/models"
)

func (r *PostgresRepository) CreateClerk(ctx context.Context, clerk *models.Clerk) error {
	query := `
		INSERT INTO clerks (employee_id, name, email, password, address, phone_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	clerk.CreatedAt = time.Now().UTC()

	err := r.db.QueryRowxContext(ctx, query,
		clerk.EmployeeID, clerk.Name, clerk.Email, clerk.Password,
		clerk.Address, clerk.PhoneNumber, clerk.CreatedAt).Scan(&clerk.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PostgresRepository) GetClerkByEmail(ctx context.Context, email string) (*models.Clerk, error) {
	query := `
		SELECT id, employee_id, name, email, password, address, phone_number, created_at
		FROM clerks WHERE email = $1
	`

	var clerk models.Clerk
	if err := r.db.GetContext(ctx, &clerk, query, email); err != nil {
		return nil, notFoundAsNil(err)
	}

	return &clerk, nil
}

// ListClerks returns every clerk without the password hash
func (r *PostgresRepository) ListClerks(ctx context.Context) ([]models.Clerk, error) {
	query := `
		SELECT id, employee_id, name, email, address, phone_number, created_at
		FROM clerks ORDER BY id
	`

	clerks := []models.Clerk{}
	if err := r.db.SelectContext(ctx, &clerks, query); err != nil {
		return nil, err
	}

	return clerks, nil
}

func (r *PostgresRepository) DeleteClerk(ctx context.Context, id int64) error {
	return r.execAffectingOne(ctx, `DELETE FROM clerks WHERE id = $1`, id)
}
