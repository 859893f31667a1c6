package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/postalclerk/clerk-server/internal/models"
)

var (
	// ErrNotFound is returned by mutations when no row matches the id
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write
	ErrDuplicate = errors.New("duplicate record")
)

// Repository interface defines the methods that any repository implementation must satisfy.
// Get methods return nil, nil when nothing matches.
type Repository interface {
	// Clerk operations
	CreateClerk(ctx context.Context, clerk *models.Clerk) error
	GetClerkByEmail(ctx context.Context, email string) (*models.Clerk, error)
	ListClerks(ctx context.Context) ([]models.Clerk, error)
	DeleteClerk(ctx context.Context, id int64) error

	// Mail operations
	CreateMail(ctx context.Context, mail *models.Mail) error
	ListMails(ctx context.Context) ([]models.Mail, error)
	GetMail(ctx context.Context, id int64) (*models.Mail, error)
	UpdateMailStatus(ctx context.Context, id int64, status string) error
	DeleteMail(ctx context.Context, id int64) error

	// Inventory operations. Create and update also append the matching
	// transaction row in the same database transaction.
	CreateInventoryItem(ctx context.Context, item *models.InventoryItem, notes string) (*models.InventoryTransaction, error)
	UpdateInventoryItem(ctx context.Context, item *models.InventoryItem, notes string) (*models.InventoryTransaction, error)
	DeleteInventoryItem(ctx context.Context, id int64) error
	ListInventoryItems(ctx context.Context) ([]models.InventoryItem, error)
	ListLowStockItems(ctx context.Context) ([]models.InventoryItem, error)
	ListInventoryTransactions(ctx context.Context, itemID int64) ([]models.InventoryTransaction, error)

	// Bill operations
	CreateBill(ctx context.Context, bill *models.Bill) error
	ListBills(ctx context.Context, typeFilter string) ([]models.Bill, error)
	UpdateBill(ctx context.Context, bill *models.Bill) error
	DeleteBill(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// Ping runs a trivial query against the database
func (r *PostgresRepository) Ping(ctx context.Context) error {
	var solution int
	return r.db.GetContext(ctx, &solution, `SELECT 1 + 1 AS solution`)
}

// execAffectingOne runs a statement that must touch exactly one row
func (r *PostgresRepository) execAffectingOne(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func notFoundAsNil(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}
