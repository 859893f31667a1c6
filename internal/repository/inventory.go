package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/postalclerk/clerk-server/internal/models"
)

const inventoryColumns = `
	i.id, i.item_name, i.item_type, i.quantity, i.unit_price,
	i.reorder_level, i.clerk_id, i.created_at, i.updated_at, c.name AS clerk_name
`

// CreateInventoryItem inserts the item and its opening purchase transaction atomically
func (r *PostgresRepository) CreateInventoryItem(
	ctx context.Context,
	item *models.InventoryItem,
	notes string,
) (txn *models.InventoryTransaction, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `
		INSERT INTO inventory
			(item_name, item_type, quantity, unit_price, reorder_level, clerk_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err = tx.QueryRowxContext(ctx, query,
		item.ItemName, item.ItemType, item.Quantity, item.UnitPrice,
		item.ReorderLevel, item.ClerkID, item.CreatedAt, item.UpdatedAt).Scan(&item.ID)
	if err != nil {
		return nil, err
	}

	txn = &models.InventoryTransaction{
		InventoryID:     item.ID,
		TransactionType: models.TransactionPurchase,
		Quantity:        item.Quantity,
		ClerkID:         item.ClerkID,
		Notes:           notes,
		TransactionDate: now,
	}

	if err = insertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return txn, nil
}

// UpdateInventoryItem overwrites the item and records the quantity delta.
// The current row is locked for the duration of the transaction so concurrent
// updates of the same item are applied one after another. The returned
// transaction is nil when the quantity did not change.
func (r *PostgresRepository) UpdateInventoryItem(
	ctx context.Context,
	item *models.InventoryItem,
	notes string,
) (txn *models.InventoryTransaction, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current int
	err = tx.GetContext(ctx, &current, `SELECT quantity FROM inventory WHERE id = $1 FOR UPDATE`, item.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	item.UpdatedAt = now

	query := `
		UPDATE inventory
		SET item_name = $1, item_type = $2, quantity = $3,
			unit_price = $4, reorder_level = $5, clerk_id = $6, updated_at = $7
		WHERE id = $8
	`

	_, err = tx.ExecContext(ctx, query,
		item.ItemName, item.ItemType, item.Quantity, item.UnitPrice,
		item.ReorderLevel, item.ClerkID, item.UpdatedAt, item.ID)
	if err != nil {
		return nil, err
	}

	if kind, quantity, changed := models.QuantityAdjustment(current, item.Quantity); changed {
		txn = &models.InventoryTransaction{
			InventoryID:     item.ID,
			TransactionType: kind,
			Quantity:        quantity,
			ClerkID:         item.ClerkID,
			Notes:           notes,
			TransactionDate: now,
		}

		if err = insertTransaction(ctx, tx, txn); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return txn, nil
}

// DeleteInventoryItem removes the item. Its transactions are kept.
func (r *PostgresRepository) DeleteInventoryItem(ctx context.Context, id int64) error {
	return r.execAffectingOne(ctx, `DELETE FROM inventory WHERE id = $1`, id)
}

func (r *PostgresRepository) ListInventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory i
		LEFT JOIN clerks c ON i.clerk_id = c.id
		ORDER BY i.item_name
	`

	items := []models.InventoryItem{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}

	return items, nil
}

// ListLowStockItems returns items at or below their reorder level, lowest stock first
func (r *PostgresRepository) ListLowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory i
		LEFT JOIN clerks c ON i.clerk_id = c.id
		WHERE i.quantity <= i.reorder_level
		ORDER BY i.quantity ASC
	`

	items := []models.InventoryItem{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *PostgresRepository) ListInventoryTransactions(ctx context.Context, itemID int64) ([]models.InventoryTransaction, error) {
	query := `
		SELECT t.id, t.inventory_id, t.transaction_type, t.quantity,
			t.clerk_id, t.notes, t.transaction_date, c.name AS clerk_name
		FROM inventory_transactions t
		LEFT JOIN clerks c ON t.clerk_id = c.id
		WHERE t.inventory_id = $1
		ORDER BY t.transaction_date DESC, t.id DESC
	`

	transactions := []models.InventoryTransaction{}
	if err := r.db.SelectContext(ctx, &transactions, query, itemID); err != nil {
		return nil, err
	}

	return transactions, nil
}

// insertTransaction appends a transaction row within an existing transaction
func insertTransaction(ctx context.Context, tx *sqlx.Tx, txn *models.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions
			(inventory_id, transaction_type, quantity, clerk_id, notes, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return tx.QueryRowxContext(ctx, query,
		txn.InventoryID, txn.TransactionType, txn.Quantity,
		txn.ClerkID, txn.Notes, txn.TransactionDate).Scan(&txn.ID)
}
