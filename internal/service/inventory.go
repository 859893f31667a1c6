package service

import (
	"context"
	"errors"
	"strings"

	"github.com/postalclerk/clerk-server/internal/metrics"
	"github.com/postalclerk/clerk-server/internal/models"
	"github.com/postalclerk/clerk-server/internal/repository"
)

const (
	initialEntryNote = "Initial inventory entry"
	adjustmentNote   = "Manual inventory adjustment"
)

// AddInventoryItem stores a new item together with a purchase transaction
// for its opening quantity.
func (s *DefaultService) AddInventoryItem(
	ctx context.Context,
	clerkID int64,
	req models.InventoryItemRequest,
) (*models.InventoryItem, error) {
	item, err := s.inventoryItemFromRequest(req)
	if err != nil {
		return nil, err
	}
	item.ClerkID = &clerkID

	txn, err := s.repo.CreateInventoryItem(ctx, item, initialEntryNote)
	if err != nil {
		return nil, storageError("Error adding inventory item", err)
	}
	metrics.RecordInventoryTransaction(string(txn.TransactionType), txn.Quantity)

	return item, nil
}

// UpdateInventoryItem overwrites the item and appends a purchase or usage
// transaction for the quantity difference, if any.
func (s *DefaultService) UpdateInventoryItem(
	ctx context.Context,
	clerkID int64,
	id int64,
	req models.InventoryItemRequest,
) (*models.InventoryItem, error) {
	item, err := s.inventoryItemFromRequest(req)
	if err != nil {
		return nil, err
	}
	item.ID = id
	item.ClerkID = &clerkID

	txn, err := s.repo.UpdateInventoryItem(ctx, item, adjustmentNote)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "Inventory item"}
		}
		return nil, storageError("Error updating inventory item", err)
	}
	if txn != nil {
		metrics.RecordInventoryTransaction(string(txn.TransactionType), txn.Quantity)
	}

	return item, nil
}

// DeleteInventoryItem removes the item; its transaction history is kept.
func (s *DefaultService) DeleteInventoryItem(ctx context.Context, id int64) error {
	if err := s.repo.DeleteInventoryItem(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Resource: "Inventory item"}
		}
		return storageError("Error deleting inventory item", err)
	}
	return nil
}

func (s *DefaultService) ListInventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.repo.ListInventoryItems(ctx)
	if err != nil {
		return nil, storageError("Error fetching inventory", err)
	}
	return items, nil
}

func (s *DefaultService) ListLowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.repo.ListLowStockItems(ctx)
	if err != nil {
		return nil, storageError("Error fetching low stock items", err)
	}
	return items, nil
}

func (s *DefaultService) ListInventoryTransactions(ctx context.Context, itemID int64) ([]models.InventoryTransaction, error) {
	transactions, err := s.repo.ListInventoryTransactions(ctx, itemID)
	if err != nil {
		return nil, storageError("Error fetching transactions", err)
	}
	return transactions, nil
}

func (s *DefaultService) inventoryItemFromRequest(req models.InventoryItemRequest) (*models.InventoryItem, error) {
	name := strings.TrimSpace(req.ItemName)
	itemType := strings.TrimSpace(req.ItemType)

	if name == "" || itemType == "" || req.Quantity == nil || req.UnitPrice == nil {
		return nil, invalid("Missing required fields")
	}
	if *req.Quantity < 0 {
		return nil, invalid("Quantity cannot be negative")
	}
	if req.UnitPrice.IsNegative() {
		return nil, invalid("Unit price cannot be negative")
	}
	if *req.Quantity > maxStock {
		return nil, invalid("Quantity is too large")
	}
	if err := checkMoney("Unit price", *req.UnitPrice); err != nil {
		return nil, err
	}
	if err := s.checkLengths(
		fieldLimit{"Item name", name, maxNameLength},
		fieldLimit{"Item type", itemType, maxCodeLength},
	); err != nil {
		return nil, err
	}

	item := &models.InventoryItem{
		ItemName:  name,
		ItemType:  itemType,
		Quantity:  *req.Quantity,
		UnitPrice: *req.UnitPrice,
	}
	if req.ReorderLevel != nil {
		if *req.ReorderLevel < 0 {
			return nil, invalid("Reorder level cannot be negative")
		}
		if *req.ReorderLevel > maxStock {
			return nil, invalid("Reorder level is too large")
		}
		item.ReorderLevel = *req.ReorderLevel
	}

	return item, nil
}
