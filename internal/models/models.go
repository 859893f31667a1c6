package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clerk represents a postal clerk account
type Clerk struct {
	ID          int64     `db:"id" json:"id"`
	EmployeeID  string    `db:"employee_id" json:"employee_id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Password    string    `db:"password" json:"-"` // Password hash, not returned in JSON
	Address     string    `db:"address" json:"address"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// MailType is the kind of a mail item
type MailType string

const (
	MailTypeParcel   MailType = "parcel"
	MailTypeLetter   MailType = "letter"
	MailTypeDocument MailType = "document"
)

// Valid reports whether t is one of the accepted mail types
func (t MailType) Valid() bool {
	switch t {
	case MailTypeParcel, MailTypeLetter, MailTypeDocument:
		return true
	}
	return false
}

// Mail statuses known to the client. Status is stored as free text.
const (
	MailStatusReceived  = "received"
	MailStatusInTransit = "in-transit"
	MailStatusDelivered = "delivered"
)

// Mail represents a mail item recorded by a clerk
type Mail struct {
	ID              int64     `db:"id" json:"id"`
	MailID          string    `db:"mail_id" json:"mail_id"`
	SenderName      string    `db:"sender_name" json:"sender_name"`
	SenderAddress   string    `db:"sender_address" json:"sender_address"`
	ReceiverName    string    `db:"receiver_name" json:"receiver_name"`
	ReceiverAddress string    `db:"receiver_address" json:"receiver_address"`
	MailType        MailType  `db:"mail_type" json:"mail_type"`
	Weight          *float64  `db:"weight" json:"weight"` // Only set for parcels
	Status          string    `db:"status" json:"status"`
	ClerkID         *int64    `db:"clerk_id" json:"clerk_id"`
	ClerkName       *string   `db:"clerk_name" json:"clerk_name"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// InventoryItem represents a stock item of the office
type InventoryItem struct {
	ID           int64           `db:"id" json:"id"`
	ItemName     string          `db:"item_name" json:"item_name"`
	ItemType     string          `db:"item_type" json:"item_type"`
	Quantity     int             `db:"quantity" json:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unit_price"`
	ReorderLevel int             `db:"reorder_level" json:"reorder_level"`
	ClerkID      *int64          `db:"clerk_id" json:"clerk_id"` // Last editor
	ClerkName    *string         `db:"clerk_name" json:"clerk_name"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// TransactionType is the direction of an inventory quantity change
type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionUsage    TransactionType = "usage"
)

// InventoryTransaction is an immutable record of one quantity change
type InventoryTransaction struct {
	ID              int64           `db:"id" json:"id"`
	InventoryID     int64           `db:"inventory_id" json:"inventory_id"`
	TransactionType TransactionType `db:"transaction_type" json:"transaction_type"`
	Quantity        int             `db:"quantity" json:"quantity"` // Always the magnitude of the change
	ClerkID         *int64          `db:"clerk_id" json:"clerk_id"`
	ClerkName       *string         `db:"clerk_name" json:"clerk_name"`
	Notes           string          `db:"notes" json:"notes"`
	TransactionDate time.Time       `db:"transaction_date" json:"transaction_date"`
}

// QuantityAdjustment returns the transaction that moves stock from current to next.
// ok is false when the quantity does not change.
func QuantityAdjustment(current, next int) (kind TransactionType, quantity int, ok bool) {
	delta := next - current
	switch {
	case delta > 0:
		return TransactionPurchase, delta, true
	case delta < 0:
		return TransactionUsage, -delta, true
	}
	return "", 0, false
}

// Bill represents a bill payment record
type Bill struct {
	ID        int64           `db:"id" json:"id"`
	Type      string          `db:"type" json:"type"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Status    string          `db:"status" json:"status"`
	ClerkID   *int64          `db:"clerk_id" json:"clerk_id"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Bill statuses. Pending is assigned when a bill is created without one.
const (
	BillStatusPending = "Pending"
	BillStatusPaid    = "Paid"
)
