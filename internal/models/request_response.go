package models

import "github.com/shopspring/decimal"

// Request models
type RegisterRequest struct {
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DeleteClerkRequest struct {
	ID int64 `json:"id" binding:"required"`
}

// Party is the sender or receiver of a mail item
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type CreateMailRequest struct {
	MailID   string   `json:"mail_id"`
	Sender   *Party   `json:"sender"`
	Receiver *Party   `json:"receiver"`
	Type     MailType `json:"type"`
	Weight   Weight   `json:"weight"`
}

type UpdateMailStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// InventoryItemRequest is used for both adding and updating an item
type InventoryItemRequest struct {
	ItemName     string           `json:"item_name"`
	ItemType     string           `json:"item_type"`
	Quantity     *int             `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	ReorderLevel *int             `json:"reorder_level"`
}

type BillRequest struct {
	Type   string           `json:"type"`
	Amount *decimal.Decimal `json:"amount"`
	Status string           `json:"status"`
}

// Response models
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type AuthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

type ClerksResponse struct {
	Success bool    `json:"success"`
	Clerks  []Clerk `json:"clerks"`
}

type MailsResponse struct {
	Success bool   `json:"success"`
	Mails   []Mail `json:"mails"`
}

type MailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Mail    *Mail  `json:"mail,omitempty"`
}

type InventoryItemsResponse struct {
	Success bool            `json:"success"`
	Items   []InventoryItem `json:"items"`
}

type InventoryItemCreatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ItemID  int64  `json:"itemId"`
}

type TransactionsResponse struct {
	Success      bool                   `json:"success"`
	Transactions []InventoryTransaction `json:"transactions"`
}

type BillsResponse struct {
	Success bool   `json:"success"`
	Bills   []Bill `json:"bills"`
}

type BillResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Bill    *Bill  `json:"bill,omitempty"`
}

type HealthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Result  int    `json:"result"`
}
