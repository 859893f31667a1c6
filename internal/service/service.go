package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/postalclerk/clerk-server/internal/auth"
	"github.com/postalclerk/clerk-server/internal/models"
	"github.com/postalclerk/clerk-server/internal/repository"
)

// Service defines all the business logic operations
type Service interface {
	// Clerks and authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	ListClerks(ctx context.Context) ([]models.Clerk, error)
	DeleteClerk(ctx context.Context, id int64) error

	// Mail records
	CreateMail(ctx context.Context, clerkID int64, req models.CreateMailRequest) (*models.Mail, error)
	ListMails(ctx context.Context) ([]models.Mail, error)
	GetMail(ctx context.Context, id int64) (*models.Mail, error)
	UpdateMailStatus(ctx context.Context, id int64, status string) error
	DeleteMail(ctx context.Context, id int64) error

	// Inventory ledger
	AddInventoryItem(ctx context.Context, clerkID int64, req models.InventoryItemRequest) (*models.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, clerkID, id int64, req models.InventoryItemRequest) (*models.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id int64) error
	ListInventoryItems(ctx context.Context) ([]models.InventoryItem, error)
	ListLowStockItems(ctx context.Context) ([]models.InventoryItem, error)
	ListInventoryTransactions(ctx context.Context, itemID int64) ([]models.InventoryTransaction, error)

	// Bill payments
	ListBills(ctx context.Context, typeFilter string) ([]models.Bill, error)
	CreateBill(ctx context.Context, clerkID int64, req models.BillRequest) (*models.Bill, error)
	UpdateBill(ctx context.Context, id int64, req models.BillRequest) (*models.Bill, error)
	DeleteBill(ctx context.Context, id int64) error

	// Health
	Ping(ctx context.Context) error
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo     repository.Repository
	tokens   *auth.TokenManager
	validate *validator.Validate
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, tokens *auth.TokenManager) Service {
	return &DefaultService{
		repo:     repo,
		tokens:   tokens,
		validate: validator.New(),
	}
}

func (s *DefaultService) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return storageError("Error connecting to the database", err)
	}
	return nil
}
