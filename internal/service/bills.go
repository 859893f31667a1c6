package service

import (
	"context"
	"errors"
	"strings"

	"github.com/postalclerk/clerk-server/internal/models"
	"github.com/postalclerk/clerk-server/internal/repository"
)

// ListBills returns bills whose type contains typeFilter, case-insensitively
func (s *DefaultService) ListBills(ctx context.Context, typeFilter string) ([]models.Bill, error) {
	bills, err := s.repo.ListBills(ctx, strings.TrimSpace(typeFilter))
	if err != nil {
		return nil, storageError("Error fetching bills", err)
	}
	return bills, nil
}

func (s *DefaultService) CreateBill(ctx context.Context, clerkID int64, req models.BillRequest) (*models.Bill, error) {
	bill, err := s.billFromRequest(req)
	if err != nil {
		return nil, err
	}
	bill.ClerkID = &clerkID

	if err := s.repo.CreateBill(ctx, bill); err != nil {
		return nil, storageError("Error creating bill", err)
	}
	return bill, nil
}

func (s *DefaultService) UpdateBill(ctx context.Context, id int64, req models.BillRequest) (*models.Bill, error) {
	bill, err := s.billFromRequest(req)
	if err != nil {
		return nil, err
	}
	bill.ID = id

	if err := s.repo.UpdateBill(ctx, bill); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "Bill"}
		}
		return nil, storageError("Error updating bill", err)
	}
	return bill, nil
}

func (s *DefaultService) DeleteBill(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBill(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Resource: "Bill"}
		}
		return storageError("Error deleting bill", err)
	}
	return nil
}

func (s *DefaultService) billFromRequest(req models.BillRequest) (*models.Bill, error) {
	billType := strings.TrimSpace(req.Type)
	if billType == "" || req.Amount == nil {
		return nil, invalid("Missing required fields")
	}
	if !req.Amount.IsPositive() {
		return nil, invalid("Amount must be a positive number")
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.BillStatusPending
	}

	if err := checkMoney("Amount", *req.Amount); err != nil {
		return nil, err
	}
	if err := s.checkLengths(
		fieldLimit{"Type", billType, maxCodeLength},
		fieldLimit{"Status", status, maxStatusLength},
	); err != nil {
		return nil, err
	}

	return &models.Bill{
		Type:   billType,
		Amount: *req.Amount,
		Status: status,
	}, nil
}
