package service

import (
	"context"
	"errors"
	"strings"

	"github.com/postalclerk/clerk-server/internal/models"
	"github.com/postalclerk/clerk-server/internal/repository"
)

// CreateMail validates the request and stores a new mail with status received.
// Checks run in order: sender, receiver, type, then parcel weight. Weight is
// dropped for anything that is not a parcel.
func (s *DefaultService) CreateMail(ctx context.Context, clerkID int64, req models.CreateMailRequest) (*models.Mail, error) {
	if req.Sender == nil || strings.TrimSpace(req.Sender.Address) == "" {
		return nil, invalid("Sender information is missing or incomplete")
	}

	if req.Receiver == nil || strings.TrimSpace(req.Receiver.Name) == "" || strings.TrimSpace(req.Receiver.Address) == "" {
		return nil, invalid("Recipient information is missing or incomplete")
	}

	if !req.Type.Valid() {
		return nil, invalid("Invalid mail type")
	}

	var weight *float64
	if req.Type == models.MailTypeParcel {
		if !req.Weight.Set {
			return nil, invalid("Weight is required for parcels")
		}
		if !req.Weight.Valid || req.Weight.Value <= 0 {
			return nil, invalid("Weight must be a positive number for parcels")
		}
		w := req.Weight.Value
		weight = &w
	}

	if err := s.checkLengths(
		fieldLimit{"Mail ID", req.MailID, maxCodeLength},
		fieldLimit{"Sender name", req.Sender.Name, maxNameLength},
		fieldLimit{"Recipient name", req.Receiver.Name, maxNameLength},
	); err != nil {
		return nil, err
	}

	mail := &models.Mail{
		MailID:          req.MailID,
		SenderName:      req.Sender.Name,
		SenderAddress:   req.Sender.Address,
		ReceiverName:    req.Receiver.Name,
		ReceiverAddress: req.Receiver.Address,
		MailType:        req.Type,
		Weight:          weight,
		Status:          models.MailStatusReceived,
		ClerkID:         &clerkID,
	}

	if err := s.repo.CreateMail(ctx, mail); err != nil {
		return nil, storageError("Error creating mail", err)
	}

	return mail, nil
}

func (s *DefaultService) ListMails(ctx context.Context) ([]models.Mail, error) {
	mails, err := s.repo.ListMails(ctx)
	if err != nil {
		return nil, storageError("Error fetching mails", err)
	}
	return mails, nil
}

func (s *DefaultService) GetMail(ctx context.Context, id int64) (*models.Mail, error) {
	mail, err := s.repo.GetMail(ctx, id)
	if err != nil {
		return nil, storageError("Error fetching mail", err)
	}
	if mail == nil {
		return nil, &NotFoundError{Resource: "Mail"}
	}
	return mail, nil
}

// UpdateMailStatus overwrites the status. Any non-empty value is accepted and
// no transition order is enforced.
func (s *DefaultService) UpdateMailStatus(ctx context.Context, id int64, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return invalid("Status is required")
	}
	if err := s.checkLengths(fieldLimit{"Status", status, maxStatusLength}); err != nil {
		return err
	}

	if err := s.repo.UpdateMailStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Resource: "Mail"}
		}
		return storageError("Error updating status", err)
	}
	return nil
}

func (s *DefaultService) DeleteMail(ctx context.Context, id int64) error {
	if err := s.repo.DeleteMail(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Resource: "Mail"}
		}
		return storageError("Error deleting mail", err)
	}
	return nil
}
