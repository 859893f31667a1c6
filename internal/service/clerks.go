package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/postalclerk/clerk-server/internal/models"
	"github.com/postalclerk/clerk-server/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
	phoneDigits       = 10
)

// Register validates the request, stores the clerk with a bcrypt hash and
// returns a token for the new identity.
func (s *DefaultService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)

	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, invalid("Please enter a valid email")
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, invalid("Please enter a strong password")
	}
	if len(req.Password) > maxPasswordLength {
		return nil, invalid("Password must be at most 72 characters")
	}
	if !isPhoneNumber(req.PhoneNumber) {
		return nil, invalid("Please enter a valid phone number")
	}
	if err := s.checkLengths(
		fieldLimit{"Employee ID", req.EmployeeID, maxCodeLength},
		fieldLimit{"Name", req.Name, maxNameLength},
		fieldLimit{"Email", email, maxNameLength},
	); err != nil {
		return nil, err
	}

	// bcrypt generates a random salt for every hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	clerk := &models.Clerk{
		EmployeeID:  req.EmployeeID,
		Name:        req.Name,
		Email:       email,
		Password:    string(hashedPassword),
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}

	if err := s.repo.CreateClerk(ctx, clerk); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ConflictError{Message: "Error registering clerk"}
		}
		return nil, storageError("Error registering clerk", err)
	}

	return s.authResponse(clerk.ID)
}

// Login checks the password with bcrypt's comparison and issues a token.
// Unknown emails and wrong passwords fail with the same error.
func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	clerk, err := s.repo.GetClerkByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, storageError("Error logging in clerk", err)
	}

	if clerk == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(clerk.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(clerk.ID)
}

func (s *DefaultService) ListClerks(ctx context.Context) ([]models.Clerk, error) {
	clerks, err := s.repo.ListClerks(ctx)
	if err != nil {
		return nil, storageError("Error getting clerks", err)
	}
	return clerks, nil
}

func (s *DefaultService) DeleteClerk(ctx context.Context, id int64) error {
	if err := s.repo.DeleteClerk(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Resource: "Clerk"}
		}
		return storageError("Error deleting clerk", err)
	}
	return nil
}

func (s *DefaultService) authResponse(clerkID int64) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(clerkID)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: int(s.tokens.TTL().Seconds()),
	}, nil
}

func isPhoneNumber(phone string) bool {
	if len(phone) != phoneDigits {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
