package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cuzdan-pay/cuzdan_pay/internal/qrpay"
)

// Service manages the contact book.
type Service struct {
	repo Repository
}

// NewService creates a contact service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to save a contact.
type CreateInput struct {
	Name  string
	Phone string
}

// Create saves a new contact. Duplicate phones return ErrExists.
func (s *Service) Create(ctx context.Context, input CreateInput) (Contact, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Contact{}, errors.New("name is required")
	}

	contact := Contact{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     strings.TrimSpace(input.Phone),
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.repo.FindByPhone(ctx, contact.Phone); err == nil {
		return Contact{}, ErrExists
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return Contact{}, err
	}
	return contact, nil
}

// ImportIntent saves the counterparty of a scanned contact-type code. The
// contact name defaults to the code's description, then the phone itself.
func (s *Service) ImportIntent(ctx context.Context, intent *qrpay.PaymentIntent) (Contact, error) {
	if intent == nil || !intent.Valid {
		return Contact{}, errors.New("invalid contact code")
	}
	name := intent.Description
	if name == "" {
		name = intent.Recipient
	}
	return s.Create(ctx, CreateInput{Name: name, Phone: intent.Recipient})
}

// List returns the saved contact book.
func (s *Service) List(ctx context.Context) ([]Contact, error) {
	return s.repo.List(ctx)
}
