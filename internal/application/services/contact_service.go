package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// ContactService handles address book operations
type ContactService struct {
	contactRepo ports.ContactRepository
	logger      *logger.Logger
}

// NewContactService creates a new contact service
func NewContactService(contactRepo ports.ContactRepository, logger *logger.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		logger:      logger.WithComponent("contacts"),
	}
}

// CreateContact creates a contact unless its email or phone is already in use
func (s *ContactService) CreateContact(ctx context.Context, req ports.CreateContactRequest) (*entities.Contact, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", entities.ErrValidation)
	}

	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)

	exists, err := s.contactRepo.ExistsByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing contact: %w", err)
	}
	if exists {
		return nil, entities.ErrContactExists
	}

	contact := &entities.Contact{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Address: req.Address,
		DOB:     req.DOB,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Infow("Contact created", "contact_id", contact.ID)
	return contact, nil
}

// GetContact retrieves a contact by ID
func (s *ContactService) GetContact(ctx context.Context, id string) (*entities.Contact, error) {
	return s.contactRepo.GetByID(ctx, id)
}

// ListContacts lists contacts matching the filter
func (s *ContactService) ListContacts(ctx context.Context, filter ports.ContactFilter) ([]*entities.Contact, error) {
	return s.contactRepo.List(ctx, filter)
}

// DeleteContact deletes a contact. Tasks and events referring to it keep the raw id.
func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Contact deleted", "contact_id", id)
	return nil
}
