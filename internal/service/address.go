package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/addressbook/internal/domain"
	"github.com/utafrali/addressbook/internal/event"
	"github.com/utafrali/addressbook/internal/repository"
	apperrors "github.com/utafrali/addressbook/pkg/errors"
)

// AddressService implements the business logic for address book operations.
// Every method takes the caller's Identity; authorization decisions happen
// here, not in the transport layer.
type AddressService struct {
	repo     repository.AddressRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewAddressService creates a new address service.
func NewAddressService(repo repository.AddressRepository, producer *event.Producer, logger *slog.Logger) *AddressService {
	return &AddressService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateAddressInput holds the parameters for creating a new address.
type CreateAddressInput struct {
	Line1       string
	Line2       string
	City        string
	State       string
	PostalCode  string
	CountryCode string
}

// UpdateAddressInput holds the parameters for updating an address. Nil fields
// are left unchanged; Line2 may be set to the empty string to clear it.
type UpdateAddressInput struct {
	Line1       *string
	Line2       *string
	City        *string
	State       *string
	PostalCode  *string
	CountryCode *string
}

// CreateAddress creates a new address owned by the caller. An address whose
// content fields exactly match an existing non-deleted address of the same
// user is rejected as a duplicate. The database unique index closes the race
// between the check and the insert.
func (s *AddressService) CreateAddress(ctx context.Context, ident domain.Identity, input *CreateAddressInput) (*domain.Address, error) {
	if input.Line1 == "" {
		return nil, apperrors.InvalidInput("line1 is required")
	}
	if input.City == "" {
		return nil, apperrors.InvalidInput("city is required")
	}
	if input.State == "" {
		return nil, apperrors.InvalidInput("state is required")
	}
	if input.PostalCode == "" {
		return nil, apperrors.InvalidInput("postal code is required")
	}
	if err := validateCountryCode(input.CountryCode); err != nil {
		return nil, err
	}

	content := domain.ContentFields{
		Line1:       input.Line1,
		Line2:       input.Line2,
		City:        input.City,
		State:       input.State,
		PostalCode:  input.PostalCode,
		CountryCode: input.CountryCode,
	}

	exists, err := s.repo.ExistsDuplicate(ctx, ident.TenantID, ident.UserID, content, "")
	if err != nil {
		return nil, fmt.Errorf("check duplicate address: %w", err)
	}
	if exists {
		return nil, apperrors.Duplicate("address")
	}

	now := time.Now().UTC()
	address := &domain.Address{
		ID:          uuid.New().String(),
		TenantID:    ident.TenantID,
		UserID:      ident.UserID,
		Line1:       input.Line1,
		Line2:       input.Line2,
		City:        input.City,
		State:       input.State,
		PostalCode:  input.PostalCode,
		CountryCode: input.CountryCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	// Publish creation event (non-blocking on failure).
	if err := s.producer.PublishAddressCreated(ctx, address); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish address.created event",
			slog.String("address_id", address.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "address created",
		slog.String("tenant_id", ident.TenantID),
		slog.String("user_id", ident.UserID),
		slog.String("address_id", address.ID),
	)

	return address, nil
}

// GetAddress retrieves a single address by ID. Owners may read their own
// addresses; admins may read any address within their tenant.
func (s *AddressService) GetAddress(ctx context.Context, ident domain.Identity, addressID string) (*domain.Address, error) {
	address, err := s.repo.GetByID(ctx, ident.TenantID, addressID)
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}

	if address.UserID != ident.UserID && !ident.IsAdmin() {
		return nil, apperrors.Forbidden("address belongs to a different user")
	}

	return address, nil
}

// ListAddresses returns the caller's addresses in creation order, oldest
// first. Admins may pass forUserID to list another user's addresses within
// the same tenant; non-admins may only list their own.
func (s *AddressService) ListAddresses(ctx context.Context, ident domain.Identity, forUserID string) ([]domain.Address, error) {
	target := ident.UserID
	if forUserID != "" && forUserID != ident.UserID {
		if !ident.IsAdmin() {
			return nil, apperrors.Forbidden("only admins may list another user's addresses")
		}
		target = forUserID
	}

	addresses, err := s.repo.ListByUser(ctx, ident.TenantID, target)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	return addresses, nil
}

// UpdateAddress modifies the content fields of an address owned by the
// caller. Admin capability does not extend to writes. The updated content
// must not collide with another non-deleted address of the same user.
func (s *AddressService) UpdateAddress(ctx context.Context, ident domain.Identity, addressID string, input *UpdateAddressInput) (*domain.Address, error) {
	address, err := s.repo.GetByID(ctx, ident.TenantID, addressID)
	if err != nil {
		return nil, fmt.Errorf("get address for update: %w", err)
	}

	if address.UserID != ident.UserID {
		return nil, apperrors.Forbidden("address belongs to a different user")
	}

	if input.Line1 != nil {
		if *input.Line1 == "" {
			return nil, apperrors.InvalidInput("line1 must not be empty")
		}
		address.Line1 = *input.Line1
	}
	if input.Line2 != nil {
		address.Line2 = *input.Line2
	}
	if input.City != nil {
		if *input.City == "" {
			return nil, apperrors.InvalidInput("city must not be empty")
		}
		address.City = *input.City
	}
	if input.State != nil {
		if *input.State == "" {
			return nil, apperrors.InvalidInput("state must not be empty")
		}
		address.State = *input.State
	}
	if input.PostalCode != nil {
		if *input.PostalCode == "" {
			return nil, apperrors.InvalidInput("postal code must not be empty")
		}
		address.PostalCode = *input.PostalCode
	}
	if input.CountryCode != nil {
		if err := validateCountryCode(*input.CountryCode); err != nil {
			return nil, err
		}
		address.CountryCode = *input.CountryCode
	}

	exists, err := s.repo.ExistsDuplicate(ctx, ident.TenantID, ident.UserID, address.Content(), address.ID)
	if err != nil {
		return nil, fmt.Errorf("check duplicate address: %w", err)
	}
	if exists {
		return nil, apperrors.Duplicate("address")
	}

	address.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	if err := s.producer.PublishAddressUpdated(ctx, address); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish address.updated event",
			slog.String("address_id", address.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "address updated",
		slog.String("tenant_id", ident.TenantID),
		slog.String("user_id", ident.UserID),
		slog.String("address_id", addressID),
	)

	return address, nil
}

// DeleteAddress soft-deletes an address owned by the caller. A deleted
// address disappears from every read path and cannot be restored through the
// API. Deleting it again yields not-found.
func (s *AddressService) DeleteAddress(ctx context.Context, ident domain.Identity, addressID string) error {
	address, err := s.repo.GetByID(ctx, ident.TenantID, addressID)
	if err != nil {
		return fmt.Errorf("get address for delete: %w", err)
	}

	if address.UserID != ident.UserID {
		return apperrors.Forbidden("address belongs to a different user")
	}

	if err := s.repo.SoftDelete(ctx, ident.TenantID, addressID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	if err := s.producer.PublishAddressDeleted(ctx, address); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish address.deleted event",
			slog.String("address_id", addressID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "address deleted",
		slog.String("tenant_id", ident.TenantID),
		slog.String("user_id", ident.UserID),
		slog.String("address_id", addressID),
	)

	return nil
}

// validateCountryCode checks for a 2-letter uppercase ISO 3166-1 code.
func validateCountryCode(code string) error {
	if len(code) != 2 {
		return apperrors.InvalidInput("country code must be a 2-letter ISO code")
	}
	for _, ch := range code {
		if ch < 'A' || ch > 'Z' {
			return apperrors.InvalidInput("country code must be uppercase letters")
		}
	}
	return nil
}
