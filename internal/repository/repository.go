package repository

import (
	"context"

	"github.com/utafrali/addressbook/internal/domain"
)

// AddressRepository defines the interface for address persistence operations.
// All lookups are tenant-scoped and exclude soft-deleted rows.
type AddressRepository interface {
	// Create inserts a new address into the store. A unique-constraint
	// violation on the content fields is returned as a duplicate error.
	Create(ctx context.Context, address *domain.Address) error

	// GetByID retrieves a non-deleted address by its identifier within the tenant.
	GetByID(ctx context.Context, tenantID, id string) (*domain.Address, error)

	// ListByUser returns all non-deleted addresses for the given tenant and
	// user in creation order (oldest first).
	ListByUser(ctx context.Context, tenantID, userID string) ([]domain.Address, error)

	// ExistsDuplicate reports whether a non-deleted address with identical
	// content fields already exists for the tenant and user. excludeID, when
	// non-empty, is left out of the search (used by update).
	ExistsDuplicate(ctx context.Context, tenantID, userID string, content domain.ContentFields, excludeID string) (bool, error)

	// Update modifies the content fields of an existing address.
	Update(ctx context.Context, address *domain.Address) error

	// SoftDelete marks an address as deleted. Deleting an already-deleted or
	// unknown address returns a not-found error.
	SoftDelete(ctx context.Context, tenantID, id string) error
}
