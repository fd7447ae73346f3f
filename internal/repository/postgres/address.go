package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/utafrali/addressbook/internal/domain"
	apperrors "github.com/utafrali/addressbook/pkg/errors"
)

// DB is the subset of pgxpool.Pool used by the repositories. It is satisfied
// by *pgxpool.Pool and by pgxmock in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AddressRepository implements repository.AddressRepository using PostgreSQL.
//
// Soft delete: rows are never removed; deleted_at marks them invisible. The
// partial unique index on the content columns (WHERE deleted_at IS NULL) is
// the authoritative duplicate guard; a violation surfaces as SQLSTATE 23505.
type AddressRepository struct {
	db DB
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(db DB) *AddressRepository {
	return &AddressRepository{db: db}
}

const addressColumns = `id, tenant_id, user_id, line1, line2, city, state, postal_code, country_code, created_at, updated_at`

// Create inserts a new address into the database.
func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) error {
	query := `
		INSERT INTO addresses (id, tenant_id, user_id, line1, line2, city, state, postal_code, country_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.TenantID,
		a.UserID,
		a.Line1,
		a.Line2,
		a.City,
		a.State,
		a.PostalCode,
		a.CountryCode,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicate("address")
		}
		return fmt.Errorf("insert address: %w", err)
	}

	return nil
}

// GetByID retrieves a non-deleted address by its ID within the tenant.
func (r *AddressRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`

	var a domain.Address
	err := r.db.QueryRow(ctx, query, id, tenantID).Scan(
		&a.ID,
		&a.TenantID,
		&a.UserID,
		&a.Line1,
		&a.Line2,
		&a.City,
		&a.State,
		&a.PostalCode,
		&a.CountryCode,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan address: %w", err)
	}

	return &a, nil
}

// ListByUser returns all non-deleted addresses for the given tenant and user,
// oldest first.
func (r *AddressRepository) ListByUser(ctx context.Context, tenantID, userID string) ([]domain.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE tenant_id = $1 AND user_id = $2 AND deleted_at IS NULL
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID,
			&a.TenantID,
			&a.UserID,
			&a.Line1,
			&a.Line2,
			&a.City,
			&a.State,
			&a.PostalCode,
			&a.CountryCode,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}

	if addresses == nil {
		addresses = []domain.Address{}
	}

	return addresses, nil
}

// ExistsDuplicate reports whether a non-deleted address with identical content
// fields exists for the tenant and user, excluding the given ID when non-empty.
func (r *AddressRepository) ExistsDuplicate(ctx context.Context, tenantID, userID string, c domain.ContentFields, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM addresses
			WHERE tenant_id = $1 AND user_id = $2
			  AND line1 = $3 AND line2 = $4 AND city = $5 AND state = $6
			  AND postal_code = $7 AND country_code = $8
			  AND deleted_at IS NULL
			  AND ($9 = '' OR id <> $9::uuid)
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query,
		tenantID,
		userID,
		c.Line1,
		c.Line2,
		c.City,
		c.State,
		c.PostalCode,
		c.CountryCode,
		excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check duplicate address: %w", err)
	}

	return exists, nil
}

// Update modifies the content fields of an existing non-deleted address.
func (r *AddressRepository) Update(ctx context.Context, a *domain.Address) error {
	query := `
		UPDATE addresses
		SET line1 = $1, line2 = $2, city = $3, state = $4, postal_code = $5,
		    country_code = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9 AND deleted_at IS NULL`

	ct, err := r.db.Exec(ctx, query,
		a.Line1,
		a.Line2,
		a.City,
		a.State,
		a.PostalCode,
		a.CountryCode,
		a.UpdatedAt,
		a.ID,
		a.TenantID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicate("address")
		}
		return fmt.Errorf("update address: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", a.ID)
	}

	return nil
}

// SoftDelete marks an address as deleted. An already-deleted or unknown
// address yields not-found, so a second delete of the same address fails.
func (r *AddressRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	query := `
		UPDATE addresses
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND tenant_id = $3 AND deleted_at IS NULL`

	ct, err := r.db.Exec(ctx, query, time.Now().UTC(), id, tenantID)
	if err != nil {
		return fmt.Errorf("soft delete address: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", id)
	}

	return nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
