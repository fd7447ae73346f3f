package domain

import (
	"time"
)

// Address represents a shipping address scoped to a tenant and user.
// TenantID and UserID are fixed at creation; only the content fields
// may change afterwards. DeletedAt marks a soft-deleted address, which
// is invisible to every read path.
type Address struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	UserID      string     `json:"user_id"`
	Line1       string     `json:"line1"`
	Line2       string     `json:"line2,omitempty"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	PostalCode  string     `json:"postal_code"`
	CountryCode string     `json:"country_code"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// ContentFields groups the user-editable address fields. Two addresses of the
// same user with equal content fields are considered duplicates.
type ContentFields struct {
	Line1       string
	Line2       string
	City        string
	State       string
	PostalCode  string
	CountryCode string
}

// Content returns the address's content fields for duplicate comparison.
func (a *Address) Content() ContentFields {
	return ContentFields{
		Line1:       a.Line1,
		Line2:       a.Line2,
		City:        a.City,
		State:       a.State,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
	}
}
