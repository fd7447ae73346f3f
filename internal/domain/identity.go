package domain

// Role is the capability level of a request: a plain owner or an admin.
// Admins may read addresses of other users within their tenant; writes
// remain owner-only.
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// Identity is the authenticated request context propagated by the upstream
// gateway. It is passed explicitly into every service call so the
// authorization boundary is visible in the function signature.
type Identity struct {
	TenantID string
	UserID   string
	Role     Role
}

// IsAdmin reports whether the identity carries the admin capability.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
