// Package identity adapts the external provider that owns accounts,
// organizations and membership roles. The provider is the source of truth for
// roles and membership; the local store only keeps profile data.
package identity

import "context"

// Organization roles as reported by the provider.
const (
	RoleAdmin  = "org:admin"
	RoleMember = "org:member"
)

// Caller is the per-request identity threaded explicitly into every service
// call.
type Caller struct {
	UserID  string `json:"user_id"` // external account id
	OrgID   string `json:"org_id"`
	OrgRole string `json:"org_role"`
}

// Authenticated reports whether any identity is present.
func (c Caller) Authenticated() bool { return c.UserID != "" }

// InOrg reports whether the caller carries an organization context.
func (c Caller) InOrg() bool { return c.UserID != "" && c.OrgID != "" }

// IsAdmin reports whether the caller administers its current organization.
func (c Caller) IsAdmin() bool { return c.OrgRole == RoleAdmin }

// Profile is the provider-side account data used to seed local User records.
type Profile struct {
	ExternalID string `json:"user_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ImageURL   string `json:"image_url"`
}

// Session is the payload of a verified session token.
type Session struct {
	Caller  Caller
	Profile Profile
}

// Organization is provider-side organization metadata.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Membership binds an external account to an organization with a role.
type Membership struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Provider is the consumed surface of the identity service. Services and
// middleware depend on this interface so tests can substitute a fake.
type Provider interface {
	VerifySession(ctx context.Context, token string) (*Session, error)
	// GetOrganization returns (nil, nil) when the slug is unknown.
	GetOrganization(ctx context.Context, slug string) (*Organization, error)
	ListMembers(ctx context.Context, orgID string) ([]Membership, error)
}
