// Package authz classifies the current caller and exposes capability checks.
//
// Caller classes, in precedence order:
//   - Superadmin: platform operators, never bound to a firm
//   - Company: a firm owner (the tenant itself)
//   - Client: a client portal login, linked to a client record by email
//   - TeamMember: firm staff created by a firm owner
//
// A caller could in principle hold several of these roles; classification is
// deliberately first-match in the order above, and that precedence is the
// policy, not an accident of implementation.
package authz

import (
	"net/http"
	"strings"

	"github.com/lexhub/lexhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role names as stored on user records.
const (
	RoleSuperadmin = "superadmin"
	RoleCompany    = "company"
	RoleClient     = "client"
	RoleTeamMember = "team_member"
)

// Class is the mutually exclusive caller class used by the scope layer.
type Class int

const (
	// Unauthenticated means no signed-in caller; the scope layer passes the
	// query through and relies on the upstream auth gate.
	Unauthenticated Class = iota
	// Superadmin callers bypass all tenant narrowing.
	Superadmin
	// Company callers are firm owners; their ID is the firm ID.
	Company
	// Client callers see rows through their linked client record.
	Client
	// TeamMember callers see rows through case/document assignment.
	TeamMember
	// None is an authenticated caller with no recognized role; visibility
	// falls back to module capabilities.
	None
)

// String returns the class name for logs.
func (c Class) String() string {
	switch c {
	case Unauthenticated:
		return "unauthenticated"
	case Superadmin:
		return "superadmin"
	case Company:
		return "company"
	case Client:
		return "client"
	case TeamMember:
		return "team_member"
	default:
		return "none"
	}
}

// Caller is the authenticated actor as the scope layer sees it: identity,
// role set, capability set, and firm lineage. It is a pure value assembled
// once per request; nothing here touches the database.
type Caller struct {
	Authenticated bool
	ID            primitive.ObjectID
	Email         string
	Type          string
	CreatedBy     *primitive.ObjectID
	Roles         []string
	permissions   map[string]struct{}
}

// NewCaller builds a Caller from raw user state. Used directly in tests;
// request handling goes through FromRequest.
func NewCaller(id primitive.ObjectID, email, typ string, createdBy *primitive.ObjectID, roles, permissions []string) Caller {
	c := Caller{
		Authenticated: true,
		ID:            id,
		Email:         email,
		Type:          typ,
		CreatedBy:     createdBy,
		Roles:         roles,
		permissions:   make(map[string]struct{}, len(permissions)),
	}
	for _, p := range permissions {
		c.permissions[p] = struct{}{}
	}
	return c
}

// FromRequest assembles the Caller from the session user in context.
// Returns a zero (unauthenticated) Caller when no user is signed in or the
// session carries a malformed ID.
func FromRequest(r *http.Request) Caller {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return Caller{}
	}
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		// Session corruption; treat as signed out.
		return Caller{}
	}
	var createdBy *primitive.ObjectID
	if u.CreatedBy != "" {
		if oid, err := primitive.ObjectIDFromHex(u.CreatedBy); err == nil {
			createdBy = &oid
		}
	}
	return NewCaller(id, u.Email, u.Type, createdBy, u.Roles, u.Permissions)
}

// HasRole reports whether the caller holds any of the given role names.
func (c Caller) HasRole(names ...string) bool {
	for _, have := range c.Roles {
		for _, want := range names {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

// Can reports whether the caller holds the named capability. A capability
// that is not registered anywhere is indistinguishable from one the caller
// simply lacks: the answer is false, never an error.
func (c Caller) Can(permission string) bool {
	_, ok := c.permissions[permission]
	return ok
}

// FirmID resolves the caller's effective firm (tenant): a firm owner is its
// own firm, everyone else chases created_by. Superadmins and malformed
// lineages resolve to nil.
func (c Caller) FirmID() *primitive.ObjectID {
	switch Classify(c) {
	case Superadmin, Unauthenticated:
		return nil
	case Company:
		id := c.ID
		return &id
	default:
		return c.CreatedBy
	}
}

// Classify maps a caller to its class using the documented precedence:
// superadmin > company > client > team_member. Team membership is also
// recognized from the account type discriminator ("team_member" exactly, or
// any type containing "team-member", which legacy imports produce).
func Classify(c Caller) Class {
	if !c.Authenticated {
		return Unauthenticated
	}
	switch {
	case c.HasRole(RoleSuperadmin):
		return Superadmin
	case c.HasRole(RoleCompany):
		return Company
	case c.HasRole(RoleClient):
		return Client
	case c.HasRole(RoleTeamMember),
		c.Type == RoleTeamMember,
		strings.Contains(c.Type, "team-member"):
		return TeamMember
	default:
		return None
	}
}
