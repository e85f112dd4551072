package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an authenticated actor: a superadmin, a firm owner (the "company"
// role), a team member, or a client portal login.
//
// Roles is the named role set ("superadmin", "company", "client",
// "team_member"). Type is a free-form account discriminator kept alongside
// the role set; legacy imports carry values like "team_member" or
// "senior-team-member", which is why role classification also inspects it.
//
// CreatedBy is the owning firm's ID (nil for firm owners and superadmins).
// Permissions is the flat set of capability names granted to this user
// (e.g. "manage-own-cases"); a name absent from the set is simply not held,
// whether or not it is registered anywhere.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	FullName     string              `bson:"full_name"`
	Email        string              `bson:"email"`
	Roles        []string            `bson:"roles"`
	Type         string              `bson:"type,omitempty"`
	CreatedBy    *primitive.ObjectID `bson:"created_by,omitempty"`
	Permissions  []string            `bson:"permissions,omitempty"`
	PasswordHash string              `bson:"password_hash,omitempty"`
	AuthMethod   string              `bson:"auth_method,omitempty"` // password, google
	Lang         string              `bson:"lang,omitempty"`
	Status       string              `bson:"status"` // active, disabled
	CreatedAt    time.Time           `bson:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at"`
}

// HasRole reports whether the user holds any of the given role names.
func (u *User) HasRole(names ...string) bool {
	for _, have := range u.Roles {
		for _, want := range names {
			if have == want {
				return true
			}
		}
	}
	return false
}
