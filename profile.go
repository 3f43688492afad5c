package azauth

import (
	"time"

	"github.com/goliatone/go-azauth/codec"
	"github.com/google/uuid"
)

// PlayerProfile is the account record returned by Authenticate and Verify.
// Wire names are the snake_case forms of the field names. UUID is nil for
// accounts without a linked game id.
type PlayerProfile struct {
	ID            int64
	Username      string
	UUID          *uuid.UUID
	EmailVerified bool
	Money         float64
	Role          Role
	Banned        bool
	CreatedAt     time.Time
	AccessToken   string
}

// Role is the website role attached to a profile.
type Role struct {
	ID    int64
	Name  string
	Color codec.Color
}

// HasUUID reports whether the website linked a game UUID to the account.
func (p *PlayerProfile) HasUUID() bool {
	return p != nil && p.UUID != nil && *p.UUID != uuid.Nil
}

// HasRoleColor reports whether the role carries a display color.
func (r Role) HasRoleColor() bool {
	return !r.Color.IsZero()
}
