package domain

import "time"

// AnonymousUserID is recorded as the actor when no caller is identified.
const AnonymousUserID = "000000000000000000000000"

// User is a member of the system. Users are managed elsewhere; this service only reads them.
type User struct {
	ID        string
	Name      string
	Title     string
	Role      string
	Email     string
	IsAdmin   bool
	IsActive  bool
	CreatedAt time.Time
}

// Caller is the authenticated user on whose behalf an operation runs.
type Caller struct {
	UserID  string
	IsAdmin bool
}

// ActorID returns the caller's user id, or AnonymousUserID for a nil caller.
func (c *Caller) ActorID() string {
	if c == nil || c.UserID == "" {
		return AnonymousUserID
	}
	return c.UserID
}
