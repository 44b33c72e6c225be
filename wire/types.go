// Package wire holds the typed payloads exchanged with the remote messaging
// service. The serialization of these payloads belongs to the transport
// layer; this package only defines the shapes the client core constructs
// and reads.
package wire

import "strings"

// Request is a typed payload executed against the remote service.
type Request interface {
	Method() string
}

// Response is a typed payload returned by the remote service.
type Response interface {
	isResponse()
}

// TargetKind discriminates the addressable peer kinds the service knows.
type TargetKind int

const (
	// TargetUser is a direct user reference.
	TargetUser TargetKind = iota + 1
	// TargetGroup is a small group whose full member list fits in one
	// info response.
	TargetGroup
	// TargetChannel is a large broadcast-style group that must be
	// enumerated in chunks.
	TargetChannel
)

// Target is the canonical addressable form of a peer, produced by the
// resolver from a loosely-typed reference.
type Target struct {
	Kind       TargetKind
	ID         int64
	AccessHash int64
}

// Entity is anything the service can return in an auxiliary entity list.
type Entity interface {
	EntityID() int64
	DisplayName() string
}

// User is a user entity as returned by the service.
type User struct {
	ID         int64
	AccessHash int64
	FirstName  string
	LastName   string
	Handle     string
	Bot        bool
}

// EntityID returns the user's identifier.
func (u *User) EntityID() int64 { return u.ID }

// DisplayName returns the user's visible name (first + last, trimmed).
func (u *User) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// Chat is a group or channel entity as returned by the service.
type Chat struct {
	ID    int64
	Title string
}

// EntityID returns the chat's identifier.
func (c *Chat) EntityID() int64 { return c.ID }

// DisplayName returns the chat title.
func (c *Chat) DisplayName() string { return c.Title }

// MemberRole describes how a user participates in a group or channel.
type MemberRole string

const (
	RoleMember  MemberRole = "member"
	RoleAdmin   MemberRole = "admin"
	RoleCreator MemberRole = "creator"
	RoleBanned  MemberRole = "banned"
)

// Member ties a user id to its membership record within a group or channel.
type Member struct {
	UserID int64
	Role   MemberRole
	Rank   string // Custom admin title, if any.
}
