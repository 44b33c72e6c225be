package wire

import "time"

// AuditLogFilter selects which audit event categories a query returns.
// Field names follow the service's vocabulary, which differs from the
// external one: the service calls a partial restriction "ban" and a full
// ban "kick". The auditlog package owns the external-name mapping.
type AuditLogFilter struct {
	Join     bool
	Leave    bool
	Invite   bool
	Ban      bool
	Unban    bool
	Kick     bool
	Unkick   bool
	Promote  bool
	Demote   bool
	Info     bool
	Settings bool
	Pinned   bool
	Edit     bool
	Delete   bool
}

// AuditActionKind discriminates the audit event action payloads.
type AuditActionKind int

const (
	AuditActionOther AuditActionKind = iota
	AuditActionMemberJoin
	AuditActionMemberLeave
	AuditActionEditMessage
	AuditActionDeleteMessage
	AuditActionChangeInfo
	AuditActionPinMessage
	AuditActionPromote
)

// AuditAction is the action payload of a single audit event. Only the
// message-bearing kinds populate the message fields.
type AuditAction struct {
	Kind AuditActionKind

	// Set for AuditActionEditMessage.
	PrevMessage *Message
	NewMessage  *Message

	// Set for AuditActionDeleteMessage.
	Message *Message
}

// AuditEntry is a raw audit event as returned by the service.
type AuditEntry struct {
	ID      int64
	Date    time.Time
	ActorID int64
	Action  AuditAction
}

// Message is a message referenced by an audit event. Sender and Chat are
// left nil on the wire and attached from the event's auxiliary entity
// lists during enumeration.
type Message struct {
	ID       int64
	SenderID int64
	ChatID   int64
	Text     string

	Sender *User
	Chat   *Chat
}
