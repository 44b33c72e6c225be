package wire

// MembersRequest lists a chunk of a channel's members. Offset and Limit
// are mutated in place by the enumeration strategy between chunk loads.
type MembersRequest struct {
	Target Target
	Filter MemberFilter
	Offset int
	Limit  int
}

// Method implements Request.
func (*MembersRequest) Method() string { return "channel.getMembers" }

// MembersPage is one chunk of a channel member listing. Users carries the
// full entity for every Member record in the page.
type MembersPage struct {
	Count   int
	Members []*Member
	Users   []*User
}

func (*MembersPage) isResponse() {}

// ChannelInfoRequest fetches the full metadata of a channel.
type ChannelInfoRequest struct {
	Target Target
}

// Method implements Request.
func (*ChannelInfoRequest) Method() string { return "channel.getFullInfo" }

// ChannelInfo is the subset of channel metadata the client core reads.
type ChannelInfo struct {
	MemberCount int
}

func (*ChannelInfo) isResponse() {}

// GroupInfoRequest fetches the full metadata of a small group, including
// its embedded member list.
type GroupInfoRequest struct {
	GroupID int64
}

// Method implements Request.
func (*GroupInfoRequest) Method() string { return "group.getFullInfo" }

// GroupInfo is the full metadata of a small group. Forbidden is set when
// the caller may not see the member list, in which case Members is empty.
type GroupInfo struct {
	Forbidden bool
	Members   []*Member
	Users     []*User
}

func (*GroupInfo) isResponse() {}

// AuditLogRequest lists a chunk of a channel's audit log, newest first.
// MaxID and Limit are mutated in place between chunk loads.
type AuditLogRequest struct {
	Target Target
	Query  string
	Filter *AuditLogFilter // nil means all categories.
	Actors []Target        // Empty means any actor.
	MaxID  int64
	MinID  int64
	Limit  int
}

// Method implements Request.
func (*AuditLogRequest) Method() string { return "channel.getAuditLog" }

// AuditLogPage is one chunk of audit events plus the auxiliary entity
// lists needed to interpret them.
type AuditLogPage struct {
	Events []*AuditEntry
	Users  []*User
	Chats  []*Chat
}

func (*AuditLogPage) isResponse() {}

// ActivityRequest broadcasts an activity signal to a peer. The Activity
// descriptor is shared by reference so progress updates made after the
// request is built are visible to subsequent sends.
type ActivityRequest struct {
	Target   Target
	Activity *Activity
}

// Method implements Request.
func (*ActivityRequest) Method() string { return "messages.setActivity" }

// Ack is the empty acknowledgement returned by fire-and-forget requests.
type Ack struct{}

func (*Ack) isResponse() {}
