package wire

import "fmt"

// MemberFilter narrows which members a MembersRequest returns. It is a
// closed set of variants; some carry a query string the service matches
// server-side.
//
// Note that FilterBanned returns *restricted* members. Fully banned
// (kicked-with-all-restrictions) members are returned by FilterKicked.
// This mirrors the service's own vocabulary.
type MemberFilter interface {
	memberFilter()
}

// FilterRecent selects the most recently active members.
type FilterRecent struct{}

// FilterAdmins selects administrators.
type FilterAdmins struct{}

// FilterBots selects bot accounts.
type FilterBots struct{}

// FilterBanned selects restricted members matching Query.
type FilterBanned struct{ Query string }

// FilterKicked selects fully banned members matching Query.
type FilterKicked struct{ Query string }

// FilterSearch selects members whose name matches Query.
type FilterSearch struct{ Query string }

// FilterContacts selects members who are also contacts, matching Query.
type FilterContacts struct{ Query string }

func (FilterRecent) memberFilter()   {}
func (FilterAdmins) memberFilter()   {}
func (FilterBots) memberFilter()     {}
func (FilterBanned) memberFilter()   {}
func (FilterKicked) memberFilter()   {}
func (FilterSearch) memberFilter()   {}
func (FilterContacts) memberFilter() {}

// FilterKind names a member filter variant without its query payload.
type FilterKind int

const (
	FilterKindRecent FilterKind = iota + 1
	FilterKindAdmins
	FilterKindBots
	FilterKindBanned
	FilterKindKicked
	FilterKindSearch
	FilterKindContacts
)

// FilterFor builds the concrete filter variant for a bare kind, supplying
// an empty query for the variants that require one.
func FilterFor(kind FilterKind) (MemberFilter, error) {
	switch kind {
	case FilterKindRecent:
		return FilterRecent{}, nil
	case FilterKindAdmins:
		return FilterAdmins{}, nil
	case FilterKindBots:
		return FilterBots{}, nil
	case FilterKindBanned:
		return FilterBanned{}, nil
	case FilterKindKicked:
		return FilterKicked{}, nil
	case FilterKindSearch:
		return FilterSearch{}, nil
	case FilterKindContacts:
		return FilterContacts{}, nil
	default:
		return nil, fmt.Errorf("unknown member filter kind %d", kind)
	}
}
