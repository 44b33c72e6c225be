// Package auditlog implements the audit-log enumeration strategy: walking
// a channel's moderation events newest to oldest with a backward cursor.
package auditlog

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gramkit/gramkit/pager"
	"github.com/gramkit/gramkit/resolve"
	"github.com/gramkit/gramkit/transport"
	"github.com/gramkit/gramkit/wire"
)

const maxChunkSize = 100

// Categories selects audit event categories by their external names.
//
// The service's own vocabulary is shifted by one degree of severity:
// what it calls a "ban" is a partial restriction, and what it calls a
// "kick" is a full ban. Restrict/Ban below use the external names; the
// mapping onto the service's flags is fixed and must not be changed.
type Categories struct {
	Join   bool
	Leave  bool
	Invite bool

	// Restrict selects partial-restriction events (the service's "ban").
	Restrict bool
	// Unrestrict selects restriction removals (the service's "unban").
	Unrestrict bool
	// Ban selects full bans, i.e. all permissions removed (the
	// service's "kick").
	Ban bool
	// Unban selects full-ban removals (the service's "unkick").
	Unban bool

	Promote  bool
	Demote   bool
	Info     bool
	Settings bool
	Pinned   bool
	Edit     bool
	Delete   bool
}

func (c Categories) anySet() bool {
	return c != Categories{}
}

// wireFilter maps external category names onto the service's flags.
func (c Categories) wireFilter() *wire.AuditLogFilter {
	return &wire.AuditLogFilter{
		Join:     c.Join,
		Leave:    c.Leave,
		Invite:   c.Invite,
		Ban:      c.Restrict,
		Unban:    c.Unrestrict,
		Kick:     c.Ban,
		Unkick:   c.Unban,
		Promote:  c.Promote,
		Demote:   c.Demote,
		Info:     c.Info,
		Settings: c.Settings,
		Pinned:   c.Pinned,
		Edit:     c.Edit,
		Delete:   c.Delete,
	}
}

// Options narrow an audit-log enumeration.
type Options struct {
	// Query is a free-text search string applied server-side.
	Query string

	// Categories limits the event categories returned. The zero value
	// returns every category.
	Categories Categories

	// Actors limits events to those caused by these references.
	Actors []any

	// MinID and MaxID bound the event id range: events with id <= MinID
	// or >= MaxID are excluded.
	MinID int64
	MaxID int64
}

// Event is a produced audit event: the raw entry plus the auxiliary
// entity lookup from the batch it arrived in.
type Event struct {
	Entry *wire.AuditEntry

	entities map[int64]wire.Entity
}

// ID returns the event id.
func (e *Event) ID() int64 { return e.Entry.ID }

// Actor returns the user responsible for the event, when known.
func (e *Event) Actor() *wire.User {
	user, _ := e.entities[e.Entry.ActorID].(*wire.User)

	return user
}

// Entity looks up any entity referenced by the event.
func (e *Event) Entity(id int64) wire.Entity {
	return e.entities[id]
}

// Compile-time interface compliance check.
var _ pager.Strategy[*Event] = (*strategy)(nil)

type strategy struct {
	log      logrus.FieldLogger
	caller   transport.Caller
	resolver resolve.Resolver
	ref      any
	opts     Options

	req *wire.AuditLogRequest
}

// Iter enumerates the audit log of target lazily, newest events first.
func Iter(
	log logrus.FieldLogger,
	caller transport.Caller,
	resolver resolve.Resolver,
	target any,
	limit int,
	opts Options,
) *pager.Iter[*Event] {
	s := &strategy{
		log:      log.WithField("component", "auditlog"),
		caller:   caller,
		resolver: resolver,
		ref:      target,
		opts:     opts,
	}

	return pager.New[*Event](s.log, s, limit)
}

func (s *strategy) Init(ctx context.Context, _ *pager.Sink[*Event]) (bool, error) {
	var filter *wire.AuditLogFilter
	if s.opts.Categories.anySet() {
		filter = s.opts.Categories.wireFilter()
	}

	target, err := s.resolver.ResolveTarget(ctx, s.ref)
	if err != nil {
		return false, err
	}

	actors := make([]wire.Target, 0, len(s.opts.Actors))

	for _, ref := range s.opts.Actors {
		actor, err := s.resolver.ResolveTarget(ctx, ref)
		if err != nil {
			return false, err
		}

		actors = append(actors, actor)
	}

	// Limit starts as a placeholder; each chunk load recomputes it from
	// the caller's remaining allowance.
	s.req = &wire.AuditLogRequest{
		Target: target,
		Query:  s.opts.Query,
		Filter: filter,
		Actors: actors,
		MinID:  s.opts.MinID,
		MaxID:  s.opts.MaxID,
		Limit:  0,
	}

	return false, nil
}

func (s *strategy) LoadNext(ctx context.Context, sink *pager.Sink[*Event]) (bool, error) {
	s.req.Limit = min(sink.Left(), maxChunkSize)

	resp, err := s.caller.Invoke(ctx, s.req)
	if err != nil {
		return false, err
	}

	page, ok := resp.(*wire.AuditLogPage)
	if !ok {
		return false, fmt.Errorf("unexpected response type %T for audit log", resp)
	}

	entities := make(map[int64]wire.Entity, len(page.Users)+len(page.Chats))

	for _, u := range page.Users {
		entities[u.EntityID()] = u
	}

	for _, c := range page.Chats {
		entities[c.EntityID()] = c
	}

	// Lower the cursor to the oldest id in the batch so the next call
	// requests strictly older events.
	s.req.MaxID = oldestID(page.Events)

	for _, entry := range page.Events {
		switch entry.Action.Kind {
		case wire.AuditActionEditMessage:
			bindMessage(entry.Action.PrevMessage, entities)
			bindMessage(entry.Action.NewMessage, entities)
		case wire.AuditActionDeleteMessage:
			bindMessage(entry.Action.Message, entities)
		}

		sink.Push(&Event{Entry: entry, entities: entities})
	}

	if len(page.Events) < s.req.Limit {
		return true, nil
	}

	return false, nil
}

func oldestID(events []*wire.AuditEntry) int64 {
	var oldest int64

	for _, ev := range events {
		if oldest == 0 || ev.ID < oldest {
			oldest = ev.ID
		}
	}

	return oldest
}

// bindMessage attaches sender and chat context from the batch's entity
// lookup to a message embedded in an event action.
func bindMessage(msg *wire.Message, entities map[int64]wire.Entity) {
	if msg == nil {
		return
	}

	if user, ok := entities[msg.SenderID].(*wire.User); ok {
		msg.Sender = user
	}

	if chat, ok := entities[msg.ChatID].(*wire.Chat); ok {
		msg.Chat = chat
	}
}
