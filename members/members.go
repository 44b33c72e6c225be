// Package members implements the membership enumeration strategy: listing
// the members of a target with optional text filtering and an aggressive
// fan-out mode for large channels.
package members

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gramkit/gramkit/pager"
	"github.com/gramkit/gramkit/resolve"
	"github.com/gramkit/gramkit/transport"
	"github.com/gramkit/gramkit/wire"
)

// The service rejects member listing offsets past this many results per
// partition, which is why aggressive mode shards the query space.
const maxChunkSize = 200

const asciiLowercase = "abcdefghijklmnopqrstuvwxyz"

// Member is one produced item: the user entity plus the membership record
// it originated from. Info is nil when the target was a direct user
// reference.
type Member struct {
	User *wire.User
	Info *wire.Member
}

// Options narrow a membership enumeration.
type Options struct {
	// Search matches members by name or handle. In aggressive mode its
	// symbols seed the per-prefix fan-out instead.
	Search string

	// Filter selects a server-side member subset. Build one from a bare
	// kind with wire.FilterFor. Has no effect on small groups or users.
	Filter wire.MemberFilter

	// Aggressive shards the listing into one search-by-prefix query per
	// letter to get past the service's per-listing cap. Ignored when a
	// Filter is given.
	Aggressive bool
}

// Compile-time interface compliance check.
var _ pager.Strategy[Member] = (*strategy)(nil)

type strategy struct {
	log      logrus.FieldLogger
	caller   transport.Caller
	resolver resolve.Resolver
	ref      any
	opts     Options

	target   wire.Target
	match    func(*wire.User) bool
	requests []*wire.MembersRequest
	seen     map[int64]struct{}
}

// Iter enumerates the members of target lazily. Nothing is resolved or
// fetched until the first Next call.
func Iter(
	log logrus.FieldLogger,
	caller transport.Caller,
	resolver resolve.Resolver,
	target any,
	limit int,
	opts Options,
) *pager.Iter[Member] {
	s := &strategy{
		log:      log.WithField("component", "members"),
		caller:   caller,
		resolver: resolver,
		ref:      target,
		opts:     opts,
	}

	return pager.New[Member](s.log, s, limit)
}

func (s *strategy) Init(ctx context.Context, sink *pager.Sink[Member]) (bool, error) {
	target, err := s.resolver.ResolveTarget(ctx, s.ref)
	if err != nil {
		return false, err
	}

	s.target = target
	s.match = s.predicate(target)

	switch target.Kind {
	case wire.TargetChannel:
		return s.initChannel(ctx, sink)
	case wire.TargetGroup:
		return s.initGroup(ctx, sink)
	default:
		return s.initUser(ctx, sink)
	}
}

// predicate decides the in-process text match. The remote service is
// trusted to have filtered already when it ran the search itself: an
// unfiltered channel listing with a search string becomes a server-side
// search filter, so matching locally would be redundant.
func (s *strategy) predicate(target wire.Target) func(*wire.User) bool {
	if s.opts.Search == "" || (s.opts.Filter == nil && target.Kind == wire.TargetChannel) {
		return func(*wire.User) bool { return true }
	}

	search := strings.ToLower(s.opts.Search)

	return func(u *wire.User) bool {
		if strings.Contains(strings.ToLower(u.DisplayName()), search) {
			return true
		}

		// A user without a handle never matches on the handle half.
		return u.Handle != "" && strings.Contains(strings.ToLower(u.Handle), search)
	}
}

func (s *strategy) initChannel(ctx context.Context, sink *pager.Sink[Member]) (bool, error) {
	resp, err := s.caller.Invoke(ctx, &wire.ChannelInfoRequest{Target: s.target})
	if err != nil {
		return false, err
	}

	info, ok := resp.(*wire.ChannelInfo)
	if !ok {
		return false, fmt.Errorf("unexpected response type %T for channel info", resp)
	}

	sink.SetTotal(info.MemberCount)

	if sink.Limit() <= 0 {
		return true, nil
	}

	s.seen = make(map[int64]struct{})

	if s.opts.Aggressive && s.opts.Filter == nil {
		prefixes := s.opts.Search
		if prefixes == "" {
			prefixes = asciiLowercase
		}

		for _, r := range prefixes {
			s.requests = append(s.requests, &wire.MembersRequest{
				Target: s.target,
				Filter: wire.FilterSearch{Query: string(r)},
				Offset: 0,
				Limit:  maxChunkSize,
			})
		}
	} else {
		filter := s.opts.Filter
		if filter == nil {
			filter = wire.FilterSearch{Query: s.opts.Search}
		}

		s.requests = append(s.requests, &wire.MembersRequest{
			Target: s.target,
			Filter: filter,
			Offset: 0,
			Limit:  maxChunkSize,
		})
	}

	return false, nil
}

// initGroup materializes a small group's embedded member list in one info
// call; this kind has no further pages.
func (s *strategy) initGroup(ctx context.Context, sink *pager.Sink[Member]) (bool, error) {
	resp, err := s.caller.Invoke(ctx, &wire.GroupInfoRequest{GroupID: s.target.ID})
	if err != nil {
		return false, err
	}

	info, ok := resp.(*wire.GroupInfo)
	if !ok {
		return false, fmt.Errorf("unexpected response type %T for group info", resp)
	}

	if info.Forbidden {
		sink.SetTotal(0)

		return true, nil
	}

	sink.SetTotal(len(info.Members))

	users := indexUsers(info.Users)

	for _, m := range info.Members {
		user := users[m.UserID]
		if user == nil || !s.match(user) {
			continue
		}

		sink.Push(Member{User: user, Info: m})
	}

	return true, nil
}

func (s *strategy) initUser(ctx context.Context, sink *pager.Sink[Member]) (bool, error) {
	sink.SetTotal(1)

	if sink.Limit() != 0 {
		user, err := s.resolver.ResolveUser(ctx, s.ref)
		if err != nil {
			return false, err
		}

		if s.match(user) {
			sink.Push(Member{User: user})
		}
	}

	return true, nil
}

func (s *strategy) LoadNext(ctx context.Context, sink *pager.Sink[Member]) (bool, error) {
	if len(s.requests) == 0 {
		return true, nil
	}

	// Only the first descriptor is clamped to the overall limit. Small
	// listings have a single descriptor anyway, and the aggressive
	// fan-out is deliberately imprecise about exact counts.
	first := s.requests[0]
	first.Limit = min(sink.Limit()-first.Offset, maxChunkSize)

	if first.Offset > sink.Limit() {
		return true, nil
	}

	batch := make([]wire.Request, len(s.requests))
	for i, req := range s.requests {
		batch[i] = req
	}

	results, err := s.caller.InvokeBatch(ctx, batch)
	if err != nil {
		return false, err
	}

	if len(results) != len(s.requests) {
		return false, fmt.Errorf(
			"batch returned %d responses for %d requests", len(results), len(s.requests),
		)
	}

	// Reverse index order so exhausted descriptors can be dropped while
	// iterating.
	for i := len(s.requests) - 1; i >= 0; i-- {
		page, ok := results[i].(*wire.MembersPage)
		if !ok {
			return false, fmt.Errorf("unexpected response type %T for member listing", results[i])
		}

		if len(page.Users) == 0 {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)

			continue
		}

		s.requests[i].Offset += len(page.Members)

		users := indexUsers(page.Users)

		for _, m := range page.Members {
			user := users[m.UserID]
			if user == nil || !s.match(user) {
				continue
			}

			// Overlapping fan-out partitions produce duplicates; the
			// seen-set keeps each member's first occurrence only.
			if _, dup := s.seen[user.ID]; dup {
				continue
			}

			s.seen[user.ID] = struct{}{}

			sink.Push(Member{User: user, Info: m})
		}
	}

	return false, nil
}

func indexUsers(users []*wire.User) map[int64]*wire.User {
	byID := make(map[int64]*wire.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	return byID
}
