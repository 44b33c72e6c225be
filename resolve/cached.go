package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gramkit/gramkit/cache"
	"github.com/gramkit/gramkit/wire"
)

// Compile-time interface compliance check.
var _ Resolver = (*CachedResolver)(nil)

// CachedResolver memoizes target resolutions in a cache store. Only
// handle and numeric-id references are cacheable; entity objects and
// already-canonical targets pass straight through. Cache failures degrade
// to the wrapped resolver, never to the caller.
type CachedResolver struct {
	log   logrus.FieldLogger
	next  Resolver
	store cache.Store
	ttl   time.Duration
}

// NewCachedResolver wraps next with a cache store.
func NewCachedResolver(
	log logrus.FieldLogger,
	next Resolver,
	store cache.Store,
	ttl time.Duration,
) *CachedResolver {
	return &CachedResolver{
		log:   log.WithField("component", "resolve_cache"),
		next:  next,
		store: store,
		ttl:   ttl,
	}
}

// ResolveTarget resolves via the cache when possible, falling back to the
// wrapped resolver and storing its answer.
func (r *CachedResolver) ResolveTarget(ctx context.Context, ref any) (wire.Target, error) {
	key, ok := cacheKey(ref)
	if !ok {
		return r.next.ResolveTarget(ctx, ref)
	}

	raw, err := r.store.Get(ctx, key)

	switch {
	case err == nil:
		var target wire.Target
		if jerr := json.Unmarshal([]byte(raw), &target); jerr == nil {
			return target, nil
		}

		// Corrupt entry: drop it and resolve fresh.
		_ = r.store.Del(ctx, key)
	case !errors.Is(err, cache.ErrMiss):
		r.log.WithError(err).Warn("Cache lookup failed, resolving directly")
	}

	target, err := r.next.ResolveTarget(ctx, ref)
	if err != nil {
		return wire.Target{}, err
	}

	if data, jerr := json.Marshal(target); jerr == nil {
		if serr := r.store.Set(ctx, key, string(data), r.ttl); serr != nil {
			r.log.WithError(serr).Warn("Failed to cache resolved target")
		}
	}

	return target, nil
}

// ResolveUser delegates to the wrapped resolver. Full entities are not
// cached; they change too often to be worth a TTL.
func (r *CachedResolver) ResolveUser(ctx context.Context, ref any) (*wire.User, error) {
	return r.next.ResolveUser(ctx, ref)
}

func cacheKey(ref any) (string, bool) {
	switch v := ref.(type) {
	case string:
		handle := strings.ToLower(strings.TrimPrefix(v, "@"))
		if handle == "" {
			return "", false
		}

		return "target:handle:" + handle, true
	case int:
		return fmt.Sprintf("target:id:%d", v), true
	case int64:
		return fmt.Sprintf("target:id:%d", v), true
	default:
		return "", false
	}
}
