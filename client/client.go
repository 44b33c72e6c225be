// Package client is the thin façade tying a transport caller and a
// resolver to the enumeration and activity features.
package client

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/gramkit/gramkit/action"
	"github.com/gramkit/gramkit/auditlog"
	"github.com/gramkit/gramkit/config"
	"github.com/gramkit/gramkit/members"
	"github.com/gramkit/gramkit/metrics"
	"github.com/gramkit/gramkit/pager"
	"github.com/gramkit/gramkit/resolve"
	"github.com/gramkit/gramkit/transport"
	"github.com/gramkit/gramkit/version"
)

// Client bundles the collaborators every feature needs.
type Client struct {
	log      logrus.FieldLogger
	caller   transport.Caller
	resolver resolve.Resolver
	cfg      *config.Config
}

// Option customizes a Client.
type Option func(*Client)

// WithConfig applies a loaded configuration. The config must already be
// validated.
func WithConfig(cfg *config.Config) Option {
	return func(c *Client) {
		c.cfg = cfg
	}
}

// WithMetrics wraps the caller with Prometheus instrumentation.
func WithMetrics() Option {
	return func(c *Client) {
		c.caller = metrics.Instrument(c.caller)
	}
}

// New creates a client around an existing caller and resolver.
func New(
	log logrus.FieldLogger,
	caller transport.Caller,
	resolver resolve.Resolver,
	opts ...Option,
) *Client {
	c := &Client{
		log:      log,
		caller:   caller,
		resolver: resolver,
		cfg:      &config.Config{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.log.WithField("version", version.Short()).Debug("gramkit client initialized")

	return c
}

// IterMembers enumerates the members of target lazily.
func (c *Client) IterMembers(target any, limit int, opts members.Options) *pager.Iter[members.Member] {
	return members.Iter(c.log, c.caller, c.resolver, target, limit, opts)
}

// Members collects a member enumeration eagerly.
func (c *Client) Members(
	ctx context.Context,
	target any,
	limit int,
	opts members.Options,
) (*pager.List[members.Member], error) {
	return c.IterMembers(target, limit, opts).Collect(ctx)
}

// IterAuditLog enumerates the audit log of target lazily, newest first.
func (c *Client) IterAuditLog(target any, limit int, opts auditlog.Options) *pager.Iter[*auditlog.Event] {
	return auditlog.Iter(c.log, c.caller, c.resolver, target, limit, opts)
}

// AuditLog collects an audit-log enumeration eagerly.
func (c *Client) AuditLog(
	ctx context.Context,
	target any,
	limit int,
	opts auditlog.Options,
) (*pager.List[*auditlog.Event], error) {
	return c.IterAuditLog(target, limit, opts).Collect(ctx)
}

// Action prepares a scoped activity broadcast for target. act may be a
// string tag (see the action package's alias table) or a
// *wire.Activity. Pass nil cfg to use the configured defaults.
func (c *Client) Action(target any, act any, cfg *action.Config) (*action.Controller, error) {
	resolved := action.Config{
		Delay:      c.cfg.Activity.Delay,
		AutoCancel: c.cfg.Activity.CancelOnExit(),
	}
	if cfg != nil {
		resolved = *cfg
	}

	return action.NewController(c.log, c.caller, c.resolver, target, act, resolved)
}

// CancelAction issues a single terminal cancel for target without scoped
// behavior.
func (c *Client) CancelAction(ctx context.Context, target any) error {
	return action.SendCancel(ctx, c.caller, c.resolver, target)
}
