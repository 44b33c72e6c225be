package action

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gramkit/gramkit/resolve"
	"github.com/gramkit/gramkit/transport"
	"github.com/gramkit/gramkit/wire"
)

// DefaultDelay is the pause between periodic sends when none is configured.
const DefaultDelay = 4 * time.Second

// Config controls a scoped activity broadcast.
type Config struct {
	// Delay is the pause between periodic sends. Defaults to DefaultDelay.
	Delay time.Duration

	// AutoCancel sends one terminal cancel on Exit, regardless of which
	// activity kind was being broadcast.
	AutoCancel bool
}

// Controller manages one periodic activity broadcast as a cancellable
// background task bound to an Enter/Exit scope. A controller is single
// use: Enter once, Exit once (Exit is idempotent).
type Controller struct {
	log      logrus.FieldLogger
	caller   transport.Caller
	resolver resolve.Resolver
	ref      any
	activity *wire.Activity
	delay    time.Duration
	auto     bool

	target wire.Target
	req    *wire.ActivityRequest
	done   chan struct{}
	stop   sync.Once
	wg     sync.WaitGroup

	mu      sync.Mutex
	entered bool
	exited  bool
	loopErr error
}

// NewController validates the action up front (invalid input is rejected
// here, never mid-loop) and prepares a controller. Nothing is sent until
// Enter.
func NewController(
	log logrus.FieldLogger,
	caller transport.Caller,
	resolver resolve.Resolver,
	target any,
	act any,
	cfg Config,
) (*Controller, error) {
	activity, err := Resolve(act)
	if err != nil {
		return nil, err
	}

	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}

	return &Controller{
		log: log.WithFields(logrus.Fields{
			"component":   "action",
			"instance_id": uuid.New().String(),
		}),
		caller:   caller,
		resolver: resolver,
		ref:      target,
		activity: activity,
		delay:    cfg.Delay,
		auto:     cfg.AutoCancel,
		done:     make(chan struct{}),
	}, nil
}

// Enter resolves the target, builds the persistent request and starts the
// periodic broadcast loop.
func (c *Controller) Enter(ctx context.Context) error {
	c.mu.Lock()
	if c.entered {
		c.mu.Unlock()

		return errors.New("controller already entered")
	}

	c.entered = true
	c.mu.Unlock()

	target, err := c.resolver.ResolveTarget(ctx, c.ref)
	if err != nil {
		return err
	}

	c.target = target

	// Built once and reused. The activity descriptor is shared by
	// reference, so progress updates mutate the same object the next
	// periodic send transmits.
	c.req = &wire.ActivityRequest{Target: target, Activity: c.activity}

	c.wg.Add(1)

	go c.loop(ctx)

	c.log.WithFields(logrus.Fields{
		"kind":  c.activity.Kind.String(),
		"delay": c.delay,
	}).Debug("Started activity broadcast")

	return nil
}

func (c *Controller) loop(ctx context.Context) {
	defer c.wg.Done()

	for {
		if _, err := c.caller.Invoke(ctx, c.req); err != nil {
			switch {
			case transport.IsConnectivity(err):
				// Keeping the signal alive is meaningless once
				// connectivity is lost.
				c.log.WithError(err).Debug("Activity broadcast ended: connectivity lost")
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				// Expected exit path during scope teardown.
			default:
				c.mu.Lock()
				c.loopErr = err
				c.mu.Unlock()
			}

			return
		}

		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case <-time.After(c.delay):
		}
	}
}

// Exit stops the broadcast loop, waits for it to fully stop, then (if
// auto-cancel is configured) sends exactly one terminal cancel. Any
// non-benign error the loop hit is surfaced here. Calling Exit more than
// once is safe; only the first call does the work.
func (c *Controller) Exit(ctx context.Context) error {
	c.stop.Do(func() {
		close(c.done)
	})

	c.wg.Wait()

	c.mu.Lock()
	first := c.entered && !c.exited
	c.exited = true
	err := c.loopErr
	c.loopErr = nil
	c.mu.Unlock()

	if !first {
		return nil
	}

	if err != nil {
		return err
	}

	if c.auto {
		_, err := c.caller.Invoke(ctx, &wire.ActivityRequest{
			Target:   c.target,
			Activity: wire.NewActivity(wire.ActivityCancel),
		})
		if err != nil {
			return fmt.Errorf("send terminal cancel: %w", err)
		}

		c.log.Debug("Sent terminal cancel")
	}

	return nil
}

// Progress records the percentage current/total on the shared activity
// descriptor; the next periodic send transmits it. No-op when the active
// kind does not support progress or total is not positive.
func (c *Controller) Progress(current, total int) {
	if total <= 0 {
		return
	}

	pct := int(math.Round(100 * float64(current) / float64(total)))
	c.activity.SetProgress(pct)
}
