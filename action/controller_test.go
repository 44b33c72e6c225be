package action

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gramkit/gramkit/internal/testutil"
	"github.com/gramkit/gramkit/resolve/mocks"
	"github.com/gramkit/gramkit/transport"
	transportmocks "github.com/gramkit/gramkit/transport/mocks"
	"github.com/gramkit/gramkit/wire"
)

var chatTarget = wire.Target{Kind: wire.TargetChannel, ID: 10}

// sendRecorder tallies periodic and terminal sends behind a mock caller.
type sendRecorder struct {
	mu       sync.Mutex
	periodic []int // progress value carried by each periodic send
	cancels  int
}

func (r *sendRecorder) record(req wire.Request) (wire.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activityReq := req.(*wire.ActivityRequest)
	if activityReq.Activity.Kind == wire.ActivityCancel {
		r.cancels++
	} else {
		r.periodic = append(r.periodic, activityReq.Activity.Progress())
	}

	return &wire.Ack{}, nil
}

func (r *sendRecorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.periodic), r.cancels
}

func (r *sendRecorder) progressValues() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, len(r.periodic))
	copy(out, r.periodic)

	return out
}

func newScope(
	t *testing.T,
	recorder *sendRecorder,
	act any,
	cfg Config,
) *Controller {
	t.Helper()

	ctrl := gomock.NewController(t)

	caller := transportmocks.NewMockCaller(ctrl)
	resolver := mocks.NewMockResolver(ctrl)

	resolver.EXPECT().ResolveTarget(gomock.Any(), "somechat").Return(chatTarget, nil)

	caller.EXPECT().
		Invoke(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req wire.Request) (wire.Response, error) {
			return recorder.record(req)
		}).
		AnyTimes()

	controller, err := NewController(testutil.NewTestLogger(), caller, resolver, "somechat", act, cfg)
	require.NoError(t, err)

	return controller
}

func TestController_PeriodicSendsAndTerminalCancel(t *testing.T) {
	recorder := &sendRecorder{}
	controller := newScope(t, recorder, "typing", Config{
		Delay:      30 * time.Millisecond,
		AutoCancel: true,
	})

	ctx := testutil.NewTestContext(t)

	require.NoError(t, controller.Enter(ctx))

	// Hold the scope across two delay intervals.
	time.Sleep(75 * time.Millisecond)

	require.NoError(t, controller.Exit(ctx))

	periodic, cancels := recorder.counts()
	assert.GreaterOrEqual(t, periodic, 2)
	assert.Equal(t, 1, cancels)

	// The loop is fully stopped before Exit returns: no late send.
	time.Sleep(70 * time.Millisecond)

	periodicAfter, cancelsAfter := recorder.counts()
	assert.Equal(t, periodic, periodicAfter)
	assert.Equal(t, cancels, cancelsAfter)
}

func TestController_NoAutoCancel(t *testing.T) {
	recorder := &sendRecorder{}
	controller := newScope(t, recorder, "typing", Config{
		Delay: 20 * time.Millisecond,
	})

	ctx := testutil.NewTestContext(t)

	require.NoError(t, controller.Enter(ctx))
	require.NoError(t, controller.Exit(ctx))

	_, cancels := recorder.counts()
	assert.Equal(t, 0, cancels)
}

func TestController_ExitIsIdempotent(t *testing.T) {
	recorder := &sendRecorder{}
	controller := newScope(t, recorder, "typing", Config{
		Delay:      20 * time.Millisecond,
		AutoCancel: true,
	})

	ctx := testutil.NewTestContext(t)

	require.NoError(t, controller.Enter(ctx))
	require.NoError(t, controller.Exit(ctx))
	require.NoError(t, controller.Exit(ctx))

	_, cancels := recorder.counts()
	assert.Equal(t, 1, cancels)
}

func TestController_ProgressVisibleToNextSend(t *testing.T) {
	recorder := &sendRecorder{}
	controller := newScope(t, recorder, "photo", Config{
		Delay: 25 * time.Millisecond,
	})

	ctx := testutil.NewTestContext(t)

	require.NoError(t, controller.Enter(ctx))

	controller.Progress(1, 3)

	time.Sleep(60 * time.Millisecond)

	require.NoError(t, controller.Exit(ctx))

	values := recorder.progressValues()
	require.NotEmpty(t, values)
	assert.Contains(t, values, 33)
}

func TestController_ProgressIgnoredForPlainKinds(t *testing.T) {
	recorder := &sendRecorder{}
	controller := newScope(t, recorder, "typing", Config{
		Delay: 20 * time.Millisecond,
	})

	ctx := testutil.NewTestContext(t)

	require.NoError(t, controller.Enter(ctx))

	controller.Progress(1, 2)

	require.NoError(t, controller.Exit(ctx))

	for _, v := range recorder.progressValues() {
		assert.Equal(t, 0, v)
	}
}

func TestController_ConnectivityLossEndsLoopSilently(t *testing.T) {
	ctrl := gomock.NewController(t)

	caller := transportmocks.NewMockCaller(ctrl)
	resolver := mocks.NewMockResolver(ctrl)

	resolver.EXPECT().ResolveTarget(gomock.Any(), "somechat").Return(chatTarget, nil)

	caller.EXPECT().
		Invoke(gomock.Any(), gomock.Any()).
		Return(nil, &transport.ConnectivityError{Method: "messages.setActivity", Err: errors.New("broken pipe")}).
		Times(1)

	controller, err := NewController(testutil.NewTestLogger(), caller, resolver, "somechat", "typing", Config{
		Delay: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx := testutil.NewTestContext(t)

	require.NoError(t, controller.Enter(ctx))

	time.Sleep(50 * time.Millisecond)

	// Connectivity loss is a benign termination, not an error.
	assert.NoError(t, controller.Exit(ctx))
}

func TestController_LoopErrorSurfacesOnExit(t *testing.T) {
	loopErr := errors.New("rate limited")

	ctrl := gomock.NewController(t)

	caller := transportmocks.NewMockCaller(ctrl)
	resolver := mocks.NewMockResolver(ctrl)

	resolver.EXPECT().ResolveTarget(gomock.Any(), "somechat").Return(chatTarget, nil)

	caller.EXPECT().
		Invoke(gomock.Any(), gomock.Any()).
		Return(nil, loopErr).
		Times(1)

	controller, err := NewController(testutil.NewTestLogger(), caller, resolver, "somechat", "typing", Config{
		Delay:      10 * time.Millisecond,
		AutoCancel: true,
	})
	require.NoError(t, err)

	ctx := testutil.NewTestContext(t)

	require.NoError(t, controller.Enter(ctx))

	time.Sleep(30 * time.Millisecond)

	// The loop error wins over the terminal cancel, which is skipped.
	assert.ErrorIs(t, controller.Exit(ctx), loopErr)
}

func TestController_ResolutionFailureAbortsEnter(t *testing.T) {
	ctrl := gomock.NewController(t)

	caller := transportmocks.NewMockCaller(ctrl)
	resolver := mocks.NewMockResolver(ctrl)

	wantErr := errors.New("no such peer")

	resolver.EXPECT().ResolveTarget(gomock.Any(), "somechat").Return(wire.Target{}, wantErr)

	controller, err := NewController(testutil.NewTestLogger(), caller, resolver, "somechat", "typing", Config{})
	require.NoError(t, err)

	assert.ErrorIs(t, controller.Enter(testutil.NewTestContext(t)), wantErr)
}
