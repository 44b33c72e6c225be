package metrics

import (
	"context"
	"errors"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramkit/gramkit/internal/testutil"
	"github.com/gramkit/gramkit/transport"
	"github.com/gramkit/gramkit/wire"
)

// stubCaller returns canned results and records how it was called.
type stubCaller struct {
	err     error
	invokes int
	batches int
}

func (s *stubCaller) Invoke(_ context.Context, _ wire.Request) (wire.Response, error) {
	s.invokes++

	if s.err != nil {
		return nil, s.err
	}

	return &wire.Ack{}, nil
}

func (s *stubCaller) InvokeBatch(_ context.Context, reqs []wire.Request) ([]wire.Response, error) {
	s.batches++

	if s.err != nil {
		return nil, s.err
	}

	return make([]wire.Response, len(reqs)), nil
}

func TestInstrument_CountsOutcomes(t *testing.T) {
	ctx := testutil.NewTestContext(t)
	req := &wire.ActivityRequest{}

	okBefore := promtestutil.ToFloat64(callsTotal.WithLabelValues(req.Method(), "ok"))
	errBefore := promtestutil.ToFloat64(callsTotal.WithLabelValues(req.Method(), "error"))
	connBefore := promtestutil.ToFloat64(callsTotal.WithLabelValues(req.Method(), "connectivity"))

	t.Run("ok", func(t *testing.T) {
		stub := &stubCaller{}
		caller := Instrument(stub)

		_, err := caller.Invoke(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, 1, stub.invokes)
		assert.Equal(t, okBefore+1, promtestutil.ToFloat64(callsTotal.WithLabelValues(req.Method(), "ok")))
	})

	t.Run("application error", func(t *testing.T) {
		stub := &stubCaller{err: errors.New("rejected")}
		caller := Instrument(stub)

		_, err := caller.Invoke(ctx, req)

		require.Error(t, err)
		assert.Equal(t, errBefore+1, promtestutil.ToFloat64(callsTotal.WithLabelValues(req.Method(), "error")))
	})

	t.Run("connectivity error", func(t *testing.T) {
		stub := &stubCaller{err: &transport.ConnectivityError{Method: req.Method()}}
		caller := Instrument(stub)

		_, err := caller.Invoke(ctx, req)

		require.Error(t, err)
		assert.Equal(t, connBefore+1, promtestutil.ToFloat64(callsTotal.WithLabelValues(req.Method(), "connectivity")))
	})
}

func TestInstrument_BatchCountsPerRequest(t *testing.T) {
	ctx := testutil.NewTestContext(t)
	req := &wire.MembersRequest{}

	before := promtestutil.ToFloat64(callsTotal.WithLabelValues(req.Method(), "ok"))

	stub := &stubCaller{}
	caller := Instrument(stub)

	_, err := caller.InvokeBatch(ctx, []wire.Request{req, req, req})

	require.NoError(t, err)
	assert.Equal(t, 1, stub.batches)
	assert.Equal(t, before+3, promtestutil.ToFloat64(callsTotal.WithLabelValues(req.Method(), "ok")))
}

func TestInstrument_PassesResultsThrough(t *testing.T) {
	ctx := testutil.NewTestContext(t)

	stub := &stubCaller{}
	caller := Instrument(stub)

	resp, err := caller.Invoke(ctx, &wire.ActivityRequest{})

	require.NoError(t, err)
	assert.Equal(t, &wire.Ack{}, resp)
}
