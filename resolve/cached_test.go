package resolve_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gramkit/gramkit/cache"
	"github.com/gramkit/gramkit/internal/testutil"
	"github.com/gramkit/gramkit/resolve"
	"github.com/gramkit/gramkit/resolve/mocks"
	"github.com/gramkit/gramkit/wire"
)

func newTestStore(t *testing.T) cache.Store {
	t.Helper()

	mr := miniredis.RunT(t)

	cfg := cache.Config{Address: mr.Addr()}
	require.NoError(t, cfg.Validate())

	store := cache.NewStore(testutil.NewTestLogger(), cfg)
	require.NoError(t, store.Start(testutil.NewTestContext(t)))

	t.Cleanup(func() {
		_ = store.Stop()
	})

	return store
}

func TestCachedResolver_MemoizesHandles(t *testing.T) {
	target := wire.Target{Kind: wire.TargetChannel, ID: 10, AccessHash: 99}

	ctrl := gomock.NewController(t)
	next := mocks.NewMockResolver(ctrl)

	// Only the first lookup reaches the wrapped resolver.
	next.EXPECT().ResolveTarget(gomock.Any(), "@Somewhere").Return(target, nil).Times(1)

	cached := resolve.NewCachedResolver(testutil.NewTestLogger(), next, newTestStore(t), time.Minute)

	ctx := testutil.NewTestContext(t)

	first, err := cached.ResolveTarget(ctx, "@Somewhere")
	require.NoError(t, err)
	assert.Equal(t, target, first)

	second, err := cached.ResolveTarget(ctx, "@Somewhere")
	require.NoError(t, err)
	assert.Equal(t, target, second)
}

func TestCachedResolver_NumericIDsAreCacheable(t *testing.T) {
	target := wire.Target{Kind: wire.TargetUser, ID: 7}

	ctrl := gomock.NewController(t)
	next := mocks.NewMockResolver(ctrl)

	next.EXPECT().ResolveTarget(gomock.Any(), int64(7)).Return(target, nil).Times(1)

	cached := resolve.NewCachedResolver(testutil.NewTestLogger(), next, newTestStore(t), time.Minute)

	ctx := testutil.NewTestContext(t)

	for range 3 {
		got, err := cached.ResolveTarget(ctx, int64(7))
		require.NoError(t, err)
		assert.Equal(t, target, got)
	}
}

func TestCachedResolver_EntityRefsPassThrough(t *testing.T) {
	ref := &wire.User{ID: 7}
	target := wire.Target{Kind: wire.TargetUser, ID: 7}

	ctrl := gomock.NewController(t)
	next := mocks.NewMockResolver(ctrl)

	// Entity references are not cacheable; every call goes through.
	next.EXPECT().ResolveTarget(gomock.Any(), ref).Return(target, nil).Times(2)

	cached := resolve.NewCachedResolver(testutil.NewTestLogger(), next, newTestStore(t), time.Minute)

	ctx := testutil.NewTestContext(t)

	for range 2 {
		got, err := cached.ResolveTarget(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, target, got)
	}
}

func TestCachedResolver_ResolutionErrorNotCached(t *testing.T) {
	wantErr := &resolve.NotResolvedError{Ref: "@gone"}

	ctrl := gomock.NewController(t)
	next := mocks.NewMockResolver(ctrl)

	next.EXPECT().ResolveTarget(gomock.Any(), "@gone").Return(wire.Target{}, wantErr).Times(2)

	cached := resolve.NewCachedResolver(testutil.NewTestLogger(), next, newTestStore(t), time.Minute)

	ctx := testutil.NewTestContext(t)

	for range 2 {
		_, err := cached.ResolveTarget(ctx, "@gone")
		assert.True(t, resolve.IsNotResolved(err))
	}
}

func TestCachedResolver_UserLookupsDelegate(t *testing.T) {
	user := &wire.User{ID: 7, FirstName: "Someone"}

	ctrl := gomock.NewController(t)
	next := mocks.NewMockResolver(ctrl)

	next.EXPECT().ResolveUser(gomock.Any(), "@someone").Return(user, nil).Times(2)

	cached := resolve.NewCachedResolver(testutil.NewTestLogger(), next, newTestStore(t), time.Minute)

	ctx := testutil.NewTestContext(t)

	for range 2 {
		got, err := cached.ResolveUser(ctx, "@someone")
		require.NoError(t, err)
		assert.Equal(t, user, got)
	}
}
