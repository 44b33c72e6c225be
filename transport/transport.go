// Package transport defines the contract for executing requests against
// the remote messaging service. The client core never talks to the network
// itself; it is handed a Caller.
package transport

//go:generate mockgen -package mocks -destination mocks/mock_caller.go github.com/gramkit/gramkit/transport Caller

import (
	"context"

	"github.com/gramkit/gramkit/wire"
)

// Caller executes requests against the remote messaging service.
//
// InvokeBatch must preserve request order in its response slice: the
// response at index i answers the request at index i. Enumeration
// strategies rely on this when matching cursor descriptors to results.
//
// Transport-level failures are reported as a *ConnectivityError;
// application-level rejections are returned as ordinary errors. Neither is
// retried by the client core.
type Caller interface {
	Invoke(ctx context.Context, req wire.Request) (wire.Response, error)
	InvokeBatch(ctx context.Context, reqs []wire.Request) ([]wire.Response, error)
}
