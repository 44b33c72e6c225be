// Package action keeps a periodic activity signal ("typing...",
// "uploading a photo...") alive on the remote service for the duration of
// a scoped operation, and resolves it to a terminal state on scope exit.
package action

import (
	"context"
	"fmt"
	"strings"

	"github.com/gramkit/gramkit/resolve"
	"github.com/gramkit/gramkit/transport"
	"github.com/gramkit/gramkit/wire"
)

// UnknownTagError reports an activity tag that is not in the alias table.
type UnknownTagError struct {
	Tag string
}

// Error implements error.
func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("no such action %q", e.Tag)
}

// InvalidActionError reports a value that cannot be used as an activity
// descriptor.
type InvalidActionError struct {
	Value any
}

// Error implements error.
func (e *InvalidActionError) Error() string {
	if _, ok := e.Value.(wire.ActivityKind); ok {
		return "activity kind given where a descriptor is required; build one with wire.NewActivity"
	}

	return fmt.Sprintf("cannot use %T as an activity", e.Value)
}

// tagKinds maps string tags (and their aliases) to activity kinds.
var tagKinds = map[string]wire.ActivityKind{
	"typing":   wire.ActivityTyping,
	"contact":  wire.ActivityChooseContact,
	"game":     wire.ActivityPlayGame,
	"location": wire.ActivityPickLocation,

	"record-audio": wire.ActivityRecordAudio,
	"record-voice": wire.ActivityRecordAudio, // alias
	"record-round": wire.ActivityRecordRound,
	"record-video": wire.ActivityRecordVideo,

	"audio": wire.ActivityUploadAudio,
	"voice": wire.ActivityUploadAudio, // alias
	"round": wire.ActivityUploadRound,
	"video": wire.ActivityUploadVideo,

	"photo":    wire.ActivityUploadPhoto,
	"document": wire.ActivityUploadDocument,
	"file":     wire.ActivityUploadDocument, // alias
	"song":     wire.ActivityUploadDocument, // alias

	"cancel": wire.ActivityCancel,
}

// Resolve maps a string tag or a ready descriptor to the activity to
// broadcast. Unknown tags, bare kinds and foreign values are rejected
// here, before any remote call is made.
func Resolve(action any) (*wire.Activity, error) {
	switch v := action.(type) {
	case string:
		kind, ok := tagKinds[strings.ToLower(v)]
		if !ok {
			return nil, &UnknownTagError{Tag: v}
		}

		return wire.NewActivity(kind), nil
	case *wire.Activity:
		if v == nil || !v.Kind.Valid() {
			return nil, &InvalidActionError{Value: v}
		}

		return v, nil
	default:
		return nil, &InvalidActionError{Value: action}
	}
}

// SendCancel issues a single terminal cancel for target, for callers who
// do not want scoped behavior.
func SendCancel(
	ctx context.Context,
	caller transport.Caller,
	resolver resolve.Resolver,
	target any,
) error {
	resolved, err := resolver.ResolveTarget(ctx, target)
	if err != nil {
		return err
	}

	_, err = caller.Invoke(ctx, &wire.ActivityRequest{
		Target:   resolved,
		Activity: wire.NewActivity(wire.ActivityCancel),
	})

	return err
}
