// Package pager implements the generic enumeration engine that turns one
// or more stateful, cursor-advancing remote calls into a single lazy,
// forward-only sequence of items. Concrete enumeration strategies (member
// listing, audit-log listing) plug in behind the Strategy interface.
package pager

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"
)

// Unlimited requests the whole sequence. Anything <= 0 yields an empty
// sequence.
const Unlimited = math.MaxInt

// Strategy prepares and loads chunks for one enumeration.
//
// Init runs exactly once, before the first chunk load. It may fill the
// sink with already materialized items and return complete=true, meaning
// no chunk loading is needed at all.
//
// LoadNext appends the next chunk to the sink and returns exhausted=true
// once no further chunks exist. The items pushed on that final call are
// still yielded.
type Strategy[T any] interface {
	Init(ctx context.Context, sink *Sink[T]) (complete bool, err error)
	LoadNext(ctx context.Context, sink *Sink[T]) (exhausted bool, err error)
}

// Sink is the iterator-owned enumeration state a strategy fills.
type Sink[T any] struct {
	limit      int
	left       int
	total      int
	totalKnown bool
	buffer     []T
}

// Push appends an item to the buffer ahead of consumption.
func (s *Sink[T]) Push(item T) {
	s.buffer = append(s.buffer, item)
}

// SetTotal records the upstream-reported total count for the sequence.
func (s *Sink[T]) SetTotal(total int) {
	s.total = total
	s.totalKnown = true
}

// Limit returns the caller-requested overall limit.
func (s *Sink[T]) Limit() int { return s.limit }

// Left returns how many items the caller may still consume.
func (s *Sink[T]) Left() int { return s.left }

func (s *Sink[T]) reset() {
	s.buffer = s.buffer[:0]
}

// clamp caps the remaining allowance to what is actually buffered, once
// the strategy has declared the sequence fully materialized.
func (s *Sink[T]) clamp() {
	if len(s.buffer) < s.left {
		s.left = len(s.buffer)
	}
}

// Iter is a lazy, finite (or caller-bounded), forward-only, non-restartable
// sequence of items. It is not safe for concurrent use; the enumeration
// runs entirely on the calling goroutine.
type Iter[T any] struct {
	log      logrus.FieldLogger
	strategy Strategy[T]
	sink     *Sink[T]
	idx      int
	item     T
	err      error
	started  bool
	noMore   bool
	done     bool
}

// New builds an iterator over the given strategy. Negative limits are
// treated as zero; pass Unlimited for the whole sequence.
func New[T any](log logrus.FieldLogger, strategy Strategy[T], limit int) *Iter[T] {
	if limit < 0 {
		limit = 0
	}

	return &Iter[T]{
		log:      log,
		strategy: strategy,
		sink: &Sink[T]{
			limit: limit,
			left:  limit,
		},
	}
}

// Next advances the iterator, loading chunks as needed. It returns false
// at the end of the sequence or on error; check Err afterwards.
func (it *Iter[T]) Next(ctx context.Context) bool {
	if it.err != nil || it.done {
		return false
	}

	if !it.started {
		it.started = true

		complete, err := it.strategy.Init(ctx, it.sink)
		if err != nil {
			it.fail(err)

			return false
		}

		if complete {
			it.noMore = true
			it.sink.clamp()
		}
	}

	for {
		if it.sink.left <= 0 {
			it.done = true

			return false
		}

		if it.idx < len(it.sink.buffer) {
			it.item = it.sink.buffer[it.idx]
			it.idx++
			it.sink.left--

			return true
		}

		if it.noMore {
			it.done = true

			return false
		}

		it.idx = 0
		it.sink.reset()

		exhausted, err := it.strategy.LoadNext(ctx, it.sink)
		if err != nil {
			it.fail(err)

			return false
		}

		it.log.WithFields(logrus.Fields{
			"buffered":  len(it.sink.buffer),
			"left":      it.sink.left,
			"exhausted": exhausted,
		}).Debug("Loaded enumeration chunk")

		if exhausted {
			it.noMore = true
			it.sink.clamp()
		}

		if len(it.sink.buffer) == 0 {
			it.done = true

			return false
		}
	}
}

// Item returns the item produced by the last successful Next.
func (it *Iter[T]) Item() T { return it.item }

// Err returns the error that terminated the enumeration, if any.
func (it *Iter[T]) Err() error { return it.err }

// Total returns the upstream-reported total count, when known. It is
// populated during strategy initialization, so it is only meaningful once
// Next has been called at least once.
func (it *Iter[T]) Total() (int, bool) {
	return it.sink.total, it.sink.totalKnown
}

// Collect drains the remaining sequence eagerly, preserving yield order.
// The returned list carries the upstream total when known, falling back
// to the number of collected items.
func (it *Iter[T]) Collect(ctx context.Context) (*List[T], error) {
	items := make([]T, 0)

	for it.Next(ctx) {
		items = append(items, it.Item())
	}

	if err := it.Err(); err != nil {
		return nil, err
	}

	total, known := it.Total()
	if !known {
		total = len(items)
	}

	return &List[T]{Items: items, Total: total}, nil
}

func (it *Iter[T]) fail(err error) {
	it.err = err
	it.done = true
}

// List is an ordered collection annotated with the upstream-reported
// total, which may exceed len(Items) when the enumeration was bounded.
type List[T any] struct {
	Items []T
	Total int
}
