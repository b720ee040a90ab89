// Package engine is the top-level construction surface: gluing the
// dispatcher, the matching algorithm and its validator chains, and an
// observer into a single object with a construct/submit/terminate
// lifecycle.
package engine

import (
	"matchingsim/internal/book"
	"matchingsim/internal/common"
	"matchingsim/internal/dispatch"
	"matchingsim/internal/matching"
	"matchingsim/internal/observe"
	"matchingsim/internal/validate"
)

// Engine is a running multi-instrument matching engine.
type Engine[T any] struct {
	dispatcher *dispatch.Dispatcher[T]
}

// New constructs an engine from a fully custom matcher (its own validator
// chains) — the general entry point for callers wiring extension types
// like validate.MinExecQty.
func New[T any](
	numWorkers int,
	instruments []common.InstrumentID,
	matcher *matching.Matcher[T],
	obs observe.EventObserver,
) (*Engine[T], error) {
	d, err := dispatch.New(numWorkers, instruments, matcher, obs)
	if err != nil {
		return nil, err
	}
	return &Engine[T]{dispatcher: d}, nil
}

// NewDefault wires the standard validator set: NoSuchOrderInsertValidator
// on new orders, NoSuchOrderCancelValidator on cancels, and
// NoSelfMatchValidator during matching. No custom order fields are in
// play (T = common.NoExt).
func NewDefault(
	numWorkers int,
	instruments []common.InstrumentID,
	obs observe.EventObserver,
) (*Engine[common.NoExt], error) {
	matcher := matching.New[common.NoExt](
		validate.Chain[common.NoExt]{validate.NoSuchOrderInsertValidator[common.NoExt]},
		validate.Chain[common.NoExt]{validate.NoSuchOrderCancelValidator[common.NoExt]},
		validate.Chain[common.NoExt]{validate.NoSelfMatchValidator[common.NoExt]},
	)
	return New[common.NoExt](numWorkers, instruments, matcher, obs)
}

// NewWithMinExecQty wires the standard validator set plus the
// min-exec-quantity extension: an insert-time check that an order's own
// min-exec-qty does not exceed its size, and a match-time skip of any
// resting order that cannot legally trade the candidate size.
func NewWithMinExecQty(
	numWorkers int,
	instruments []common.InstrumentID,
	obs observe.EventObserver,
) (*Engine[validate.MinExecQty], error) {
	matcher := matching.New[validate.MinExecQty](
		validate.Chain[validate.MinExecQty]{
			validate.NoSuchOrderInsertValidator[validate.MinExecQty],
			validate.MinExecQtyInsertValidator,
		},
		validate.Chain[validate.MinExecQty]{validate.NoSuchOrderCancelValidator[validate.MinExecQty]},
		validate.Chain[validate.MinExecQty]{
			validate.NoSelfMatchValidator[validate.MinExecQty],
			validate.MinExecQtyMatchValidator,
		},
	)
	return New[validate.MinExecQty](numWorkers, instruments, matcher, obs)
}

// Submit enqueues a request (fire-and-forget; all outcomes arrive as
// observer events).
func (e *Engine[T]) Submit(req common.ClientOrderRequest[T]) {
	e.dispatcher.Submit(req)
}

// Book returns the live book for an instrument, if the engine was
// constructed with it.
func (e *Engine[T]) Book(instrument common.InstrumentID) (*book.PassiveOrderBook[T], bool) {
	return e.dispatcher.Book(instrument)
}

// Terminate joins every worker shard. Not graceful with respect to
// buffered-but-undrained requests.
func (e *Engine[T]) Terminate() {
	e.dispatcher.Terminate()
}
