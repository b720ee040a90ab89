// Package dispatch implements the sharded concurrent dispatcher: N worker
// shards, each owning a round-robin-assigned subset of instruments,
// serializing requests per instrument while imposing no ordering across
// instruments.
package dispatch

import (
	"fmt"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"matchingsim/internal/book"
	"matchingsim/internal/common"
	"matchingsim/internal/matching"
	"matchingsim/internal/observe"
)

// Dispatcher owns one book and one request buffer per instrument, assigned
// round-robin across a fixed pool of worker shards.
type Dispatcher[T any] struct {
	instruments map[common.InstrumentID]*instrumentState[T]
	shards      []*shard[T]
	t           tomb.Tomb
}

// New constructs a dispatcher with numWorkers shards over the given
// instrument set and immediately starts one worker goroutine per shard.
// numWorkers == 0 is a construction error.
func New[T any](
	numWorkers int,
	instruments []common.InstrumentID,
	matcher *matching.Matcher[T],
	obs observe.EventObserver,
) (*Dispatcher[T], error) {
	if numWorkers <= 0 {
		return nil, fmt.Errorf("dispatch: number of workers must be >= 1, got %d", numWorkers)
	}

	d := &Dispatcher[T]{
		instruments: make(map[common.InstrumentID]*instrumentState[T], len(instruments)),
		shards:      make([]*shard[T], numWorkers),
	}
	for i := range d.shards {
		d.shards[i] = &shard[T]{}
	}

	shardIdx := 0
	for _, inst := range instruments {
		state := newInstrumentState[T](inst)
		d.instruments[inst] = state
		d.shards[shardIdx].instruments = append(d.shards[shardIdx].instruments, state)
		shardIdx = (shardIdx + 1) % numWorkers
	}

	for _, s := range d.shards {
		sh := s
		d.t.Go(func() error {
			sh.run(&d.t, matcher, obs)
			return nil
		})
	}

	log.Info().
		Int("workers", numWorkers).
		Int("instruments", len(instruments)).
		Msg("dispatcher started")

	return d, nil
}

// Submit enqueues a value copy of req onto its instrument's buffer.
// Requests for an unknown instrument are silently dropped — callers are
// expected to pre-validate via a NoSuchInstrument check if they need that
// signal.
func (d *Dispatcher[T]) Submit(req common.ClientOrderRequest[T]) {
	state, ok := d.instruments[req.Instrument]
	if !ok {
		return
	}
	state.enqueue(req)
}

// Book returns the live order book for an instrument, for introspection by
// callers (tests, monitoring) that run on the owning shard's behalf or
// accept a benign race with the worker goroutine.
func (d *Dispatcher[T]) Book(instrument common.InstrumentID) (*book.PassiveOrderBook[T], bool) {
	state, ok := d.instruments[instrument]
	if !ok {
		return nil, false
	}
	return state.book, true
}

// Terminate flips the dispatcher's tomb, which every shard worker watches,
// to dying and joins all worker goroutines. In-flight batches already drained complete; requests still
// sitting in a buffer when the flag is observed may be dropped — no flush
// is performed.
func (d *Dispatcher[T]) Terminate() {
	d.t.Kill(nil)
	_ = d.t.Wait()
	log.Info().Msg("dispatcher terminated")
}
