package dispatch

import (
	"runtime"
	"sync"

	tomb "gopkg.in/tomb.v2"

	"matchingsim/internal/book"
	"matchingsim/internal/common"
	"matchingsim/internal/matching"
	"matchingsim/internal/observe"
)

// defaultShardQueueCapacity is the initial capacity reserved for each
// instrument's request buffer.
const defaultShardQueueCapacity = 1024

// instrumentState is the (book, buffer) pair a shard owns for one
// instrument: the book needs no synchronization since only this shard's
// worker ever touches it, while the buffer is the sole mutex-guarded
// hand-off point between ingress and the worker loop.
type instrumentState[T any] struct {
	instrument common.InstrumentID
	book       *book.PassiveOrderBook[T]

	mu     sync.Mutex
	buffer []common.ClientOrderRequest[T]
}

func newInstrumentState[T any](instrument common.InstrumentID) *instrumentState[T] {
	return &instrumentState[T]{
		instrument: instrument,
		book:       book.New[T](),
		buffer:     make([]common.ClientOrderRequest[T], 0, defaultShardQueueCapacity),
	}
}

func (s *instrumentState[T]) enqueue(req common.ClientOrderRequest[T]) {
	s.mu.Lock()
	s.buffer = append(s.buffer, req)
	s.mu.Unlock()
}

// drain swaps the buffer's contents out under lock and returns them. The
// returned slice is empty if nothing was pending.
func (s *instrumentState[T]) drain() []common.ClientOrderRequest[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buffer) == 0 {
		return nil
	}
	batch := s.buffer
	s.buffer = make([]common.ClientOrderRequest[T], 0, defaultShardQueueCapacity)
	return batch
}

// shard owns a fixed subset of instruments and serializes requests for each
// of them by processing one instrument's drained batch at a time, in an
// unspecified but deterministic round of its owned instruments:
// per-instrument order is guaranteed, cross-instrument order is not, even
// within the same shard.
type shard[T any] struct {
	instruments []*instrumentState[T]
}

// run drains and processes each owned instrument's buffer in a loop until
// the tomb starts dying. An idle sweep (nothing pending anywhere) yields
// the processor rather than spinning.
func (s *shard[T]) run(t *tomb.Tomb, matcher *matching.Matcher[T], obs observe.EventObserver) {
	for {
		select {
		case <-t.Dying():
			return
		default:
		}

		processedAny := false
		for _, inst := range s.instruments {
			batch := inst.drain()
			if len(batch) == 0 {
				continue
			}
			processedAny = true
			for _, req := range batch {
				matcher.Process(req, inst.book, obs)
			}
		}

		if !processedAny {
			runtime.Gosched()
		}
	}
}
