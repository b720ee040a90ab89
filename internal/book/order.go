// Package book implements the per-instrument passive order book: two
// price-sorted sides, each a FIFO of resting orders, plus an O(1)
// client-order lookup with lazy cancellation.
package book

import "matchingsim/internal/common"

// PassiveOrder is a resting order. Its (Client, OrderID) pair is its
// identity key. RemainingSize is the only mutable field; a transition to 0
// marks it tombstoned — still physically present in its price level's FIFO
// until the next matching sweep discards it lazily.
type PassiveOrder[T any] struct {
	Client        common.ClientID
	OrderID       common.OrderID
	RemainingSize common.Size
	CustomFields  *T
}

// Tombstoned reports whether this resting order has been fully filled or
// cancelled but not yet physically swept from its FIFO.
func (o *PassiveOrder[T]) Tombstoned() bool {
	return o.RemainingSize == 0
}

// PriceLevel holds every resting order at a single price on a single side,
// in insertion (time-priority) order.
type PriceLevel[T any] struct {
	Price  common.Price
	Orders []*PassiveOrder[T]
}
