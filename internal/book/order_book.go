package book

import (
	"github.com/tidwall/btree"

	"matchingsim/internal/common"
)

// PriceLevels is a price-sorted tree of price levels, best price first per
// its comparator. Using a sorted tree plus a per-level contiguous FIFO gives
// O(log P) level access and O(1) amortized per trade within a level.
type PriceLevels[T any] = btree.BTreeG[*PriceLevel[T]]

// PassiveOrderBook is the per-instrument resting-order book: a bid side
// (descending price), an ask side (ascending price), and a client index for
// O(1) cancel.
type PassiveOrderBook[T any] struct {
	Bids *PriceLevels[T]
	Asks *PriceLevels[T]

	// clientOrders provides O(1) ClientID+OrderID -> resting order lookup.
	// Cancellation removes the entry here atomically with zeroing
	// RemainingSize; it never holds a tombstoned order.
	clientOrders map[common.ClientID]map[common.OrderID]*PassiveOrder[T]
}

// New constructs an empty book for one instrument.
func New[T any]() *PassiveOrderBook[T] {
	bids := btree.NewBTreeG(func(a, b *PriceLevel[T]) bool {
		return a.Price > b.Price // descending: best bid (highest price) first
	})
	asks := btree.NewBTreeG(func(a, b *PriceLevel[T]) bool {
		return a.Price < b.Price // ascending: best ask (lowest price) first
	})
	return &PassiveOrderBook[T]{
		Bids:         bids,
		Asks:         asks,
		clientOrders: make(map[common.ClientID]map[common.OrderID]*PassiveOrder[T]),
	}
}

// Place appends a new resting order to the tail of its price level's FIFO.
// Market orders never rest and a zero size is a no-op — both guarded here,
// not by the caller.
func (b *PassiveOrderBook[T]) Place(
	client common.ClientID,
	orderID common.OrderID,
	orderType common.OrderType,
	side common.Side,
	price common.Price,
	size common.Size,
	customFields *T,
) {
	if size == 0 || orderType == common.Market {
		return
	}

	order := &PassiveOrder[T]{
		Client:        client,
		OrderID:       orderID,
		RemainingSize: size,
		CustomFields:  customFields,
	}

	tree := b.Asks
	if side == common.Buy {
		tree = b.Bids
	}

	if level, ok := tree.GetMut(&PriceLevel[T]{Price: price}); ok {
		level.Orders = append(level.Orders, order)
	} else {
		tree.Set(&PriceLevel[T]{Price: price, Orders: []*PassiveOrder[T]{order}})
	}

	orders, ok := b.clientOrders[client]
	if !ok {
		orders = make(map[common.OrderID]*PassiveOrder[T])
		b.clientOrders[client] = orders
	}
	orders[orderID] = order
}

// Cancel zeroes the order's remaining size and drops it from the client
// index. The FIFO entry itself is left in place for lazy removal during the
// next matching sweep. No-op if the order is not found.
func (b *PassiveOrderBook[T]) Cancel(client common.ClientID, orderID common.OrderID) {
	orders, ok := b.clientOrders[client]
	if !ok {
		return
	}
	order, ok := orders[orderID]
	if !ok {
		return
	}
	order.RemainingSize = 0
	delete(orders, orderID)
	if len(orders) == 0 {
		delete(b.clientOrders, client)
	}
}

// OrderExists is a constant-time predicate over the client index.
func (b *PassiveOrderBook[T]) OrderExists(client common.ClientID, orderID common.OrderID) bool {
	orders, ok := b.clientOrders[client]
	if !ok {
		return false
	}
	_, ok = orders[orderID]
	return ok
}

// Lookup returns the resting order for (client, orderID) from the client
// index, if any, so callers can inspect its custom fields or remaining size.
func (b *PassiveOrderBook[T]) Lookup(client common.ClientID, orderID common.OrderID) (*PassiveOrder[T], bool) {
	orders, ok := b.clientOrders[client]
	if !ok {
		return nil, false
	}
	order, ok := orders[orderID]
	return order, ok
}
