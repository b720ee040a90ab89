// Package observe is the engine's sole output boundary: a capability with
// two methods, invoked concurrently from every dispatcher shard and
// expected to synchronize its own state.
package observe

import "matchingsim/internal/common"

// EventObserver receives trade and request-response events from the
// matching algorithm. Implementations must be safe for concurrent calls
// from multiple shard goroutines.
type EventObserver interface {
	OnTrade(common.TradeEvent)
	OnRequestResponse(common.OrderResponseEvent)
}

// ClientSink is the external per-client collaborator: whatever owns the
// client's session delivers trade and response events onward (e.g. over a
// wire protocol, a UI update, or a test spy). It is outside the engine's
// concerns entirely.
type ClientSink interface {
	OnTradeEvent(orderID common.OrderID, instrument common.InstrumentID, price common.Price, size common.Size)
	OnOrderRequestResponse(
		orderID common.OrderID,
		instrument common.InstrumentID,
		orderPrice common.Price,
		orderSize common.Size,
		result common.RequestResult,
		validation common.ValidationResponse,
	)
}
