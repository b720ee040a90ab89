package observe

import (
	"sync"

	"matchingsim/internal/common"
)

// FanoutObserver is the default observer: it forwards each event to the
// matching client's sink. Unknown client IDs are silently skipped on both
// trade and response events. A brief mutex guards the client map, since
// shards call in concurrently.
type FanoutObserver struct {
	mu      sync.Mutex
	clients map[common.ClientID]ClientSink
}

// NewFanoutObserver constructs an observer with no registered clients.
func NewFanoutObserver() *FanoutObserver {
	return &FanoutObserver{clients: make(map[common.ClientID]ClientSink)}
}

// SetClientMap replaces the full client -> sink mapping.
func (o *FanoutObserver) SetClientMap(clients map[common.ClientID]ClientSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clients = clients
}

// RegisterClient adds or replaces a single client's sink.
func (o *FanoutObserver) RegisterClient(client common.ClientID, sink ClientSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clients[client] = sink
}

func (o *FanoutObserver) sinkFor(client common.ClientID) (ClientSink, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	sink, ok := o.clients[client]
	return sink, ok
}

// OnTrade dispatches to both counterparties' sinks, skipping any unknown
// client IDs.
func (o *FanoutObserver) OnTrade(ev common.TradeEvent) {
	if sink, ok := o.sinkFor(ev.Client1); ok {
		sink.OnTradeEvent(ev.Order1, ev.Instrument, ev.TradePrice, ev.Size)
	}
	if sink, ok := o.sinkFor(ev.Client2); ok {
		sink.OnTradeEvent(ev.Order2, ev.Instrument, ev.TradePrice, ev.Size)
	}
}

// OnRequestResponse dispatches to the requesting client's sink, skipping an
// unknown client ID.
func (o *FanoutObserver) OnRequestResponse(ev common.OrderResponseEvent) {
	if sink, ok := o.sinkFor(ev.Client); ok {
		sink.OnOrderRequestResponse(
			ev.OrderID,
			ev.Instrument,
			ev.OrderPrice,
			ev.OrderSize,
			ev.Result,
			ev.ValidationResponse,
		)
	}
}
