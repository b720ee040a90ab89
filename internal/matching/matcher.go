// Package matching implements the price-time priority matching algorithm:
// new-order and cancel-request handlers that mutate a per-instrument book
// and emit trade/response events through an observer.
package matching

import (
	"matchingsim/internal/book"
	"matchingsim/internal/common"
	"matchingsim/internal/observe"
	"matchingsim/internal/validate"
)

// Matcher is a price-time priority matching algorithm configured with three
// validator chains, composed at construction.
type Matcher[T any] struct {
	NewValidators    validate.Chain[T]
	CancelValidators validate.Chain[T]
	MatchValidators  validate.Chain[T]
}

// New builds a matcher from its three validator chains. A nil chain behaves
// as an always-NoError chain.
func New[T any](newValidators, cancelValidators, matchValidators validate.Chain[T]) *Matcher[T] {
	return &Matcher[T]{
		NewValidators:    newValidators,
		CancelValidators: cancelValidators,
		MatchValidators:  matchValidators,
	}
}

// Process dispatches a request to its new-order or cancel-request handler.
func (m *Matcher[T]) Process(
	req common.ClientOrderRequest[T],
	passiveBook *book.PassiveOrderBook[T],
	obs observe.EventObserver,
) {
	switch req.Action {
	case common.New:
		m.processNew(req, passiveBook, obs)
	case common.Cancel:
		m.processCancel(req, passiveBook, obs)
	}
}

func (m *Matcher[T]) processNew(
	req common.ClientOrderRequest[T],
	passiveBook *book.PassiveOrderBook[T],
	obs observe.EventObserver,
) {
	validation := m.NewValidators.Validate(req, passiveBook, nil)

	result := common.Ack
	if validation != common.NoError {
		result = common.Nack
	}
	obs.OnRequestResponse(common.OrderResponseEvent{
		Client:             req.Client,
		OrderID:            req.OrderID,
		Instrument:         req.Instrument,
		OrderPrice:         req.Price,
		OrderSize:          req.Size,
		Result:             result,
		ValidationResponse: validation,
	})
	if validation != common.NoError {
		return
	}

	// effective is a working copy: market price substitution and
	// remaining-size decrement happen here, never on the caller's req.
	effective := req
	if effective.OrderType == common.Market {
		if effective.Side == common.Buy {
			effective.Price = common.MaxPrice
		} else {
			effective.Price = common.MinPrice
		}
	}

	var outcome common.ValidationResponse
	if effective.Side == common.Buy {
		outcome = m.executeOrder(&effective, passiveBook.Asks, passiveBook, obs,
			func(levelPrice common.Price) bool { return levelPrice > effective.Price })
	} else {
		outcome = m.executeOrder(&effective, passiveBook.Bids, passiveBook, obs,
			func(levelPrice common.Price) bool { return levelPrice < effective.Price })
	}

	if outcome == common.NoError && req.OrderType == common.Limit && effective.Size > 0 {
		passiveBook.Place(req.Client, req.OrderID, req.OrderType, req.Side, req.Price, effective.Size, req.CustomFields)
	}

	if outcome != common.NoError && outcome != common.ContinueWithoutMatching {
		obs.OnRequestResponse(common.OrderResponseEvent{
			Client:             req.Client,
			OrderID:            req.OrderID,
			Instrument:         req.Instrument,
			OrderPrice:         effective.Price,
			OrderSize:          effective.Size,
			Result:             common.Nack,
			ValidationResponse: outcome,
		})
	}
}

func (m *Matcher[T]) processCancel(
	req common.ClientOrderRequest[T],
	passiveBook *book.PassiveOrderBook[T],
	obs observe.EventObserver,
) {
	validation := m.CancelValidators.Validate(req, passiveBook, nil)

	result := common.Ack
	if validation != common.NoError {
		result = common.Nack
	}
	obs.OnRequestResponse(common.OrderResponseEvent{
		Client:             req.Client,
		OrderID:            req.OrderID,
		Instrument:         req.Instrument,
		OrderPrice:         req.Price,
		OrderSize:          req.Size,
		Result:             result,
		ValidationResponse: validation,
	})

	if validation == common.NoError {
		passiveBook.Cancel(req.Client, req.OrderID)
	}
}

// executeOrder walks the opposing side's price levels best-first with an
// advancing cursor, crossing while levelExhausted says the level is still
// acceptable and req still has size to fill. A level that is left
// non-empty (every resting order on it was skipped, not matched) still
// advances the cursor past it to the next-best level, exactly as a forward
// iterator would: re-fetching the same unchanged best level forever would
// both hang on a fully-skipped level and miss tradeable worse-priced
// levels behind it. It returns NoError on a clean sweep (including "no
// match occurred"), ContinueWithoutMatching if the last candidate it
// validated was skipped (even when earlier candidates traded), or the first
// hard validation failure that aborted the walk outright.
func (m *Matcher[T]) executeOrder(
	req *common.ClientOrderRequest[T],
	resting *book.PriceLevels[T],
	passiveBook *book.PassiveOrderBook[T],
	obs observe.EventObserver,
	levelExhausted func(levelPrice common.Price) bool,
) common.ValidationResponse {
	outcome := common.NoError

	first, ok := resting.MinMut()
	if !ok {
		return outcome
	}

	var drained []*book.PriceLevel[T]

	resting.AscendMut(first, func(level *book.PriceLevel[T]) bool {
		if req.Size == 0 || levelExhausted(level.Price) {
			return false
		}

		i := 0
		for i < len(level.Orders) && req.Size > 0 {
			passive := level.Orders[i]

			if passive.Tombstoned() {
				level.Orders = append(level.Orders[:i], level.Orders[i+1:]...)
				continue
			}

			outcome = m.MatchValidators.Validate(*req, passiveBook, passive)
			if outcome == common.ContinueWithoutMatching {
				i++
				continue
			}
			if outcome != common.NoError {
				return false
			}

			tradeSize := passive.RemainingSize
			if req.Size >= passive.RemainingSize {
				level.Orders = append(level.Orders[:i], level.Orders[i+1:]...)
				passiveBook.Cancel(passive.Client, passive.OrderID)
			} else {
				passive.RemainingSize -= req.Size
				tradeSize = req.Size
				i++
			}

			obs.OnTrade(common.TradeEvent{
				Client1:    req.Client,
				Order1:     req.OrderID,
				Client2:    passive.Client,
				Order2:     passive.OrderID,
				Instrument: req.Instrument,
				TradePrice: level.Price,
				Size:       tradeSize,
			})

			req.Size -= tradeSize
		}

		if len(level.Orders) == 0 {
			drained = append(drained, level)
		}

		return true
	})

	for _, level := range drained {
		resting.Delete(level)
	}

	return outcome
}
