// Package validate implements a composable validator chain: an ordered
// list of pure predicates, short-circuiting on the first result other
// than NoError.
package validate

import (
	"matchingsim/internal/book"
	"matchingsim/internal/common"
)

// Validator is a pure function (request, book, candidate resting order) ->
// ValidationResponse. passive is nil outside the match phase, where there is
// no candidate resting order yet to inspect.
type Validator[T any] func(
	req common.ClientOrderRequest[T],
	passiveBook *book.PassiveOrderBook[T],
	passive *book.PassiveOrder[T],
) common.ValidationResponse

// Chain is an ordered validator list. Validate stops at the first
// non-NoError result and returns it — this includes ContinueWithoutMatching,
// which only the match-phase caller (internal/matching) treats specially;
// the chain itself just reports "not a clean pass".
type Chain[T any] []Validator[T]

func (c Chain[T]) Validate(
	req common.ClientOrderRequest[T],
	passiveBook *book.PassiveOrderBook[T],
	passive *book.PassiveOrder[T],
) common.ValidationResponse {
	for _, v := range c {
		if resp := v(req, passiveBook, passive); resp != common.NoError {
			return resp
		}
	}
	return common.NoError
}
