package validate

import (
	"matchingsim/internal/book"
	"matchingsim/internal/common"
)

// NoSelfMatchValidator rejects a candidate resting order belonging to the
// same client as the aggressor.
func NoSelfMatchValidator[T any](
	req common.ClientOrderRequest[T],
	_ *book.PassiveOrderBook[T],
	passive *book.PassiveOrder[T],
) common.ValidationResponse {
	if passive != nil && req.Client == passive.Client {
		return common.SelfMatch
	}
	return common.NoError
}
