package validate

import (
	"matchingsim/internal/book"
	"matchingsim/internal/common"
)

// NoSuchOrderCancelValidator rejects a cancel request for an order that
// does not (or no longer) exists on the book.
func NoSuchOrderCancelValidator[T any](
	req common.ClientOrderRequest[T],
	passiveBook *book.PassiveOrderBook[T],
	_ *book.PassiveOrder[T],
) common.ValidationResponse {
	if passiveBook.OrderExists(req.Client, req.OrderID) {
		return common.NoError
	}
	return common.NoSuchOrder
}
