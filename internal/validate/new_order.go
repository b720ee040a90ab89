package validate

import (
	"matchingsim/internal/book"
	"matchingsim/internal/common"
)

// NoSuchOrderInsertValidator rejects a new-order request whose (client,
// orderID) pair is already resting on the book.
func NoSuchOrderInsertValidator[T any](
	req common.ClientOrderRequest[T],
	passiveBook *book.PassiveOrderBook[T],
	_ *book.PassiveOrder[T],
) common.ValidationResponse {
	if passiveBook.OrderExists(req.Client, req.OrderID) {
		return common.OrderIDPreexist
	}
	return common.NoError
}

// NewOrderRequestSizeValidator rejects any new-order request whose size is
// at or above max.
func NewOrderRequestSizeValidator[T any](max common.Size) Validator[T] {
	return func(
		req common.ClientOrderRequest[T],
		_ *book.PassiveOrderBook[T],
		_ *book.PassiveOrder[T],
	) common.ValidationResponse {
		if req.Size >= max {
			return common.OrderSizeExceedLimit
		}
		return common.NoError
	}
}
