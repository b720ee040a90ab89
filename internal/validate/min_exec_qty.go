package validate

import (
	"matchingsim/internal/book"
	"matchingsim/internal/common"
)

// MinExecQty is a per-order custom field requiring any single execution
// against that order to be at least the given size.
type MinExecQty struct {
	MinExecQty common.Size
}

// MinExecQtyInsertValidator rejects a new-order request whose own
// min-exec-qty exceeds its own size — such an order could never legally
// execute against anything.
func MinExecQtyInsertValidator(
	req common.ClientOrderRequest[MinExecQty],
	_ *book.PassiveOrderBook[MinExecQty],
	_ *book.PassiveOrder[MinExecQty],
) common.ValidationResponse {
	if req.CustomFields != nil && req.CustomFields.MinExecQty > req.Size {
		return common.InvalidOrderRequest
	}
	return common.NoError
}

// MinExecQtyMatchValidator skips a candidate resting order — without
// failing the whole match — when either side's min-exec-qty constraint
// would be violated by executing against it right now.
func MinExecQtyMatchValidator(
	req common.ClientOrderRequest[MinExecQty],
	_ *book.PassiveOrderBook[MinExecQty],
	passive *book.PassiveOrder[MinExecQty],
) common.ValidationResponse {
	if passive.CustomFields != nil && common.Size(req.Size) < passive.CustomFields.MinExecQty {
		return common.ContinueWithoutMatching
	}
	if req.CustomFields != nil && passive.RemainingSize < req.CustomFields.MinExecQty {
		return common.ContinueWithoutMatching
	}
	return common.NoError
}
