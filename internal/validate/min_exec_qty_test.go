package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"matchingsim/internal/book"
	"matchingsim/internal/common"
)

func TestMinExecQtyInsertValidator_RejectsImpossibleConstraint(t *testing.T) {
	req := common.ClientOrderRequest[MinExecQty]{
		Size:         10,
		CustomFields: &MinExecQty{MinExecQty: 11},
	}

	resp := MinExecQtyInsertValidator(req, nil, nil)
	assert.Equal(t, common.InvalidOrderRequest, resp)
}

func TestMinExecQtyInsertValidator_AllowsAtOrBelowSize(t *testing.T) {
	req := common.ClientOrderRequest[MinExecQty]{
		Size:         10,
		CustomFields: &MinExecQty{MinExecQty: 10},
	}

	resp := MinExecQtyInsertValidator(req, nil, nil)
	assert.Equal(t, common.NoError, resp)
}

func TestMinExecQtyInsertValidator_NoCustomFieldsIsNoError(t *testing.T) {
	req := common.ClientOrderRequest[MinExecQty]{Size: 10}
	resp := MinExecQtyInsertValidator(req, nil, nil)
	assert.Equal(t, common.NoError, resp)
}

func TestMinExecQtyMatchValidator_SkipsWhenAggressorSizeBelowRestingMin(t *testing.T) {
	req := common.ClientOrderRequest[MinExecQty]{Size: 5}
	passive := &book.PassiveOrder[MinExecQty]{
		RemainingSize: 100,
		CustomFields:  &MinExecQty{MinExecQty: 10},
	}

	resp := MinExecQtyMatchValidator(req, nil, passive)
	assert.Equal(t, common.ContinueWithoutMatching, resp)
}

func TestMinExecQtyMatchValidator_SkipsWhenRestingSizeBelowAggressorMin(t *testing.T) {
	req := common.ClientOrderRequest[MinExecQty]{
		Size:         100,
		CustomFields: &MinExecQty{MinExecQty: 10},
	}
	passive := &book.PassiveOrder[MinExecQty]{RemainingSize: 5}

	resp := MinExecQtyMatchValidator(req, nil, passive)
	assert.Equal(t, common.ContinueWithoutMatching, resp)
}

func TestMinExecQtyMatchValidator_AllowsWhenBothSatisfied(t *testing.T) {
	req := common.ClientOrderRequest[MinExecQty]{
		Size:         20,
		CustomFields: &MinExecQty{MinExecQty: 10},
	}
	passive := &book.PassiveOrder[MinExecQty]{
		RemainingSize: 20,
		CustomFields:  &MinExecQty{MinExecQty: 10},
	}

	resp := MinExecQtyMatchValidator(req, nil, passive)
	assert.Equal(t, common.NoError, resp)
}
