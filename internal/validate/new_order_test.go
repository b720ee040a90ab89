package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"matchingsim/internal/book"
	"matchingsim/internal/common"
)

func TestNoSuchOrderInsertValidator(t *testing.T) {
	b := book.New[common.NoExt]()
	b.Place(1, 100, common.Limit, common.Buy, 99, 10, nil)

	resp := NoSuchOrderInsertValidator[common.NoExt](
		common.ClientOrderRequest[common.NoExt]{Client: 1, OrderID: 100}, b, nil,
	)
	assert.Equal(t, common.OrderIDPreexist, resp)

	resp = NoSuchOrderInsertValidator[common.NoExt](
		common.ClientOrderRequest[common.NoExt]{Client: 1, OrderID: 101}, b, nil,
	)
	assert.Equal(t, common.NoError, resp)
}

func TestNewOrderRequestSizeValidator(t *testing.T) {
	v := NewOrderRequestSizeValidator[common.NoExt](100)

	resp := v(common.ClientOrderRequest[common.NoExt]{Size: 100}, nil, nil)
	assert.Equal(t, common.OrderSizeExceedLimit, resp, "size at the limit is rejected")

	resp = v(common.ClientOrderRequest[common.NoExt]{Size: 99}, nil, nil)
	assert.Equal(t, common.NoError, resp)
}
