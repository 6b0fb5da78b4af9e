package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/app/order"
	"storefront/internal/client"
	"storefront/internal/pkg/errs"
)

// fakeCreator records the create-order request and plays back a canned
// response.
type fakeCreator struct {
	lastReq *client.CreateOrderRequest
	resp    *client.CreateOrderResponse
	err     error
}

func (f *fakeCreator) CreateOrder(_ context.Context, req *client.CreateOrderRequest) (*client.CreateOrderResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func selection() order.Selection {
	return order.Selection{
		ProductID:   10,
		ProductName: "Tea Set",
		SkuID:       5,
		SkuCode:     "TEA-5",
		Price:       9900,
		Stock:       3,
		MerchantID:  7,
	}
}

func TestNewDraft(t *testing.T) {
	t.Run("valid selection", func(t *testing.T) {
		draft, err := order.NewDraft(selection())
		require.NoError(t, err)
		require.NotEmpty(t, draft.ID())
		assert.Equal(t, int64(1), draft.Count())
		assert.Empty(t, draft.Message())
	})

	t.Run("missing product id", func(t *testing.T) {
		sel := selection()
		sel.ProductID = 0
		_, err := order.NewDraft(sel)
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})

	t.Run("missing sku id", func(t *testing.T) {
		sel := selection()
		sel.SkuID = 0
		_, err := order.NewDraft(sel)
		require.Error(t, err)
	})
}

func TestDraftQuantityBounds(t *testing.T) {
	draft, err := order.NewDraft(selection())
	require.NoError(t, err)

	// Up to the stock ceiling.
	require.NoError(t, draft.Increment())
	require.NoError(t, draft.Increment())
	assert.Equal(t, int64(3), draft.Count())
	assert.Equal(t, int64(0), draft.Remaining())

	// At the ceiling the increment is rejected with no state change.
	require.Error(t, draft.Increment())
	assert.Equal(t, int64(3), draft.Count())
	assert.NotEmpty(t, draft.Message())

	// A successful adjustment clears the message.
	require.NoError(t, draft.Decrement())
	assert.Equal(t, int64(2), draft.Count())
	assert.Empty(t, draft.Message())

	// And down to the floor.
	require.NoError(t, draft.Decrement())
	require.Error(t, draft.Decrement())
	assert.Equal(t, int64(1), draft.Count())
	assert.NotEmpty(t, draft.Message())
}

func TestDraftTotalTracksQuantity(t *testing.T) {
	sel := selection()
	sel.Stock = 50
	draft, err := order.NewDraft(sel)
	require.NoError(t, err)

	// Total equals unit price times quantity for every in-range quantity.
	for q := int64(1); q <= sel.Stock; q++ {
		assert.Equal(t, sel.Price*q, draft.Total())
		if q < sel.Stock {
			require.NoError(t, draft.Increment())
		}
	}
}

func TestDraftSubmit(t *testing.T) {
	t.Run("success sends one line item and returns the order id", func(t *testing.T) {
		api := &fakeCreator{resp: &client.CreateOrderResponse{OrderID: "ord-1"}}
		draft, err := order.NewDraft(selection())
		require.NoError(t, err)
		require.NoError(t, draft.Increment()) // count = 2

		orderID, err := draft.Submit(context.Background(), api)
		require.NoError(t, err)
		assert.Equal(t, "ord-1", orderID)
		assert.Equal(t, "¥198.00", draft.TotalDisplay())

		require.NotNil(t, api.lastReq)
		assert.Equal(t, int64(7), api.lastReq.RespUserID)
		require.Len(t, api.lastReq.Items, 1)
		item := api.lastReq.Items[0]
		assert.Equal(t, int64(10), item.ProductID)
		assert.Equal(t, int64(5), item.SkuID)
		assert.Equal(t, int64(2), item.Count)
		assert.Equal(t, int64(9900), item.Price)
		assert.Equal(t, draft.ID(), api.lastReq.Ext["draft_id"])
	})

	t.Run("missing merchant id fails before the network", func(t *testing.T) {
		sel := selection()
		sel.MerchantID = 0
		api := &fakeCreator{resp: &client.CreateOrderResponse{OrderID: "ord-1"}}
		draft, err := order.NewDraft(sel)
		require.NoError(t, err)

		_, err = draft.Submit(context.Background(), api)
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindValidation))
		assert.Nil(t, api.lastReq, "no request must go out")
		assert.NotEmpty(t, draft.Message())
	})

	t.Run("application rejection surfaces the server message", func(t *testing.T) {
		api := &fakeCreator{err: errs.NewRemoteError(1004, "insufficient stock")}
		draft, err := order.NewDraft(selection())
		require.NoError(t, err)

		_, err = draft.Submit(context.Background(), api)
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindApplication))
		assert.Contains(t, draft.Message(), "insufficient stock")

		// The draft stays editable.
		require.NoError(t, draft.Increment())
		assert.Empty(t, draft.Message())
	})

	t.Run("transport failure surfaces a generic message", func(t *testing.T) {
		api := &fakeCreator{err: errs.NewError(errs.ErrTransport)}
		draft, err := order.NewDraft(selection())
		require.NoError(t, err)

		_, err = draft.Submit(context.Background(), api)
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindTransport))
		assert.NotEmpty(t, draft.Message())
	})
}

func TestRegistry(t *testing.T) {
	registry := order.NewRegistry()

	draft, err := registry.Create(selection())
	require.NoError(t, err)

	got, err := registry.Get(draft.ID())
	require.NoError(t, err)
	assert.Same(t, draft, got)

	registry.Remove(draft.ID())
	_, err = registry.Get(draft.ID())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindValidation))

	_, err = registry.Create(order.Selection{})
	require.Error(t, err, "invalid selections are never registered")
}
