package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/app/order"
	"storefront/internal/client"
	"storefront/internal/pkg/auth/claims"
	"storefront/internal/pkg/errs"
)

// fakeQuerier records the last id query and plays back canned pages.
type fakeQuerier struct {
	lastIDReq *client.QueryOrderIDRequest
	idResp    *client.QueryOrderIDResponse
	infoResp  *client.QueryOrderInfoResponse
	infoErr   error
}

func (f *fakeQuerier) QueryOrderID(_ context.Context, req *client.QueryOrderIDRequest) (*client.QueryOrderIDResponse, error) {
	f.lastIDReq = req
	resp := *f.idResp
	resp.Page = req.Page
	resp.PageSize = req.PageSize
	return &resp, nil
}

func (f *fakeQuerier) QueryOrderInfo(_ context.Context, req *client.QueryOrderInfoRequest) (*client.QueryOrderInfoResponse, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return f.infoResp, nil
}

func payload(userID int64, userType int) *claims.Payload {
	return &claims.Payload{UserID: userID, UserType: userType}
}

func TestResolveQueryType(t *testing.T) {
	assert.Equal(t, client.QueryByInitiator, order.ResolveQueryType(payload(1, claims.RoleCustomer)))
	assert.Equal(t, client.QueryByRecipient, order.ResolveQueryType(payload(1, claims.RoleMerchant)))
	// Any non-customer role queries as recipient.
	assert.Equal(t, client.QueryByRecipient, order.ResolveQueryType(payload(1, 9)))
	assert.Equal(t, client.QueryByRecipient, order.ResolveQueryType(nil))
}

func TestNewLister(t *testing.T) {
	api := &fakeQuerier{idResp: &client.QueryOrderIDResponse{}}

	t.Run("customer queries as initiator", func(t *testing.T) {
		lister, err := order.NewLister(api, payload(42, claims.RoleCustomer))
		require.NoError(t, err)
		assert.Equal(t, client.QueryByInitiator, lister.QueryType())

		_, err = lister.FetchIDs(context.Background())
		require.NoError(t, err)
		assert.Equal(t, client.QueryByInitiator, api.lastIDReq.Type)
		assert.Equal(t, int64(42), api.lastIDReq.UserID)
	})

	t.Run("merchant queries as recipient", func(t *testing.T) {
		lister, err := order.NewLister(api, payload(7, claims.RoleMerchant))
		require.NoError(t, err)

		_, err = lister.FetchIDs(context.Background())
		require.NoError(t, err)
		assert.Equal(t, client.QueryByRecipient, api.lastIDReq.Type)
	})

	t.Run("payload without identity is rejected", func(t *testing.T) {
		_, err := order.NewLister(api, &claims.Payload{})
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindIdentity))

		_, err = order.NewLister(api, nil)
		require.Error(t, err)
	})
}

func TestListerPagination(t *testing.T) {
	api := &fakeQuerier{idResp: &client.QueryOrderIDResponse{
		OrderIDs: []string{"a", "b"},
		Total:    45,
	}}
	lister, err := order.NewLister(api, payload(42, claims.RoleCustomer))
	require.NoError(t, err)

	// Defaults.
	assert.Equal(t, int32(1), lister.Page())
	assert.Equal(t, order.DefaultPageSize, lister.PageSize())

	ids, err := lister.FetchIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Equal(t, int64(45), lister.Total())
	assert.Equal(t, int32(3), lister.TotalPages())

	t.Run("page zero and beyond-last are rejected", func(t *testing.T) {
		assert.False(t, lister.SetPage(0))
		assert.False(t, lister.SetPage(4))
		assert.Equal(t, int32(1), lister.Page(), "current page retained")
	})

	t.Run("in-range pages are accepted", func(t *testing.T) {
		assert.True(t, lister.SetPage(3))
		assert.Equal(t, int32(3), lister.Page())

		_, err := lister.FetchIDs(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(3), api.lastIDReq.Page)
	})

	t.Run("page size change resets to page one", func(t *testing.T) {
		require.True(t, lister.SetPage(2))
		assert.True(t, lister.SetPageSize(50))
		assert.Equal(t, int32(1), lister.Page())
		assert.Equal(t, int32(50), lister.PageSize())
	})

	t.Run("out-of-range page sizes are rejected", func(t *testing.T) {
		before := lister.PageSize()
		assert.False(t, lister.SetPageSize(0))
		assert.False(t, lister.SetPageSize(101))
		assert.Equal(t, before, lister.PageSize())
	})
}

func TestListerDetailIndependence(t *testing.T) {
	api := &fakeQuerier{
		idResp:  &client.QueryOrderIDResponse{OrderIDs: []string{"a"}, Total: 1},
		infoErr: errs.NewError(errs.ErrTransport),
	}
	lister, err := order.NewLister(api, payload(42, claims.RoleCustomer))
	require.NoError(t, err)

	ids, err := lister.FetchIDs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, ids)

	// A failed detail fetch leaves the listing state untouched.
	_, err = lister.FetchDetail(context.Background(), "a")
	require.Error(t, err)
	assert.Equal(t, int64(1), lister.Total())
	assert.Equal(t, int32(1), lister.Page())

	api.infoErr = nil
	api.infoResp = &client.QueryOrderInfoResponse{Order: &client.Order{ID: "a"}}
	detail, err := lister.FetchDetail(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", detail.ID)
}
