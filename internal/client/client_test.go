package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/client"
	"storefront/internal/client/clienttest"
	"storefront/internal/pkg/auth/claims"
	"storefront/internal/pkg/errs"
)

// staticToken is a fixed-token TokenSource.
type staticToken string

func (s staticToken) Token() string { return string(s) }

func newClient(baseURL string, tokens client.TokenSource) *client.Client {
	return client.New(client.Config{
		BaseURL: baseURL,
		Tokens:  tokens,
	})
}

func TestLogin(t *testing.T) {
	server := clienttest.NewServer()
	defer server.Close()

	userID := server.SeedAccount("13800001111", "secret123", client.UserTypeCustomer)
	api := newClient(server.URL, nil)

	t.Run("success returns a decodable token", func(t *testing.T) {
		resp, err := api.Login(context.Background(), &client.LoginRequest{
			Target:     "13800001111",
			TargetType: client.TargetTypePhone,
			Password:   "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, client.UserTypeCustomer, resp.UserType)

		payload := claims.Decode(resp.Token)
		require.NotNil(t, payload)
		assert.Equal(t, userID, payload.UserID)
	})

	t.Run("wrong password is an application error", func(t *testing.T) {
		_, err := api.Login(context.Background(), &client.LoginRequest{
			Target:     "13800001111",
			TargetType: client.TargetTypePhone,
			Password:   "wrong",
		})
		require.Error(t, err)

		customErr, ok := err.(*errs.CustomError)
		require.True(t, ok)
		assert.Equal(t, errs.KindApplication, customErr.Kind)
		assert.Contains(t, customErr.Message, "wrong account or password")
		assert.NotZero(t, customErr.RemoteCode)
	})
}

func TestTransportFailure(t *testing.T) {
	server := clienttest.NewServer()
	baseURL := server.URL
	server.Close()

	api := newClient(baseURL, nil)
	_, err := api.ListMerchant(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindTransport))
}

func TestRegisterFlow(t *testing.T) {
	server := clienttest.NewServer()
	defer server.Close()

	api := newClient(server.URL, nil)
	ctx := context.Background()

	captchaResp, err := api.GenerateCaptcha(ctx, &client.GenerateCaptchaRequest{
		Target:     "user@example.com",
		TargetType: client.TargetTypeEmail,
	})
	require.NoError(t, err)
	require.NotEmpty(t, captchaResp.CaptchaID)

	t.Run("wrong captcha is rejected", func(t *testing.T) {
		_, err := api.Register(ctx, &client.RegisterRequest{
			Target:     "user@example.com",
			TargetType: client.TargetTypeEmail,
			Password:   "secret123",
			Captcha:    "000000x",
			CaptchaID:  captchaResp.CaptchaID,
			UserType:   client.UserTypeCustomer,
		})
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindApplication))
	})

	t.Run("matching captcha registers the account", func(t *testing.T) {
		resp, err := api.Register(ctx, &client.RegisterRequest{
			Target:     "user@example.com",
			TargetType: client.TargetTypeEmail,
			Password:   "secret123",
			Captcha:    server.CaptchaCode(captchaResp.CaptchaID),
			CaptchaID:  captchaResp.CaptchaID,
			UserType:   client.UserTypeCustomer,
		})
		require.NoError(t, err)
		assert.NotZero(t, resp.UserID)

		_, err = api.Login(ctx, &client.LoginRequest{
			Target:     "user@example.com",
			TargetType: client.TargetTypeEmail,
			Password:   "secret123",
		})
		require.NoError(t, err)
	})
}

func TestCreateOrder(t *testing.T) {
	server := clienttest.NewServer()
	defer server.Close()
	ctx := context.Background()

	merchantID := server.SeedAccount("merchant@example.com", "secret123", client.UserTypeMerchant)
	customerID := server.SeedAccount("13800001111", "secret123", client.UserTypeCustomer)
	productID := server.SeedProduct(merchantID, "Tea Set", "hand made")
	skuID := server.SeedSku(productID, "TEA-5", 9900, 3)

	orderReq := &client.CreateOrderRequest{
		Type:       1,
		Status:     client.OrderStatusAccepted,
		RespUserID: merchantID,
		Items: []client.OrderItem{
			{ProductID: productID, SkuID: skuID, Count: 2, Price: 9900},
		},
	}

	t.Run("without a token the order is rejected", func(t *testing.T) {
		api := newClient(server.URL, nil)
		_, err := api.CreateOrder(ctx, orderReq)
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindApplication))
	})

	t.Run("the token header authenticates the initiator", func(t *testing.T) {
		token := staticToken(server.IssueToken(customerID, client.UserTypeCustomer))
		api := newClient(server.URL, token)

		resp, err := api.CreateOrder(ctx, orderReq)
		require.NoError(t, err)
		require.NotEmpty(t, resp.OrderID)

		stored, ok := server.Order(resp.OrderID)
		require.True(t, ok)
		assert.Equal(t, customerID, stored.ReqUserID)
		assert.Equal(t, merchantID, stored.RespUserID)

		// Stock was deducted.
		sku, ok := server.Sku(skuID)
		require.True(t, ok)
		assert.Equal(t, int64(1), sku.Stock)

		// The order shows up on both sides.
		asInitiator, err := api.QueryOrderID(ctx, &client.QueryOrderIDRequest{
			Type: client.QueryByInitiator, UserID: customerID, Page: 1, PageSize: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{resp.OrderID}, asInitiator.OrderIDs)

		asRecipient, err := api.QueryOrderID(ctx, &client.QueryOrderIDRequest{
			Type: client.QueryByRecipient, UserID: merchantID, Page: 1, PageSize: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{resp.OrderID}, asRecipient.OrderIDs)

		detail, err := api.QueryOrderInfo(ctx, &client.QueryOrderInfoRequest{ID: resp.OrderID})
		require.NoError(t, err)
		require.NotNil(t, detail.Order)
		require.Len(t, detail.Order.Items, 1)
		assert.Equal(t, int64(2), detail.Order.Items[0].Count)
	})

	t.Run("insufficient stock is an application error", func(t *testing.T) {
		token := staticToken(server.IssueToken(customerID, client.UserTypeCustomer))
		api := newClient(server.URL, token)

		over := *orderReq
		over.Items = []client.OrderItem{{ProductID: productID, SkuID: skuID, Count: 99, Price: 9900}}
		_, err := api.CreateOrder(ctx, &over)
		require.Error(t, err)

		customErr, ok := err.(*errs.CustomError)
		require.True(t, ok)
		assert.Equal(t, errs.KindApplication, customErr.Kind)
		assert.Contains(t, customErr.Message, "insufficient stock")
	})
}

func TestCatalogEndpoints(t *testing.T) {
	server := clienttest.NewServer()
	defer server.Close()
	ctx := context.Background()

	merchantID := server.SeedAccount("merchant@example.com", "secret123", client.UserTypeMerchant)
	api := newClient(server.URL, nil)

	created, err := api.CreateProduct(ctx, &client.CreateProductRequest{
		MerchantID: merchantID,
		Name:       "Tea Set",
		Ext:        client.ProductExt{Desc: "hand made"},
	})
	require.NoError(t, err)

	skuResp, err := api.CreateSku(ctx, &client.CreateSkuRequest{
		MerchantID: merchantID,
		ProductID:  created.ProductID,
		SkuCode:    "TEA-5",
		Price:      9900,
		Stock:      3,
	})
	require.NoError(t, err)

	listResp, err := api.ListProduct(ctx, &client.ListProductRequest{
		MerchantID: merchantID, PageNum: 1, PageSize: 20,
	})
	require.NoError(t, err)
	require.Len(t, listResp.Products, 1)
	assert.Equal(t, "Tea Set", listResp.Products[0].Name)

	skus, err := api.ListSku(ctx, &client.ListSkuRequest{
		MerchantID: merchantID, ProductID: created.ProductID,
	})
	require.NoError(t, err)
	require.Len(t, skus.Skus, 1)
	assert.Equal(t, int64(9900), skus.Skus[0].Price)

	_, err = api.DeductSkuStock(ctx, &client.DeductSkuStockRequest{SkuID: skuResp.SkuID, Count: 1})
	require.NoError(t, err)
	sku, ok := server.Sku(skuResp.SkuID)
	require.True(t, ok)
	assert.Equal(t, int64(2), sku.Stock)

	merchants, err := api.ListMerchant(ctx)
	require.NoError(t, err)
	require.Len(t, merchants.Merchants, 1)
	assert.Equal(t, merchantID, merchants.Merchants[0].ID)

	_, err = api.DeleteProduct(ctx, &client.DeleteProductRequest{
		MerchantID: merchantID, ProductID: created.ProductID,
	})
	require.NoError(t, err)

	listResp, err = api.ListProduct(ctx, &client.ListProductRequest{
		MerchantID: merchantID, PageNum: 1, PageSize: 20,
	})
	require.NoError(t, err)
	assert.Empty(t, listResp.Products)
}
