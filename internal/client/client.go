/*
Package client implements the typed HTTP client for the remote storefront API.

This file holds the transport: every call is a JSON POST against the base URL,
rate limited by a token bucket, carrying the stored session token in a custom
header when one is present. The response envelope is inspected once here, so
endpoint methods and their callers only ever see decoded payloads or a
classified error. No call is retried; every failure is terminal for the action
that issued it.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/logx"
)

// HeaderUserToken is the request header carrying the bearer token.
const HeaderUserToken = "X-User-Token"

// TokenSource supplies the current session token. An empty string means the
// request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Config collects the parameters needed to construct a Client.
type Config struct {
	// BaseURL is the root of the remote storefront API, without trailing slash.
	BaseURL string

	// Timeout bounds each request end to end.
	Timeout time.Duration

	// Rate and Burst configure the outbound token bucket.
	Rate  float64
	Burst int

	// Tokens supplies the session token per request. Optional.
	Tokens TokenSource

	// HTTPClient overrides the underlying HTTP client. Optional; used by tests.
	HTTPClient *http.Client
}

// Client is the storefront API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	tokens  TokenSource
}

// New constructs a Client from the given configuration, applying defaults for
// timeout (5s) and rate limiting (10 rps, burst 20).
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	r := cfg.Rate
	if r <= 0 {
		r = 10
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 20
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(r), burst),
		tokens:  cfg.Tokens,
	}
}

// enveloped is satisfied by every response type through the embedded BaseResp.
type enveloped interface {
	Base() BaseResp
}

// post issues one JSON POST and decodes the response into out.
// Transport-level failures (connectivity, timeout, non-2xx status, undecodable
// body) map to ErrTransport; a non-zero envelope code maps to an application
// error carrying the server message.
func (c *Client) post(ctx context.Context, path string, in any, out enveloped) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errs.NewError(errs.ErrTransport)
	}

	body, err := json.Marshal(in)
	if err != nil {
		logx.Error(err, "Failed to encode request body", "path", path)
		return errs.NewError(errs.ErrUnknown)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		logx.Error(err, "Failed to build request", "path", path)
		return errs.NewError(errs.ErrUnknown)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(HeaderUserToken, token)
		}
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		logx.Warn("Request transport failure", "path", path, "error", err.Error())
		return errs.NewError(errs.ErrTransport)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		logx.Warn("Unexpected HTTP status", "path", path, "status", httpResp.StatusCode)
		return errs.NewError(errs.ErrTransport)
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		logx.Warn("Undecodable response body", "path", path, "error", err.Error())
		return errs.NewError(errs.ErrTransport)
	}

	if base := out.Base(); base.Code != 0 {
		return errs.NewRemoteError(base.Code, base.Msg)
	}

	return nil
}

// --- Product endpoints ---

func (c *Client) CreateProduct(ctx context.Context, req *CreateProductRequest) (*CreateProductResponse, error) {
	out := &CreateProductResponse{}
	if err := c.post(ctx, "/create_product", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProduct(ctx context.Context, req *ListProductRequest) (*ListProductResponse, error) {
	out := &ListProductResponse{}
	if err := c.post(ctx, "/list_product", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, req *DeleteProductRequest) (*DeleteProductResponse, error) {
	out := &DeleteProductResponse{}
	if err := c.post(ctx, "/delete_product", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- SKU endpoints ---

func (c *Client) ListSku(ctx context.Context, req *ListSkuRequest) (*ListSkuResponse, error) {
	out := &ListSkuResponse{}
	if err := c.post(ctx, "/list_sku", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSku(ctx context.Context, req *CreateSkuRequest) (*CreateSkuResponse, error) {
	out := &CreateSkuResponse{}
	if err := c.post(ctx, "/create_sku", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeductSkuStock(ctx context.Context, req *DeductSkuStockRequest) (*DeductSkuStockResponse, error) {
	out := &DeductSkuStockResponse{}
	if err := c.post(ctx, "/deduct_sku", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Merchant endpoints ---

func (c *Client) ListMerchant(ctx context.Context) (*ListMerchantResponse, error) {
	out := &ListMerchantResponse{}
	if err := c.post(ctx, "/list_merchant", struct{}{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Auth endpoints ---

func (c *Client) GenerateCaptcha(ctx context.Context, req *GenerateCaptchaRequest) (*GenerateCaptchaResponse, error) {
	out := &GenerateCaptchaResponse{}
	if err := c.post(ctx, "/generate_captcha", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	out := &RegisterResponse{}
	if err := c.post(ctx, "/register", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	out := &LoginResponse{}
	if err := c.post(ctx, "/login", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Order endpoints ---

func (c *Client) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	out := &CreateOrderResponse{}
	if err := c.post(ctx, "/create_order", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) QueryOrderID(ctx context.Context, req *QueryOrderIDRequest) (*QueryOrderIDResponse, error) {
	out := &QueryOrderIDResponse{}
	if err := c.post(ctx, "/query_order_id", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) QueryOrderInfo(ctx context.Context, req *QueryOrderInfoRequest) (*QueryOrderInfoResponse, error) {
	out := &QueryOrderInfoResponse{}
	if err := c.post(ctx, "/query_order_info", req, out); err != nil {
		return nil, err
	}
	return out, nil
}
