/*
Package clienttest provides an in-memory fake of the remote storefront API.

The fake speaks the same wire protocol as the real backend: JSON POST
endpoints, the baseResp envelope with code 0 for success, HS256-signed session
tokens, and captcha-gated registration. Tests point a client.Client at
Server.URL and drive full flows without any network dependency.
*/
package clienttest

import (
	"crypto/rand"
	"math/big"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storefront/internal/client"
)

// tokenLifetime bounds issued session tokens. The storefront client never
// checks expiry; the claim is present because the real backend sets one.
const tokenLifetime = 24 * time.Hour

type account struct {
	id       int64
	target   string
	password string
	userType int32
	name     string
}

type captcha struct {
	target string
	code   string
}

// Server is the fake storefront backend. All exported methods are safe for
// concurrent use with in-flight requests.
type Server struct {
	// URL is the base URL clients should be configured with.
	URL string

	httpServer *httptest.Server
	secret     []byte

	mu            sync.Mutex
	accounts      map[string]*account // keyed by target
	accountsByID  map[int64]*account
	products      map[int64]*client.Product
	skus          map[int64]*client.Sku
	orders        map[string]*client.Order
	orderSeq      []string // order ids in creation sequence
	captchas      map[string]*captcha
	nextUserID    int64
	nextProductID int64
	nextSkuID     int64
}

// NewServer starts a fake backend on a loopback listener.
// Callers own the shutdown via Close.
func NewServer() *Server {
	s := &Server{
		secret:        []byte("clienttest-signing-secret"),
		accounts:      make(map[string]*account),
		accountsByID:  make(map[int64]*account),
		products:      make(map[int64]*client.Product),
		skus:          make(map[int64]*client.Sku),
		orders:        make(map[string]*client.Order),
		captchas:      make(map[string]*captcha),
		nextUserID:    1000,
		nextProductID: 1,
		nextSkuID:     1,
	}

	r := chi.NewRouter()
	r.Post("/create_product", s.handleCreateProduct)
	r.Post("/list_product", s.handleListProduct)
	r.Post("/delete_product", s.handleDeleteProduct)
	r.Post("/list_sku", s.handleListSku)
	r.Post("/create_sku", s.handleCreateSku)
	r.Post("/deduct_sku", s.handleDeductSkuStock)
	r.Post("/list_merchant", s.handleListMerchant)
	r.Post("/generate_captcha", s.handleGenerateCaptcha)
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Post("/create_order", s.handleCreateOrder)
	r.Post("/query_order_id", s.handleQueryOrderID)
	r.Post("/query_order_info", s.handleQueryOrderInfo)

	s.httpServer = httptest.NewServer(r)
	s.URL = s.httpServer.URL
	return s
}

// Close shuts the fake backend down.
func (s *Server) Close() {
	s.httpServer.Close()
}

// SeedAccount registers an account directly, bypassing the captcha flow, and
// returns its user id.
func (s *Server) SeedAccount(target, password string, userType int32) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc := &account{
		id:       s.nextUserID,
		target:   target,
		password: password,
		userType: userType,
		name:     target,
	}
	s.nextUserID++
	s.accounts[target] = acc
	s.accountsByID[acc.id] = acc
	return acc.id
}

// SeedProduct inserts a product for the given merchant and returns its id.
func (s *Server) SeedProduct(merchantID int64, name, desc string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &client.Product{
		ID:         s.nextProductID,
		MerchantID: merchantID,
		Name:       name,
		Ext:        client.ProductExt{Desc: desc},
	}
	s.nextProductID++
	s.products[p.ID] = p
	return p.ID
}

// SeedSku inserts a SKU under the given product and returns its id.
func (s *Server) SeedSku(productID int64, skuCode string, price, stock int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	sku := &client.Sku{
		ID:        s.nextSkuID,
		ProductID: productID,
		SkuCode:   skuCode,
		Price:     price,
		Stock:     stock,
	}
	s.nextSkuID++
	s.skus[sku.ID] = sku
	return sku.ID
}

// Sku returns a copy of the stored SKU, for asserting stock after deduction.
func (s *Server) Sku(id int64) (client.Sku, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sku, ok := s.skus[id]
	if !ok {
		return client.Sku{}, false
	}
	return *sku, true
}

// Order returns a copy of the stored order.
func (s *Server) Order(id string) (client.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return client.Order{}, false
	}
	return *order, true
}

// CaptchaCode exposes the code behind a captcha id so tests can complete the
// registration flow.
func (s *Server) CaptchaCode(captchaID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.captchas[captchaID]
	if !ok {
		return ""
	}
	return c.code
}

// IssueToken signs a session token for the given identity, equivalent to the
// one returned by a successful login.
func (s *Server) IssueToken(userID int64, userType int32) string {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   userID,
		"user_type": userType,
		"iat":       now.Unix(),
		"exp":       now.Add(tokenLifetime).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		panic("clienttest: token signing failed: " + err.Error())
	}
	return signed
}

// parseToken verifies a session token and returns the identity it carries.
func (s *Server) parseToken(tokenString string) (userID int64, userType int32, ok bool) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, 0, false
	}

	id, idOK := claims["user_id"].(float64)
	role, roleOK := claims["user_type"].(float64)
	if !idOK || !roleOK {
		return 0, 0, false
	}
	return int64(id), int32(role), true
}

// captchaCode produces a 6-digit numeric code.
func captchaCode() string {
	const digits = "0123456789"

	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			panic("clienttest: captcha generation failed: " + err.Error())
		}
		code[i] = digits[n.Int64()]
	}
	return string(code)
}

// sortedOrderIDs returns the ids of orders matching the query side, oldest
// first, under s.mu.
func (s *Server) sortedOrderIDs(queryType int32, userID int64) []string {
	seq := make(map[string]int, len(s.orderSeq))
	for i, id := range s.orderSeq {
		seq[id] = i
	}

	var ids []string
	for id, order := range s.orders {
		switch queryType {
		case client.QueryByInitiator:
			if order.ReqUserID == userID {
				ids = append(ids, id)
			}
		case client.QueryByRecipient:
			if order.RespUserID == userID {
				ids = append(ids, id)
			}
		}
	}

	sort.Slice(ids, func(i, j int) bool { return seq[ids[i]] < seq[ids[j]] })
	return ids
}

// newOrderID mints an order identifier.
func newOrderID() string {
	return uuid.NewString()
}
