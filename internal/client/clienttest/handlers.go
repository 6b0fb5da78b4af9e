/*
Package clienttest provides an in-memory fake of the remote storefront API.

This file holds the endpoint handlers and the envelope/JSON plumbing shared
between them.
*/
package clienttest

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"storefront/internal/client"
)

// Remote envelope codes used by the fake, mirroring the real backend's
// non-zero application errors.
const (
	codeInvalidParams   int32 = 1001
	codeUnauthorized    int32 = 1002
	codeNotFound        int32 = 1003
	codeStockShort      int32 = 1004
	codeCaptchaMismatch int32 = 1005
	codeDuplicateUser   int32 = 1006
	codeBadCredentials  int32 = 1007
)

var okResp = client.BaseResp{Code: 0, Msg: "success"}

// respond writes payload as the JSON response body.
func respond(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondErr writes a bare envelope carrying the given application error.
func respondErr(w http.ResponseWriter, code int32, msg string) {
	respond(w, struct {
		BaseResp client.BaseResp `json:"baseResp"`
	}{client.BaseResp{Code: code, Msg: msg}})
}

// bindJSON binds the request body strictly: JSON only, no unknown fields, no
// trailing content.
func bindJSON(r *http.Request, dst any) bool {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return false
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return false
	}
	return !decoder.More()
}

// identity extracts and verifies the session token header.
func (s *Server) identity(r *http.Request) (userID int64, userType int32, ok bool) {
	token := r.Header.Get(client.HeaderUserToken)
	if token == "" {
		return 0, 0, false
	}
	return s.parseToken(token)
}

// --- Product handlers ---

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var input client.CreateProductRequest
	if !bindJSON(r, &input) {
		respondErr(w, codeInvalidParams, "malformed request body")
		return
	}
	if input.MerchantID <= 0 || input.Name == "" {
		respondErr(w, codeInvalidParams, "merchant_id and name are required")
		return
	}

	s.mu.Lock()
	p := &client.Product{
		ID:         s.nextProductID,
		MerchantID: input.MerchantID,
		Name:       input.Name,
		Ext:        input.Ext,
	}
	s.nextProductID++
	s.products[p.ID] = p
	s.mu.Unlock()

	respond(w, client.CreateProductResponse{BaseResp: okResp, ProductID: p.ID})
}

func (s *Server) handleListProduct(w http.ResponseWriter, r *http.Request) {
	var input client.ListProductRequest
	if !bindJSON(r, &input) {
		respondErr(w, codeInvalidParams, "malformed request body")
		return
	}

	pageNum := input.PageNum
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	s.mu.Lock()
	var all []client.Product
	for id := int64(1); id < s.nextProductID; id++ {
		if p, ok := s.products[id]; ok && p.MerchantID == input.MerchantID {
			all = append(all, *p)
		}
	}
	s.mu.Unlock()

	start := int(pageNum-1) * int(pageSize)
	if start > len(all) {
		start = len(all)
	}
	end := start + int(pageSize)
	if end > len(all) {
		end = len(all)
	}

	respond(w, client.ListProductResponse{BaseResp: okResp, Products: all[start:end]})
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	var input client.DeleteProductRequest
	if !bindJSON(r, &input) {
		respondErr(w, codeInvalidParams, "malformed request body")
		return
	}

	s.mu.Lock()
	p, ok := s.products[input.ProductID]
	if ok && p.MerchantID == input.MerchantID {
		delete(s.products, input.ProductID)
	}
	s.mu.Unlock()

	if !ok {
		respondErr(w, codeNotFound, "product not found")
		return
	}
	respond(w, client.DeleteProductResponse{BaseResp: okResp})
}

// --- SKU handlers ---

func (s *Server) handleListSku(w http.ResponseWriter, r *http.Request) {
	var input client.ListSkuRequest
	if !bindJSON(r, &input) {
		respondErr(w, codeInvalidParams, "malformed request body")
		return
	}

	s.mu.Lock()
	var skus []client.Sku
	for id := int64(1); id < s.nextSkuID; id++ {
		if sku, ok := s.skus[id]; ok && sku.ProductID == input.ProductID {
			skus = append(skus, *sku)
		}
	}
	s.mu.Unlock()

	respond(w, client.ListSkuResponse{BaseResp: okResp, Skus: skus})
}

func (s *Server) handleCreateSku(w http.ResponseWriter, r *http.Request) {
	var input client.CreateSkuRequest
	if !bindJSON(r, &input) {
		respondErr(w, codeInvalidParams, "malformed request body")
		return
	}
	if input.ProductID <= 0 || input.SkuCode == "" || input.Price < 0 || input.Stock < 0 {
		respondErr(w, codeInvalidParams, "invalid sku fields")
		return
	}

	s.mu.Lock()
	_, productOK := s.products[input.ProductID]
	var skuID int64
	if productOK {
		sku := &client.Sku{
			ID:        s.nextSkuID,
			ProductID: input.ProductID,
			SkuCode:   input.SkuCode,
			Price:     input.Price,
			Stock:     input.Stock,
		}
		s.nextSkuID++
		s.skus[sku.ID] = sku
		skuID = sku.ID
	}
	s.mu.Unlock()

	if !productOK {
		respondErr(w, codeNotFound, "product not found")
		return
	}
	respond(w, client.CreateSkuResponse{BaseResp: okResp, SkuID: skuID})
}

func (s *Server) handleDeductSkuStock(w http.ResponseWriter, r *http.Request) {
	var input client.DeductSkuStockRequest
	if !bindJSON(r, &input) {
		respondErr(w, codeInvalidParams, "malformed request body")
		return
	}
	if input.Count < 1 {
		respondErr(w, codeInvalidParams, "count must be at least 1")
		return
	}

	s.mu.Lock()
	sku, ok := s.skus[input.SkuID]
	short := ok && sku.Stock < input.Count
	if ok && !short {
		sku.Stock -= input.Count
	}
	s.mu.Unlock()

	if !ok {
		respondErr(w, codeNotFound, "sku not found")
		return
	}
	if short {
		respondErr(w, codeStockShort, "insufficient stock")
		return
	}
	respond(w, client.DeductSkuStockResponse{BaseResp: okResp})
}

// --- Merchant handlers ---

func (s *Server) handleListMerchant(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var merchants []client.Merchant
	for id := int64(1000); id < s.nextUserID; id++ {
		if acc, ok := s.accountsByID[id]; ok && acc.userType == client.UserTypeMerchant {
			merchants = append(merchants, client.Merchant{ID: acc.id, Name: acc.name})
		}
	}
	s.mu.Unlock()

	respond(w, client.ListMerchantResponse{BaseResp: okResp, Merchants: merchants})
}

// --- Auth handlers ---

func (s *Server) handleGenerateCaptcha(w http.ResponseWriter, r *http.Request) {
	var input client.GenerateCaptchaRequest
	if !bindJSON(r, &input) {
		respondErr(w, codeInvalidParams, "malformed request body")
		return
	}
	if input.Target == "" {
		respondErr(w, codeInvalidParams, "target is required")
		return
	}

	id := newOrderID()
	s.mu.Lock()
	s.captchas[id] = &captcha{target: input.Target, code: captchaCode()}
	s.mu.Unlock()

	respond(w, client.GenerateCaptchaResponse{BaseResp: okResp, CaptchaID: id})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input client.RegisterRequest
	if !bindJSON(r, &input) {
		respondErr(w, codeInvalidParams, "malformed request body")
		return
	}
	if input.Target == "" || len(input.Password) < 6 {
		respondErr(w, codeInvalidParams, "target and a password of at least 6 characters are required")
		return
	}

	s.mu.Lock()
	c, captchaOK := s.captchas[input.CaptchaID]
	captchaOK = captchaOK && c.target == input.Target && c.code == input.Captcha
	if captchaOK {
		delete(s.captchas, input.CaptchaID)
	}
	_, duplicate := s.accounts[input.Target]
	var userID int64
	if captchaOK && !duplicate {
		acc := &account{
			id:       s.nextUserID,
			target:   input.Target,
			password: input.Password,
			userType: input.UserType,
			name:     input.Target,
		}
		s.nextUserID++
		s.accounts[acc.target] = acc
		s.accountsByID[acc.id] = acc
		userID = acc.id
	}
	s.mu.Unlock()

	if !captchaOK {
		respondErr(w, codeCaptchaMismatch, "captcha verification failed")
		return
	}
	if duplicate {
		respondErr(w, codeDuplicateUser, "account already exists")
		return
	}
	respond(w, client.RegisterResponse{BaseResp: okResp, UserID: userID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input client.LoginRequest
	if !bindJSON(r, &input) {
		respondErr(w, codeInvalidParams, "malformed request body")
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[input.Target]
	s.mu.Unlock()

	if !ok || acc.password != input.Password {
		respondErr(w, codeBadCredentials, "wrong account or password")
		return
	}

	respond(w, client.LoginResponse{
		BaseResp: okResp,
		Token:    s.IssueToken(acc.id, acc.userType),
		UserID:   acc.id,
		UserType: acc.userType,
	})
}

// --- Order handlers ---

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, _, authed := s.identity(r)
	if !authed {
		respondErr(w, codeUnauthorized, "not authenticated")
		return
	}

	var input client.CreateOrderRequest
	if !bindJSON(r, &input) {
		respondErr(w, codeInvalidParams, "malformed request body")
		return
	}
	if input.RespUserID <= 0 || len(input.Items) == 0 {
		respondErr(w, codeInvalidParams, "resp_user_id and items are required")
		return
	}

	s.mu.Lock()
	short := false
	for _, item := range input.Items {
		sku, ok := s.skus[item.SkuID]
		if !ok || sku.Stock < item.Count || item.Count < 1 {
			short = true
			break
		}
	}
	var orderID string
	if !short {
		for _, item := range input.Items {
			s.skus[item.SkuID].Stock -= item.Count
		}

		now := time.Now().UTC().Format(time.RFC3339)
		orderID = newOrderID()
		s.orders[orderID] = &client.Order{
			ID:         orderID,
			Type:       input.Type,
			Status:     input.Status,
			ReqUserID:  userID,
			RespUserID: input.RespUserID,
			Items:      input.Items,
			CreatedAt:  now,
			UpdatedAt:  now,
			Ext:        input.Ext,
		}
		s.orderSeq = append(s.orderSeq, orderID)
	}
	s.mu.Unlock()

	if short {
		respondErr(w, codeStockShort, "insufficient stock")
		return
	}
	respond(w, client.CreateOrderResponse{BaseResp: okResp, OrderID: orderID})
}

func (s *Server) handleQueryOrderID(w http.ResponseWriter, r *http.Request) {
	var input client.QueryOrderIDRequest
	if !bindJSON(r, &input) {
		respondErr(w, codeInvalidParams, "malformed request body")
		return
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	s.mu.Lock()
	ids := s.sortedOrderIDs(input.Type, input.UserID)
	s.mu.Unlock()

	total := int64(len(ids))
	start := int(page-1) * int(pageSize)
	if start > len(ids) {
		start = len(ids)
	}
	end := start + int(pageSize)
	if end > len(ids) {
		end = len(ids)
	}

	respond(w, client.QueryOrderIDResponse{
		BaseResp: okResp,
		OrderIDs: ids[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (s *Server) handleQueryOrderInfo(w http.ResponseWriter, r *http.Request) {
	var input client.QueryOrderInfoRequest
	if !bindJSON(r, &input) {
		respondErr(w, codeInvalidParams, "malformed request body")
		return
	}

	s.mu.Lock()
	order, ok := s.orders[input.ID]
	var copied client.Order
	if ok {
		copied = *order
	}
	s.mu.Unlock()

	if !ok {
		respondErr(w, codeNotFound, "order not found")
		return
	}
	respond(w, client.QueryOrderInfoResponse{BaseResp: okResp, Order: &copied})
}
