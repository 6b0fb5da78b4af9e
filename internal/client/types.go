/*
Package client implements the typed HTTP client for the remote storefront API.

This file defines the wire data model: the shared response envelope, the
catalog and order entities, and the request/response pair for every endpoint.
All prices are integer minor currency units (fen); extension fields are flat
string-to-string maps.
*/
package client

// BaseResp is the application-level envelope carried by every response.
// Code 0 denotes success; any other value is an application error whose
// description is in Msg.
type BaseResp struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg"`
}

// Base returns the envelope. Responses embed BaseResp, so the promoted method
// lets the transport layer inspect any response uniformly.
func (b BaseResp) Base() BaseResp { return b }

// Wire enum for login/registration targets.
const (
	// TargetTypeEmail selects an email address as the account identifier.
	TargetTypeEmail int32 = 1

	// TargetTypePhone selects a phone number as the account identifier.
	TargetTypePhone int32 = 2
)

// Wire enum for user roles.
const (
	UserTypeCustomer int32 = 1
	UserTypeMerchant int32 = 2
)

// Wire enum selecting which side of an order a listing query matches.
const (
	// QueryByInitiator lists orders where the user placed the order.
	QueryByInitiator int32 = 1

	// QueryByRecipient lists orders where the user received the order.
	QueryByRecipient int32 = 2
)

// Order status codes as rendered by the storefront.
const (
	OrderStatusPending   int32 = 0
	OrderStatusAccepted  int32 = 1
	OrderStatusCompleted int32 = 2
	OrderStatusCancelled int32 = 3
)

// ProductExt holds the free-form product extension fields.
type ProductExt struct {
	Desc string `json:"desc"`
}

// Product is a catalog product owned by a merchant.
type Product struct {
	ID         int64      `json:"id"`
	MerchantID int64      `json:"merchant_id"`
	Name       string     `json:"name"`
	Ext        ProductExt `json:"ext"`
}

// Sku is a purchasable variant of a product.
type Sku struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	SkuCode   string `json:"sku_code"`
	Price     int64  `json:"price"`
	Stock     int64  `json:"stock"`
}

// Merchant is an entry of the merchant directory.
type Merchant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderItem is a single ordered line.
type OrderItem struct {
	ProductID int64             `json:"product_id"`
	SkuID     int64             `json:"sku_id"`
	Count     int64             `json:"count"`
	Price     int64             `json:"price"`
	Ext       map[string]string `json:"ext,omitempty"`
}

// Order is the server-owned order record; read-only from this client.
type Order struct {
	ID         string            `json:"id"`
	Type       int32             `json:"type"`
	Status     int32             `json:"status"`
	ReqUserID  int64             `json:"req_user_id"`
	RespUserID int64             `json:"resp_user_id"`
	Items      []OrderItem       `json:"items"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
	Ext        map[string]string `json:"ext,omitempty"`
}

// --- Product endpoints ---

type CreateProductRequest struct {
	MerchantID int64      `json:"merchant_id"`
	Name       string     `json:"name"`
	Ext        ProductExt `json:"ext"`
}

type CreateProductResponse struct {
	BaseResp `json:"baseResp"`
	ProductID int64    `json:"product_id"`
}

type ListProductRequest struct {
	MerchantID int64 `json:"merchant_id"`
	PageNum    int32 `json:"page_num"`
	PageSize   int32 `json:"page_size"`
}

type ListProductResponse struct {
	BaseResp `json:"baseResp"`
	Products []Product `json:"products"`
}

type DeleteProductRequest struct {
	MerchantID int64 `json:"merchant_id"`
	ProductID  int64 `json:"product_id"`
}

type DeleteProductResponse struct {
	BaseResp `json:"baseResp"`
}

// --- SKU endpoints ---

type ListSkuRequest struct {
	MerchantID int64 `json:"merchant_id"`
	ProductID  int64 `json:"product_id"`
}

type ListSkuResponse struct {
	BaseResp `json:"baseResp"`
	Skus     []Sku    `json:"skus"`
}

type CreateSkuRequest struct {
	MerchantID int64  `json:"merchant_id"`
	ProductID  int64  `json:"product_id"`
	SkuCode    string `json:"sku_code"`
	Price      int64  `json:"price"`
	Stock      int64  `json:"stock"`
}

type CreateSkuResponse struct {
	BaseResp `json:"baseResp"`
	SkuID    int64    `json:"sku_id"`
}

type DeductSkuStockRequest struct {
	SkuID int64 `json:"sku_id"`
	Count int64 `json:"count"`
}

type DeductSkuStockResponse struct {
	BaseResp `json:"baseResp"`
}

// --- Merchant endpoints ---

type ListMerchantResponse struct {
	BaseResp `json:"baseResp"`
	// The merchant directory rides in the envelope's generic data slot.
	Merchants []Merchant `json:"data"`
}

// --- Auth endpoints ---

type GenerateCaptchaRequest struct {
	Target     string `json:"target"`
	TargetType int32  `json:"target_type"`
}

type GenerateCaptchaResponse struct {
	BaseResp `json:"baseResp"`
	CaptchaID string   `json:"captcha_id"`
}

type RegisterRequest struct {
	Target     string `json:"target"`
	TargetType int32  `json:"target_type"`
	Password   string `json:"password"`
	Captcha    string `json:"captcha"`
	CaptchaID  string `json:"captcha_id,omitempty"`
	UserType   int32  `json:"user_type"`
}

type RegisterResponse struct {
	BaseResp `json:"baseResp"`
	UserID   int64    `json:"user_id"`
}

type LoginRequest struct {
	Target     string `json:"target"`
	TargetType int32  `json:"target_type"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	BaseResp `json:"baseResp"`
	Token    string   `json:"token"`
	UserID   int64    `json:"user_id"`
	UserType int32    `json:"user_type"`
}

// --- Order endpoints ---

type CreateOrderRequest struct {
	Type       int32             `json:"type"`
	Status     int32             `json:"status"`
	RespUserID int64             `json:"resp_user_id"`
	Items      []OrderItem       `json:"items"`
	Ext        map[string]string `json:"ext,omitempty"`
}

type CreateOrderResponse struct {
	BaseResp `json:"baseResp"`
	OrderID  string   `json:"order_id"`
}

type QueryOrderIDRequest struct {
	Type     int32 `json:"type"`
	UserID   int64 `json:"user_id"`
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

type QueryOrderIDResponse struct {
	BaseResp `json:"baseResp"`
	OrderIDs []string `json:"order_id"`
	Total    int64    `json:"total"`
	Page     int32    `json:"page"`
	PageSize int32    `json:"page_size"`
}

type QueryOrderInfoRequest struct {
	ID string `json:"id"`
}

type QueryOrderInfoResponse struct {
	BaseResp `json:"baseResp"`
	Order    *Order   `json:"order"`
}
