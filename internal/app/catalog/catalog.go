/*
Package catalog exposes the merchant and customer catalog operations.

It is a thin, validated layer over the API client: merchants manage products
and SKUs under their own merchant id, customers browse the merchant directory
and drill down to purchasable SKUs. Everything durable lives server-side;
this layer only rejects requests that would fail validation anyway.
*/
package catalog

import (
	"context"

	"storefront/internal/client"
	"storefront/internal/pkg/errs"
)

// API is the slice of the client the catalog service uses.
type API interface {
	CreateProduct(ctx context.Context, req *client.CreateProductRequest) (*client.CreateProductResponse, error)
	ListProduct(ctx context.Context, req *client.ListProductRequest) (*client.ListProductResponse, error)
	DeleteProduct(ctx context.Context, req *client.DeleteProductRequest) (*client.DeleteProductResponse, error)
	ListSku(ctx context.Context, req *client.ListSkuRequest) (*client.ListSkuResponse, error)
	CreateSku(ctx context.Context, req *client.CreateSkuRequest) (*client.CreateSkuResponse, error)
	DeductSkuStock(ctx context.Context, req *client.DeductSkuStockRequest) (*client.DeductSkuStockResponse, error)
	ListMerchant(ctx context.Context) (*client.ListMerchantResponse, error)
}

// Service performs catalog operations through the API client.
type Service struct {
	api API
}

// NewService wraps the given API client.
func NewService(api API) *Service {
	return &Service{api: api}
}

// CreateProduct creates a product under the merchant and returns its id.
func (s *Service) CreateProduct(ctx context.Context, merchantID int64, name, desc string) (int64, error) {
	if name == "" {
		return 0, errs.NewError(errs.ErrInvalidParams, "product name must not be empty")
	}

	resp, err := s.api.CreateProduct(ctx, &client.CreateProductRequest{
		MerchantID: merchantID,
		Name:       name,
		Ext:        client.ProductExt{Desc: desc},
	})
	if err != nil {
		return 0, err
	}
	return resp.ProductID, nil
}

// Products lists one page of a merchant's products. Non-positive paging
// parameters fall back to page 1 and the default size of 20.
func (s *Service) Products(ctx context.Context, merchantID int64, pageNum, pageSize int32) ([]client.Product, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	resp, err := s.api.ListProduct(ctx, &client.ListProductRequest{
		MerchantID: merchantID,
		PageNum:    pageNum,
		PageSize:   pageSize,
	})
	if err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// DeleteProduct removes one of the merchant's products.
func (s *Service) DeleteProduct(ctx context.Context, merchantID, productID int64) error {
	_, err := s.api.DeleteProduct(ctx, &client.DeleteProductRequest{
		MerchantID: merchantID,
		ProductID:  productID,
	})
	return err
}

// Skus lists the SKUs of one product.
func (s *Service) Skus(ctx context.Context, merchantID, productID int64) ([]client.Sku, error) {
	resp, err := s.api.ListSku(ctx, &client.ListSkuRequest{
		MerchantID: merchantID,
		ProductID:  productID,
	})
	if err != nil {
		return nil, err
	}
	return resp.Skus, nil
}

// CreateSku creates a SKU under the product and returns its id.
func (s *Service) CreateSku(ctx context.Context, merchantID, productID int64, skuCode string, price, stock int64) (int64, error) {
	if skuCode == "" {
		return 0, errs.NewError(errs.ErrInvalidParams, "sku code must not be empty")
	}
	if price < 0 || stock < 0 {
		return 0, errs.NewError(errs.ErrInvalidParams, "price and stock must not be negative")
	}

	resp, err := s.api.CreateSku(ctx, &client.CreateSkuRequest{
		MerchantID: merchantID,
		ProductID:  productID,
		SkuCode:    skuCode,
		Price:      price,
		Stock:      stock,
	})
	if err != nil {
		return 0, err
	}
	return resp.SkuID, nil
}

// DeductStock lowers a SKU's stock by count.
func (s *Service) DeductStock(ctx context.Context, skuID, count int64) error {
	if count < 1 {
		return errs.NewError(errs.ErrInvalidParams, "deduction count must be at least 1")
	}

	_, err := s.api.DeductSkuStock(ctx, &client.DeductSkuStockRequest{
		SkuID: skuID,
		Count: count,
	})
	return err
}

// Merchants lists the merchant directory.
func (s *Service) Merchants(ctx context.Context) ([]client.Merchant, error) {
	resp, err := s.api.ListMerchant(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Merchants, nil
}
