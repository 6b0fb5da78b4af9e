/*
Package order implements the order commit flow and the order listing logic.

This file holds the Draft: the short-lived state carried between picking a SKU
and submitting the order. A draft validates its catalog selection on entry,
keeps the purchase quantity inside [1, stock], and derives the total price
from the unit price on every read so the displayed unit price, quantity, and
total can never drift apart.
*/
package order

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"storefront/internal/client"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/money"
)

// orderTypePurchase is the order type code for a storefront purchase.
const orderTypePurchase int32 = 1

// Selection is the catalog item a draft is built from.
type Selection struct {
	ProductID   int64
	ProductName string
	SkuID       int64
	SkuCode     string
	// Price is the unit price in minor currency units.
	Price int64
	// Stock is the purchasable ceiling at selection time.
	Stock int64
	// MerchantID is the order's counterparty.
	MerchantID int64
}

// Creator is the slice of the API client a draft needs to submit itself.
type Creator interface {
	CreateOrder(ctx context.Context, req *client.CreateOrderRequest) (*client.CreateOrderResponse, error)
}

// Draft is an unconfirmed single-line order. A draft belongs to one
// interaction context and is not safe for concurrent use; the Registry
// guarding the collection of drafts is.
type Draft struct {
	id      string
	sel     Selection
	count   int64
	message string
}

// NewDraft validates the selection and returns a fresh draft with quantity 1.
// A selection without a product or SKU id is rejected outright; such a draft
// never reaches the editing state.
func NewDraft(sel Selection) (*Draft, error) {
	if sel.ProductID <= 0 || sel.SkuID <= 0 {
		return nil, errs.NewError(errs.ErrDraftIncomplete)
	}

	return &Draft{
		id:    uuid.NewString(),
		sel:   sel,
		count: 1,
	}, nil
}

// ID returns the generated draft identifier.
func (d *Draft) ID() string { return d.id }

// Selection returns the catalog selection the draft was built from.
func (d *Draft) Selection() Selection { return d.sel }

// Count returns the current purchase quantity.
func (d *Draft) Count() int64 { return d.count }

// Message returns the user-visible message from the most recent rejected
// adjustment or failed submission, empty when the draft is clean.
func (d *Draft) Message() string { return d.message }

// Remaining returns how much stock is left after the current quantity.
func (d *Draft) Remaining() int64 { return d.sel.Stock - d.count }

// Total returns unit price times quantity in minor currency units.
func (d *Draft) Total() int64 { return d.sel.Price * d.count }

// TotalDisplay renders the total as a currency string, e.g. "¥198.00".
func (d *Draft) TotalDisplay() string { return money.Format(d.Total()) }

// Increment raises the quantity by one. At the stock ceiling the quantity is
// unchanged and the rejection message is kept for display; a successful
// adjustment clears any prior message.
func (d *Draft) Increment() error {
	if d.count >= d.sel.Stock {
		err := errs.NewError(errs.ErrQuantityAboveStock, d.sel.Stock)
		d.message = err.Message
		return err
	}

	d.count++
	d.message = ""
	return nil
}

// Decrement lowers the quantity by one, rejecting below one with the same
// message semantics as Increment.
func (d *Draft) Decrement() error {
	if d.count <= 1 {
		err := errs.NewError(errs.ErrQuantityBelowMin)
		d.message = err.Message
		return err
	}

	d.count--
	d.message = ""
	return nil
}

// Submit re-validates the draft and sends the order creation request.
// On success it returns the server-assigned order id. On any failure the
// draft stays editable with the failure message set: validation failures
// never reach the network, an application-level rejection surfaces the
// server message, and a transport failure surfaces a generic one.
func (d *Draft) Submit(ctx context.Context, api Creator) (string, error) {
	if d.sel.MerchantID <= 0 || d.sel.ProductID <= 0 || d.sel.SkuID <= 0 {
		err := errs.NewError(errs.ErrDraftIncomplete)
		d.message = err.Message
		return "", err
	}
	if d.count < 1 || d.count > d.sel.Stock {
		err := errs.NewError(errs.ErrQuantityOutOfRange, d.sel.Stock)
		d.message = err.Message
		return "", err
	}

	req := &client.CreateOrderRequest{
		Type:       orderTypePurchase,
		Status:     client.OrderStatusAccepted,
		RespUserID: d.sel.MerchantID,
		Items: []client.OrderItem{
			{
				ProductID: d.sel.ProductID,
				SkuID:     d.sel.SkuID,
				Count:     d.count,
				Price:     d.sel.Price,
				Ext: map[string]string{
					"merchant_id":  strconv.FormatInt(d.sel.MerchantID, 10),
					"sku_code":     d.sel.SkuCode,
					"product_name": d.sel.ProductName,
				},
			},
		},
		Ext: map[string]string{
			"draft_id": d.id,
		},
	}

	resp, err := api.CreateOrder(ctx, req)
	if err != nil {
		if customErr, ok := err.(*errs.CustomError); ok {
			d.message = customErr.Message
		} else {
			d.message = errs.NewError(errs.ErrUnknown).Message
		}
		return "", err
	}

	d.message = ""
	return resp.OrderID, nil
}
