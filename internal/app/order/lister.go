/*
Package order implements the order commit flow and the order listing logic.

This file holds the Lister: "my orders" resolved from the caller's decoded
role (customers list orders they initiated, everyone else orders they
received), with clamped pagination over the id list and independent on-demand
detail fetches.
*/
package order

import (
	"context"

	"storefront/internal/client"
	"storefront/internal/pkg/auth/claims"
	"storefront/internal/pkg/errs"
)

// Pagination bounds.
const (
	DefaultPageSize int32 = 20
	MaxPageSize     int32 = 100
)

// Querier is the slice of the API client the lister needs.
type Querier interface {
	QueryOrderID(ctx context.Context, req *client.QueryOrderIDRequest) (*client.QueryOrderIDResponse, error)
	QueryOrderInfo(ctx context.Context, req *client.QueryOrderInfoRequest) (*client.QueryOrderInfoResponse, error)
}

// ResolveQueryType maps a decoded role to the listing filter: role code 1
// (customer) queries as the order initiator, any other value as the
// recipient.
func ResolveQueryType(payload *claims.Payload) int32 {
	if payload != nil && payload.UserType == claims.RoleCustomer {
		return client.QueryByInitiator
	}
	return client.QueryByRecipient
}

// Lister pages through the caller's order ids. It belongs to one interaction
// context and is not safe for concurrent use.
type Lister struct {
	api       Querier
	userID    int64
	queryType int32

	page     int32
	pageSize int32
	total    int64
}

// NewLister builds a lister for the identity in the decoded payload.
// A payload without a usable identity is rejected; the caller is expected to
// clear the stale token and return to login.
func NewLister(api Querier, payload *claims.Payload) (*Lister, error) {
	if !payload.HasIdentity() {
		return nil, errs.NewError(errs.ErrTokenUndecodable)
	}

	return &Lister{
		api:       api,
		userID:    payload.UserID,
		queryType: ResolveQueryType(payload),
		page:      1,
		pageSize:  DefaultPageSize,
	}, nil
}

// QueryType returns the resolved listing filter.
func (l *Lister) QueryType() int32 { return l.queryType }

// Page returns the current page number.
func (l *Lister) Page() int32 { return l.page }

// PageSize returns the current page size.
func (l *Lister) PageSize() int32 { return l.pageSize }

// Total returns the total id count reported by the last fetch.
func (l *Lister) Total() int64 { return l.total }

// TotalPages derives the page count from the last known total.
func (l *Lister) TotalPages() int32 {
	if l.pageSize <= 0 {
		return 0
	}
	return int32((l.total + int64(l.pageSize) - 1) / int64(l.pageSize))
}

// SetPage moves to the given page. Page numbers below one or beyond the last
// known page are rejected and the current page is retained.
func (l *Lister) SetPage(page int32) bool {
	if page < 1 || page > l.TotalPages() {
		return false
	}
	l.page = page
	return true
}

// SetPageSize changes the page size and resets to the first page. Sizes
// outside [1, MaxPageSize] are rejected with no state change.
func (l *Lister) SetPageSize(size int32) bool {
	if size < 1 || size > MaxPageSize {
		return false
	}
	l.pageSize = size
	l.page = 1
	return true
}

// FetchIDs loads the current page of order ids and records the reported
// total and page parameters for subsequent pagination.
func (l *Lister) FetchIDs(ctx context.Context) ([]string, error) {
	page := l.page
	if page < 1 {
		page = 1
	}
	pageSize := l.pageSize
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	resp, err := l.api.QueryOrderID(ctx, &client.QueryOrderIDRequest{
		Type:     l.queryType,
		UserID:   l.userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	l.total = resp.Total
	if resp.Page > 0 {
		l.page = resp.Page
	}
	if resp.PageSize > 0 {
		l.pageSize = resp.PageSize
	}
	return resp.OrderIDs, nil
}

// FetchDetail loads one order by id. The call is independent of FetchIDs: a
// detail failure does not invalidate an already-loaded id list.
func (l *Lister) FetchDetail(ctx context.Context, orderID string) (*client.Order, error) {
	resp, err := l.api.QueryOrderInfo(ctx, &client.QueryOrderInfoRequest{ID: orderID})
	if err != nil {
		return nil, err
	}
	return resp.Order, nil
}
