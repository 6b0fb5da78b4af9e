package cli

import (
	"context"

	"storefront/internal/app/order"
	"storefront/internal/client"
	"storefront/internal/pkg/auth/claims"
	"storefront/internal/pkg/money"
)

// statusText renders an order status code.
func statusText(status int32) string {
	switch status {
	case client.OrderStatusPending:
		return "pending"
	case client.OrderStatusAccepted:
		return "accepted"
	case client.OrderStatusCompleted:
		return "completed"
	case client.OrderStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ordersScreen pages through "my orders" for the caller's role and shows
// details on demand. The id list survives a failed detail fetch.
func (a *App) ordersScreen(ctx context.Context, payload *claims.Payload) {
	lister, err := order.NewLister(a.api, payload)
	if err != nil {
		a.reportErr(err)
		return
	}

	side := "initiator"
	if lister.QueryType() == client.QueryByRecipient {
		side = "recipient"
	}

	for {
		ids, err := lister.FetchIDs(ctx)
		if err != nil {
			a.reportErr(err)
			return
		}

		a.printf("\n--- My orders (%s) — page %d/%d, %d total ---\n", side, lister.Page(), lister.TotalPages(), lister.Total())
		if len(ids) == 0 {
			a.printf("No orders.\n")
		}
		for _, id := range ids {
			a.printf("  %s\n", id)
		}

		choice, ok := a.prompt("id) detail  n) next  p) prev  s) page size  b) back > ")
		if !ok || choice == "b" {
			return
		}

		switch choice {
		case "n":
			if !lister.SetPage(lister.Page() + 1) {
				a.printf("Already on the last page.\n")
			}
		case "p":
			if !lister.SetPage(lister.Page() - 1) {
				a.printf("Already on the first page.\n")
			}
		case "s":
			size, ok := a.promptInt("Page size (1-100): ")
			if !ok {
				return
			}
			if !lister.SetPageSize(int32(size)) {
				a.printf("Page size must be between 1 and %d.\n", order.MaxPageSize)
			}
		default:
			detail, err := lister.FetchDetail(ctx, choice)
			if err != nil {
				a.reportErr(err)
				continue
			}
			a.printOrder(detail)
		}
	}
}

// orderDetailView fetches and prints one order, used right after a
// successful submission.
func (a *App) orderDetailView(ctx context.Context, orderID string) {
	resp, err := a.api.QueryOrderInfo(ctx, &client.QueryOrderInfoRequest{ID: orderID})
	if err != nil {
		a.reportErr(err)
		return
	}
	a.printOrder(resp.Order)
}

func (a *App) printOrder(o *client.Order) {
	if o == nil {
		a.printf("Order detail unavailable.\n")
		return
	}

	a.printf("\nOrder %s\n", o.ID)
	a.printf("  status:    %s\n", statusText(o.Status))
	a.printf("  initiator: %d   recipient: %d\n", o.ReqUserID, o.RespUserID)
	a.printf("  created:   %s   updated: %s\n", o.CreatedAt, o.UpdatedAt)
	for _, item := range o.Items {
		a.printf("  line: product #%d sku #%d x%d @ %s\n", item.ProductID, item.SkuID, item.Count, money.Format(item.Price))
	}
}
