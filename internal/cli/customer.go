package cli

import (
	"context"

	"storefront/internal/app/order"
	"storefront/internal/client"
	"storefront/internal/pkg/money"
)

// customerScreen drills down merchant -> product -> SKU and hands the chosen
// SKU to the order confirmation screen.
func (a *App) customerScreen(ctx context.Context) {
	merchants, err := a.catalog.Merchants(ctx)
	if err != nil {
		a.reportErr(err)
		return
	}
	if len(merchants) == 0 {
		a.printf("No merchants available.\n")
		return
	}

	a.printf("\n--- Merchants ---\n")
	for _, m := range merchants {
		a.printf("  #%d  %s\n", m.ID, m.Name)
	}
	merchantID, ok := a.promptInt("Merchant id (0 to go back): ")
	if !ok || merchantID == 0 {
		return
	}

	products, err := a.catalog.Products(ctx, merchantID, 1, 20)
	if err != nil {
		a.reportErr(err)
		return
	}
	if len(products) == 0 {
		a.printf("This merchant has no products.\n")
		return
	}

	a.printf("\n--- Products ---\n")
	for _, p := range products {
		a.printf("  #%d  %s  (%s)\n", p.ID, p.Name, p.Ext.Desc)
	}
	productID, ok := a.promptInt("Product id (0 to go back): ")
	if !ok || productID == 0 {
		return
	}

	var productName string
	for _, p := range products {
		if p.ID == productID {
			productName = p.Name
			break
		}
	}

	skus, err := a.catalog.Skus(ctx, merchantID, productID)
	if err != nil {
		a.reportErr(err)
		return
	}
	if len(skus) == 0 {
		a.printf("This product has no SKUs.\n")
		return
	}

	a.printf("\n--- SKUs ---\n")
	for _, sku := range skus {
		a.printf("  #%d  %s  %s  stock %d\n", sku.ID, sku.SkuCode, money.Format(sku.Price), sku.Stock)
	}
	skuID, ok := a.promptInt("SKU id to order (0 to go back): ")
	if !ok || skuID == 0 {
		return
	}

	var picked *client.Sku
	for i := range skus {
		if skus[i].ID == skuID {
			picked = &skus[i]
			break
		}
	}
	if picked == nil {
		a.printf("SKU #%d is not in the list.\n", skuID)
		return
	}

	a.orderCommitScreen(ctx, order.Selection{
		ProductID:   productID,
		ProductName: productName,
		SkuID:       picked.ID,
		SkuCode:     picked.SkuCode,
		Price:       picked.Price,
		Stock:       picked.Stock,
		MerchantID:  merchantID,
	})
}

// orderCommitScreen runs the draft's editing loop: adjust quantity under the
// stock ceiling, then confirm. Rejected adjustments keep the quantity and
// show the draft's message; a successful submission jumps to the order's
// detail view.
func (a *App) orderCommitScreen(ctx context.Context, sel order.Selection) {
	draft, err := a.drafts.Create(sel)
	if err != nil {
		// Bad selection: nothing to edit, back to browsing.
		a.reportErr(err)
		return
	}
	defer a.drafts.Remove(draft.ID())

	for {
		s := draft.Selection()
		a.printf("\n--- Order confirmation ---\n")
		a.printf("Product:  %s (#%d)\n", s.ProductName, s.ProductID)
		a.printf("SKU:      %s (#%d)\n", s.SkuCode, s.SkuID)
		a.printf("Merchant: #%d\n", s.MerchantID)
		a.printf("Unit:     %s   Quantity: %d   Remaining stock: %d\n", money.Format(s.Price), draft.Count(), draft.Remaining())
		a.printf("Total:    %s\n", draft.TotalDisplay())
		if msg := draft.Message(); msg != "" {
			a.printf("! %s\n", msg)
		}

		choice, ok := a.prompt("+) more  -) fewer  c) confirm  b) back > ")
		if !ok || choice == "b" {
			return
		}

		switch choice {
		case "+":
			_ = draft.Increment()
		case "-":
			_ = draft.Decrement()
		case "c":
			orderID, err := draft.Submit(ctx, a.api)
			if err != nil {
				// Message is on the draft; stay in the editing loop.
				continue
			}
			a.printf("Order created: %s\n", orderID)
			a.orderDetailView(ctx, orderID)
			return
		default:
			a.printf("Unknown choice %q.\n", choice)
		}
	}
}
