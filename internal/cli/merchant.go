package cli

import (
	"context"

	"storefront/internal/pkg/money"
)

// merchantScreen manages the logged-in merchant's own catalog. The merchant
// id comes from the decoded token payload, exactly as the listing queries do.
func (a *App) merchantScreen(ctx context.Context, merchantID int64) {
	for {
		a.printf("\n--- Product management (merchant %d) ---\n", merchantID)
		a.printf("  1) list products\n  2) create product\n  3) delete product\n  4) manage SKUs\n  5) deduct SKU stock\n  b) back\n")

		choice, ok := a.prompt("> ")
		if !ok || choice == "b" {
			return
		}

		switch choice {
		case "1":
			a.listProducts(ctx, merchantID)
		case "2":
			a.createProduct(ctx, merchantID)
		case "3":
			a.deleteProduct(ctx, merchantID)
		case "4":
			a.skuScreen(ctx, merchantID)
		case "5":
			a.deductStock(ctx)
		default:
			a.printf("Unknown choice %q.\n", choice)
		}
	}
}

func (a *App) listProducts(ctx context.Context, merchantID int64) {
	products, err := a.catalog.Products(ctx, merchantID, 1, 20)
	if err != nil {
		a.reportErr(err)
		return
	}

	if len(products) == 0 {
		a.printf("No products yet.\n")
		return
	}
	for _, p := range products {
		a.printf("  #%d  %s  (%s)\n", p.ID, p.Name, p.Ext.Desc)
	}
}

func (a *App) createProduct(ctx context.Context, merchantID int64) {
	name, ok := a.prompt("Product name: ")
	if !ok {
		return
	}
	desc, ok := a.prompt("Description: ")
	if !ok {
		return
	}

	productID, err := a.catalog.CreateProduct(ctx, merchantID, name, desc)
	if err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Product #%d created.\n", productID)
}

func (a *App) deleteProduct(ctx context.Context, merchantID int64) {
	productID, ok := a.promptInt("Product id to delete: ")
	if !ok {
		return
	}

	confirm, ok := a.prompt("Delete? (y/N): ")
	if !ok || confirm != "y" {
		return
	}

	if err := a.catalog.DeleteProduct(ctx, merchantID, productID); err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Product #%d deleted.\n", productID)
}

// skuScreen lists and creates SKUs under one product.
func (a *App) skuScreen(ctx context.Context, merchantID int64) {
	productID, ok := a.promptInt("Product id: ")
	if !ok {
		return
	}

	for {
		skus, err := a.catalog.Skus(ctx, merchantID, productID)
		if err != nil {
			a.reportErr(err)
			return
		}

		if len(skus) == 0 {
			a.printf("No SKUs for product #%d.\n", productID)
		}
		for _, sku := range skus {
			a.printf("  #%d  %s  %s  stock %d\n", sku.ID, sku.SkuCode, money.Format(sku.Price), sku.Stock)
		}

		choice, ok := a.prompt("1) create SKU  b) back > ")
		if !ok || choice == "b" {
			return
		}
		if choice != "1" {
			continue
		}

		code, ok := a.prompt("SKU code: ")
		if !ok {
			return
		}
		price, ok := a.promptInt("Unit price (fen): ")
		if !ok {
			return
		}
		stock, ok := a.promptInt("Stock: ")
		if !ok {
			return
		}

		skuID, err := a.catalog.CreateSku(ctx, merchantID, productID, code, price, stock)
		if err != nil {
			a.reportErr(err)
			continue
		}
		a.printf("SKU #%d created.\n", skuID)
	}
}

func (a *App) deductStock(ctx context.Context) {
	skuID, ok := a.promptInt("SKU id: ")
	if !ok {
		return
	}
	count, ok := a.promptInt("Count to deduct: ")
	if !ok {
		return
	}

	if err := a.catalog.DeductStock(ctx, skuID, count); err != nil {
		a.reportErr(err)
		return
	}
	a.printf("Stock deducted.\n")
}
