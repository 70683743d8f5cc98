package session_test

import (
	"github.com/shopspring/decimal"

	"storefront/internal/catalog"
)

func mugProduct() catalog.Product {
	return catalog.Product{ID: "a", Name: "Mug", Price: decimal.RequireFromString("5.00")}
}
