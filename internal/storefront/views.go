package storefront

import (
	"storefront/internal/cart"
	"storefront/internal/catalog"
)

type productView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

type productsView struct {
	Query    string        `json:"query"`
	Count    int           `json:"count"`
	Products []productView `json:"products"`
}

type lineView struct {
	Product  productView `json:"product"`
	Quantity int         `json:"quantity"`
	Subtotal string      `json:"subtotal"`
}

type cartView struct {
	Lines     []lineView `json:"lines"`
	LineCount int        `json:"line_count"`
	Total     string     `json:"total"`
}

func newProductView(p catalog.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
	}
}

func newProductsView(query string, products []catalog.Product) productsView {
	v := productsView{Query: query, Count: len(products), Products: make([]productView, 0, len(products))}
	for _, p := range products {
		v.Products = append(v.Products, newProductView(p))
	}
	return v
}

func newCartView(c *cart.Cart) cartView {
	lines := c.Lines()
	v := cartView{
		Lines:     make([]lineView, 0, len(lines)),
		LineCount: c.LineCount(),
		Total:     c.TotalPrice().StringFixed(2),
	}
	for _, l := range lines {
		v.Lines = append(v.Lines, lineView{
			Product:  newProductView(l.Product),
			Quantity: l.Quantity,
			Subtotal: l.Subtotal().StringFixed(2),
		})
	}
	return v
}
