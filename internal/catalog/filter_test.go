package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront/internal/catalog"
)

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "a", Name: "Mug", Description: "Blue stoneware", Price: decimal.RequireFromString("5.00")},
		{ID: "b", Name: "Pen", Description: "Black ink", Price: decimal.RequireFromString("1.50")},
		{ID: "c", Name: "Blue Notebook", Description: "Dotted paper", Price: decimal.RequireFromString("8.00")},
	}
}

func ids(ps []catalog.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns everything", query: "", want: []string{"a", "b", "c"}},
		{name: "blank query returns everything", query: "   ", want: []string{"a", "b", "c"}},
		{name: "matches name", query: "pen", want: []string{"b"}},
		{name: "matches description", query: "INK", want: []string{"b"}},
		{name: "matches name or description in order", query: "blue", want: []string{"a", "c"}},
		{name: "no match", query: "lamp", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.Filter(sampleProducts(), tt.query)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_DoesNotMutateSource(t *testing.T) {
	source := sampleProducts()
	before := sampleProducts()

	narrow := catalog.Filter(source, "blue")
	narrower := catalog.Filter(source, "blue note")
	widened := catalog.Filter(source, "")
	again := catalog.Filter(source, "blue")

	assert.Empty(t, cmp.Diff(before, source))
	assert.Equal(t, []string{"a", "c"}, ids(narrow))
	assert.Equal(t, []string{"c"}, ids(narrower))
	assert.Equal(t, []string{"a", "b", "c"}, ids(widened))
	assert.Equal(t, ids(narrow), ids(again))

	widened[0].Name = "changed"
	assert.Equal(t, "Mug", source[0].Name, "result must not alias the source")
}

func TestFilter_NilInput(t *testing.T) {
	got := catalog.Filter(nil, "x")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
