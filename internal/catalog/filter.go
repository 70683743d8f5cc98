package catalog

import "strings"

// Filter returns the products whose name or description contains query,
// ignoring case, in their original order. A blank query matches everything.
// The input is never modified; the result is always a fresh slice.
func Filter(products []Product, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if q == "" || matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p Product, lowered string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowered) ||
		strings.Contains(strings.ToLower(p.Description), lowered)
}
