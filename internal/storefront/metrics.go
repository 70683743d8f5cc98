package storefront

import "github.com/prometheus/client_golang/prometheus"

type domainMetrics struct {
	cartMutations  *prometheus.CounterVec
	catalogFetches *prometheus.CounterVec
}

func newDomainMetrics(reg prometheus.Registerer) *domainMetrics {
	if reg == nil {
		return nil
	}

	m := &domainMetrics{
		cartMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_cart_mutations_total",
				Help: "Cart add/remove operations",
			},
			[]string{"op"},
		),
		catalogFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_catalog_fetches_total",
				Help: "Catalog reloads and failed loads by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.cartMutations, m.catalogFetches)
	return m
}

func (m *domainMetrics) cartMutation(op string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(op).Inc()
}

func (m *domainMetrics) catalogFetch(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.catalogFetches.WithLabelValues(result).Inc()
}
