package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "busca_cep",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "busca_cep",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// LookupRequestsTotal conta chamadas aos canais de consulta (local_street,
	// local_neighborhood, local_code, external_text, external_code)
	LookupRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "busca_cep",
			Name:      "lookup_requests_total",
			Help:      "Total number of lookup channel calls",
		},
		[]string{"channel", "status"},
	)

	LookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "busca_cep",
			Name:      "lookup_duration_seconds",
			Help:      "Lookup channel call duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"channel"},
	)

	// SearchOutcomesTotal conta buscas por tipo (address, code) e resultado (found, not_found, unavailable, invalid)
	SearchOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "busca_cep",
			Name:      "search_outcomes_total",
			Help:      "Total number of searches by outcome",
		},
		[]string{"kind", "outcome"},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "busca_cep",
			Name:      "cache_total",
			Help:      "Cache hits and misses",
		},
		[]string{"cache", "result"}, // "hit" / "miss"
	)

	ChatIntentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "busca_cep",
			Name:      "chat_intents_total",
			Help:      "Chat messages by classified intent",
		},
		[]string{"intent"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		LookupRequestsTotal,
		LookupDuration,
		SearchOutcomesTotal,
		CacheTotal,
		ChatIntentsTotal,
	)
}
