// README: Prometheus collectors shared by the search, assistant and HTTP layers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderSearches counts provider calls by outcome (offers, empty, error).
	ProviderSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skybook",
			Name:      "provider_searches_total",
			Help:      "The total number of provider search calls",
		},
		[]string{"provider", "outcome"},
	)

	ProviderSearchDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "skybook",
			Name:       "provider_search_duration_seconds",
			Help:       "Time spent waiting on a provider search",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"provider"},
	)

	// AssistantReplies counts assistant turns by reply kind.
	AssistantReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skybook",
			Name:      "assistant_replies_total",
			Help:      "The total number of assistant replies",
		},
		[]string{"kind"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "skybook",
			Name:      "http_requests_total",
			Help:      "The total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)
)
