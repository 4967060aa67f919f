package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// turnsTotal counts chat turns by classified intent.
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maps_assistant",
		Subsystem: "chat",
		Name:      "turns_total",
		Help:      "Chat turns by classified intent",
	}, []string{"intent"})

	// llmOutcomesTotal counts model calls by result (ok, timeout, connection_refused, protocol_error).
	llmOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maps_assistant",
		Subsystem: "chat",
		Name:      "llm_outcomes_total",
		Help:      "Model calls by result",
	}, []string{"result"})

	// toolOutcomesTotal counts map tool results by intent and status.
	toolOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maps_assistant",
		Subsystem: "chat",
		Name:      "tool_outcomes_total",
		Help:      "Map tool outcomes by intent and status",
	}, []string{"intent", "status"})

	turnLatencySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "maps_assistant",
		Subsystem: "chat",
		Name:      "turn_latency_seconds",
		Help:      "End-to-end chat turn latency",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	})
)
