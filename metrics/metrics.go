package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// KitchenTransitions counts operator actions on the kitchen display by operation and outcome.
	KitchenTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchen_transitions_total",
		Help: "Kitchen state transitions by operation and result.",
	}, []string{"operation", "result"})

	// KitchenIngest counts records reconciled from the order store.
	KitchenIngest = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchen_ingest_total",
		Help: "Order records ingested into kitchen working sets by action.",
	}, []string{"action"})

	// OpenTickets is the working set size per venue.
	OpenTickets = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "kitchen_open_tickets",
		Help: "Open kitchen tickets per venue.",
	}, []string{"venue"})

	StoreWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_store_write_failures_total",
		Help: "Failed order store writes, including retries.",
	})

	RetryQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "order_store_retry_queue_depth",
		Help: "Patches waiting to be re-sent to the order store.",
	})
)
