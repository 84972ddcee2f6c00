package repo

import "github.com/prometheus/client_golang/prometheus"

var (
	// catalogLoads counts load attempts by operation (load|reload) and result (ok|error).
	catalogLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Message catalog load attempts by operation and result.",
		},
		[]string{"op", "result"},
	)

	catalogMessages = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_messages",
			Help: "Number of messages in the active catalog.",
		},
	)

	catalogEmptySets = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_empty_sets",
			Help: "Category/tone pairs with no messages in the active catalog.",
		},
	)

	catalogLastLoad = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_last_load_timestamp_seconds",
			Help: "Unix time of the last successful catalog load.",
		},
	)
)

func init() {
	prometheus.MustRegister(catalogLoads, catalogMessages, catalogEmptySets, catalogLastLoad)
}
