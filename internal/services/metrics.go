package services

import "github.com/prometheus/client_golang/prometheus"

// messagesServed counts successful lookups by pair and mode (random|all).
var messagesServed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "messages_served_total",
		Help: "Messages served by category, tone and mode.",
	},
	[]string{"category", "tone", "mode"},
)

func init() {
	prometheus.MustRegister(messagesServed)
}
