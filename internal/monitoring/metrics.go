package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	TurnsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pedebot_turns_total",
		Help: "Number of chat turns processed",
	})

	OrdersSubmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pedebot_orders_submitted_total",
		Help: "Number of order submissions by outcome",
	}, []string{"status"})

	AssistantCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pedebot_assistant_calls_total",
		Help: "Number of external assistant calls by result",
	}, []string{"result"})
)

func Register() {
	prometheus.MustRegister(TurnsProcessed, OrdersSubmitted, AssistantCalls)
}
