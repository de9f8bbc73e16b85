package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lovechat"

// Metrics stores the Prometheus collectors used across the service.
type Metrics struct {
	ChatTurns        prometheus.Counter
	Replies          *prometheus.CounterVec
	PaymentsCreated  prometheus.Counter
	PaymentsVerified prometheus.Counter
	Registrations    prometheus.Counter
}

// Reply outcome label values.
const (
	ReplySent           = "sent"
	ReplyMissEmptyPool  = "miss_empty_pool"
	ReplyMissEmptyField = "miss_empty_field"
)

var (
	regOnce  sync.Once
	instance *Metrics
)

// Registry builds and registers the metrics singleton.
func Registry() *Metrics {
	regOnce.Do(func() {
		instance = &Metrics{
			ChatTurns: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_turns_total",
				Help:      "Total human chat turns persisted.",
			}),
			Replies: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "replies_total",
				Help:      "Synthetic reply attempts by outcome.",
			}, []string{"outcome"}),
			PaymentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_created_total",
				Help:      "Total payment claims recorded.",
			}),
			PaymentsVerified: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_verified_total",
				Help:      "Total payment verifications, including repeats.",
			}),
			Registrations: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registrations_total",
				Help:      "Total accounts created.",
			}),
		}

		prometheus.MustRegister(
			instance.ChatTurns,
			instance.Replies,
			instance.PaymentsCreated,
			instance.PaymentsVerified,
			instance.Registrations,
		)
	})
	return instance
}
