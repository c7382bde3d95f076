package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	reservationCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roomreserve",
			Name:      "reservation_created_total",
			Help:      "Count of reservations created.",
		},
	)

	reservationCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roomreserve",
			Name:      "reservation_cancelled_total",
			Help:      "Count of reservations cancelled.",
		},
	)

	reservationRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomreserve",
			Name:      "reservation_rejected_total",
			Help:      "Count of reservation commands rejected by reason.",
		},
		[]string{"reason"},
	)

	slotQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roomreserve",
			Name:      "slot_queries_total",
			Help:      "Count of available-slot queries.",
		},
	)

	remindersSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roomreserve",
			Name:      "reminders_sent_total",
			Help:      "Count of reservation reminders dispatched.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(reservationCreated, reservationCancelled, reservationRejected, slotQueries, remindersSent)
	})
}

func IncReservationCreated() {
	reservationCreated.Inc()
}

func IncReservationCancelled() {
	reservationCancelled.Inc()
}

func IncReservationRejected(reason string) {
	reservationRejected.WithLabelValues(reason).Inc()
}

func IncSlotQuery() {
	slotQueries.Inc()
}

func IncReminderSent() {
	remindersSent.Inc()
}
