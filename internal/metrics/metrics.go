package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frontdesk_push_events_applied_total",
		Help: "Push events merged into a reconciler, by operation.",
	}, []string{"op"})

	EventsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frontdesk_push_events_suppressed_total",
		Help: "Push events recognized as echoes of local mutations and ignored.",
	}, []string{"op"})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frontdesk_push_events_dropped_total",
		Help: "Push events dropped because the payload failed to decode.",
	})

	DuplicateInserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frontdesk_duplicate_inserts_total",
		Help: "Remote inserts ignored because the id was already present.",
	})

	Resyncs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frontdesk_resyncs_total",
		Help: "Wholesale state replacements from the authoritative store.",
	})

	ReservationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frontdesk_reservation_conflicts_total",
		Help: "Reservation requests rejected before any store call.",
	})
)
