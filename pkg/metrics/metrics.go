package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fan-out service counters, exposed on /metrics.
var (
	NotificationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_created_total",
		Help: "Total number of notification records created",
	})

	NotificationsCoalesced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_coalesced_total",
		Help: "Total number of like events coalesced into an existing record",
	})

	SelfActionSkips = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_self_action_skips_total",
		Help: "Total number of events skipped because the actor was the recipient",
	})

	FanOutFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_fanout_failures_total",
		Help: "Total number of failed per-recipient writes during revision fan-out",
	})

	FeedEntriesSeeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feed_index_entries_seeded_total",
		Help: "Total number of feed index entries written by follow fan-out",
	})

	PushDeliveryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "push_delivery_failures_total",
		Help: "Total number of failed FCM delivery attempts",
	})
)
