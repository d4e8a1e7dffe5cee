package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "push_notifications_published_total",
		Help: "Notification payloads handed to the broker, by event kind.",
	}, []string{"event"})

	notificationsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "push_notifications_suppressed_total",
		Help: "Fanout events that ended with nothing to send.",
	}, []string{"reason"})
)
