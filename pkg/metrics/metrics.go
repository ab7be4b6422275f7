package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TicketsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metro_tickets_issued_total",
		Help: "The total number of tickets issued",
	}, []string{"kind"}) // kind: purchase / offline

	TicketScans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metro_ticket_scans_total",
		Help: "The total number of gate scan attempts",
	}, []string{"direction", "result"})

	OTPIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metro_otp_issued_total",
		Help: "The total number of purchase OTPs issued",
	})

	OTPVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metro_otp_verifications_total",
		Help: "The total number of OTP verification attempts",
	}, []string{"result"})

	NotificationsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metro_notifications_published_total",
		Help: "The total number of notifications published to the stream",
	})

	NotificationPublishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metro_notification_publish_errors_total",
		Help: "The total number of failed notification publish attempts",
	})
)
