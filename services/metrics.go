package services

import (
	"time"

	"hotel-booking/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus collectors of the booking engine. A nil
// *Metrics records nothing.
type Metrics struct {
	BookingsCreated      prometheus.Counter
	BookingFailures      *prometheus.CounterVec
	NotificationFailures prometheus.Counter
	OperationDuration    *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "hotel_bookings_created_total",
			Help: "Total number of confirmed bookings",
		}),

		BookingFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_booking_failures_total",
			Help: "Failed booking operations by error code",
		}, []string{"operation", "code"}),

		NotificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "hotel_booking_notification_failures_total",
			Help: "Confirmation dispatches that failed",
		}),

		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hotel_booking_operation_duration_seconds",
			Help:    "Duration of booking engine operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		code := "internal_error"
		if appErr, ok := apperror.From(err); ok {
			code = appErr.Code
		}
		m.BookingFailures.WithLabelValues(op, code).Inc()
	}
}

func (m *Metrics) bookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

func (m *Metrics) notificationFailed() {
	if m == nil {
		return
	}
	m.NotificationFailures.Inc()
}
