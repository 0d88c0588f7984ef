package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the booking flow. A nil *BookingMetrics
// is valid and records nothing.
type BookingMetrics struct {
	submissionsTotal   *prometheus.CounterVec
	cancellationsTotal *prometheus.CounterVec
	slotLoadsTotal     *prometheus.CounterVec
	slotWriteFailures  prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Booking form submissions by result",
		}, []string{"result"}),
		cancellationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "cancellations_total",
			Help:      "Cancellation requests by result",
		}, []string{"result"}),
		slotLoadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "store",
			Name:      "slot_loads_total",
			Help:      "Appointment slot loads by outcome (empty, loaded, corrupt)",
		}, []string{"state"}),
		slotWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "store",
			Name:      "slot_write_failures_total",
			Help:      "Failed writes of the appointment slot",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.cancellationsTotal, m.slotLoadsTotal, m.slotWriteFailures)
	return m
}

func (m *BookingMetrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) ObserveCancellation(result string) {
	if m == nil {
		return
	}
	m.cancellationsTotal.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) ObserveSlotLoad(state string) {
	if m == nil {
		return
	}
	m.slotLoadsTotal.WithLabelValues(state).Inc()
}

func (m *BookingMetrics) ObserveSlotWriteFailure() {
	if m == nil {
		return
	}
	m.slotWriteFailures.Inc()
}
