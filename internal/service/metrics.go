package service

import (
	"errors"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// admissionDecisions решения по созданию резерваций.
	// Labels: type (onsite, online), outcome (admitted, daily_limit, slot_full, ...)
	admissionDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "academy",
		Subsystem: "admission",
		Name:      "decisions_total",
		Help:      "Reservation admission decisions by type and outcome",
	}, []string{"type", "outcome"})

	// statusTransitions смены статуса учителем.
	// Labels: from, to
	statusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "academy",
		Subsystem: "reservations",
		Name:      "status_transitions_total",
		Help:      "Reservation status changes made by teachers",
	}, []string{"from", "to"})
)

func observeAdmission(t model.ReservationType, err error) {
	label := string(t)
	if !t.Valid() {
		label = "unknown"
	}
	admissionDecisions.WithLabelValues(label, admissionOutcome(err)).Inc()
}

func admissionOutcome(err error) string {
	switch {
	case err == nil:
		return "admitted"
	case errors.Is(err, ErrDailyLimitReached):
		return "daily_limit"
	case errors.Is(err, ErrSlotFull):
		return "slot_full"
	case errors.Is(err, ErrDuplicateReservation):
		return "duplicate"
	case errors.Is(err, ErrScheduleNotFound):
		return "schedule_not_found"
	case KindOf(err) == KindValidation:
		return "invalid"
	default:
		return "error"
	}
}
