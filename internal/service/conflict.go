package service

import "salon-booking/internal/domain/entity"

// HasConflict reports whether a non-cancelled appointment in existing already
// holds the candidate's date and time. Matching is exact.
func HasConflict(existing []entity.Appointment, candidate *entity.Appointment) bool {
	for i := range existing {
		if existing[i].IsCancelled() {
			continue
		}
		if existing[i].SameSlot(candidate) {
			return true
		}
	}
	return false
}
