package services

import (
	"hotel-reservations/models"
)

// allowedTransitions คือ edge ที่อนุญาตใน lifecycle ของการจอง
// completed เป็นสถานะปลายทาง; cancelled เปิดกลับเป็น active ได้ (ปุ่ม "activate" ของหน้า admin)
var allowedTransitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.StatusActive:    {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted: {},
	models.StatusCancelled: {models.StatusActive},
}

// KnownStatus reports whether s is one of the enumerated statuses.
func KnownStatus(s models.ReservationStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether a reservation in from may be moved to to.
// Re-writing the current status is always allowed.
func CanTransition(from, to models.ReservationStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transitionGuard คืน guard สำหรับ store.UpdateStatus
// strict=false คือพฤติกรรมเดิม: เขียนทับได้ทุกค่า
func transitionGuard(strict bool, to models.ReservationStatus) StatusGuard {
	if !strict {
		return nil
	}
	return func(current models.ReservationStatus) error {
		if !CanTransition(current, to) {
			return &TransitionError{From: current, To: to}
		}
		return nil
	}
}
