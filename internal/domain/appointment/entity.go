package appointment

import (
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	ap.UpdatedAt = now
	return nil
}

func Exclude(ap *models.Appointment, now time.Time) error {
	if err := CanExclude(Status(ap.Status)); err != nil {
		return err
	}

	ap.DeletedAt = gorm.DeletedAt{Time: now, Valid: true}
	return nil
}
