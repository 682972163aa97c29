package appointment

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type ConflictQuery struct {
	StaffID   uint
	Date      datatypes.Date
	Start     datatypes.Time
	End       datatypes.Time
	ExcludeID *uint
}

// Overlaps é o teste de intervalo semiaberto: encostar (fim == início) não conflita.
func Overlaps(aStart, aEnd, bStart, bEnd datatypes.Time) bool {
	return aStart < bEnd && aEnd > bStart
}

// Matches diz se um agendamento existente bloqueia o horário consultado.
func (q ConflictQuery) Matches(ap models.Appointment) bool {
	if ap.DeletedAt.Valid || Status(ap.Status) == StatusCancelled {
		return false
	}
	if q.ExcludeID != nil && ap.ID == *q.ExcludeID {
		return false
	}
	if ap.StaffID != q.StaffID || !SameDate(ap.Date, q.Date) {
		return false
	}
	return Overlaps(ap.StartTime, ap.EndTime, q.Start, q.End)
}

// SlotKey identifica a agenda de um funcionário em um dia.
func SlotKey(staffID uint, date datatypes.Date) string {
	return fmt.Sprintf("agenda:%d:%s", staffID, FormatDate(date))
}
