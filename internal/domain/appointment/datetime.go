package appointment

import (
	"fmt"
	"regexp"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ParseDate aceita apenas YYYY-MM-DD e uma data que exista no calendário.
func ParseDate(raw string) (datatypes.Date, error) {
	if !dateRe.MatchString(raw) {
		return datatypes.Date{}, httperr.InvalidInput(
			"invalid_date_format",
			"Formato de data inválido. Use YYYY-MM-DD",
		)
	}

	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return datatypes.Date{}, httperr.InvalidInput(
			"invalid_date",
			"Data de agendamento inválida",
		)
	}

	return datatypes.Date(t), nil
}

// ParseClock aceita HH:mm (00:00 a 23:59).
func ParseClock(field, raw string) (datatypes.Time, error) {
	if !clockRe.MatchString(raw) {
		return 0, httperr.InvalidInput(
			"invalid_time_format",
			fmt.Sprintf("Formato de %s inválido. Use HH:mm", field),
		)
	}

	t, err := time.Parse(ClockLayout, raw)
	if err != nil {
		return 0, httperr.InvalidInput(
			"invalid_time",
			fmt.Sprintf("Valor de %s inválido.", field),
		)
	}

	return datatypes.NewTime(t.Hour(), t.Minute(), 0, 0), nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

func FormatClock(t datatypes.Time) string {
	d := time.Duration(t)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}

func SameDate(a, b datatypes.Date) bool {
	ay, am, ad := time.Time(a).Date()
	by, bm, bd := time.Time(b).Date()
	return ay == by && am == bm && ad == bd
}

// ValidateWindow garante início < fim.
func ValidateWindow(start, end datatypes.Time) error {
	if start >= end {
		return httperr.InvalidInput(
			"invalid_time_window",
			"O horário de início deve ser anterior ao horário de fim.",
		)
	}
	return nil
}
