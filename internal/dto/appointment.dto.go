package dto

import (
	"time"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// AppointmentDTO: data em YYYY-MM-DD e horários em HH:mm.
type AppointmentDTO struct {
	ID        uint     `json:"agendamento_id"`
	CompanyID uint     `json:"empresa_id"`
	ClientID  uint     `json:"cliente_id"`
	StaffID   uint     `json:"funcionario_id"`
	ServiceID uint     `json:"servico_id"`
	Date      string   `json:"data_agendamento"`
	StartTime string   `json:"horario_inicio"`
	EndTime   string   `json:"horario_fim"`
	Status    string   `json:"status"`
	Value     *float64 `json:"valor"`
	Notes     *string  `json:"observacoes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromAppointment(ap models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:        ap.ID,
		CompanyID: ap.CompanyID,
		ClientID:  ap.ClientID,
		StaffID:   ap.StaffID,
		ServiceID: ap.ServiceID,
		Date:      domain.FormatDate(ap.Date),
		StartTime: domain.FormatClock(ap.StartTime),
		EndTime:   domain.FormatClock(ap.EndTime),
		Status:    ap.Status,
		Value:     ap.Value,
		Notes:     ap.Notes,
		CreatedAt: ap.CreatedAt,
		UpdatedAt: ap.UpdatedAt,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap))
	}
	return out
}

type ConflictCheckDTO struct {
	Conflict  bool             `json:"conflito"`
	Conflicts []AppointmentDTO `json:"conflitos"`
}
