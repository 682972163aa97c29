package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "agendado"
	StatusConfirmed  Status = "confirmado"
	StatusInProgress Status = "em_andamento"
	StatusCompleted  Status = "concluido"
	StatusCancelled  Status = "cancelado"
)

var AllStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// transições permitidas; concluido é final
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {StatusScheduled},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.InvalidInput(
			"invalid_status",
			fmt.Sprintf("Status %q inválido.", raw),
		)
	}
	return s, nil
}

// ===============================
// Validations
// ===============================

// CanTransition define se o status pode passar de from para to
func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.InvalidTransition(
		"invalid_transition",
		fmt.Sprintf("Não é possível alterar o status de %q para %q.", from, to),
	)
}

// CanUpdate bloqueia qualquer edição em agendamento concluído
func CanUpdate(current Status) error {
	if current == StatusCompleted {
		return httperr.InvalidTransition(
			"appointment_completed",
			"Não é possível atualizar um agendamento já concluído.",
		)
	}
	return nil
}

// CanExclude: só agendamentos cancelados podem ser excluídos
func CanExclude(current Status) error {
	if current != StatusCancelled {
		return httperr.InvalidTransition(
			"not_cancelled",
			"Apenas agendamentos cancelados podem ser excluídos.",
		)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
