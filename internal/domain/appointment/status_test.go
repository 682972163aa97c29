package appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

func TestCanTransition_Matrix(t *testing.T) {
	allowed := map[Status]map[Status]bool{
		StatusScheduled:  {StatusConfirmed: true, StatusCancelled: true},
		StatusConfirmed:  {StatusInProgress: true, StatusCancelled: true},
		StatusInProgress: {StatusCompleted: true, StatusCancelled: true},
		StatusCompleted:  {},
		StatusCancelled:  {StatusScheduled: true},
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			err := CanTransition(from, to)
			want := allowed[from][to]

			if want && err != nil {
				t.Fatalf("%s -> %s: expected allowed, got %v", from, to, err)
			}
			if !want {
				if err == nil {
					t.Fatalf("%s -> %s: expected rejection", from, to)
				}
				if httperr.KindOf(err) != httperr.KindInvalidTransition {
					t.Fatalf("%s -> %s: expected invalid transition, got %v", from, to, err)
				}
			}
		}
	}
}

func TestCanTransition_MessageNamesBothStatuses(t *testing.T) {
	err := CanTransition(StatusScheduled, StatusInProgress)
	be, ok := httperr.As(err)
	if !ok {
		t.Fatalf("expected business error, got %v", err)
	}
	if !strings.Contains(be.Message, `"agendado"`) || !strings.Contains(be.Message, `"em_andamento"`) {
		t.Fatalf("unexpected message: %s", be.Message)
	}
}

func TestCanUpdate(t *testing.T) {
	for _, s := range AllStatuses {
		err := CanUpdate(s)
		if s == StatusCompleted && err == nil {
			t.Fatalf("expected concluido to reject updates")
		}
		if s != StatusCompleted && err != nil {
			t.Fatalf("%s: unexpected error %v", s, err)
		}
	}
}

func TestExclude(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, s := range AllStatuses {
		ap := &models.Appointment{Status: string(s)}
		err := Exclude(ap, now)

		if s == StatusCancelled {
			if err != nil {
				t.Fatalf("expected exclusion from cancelado, got %v", err)
			}
			if !ap.DeletedAt.Valid || !ap.DeletedAt.Time.Equal(now) {
				t.Fatalf("expected deleted_at to be set, got %+v", ap.DeletedAt)
			}
			continue
		}

		if err == nil {
			t.Fatalf("%s: expected exclusion to fail", s)
		}
		if ap.DeletedAt.Valid {
			t.Fatalf("%s: deleted_at must stay empty", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("confirmado"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := ParseStatus("pendente")
	if httperr.KindOf(err) != httperr.KindInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestTransition_UpdatesStatusAndTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusScheduled)}

	if err := Transition(ap, StatusConfirmed, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(StatusConfirmed) || !ap.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected appointment: %+v", ap)
	}
}
