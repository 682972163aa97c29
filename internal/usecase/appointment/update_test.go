package appointment

import (
	"testing"
	"time"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
)

func TestUpdateAppointment_ExcludesSelf(t *testing.T) {
	e := newEnv(t)
	id := e.seed(e.staff1, "2024-03-01", "09:00", "10:00", domain.StatusScheduled)

	ap, err := e.update().Execute(bg, staffPerson, id, UpdateAppointmentInput{
		StartTime: ptr("09:30"),
		EndTime:   ptr("10:30"),
	})
	if err != nil {
		t.Fatalf("moving over its own slot must not conflict: %v", err)
	}
	if domain.FormatClock(ap.StartTime) != "09:30" || domain.FormatClock(ap.EndTime) != "10:30" {
		t.Fatalf("times not applied")
	}
	if e.repo.ConflictQueryCount() != 1 {
		t.Fatalf("expected one conflict query, got %d", e.repo.ConflictQueryCount())
	}
}

func TestUpdateAppointment_Conflict(t *testing.T) {
	e := newEnv(t)
	blocker := e.seed(e.staff1, "2024-03-01", "09:00", "10:00", domain.StatusScheduled)
	id := e.seed(e.staff1, "2024-03-01", "11:00", "12:00", domain.StatusScheduled)

	_, err := e.update().Execute(bg, staffPerson, id, UpdateAppointmentInput{
		StartTime: ptr("09:30"),
		EndTime:   ptr("10:30"),
	})

	list := conflictsOf(t, err)
	if !sameIDs(list, blocker) {
		t.Fatalf("unexpected conflicts: %v", ids(list))
	}

	stored, _ := e.repo.Appointment(id)
	if domain.FormatClock(stored.StartTime) != "11:00" {
		t.Fatalf("rejected update must not be persisted")
	}
}

func TestUpdateAppointment_MoveToOtherStaffChecksTarget(t *testing.T) {
	e := newEnv(t)
	blocker := e.seed(e.staff2, "2024-03-01", "09:00", "10:00", domain.StatusConfirmed)
	id := e.seed(e.staff1, "2024-03-01", "09:00", "10:00", domain.StatusScheduled)

	_, err := e.update().Execute(bg, admin, id, UpdateAppointmentInput{StaffID: &e.staff2})
	if !sameIDs(conflictsOf(t, err), blocker) {
		t.Fatalf("expected conflict with staff 2 agenda")
	}

	_, err = e.update().Execute(bg, admin, id, UpdateAppointmentInput{
		StaffID: &e.staff2,
		Date:    ptr("2024-03-02"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateAppointment_CompletedRejectedBeforeConflictDetection(t *testing.T) {
	e := newEnv(t)
	id := e.seed(e.staff1, "2024-03-01", "09:00", "10:00", domain.StatusCompleted)

	_, err := e.update().Execute(bg, staffPerson, id, UpdateAppointmentInput{
		StartTime: ptr("13:00"),
		EndTime:   ptr("14:00"),
	})

	be := expectKind(t, err, httperr.KindInvalidTransition)
	if be.Code != "appointment_completed" {
		t.Fatalf("unexpected code %s", be.Code)
	}
	if e.repo.ConflictQueryCount() != 0 {
		t.Fatalf("conflict detection must not run for completed appointments")
	}
}

func TestUpdateAppointment_Access(t *testing.T) {
	e := newEnv(t)
	id := e.seed(e.staff1, "2024-03-01", "09:00", "10:00", domain.StatusScheduled)

	in := UpdateAppointmentInput{Notes: ptr("x")}

	if _, err := e.update().Execute(bg, otherStaff, id, in); httperr.KindOf(err) != httperr.KindAccessDenied {
		t.Fatalf("staff not on the appointment must be denied, got %v", err)
	}
	if _, err := e.update().Execute(bg, foreignStaff, id, in); httperr.KindOf(err) != httperr.KindAccessDenied {
		t.Fatalf("staff of other company must be denied, got %v", err)
	}
	if _, err := e.update().Execute(bg, clientUser, id, in); err != nil {
		t.Fatalf("appointment client must be allowed: %v", err)
	}
	if _, err := e.update().Execute(bg, admin, 999, in); httperr.KindOf(err) != httperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateAppointment_PartialFields(t *testing.T) {
	e := newEnv(t)
	id := e.seed(e.staff1, "2024-03-01", "09:00", "10:00", domain.StatusScheduled)
	e.now = e.now.Add(time.Hour)

	ap, err := e.update().Execute(bg, staffPerson, id, UpdateAppointmentInput{
		Notes: ptr("trazer documento"),
		Value: ptr(120.0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *ap.Notes != "trazer documento" || *ap.Value != 120 {
		t.Fatalf("fields not applied: %+v", ap)
	}
	if !ap.UpdatedAt.Equal(e.now) {
		t.Fatalf("updated_at not bumped")
	}
	if domain.FormatClock(ap.StartTime) != "09:00" || ap.StaffID != e.staff1 {
		t.Fatalf("untouched fields changed")
	}
	if e.repo.ConflictQueryCount() != 0 {
		t.Fatalf("no reschedule, no conflict query")
	}
}

func TestUpdateAppointment_ClearsOptionalFields(t *testing.T) {
	e := newEnv(t)
	id := e.seed(e.staff1, "2024-03-01", "09:00", "10:00", domain.StatusScheduled)

	if _, err := e.update().Execute(bg, admin, id, UpdateAppointmentInput{
		Notes: ptr("trazer documento"),
		Value: ptr(80.0),
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	ap, err := e.update().Execute(bg, admin, id, UpdateAppointmentInput{ClearNotes: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Notes != nil {
		t.Fatalf("notes should be cleared, got %q", *ap.Notes)
	}
	if ap.Value == nil || *ap.Value != 80 {
		t.Fatalf("value must survive clearing notes: %+v", ap.Value)
	}

	ap, err = e.update().Execute(bg, admin, id, UpdateAppointmentInput{ClearValue: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Value != nil {
		t.Fatalf("value should be cleared")
	}

	stored, _ := e.repo.Appointment(id)
	if stored.Notes != nil || stored.Value != nil {
		t.Fatalf("clear not persisted: %+v", stored)
	}
}

func TestUpdateAppointment_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   func(e *env) UpdateAppointmentInput
		kind httperr.Kind
		code string
	}{
		{"end before start", func(e *env) UpdateAppointmentInput {
			return UpdateAppointmentInput{EndTime: ptr("08:00")}
		}, httperr.KindInvalidInput, "invalid_time_window"},
		{"bad date", func(e *env) UpdateAppointmentInput {
			return UpdateAppointmentInput{Date: ptr("2024-13-01")}
		}, httperr.KindInvalidInput, "invalid_date"},
		{"bad time format", func(e *env) UpdateAppointmentInput {
			return UpdateAppointmentInput{StartTime: ptr("9h")}
		}, httperr.KindInvalidInput, "invalid_time_format"},
		{"staff of other company", func(e *env) UpdateAppointmentInput {
			return UpdateAppointmentInput{StaffID: &e.staffB}
		}, httperr.KindInvalidInput, "staff_company_mismatch"},
		{"unknown service", func(e *env) UpdateAppointmentInput {
			return UpdateAppointmentInput{ServiceID: ptr(uint(999))}
		}, httperr.KindNotFound, "service_not_found"},
		{"unknown status", func(e *env) UpdateAppointmentInput {
			return UpdateAppointmentInput{Status: ptr("pendente")}
		}, httperr.KindInvalidInput, "invalid_status"},
		{"status skipping a step", func(e *env) UpdateAppointmentInput {
			return UpdateAppointmentInput{Status: ptr("em_andamento")}
		}, httperr.KindInvalidTransition, "invalid_transition"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			id := e.seed(e.staff1, "2024-03-01", "09:00", "10:00", domain.StatusScheduled)

			_, err := e.update().Execute(bg, admin, id, tc.in(e))
			be := expectKind(t, err, tc.kind)
			if be.Code != tc.code {
				t.Fatalf("expected %s, got %s", tc.code, be.Code)
			}
		})
	}
}

func TestUpdateAppointment_StatusField(t *testing.T) {
	e := newEnv(t)
	id := e.seed(e.staff1, "2024-03-01", "09:00", "10:00", domain.StatusScheduled)

	ap, err := e.update().Execute(bg, staffPerson, id, UpdateAppointmentInput{Status: ptr("confirmado")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != "confirmado" {
		t.Fatalf("status not applied: %s", ap.Status)
	}

	// mesmo status não é transição
	if _, err := e.update().Execute(bg, staffPerson, id, UpdateAppointmentInput{Status: ptr("confirmado")}); err != nil {
		t.Fatalf("same status should be accepted: %v", err)
	}
}

func TestUpdateAppointment_ReactivationChecksConflicts(t *testing.T) {
	e := newEnv(t)
	id := e.seed(e.staff1, "2024-03-01", "09:00", "10:00", domain.StatusCancelled)
	blocker := e.seed(e.staff1, "2024-03-01", "09:30", "10:30", domain.StatusScheduled)

	_, err := e.update().Execute(bg, admin, id, UpdateAppointmentInput{Status: ptr("agendado")})
	if !sameIDs(conflictsOf(t, err), blocker) {
		t.Fatalf("expected conflict with the appointment that took the slot")
	}
}
