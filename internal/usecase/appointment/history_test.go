package appointment

import (
	"context"
	"errors"
	"testing"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type fakeHistory struct {
	table       string
	recordID    uint
	page, limit int
	err         error
}

func (f *fakeHistory) History(_ context.Context, table string, recordID uint, page, limit int) ([]models.ActivityLog, int64, error) {
	f.table, f.recordID, f.page, f.limit = table, recordID, page, limit
	if f.err != nil {
		return nil, 0, f.err
	}
	return []models.ActivityLog{{ID: 1, Action: "agendamento_criado"}}, 1, nil
}

func TestAppointmentHistory(t *testing.T) {
	e := newEnv(t)
	id := e.seed(e.staff1, "2024-03-01", "09:00", "10:00", domain.StatusScheduled)

	h := &fakeHistory{}
	uc := NewAppointmentHistory(e.repo, e.policy, h)

	page, err := uc.Execute(bg, staffPerson, id, 0, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 1 || page.Limit != 200 || page.Total != 1 || len(page.Logs) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if h.table != "agendamentos" || h.recordID != id || h.page != 1 || h.limit != 200 {
		t.Fatalf("unexpected query: %+v", h)
	}

	for _, tt := range []struct{ in, want int }{{0, 50}, {-3, 50}, {30, 30}, {200, 200}, {201, 200}} {
		page, err := uc.Execute(bg, admin, id, 2, tt.in)
		if err != nil {
			t.Fatalf("limit %d: %v", tt.in, err)
		}
		if page.Limit != tt.want || h.limit != tt.want || h.page != 2 {
			t.Fatalf("limit %d: expected %d, got page=%d query=%d", tt.in, tt.want, page.Limit, h.limit)
		}
	}

	expectKind(t, mustPage(uc.Execute(bg, otherStaff, id, 1, 10)), httperr.KindAccessDenied)

	h.err = errors.New("db")
	expectKind(t, mustPage(uc.Execute(bg, admin, id, 1, 10)), httperr.KindPersistence)
}

func mustPage(_ *HistoryPage, err error) error { return err }
