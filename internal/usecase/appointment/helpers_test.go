package appointment

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	accessdomain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/agenda-scheduler/internal/lock"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	accessuc "github.com/BruksfildServices01/agenda-scheduler/internal/usecase/access"
)

var (
	admin        = accessdomain.Principal{UserID: 10, PersonID: 1}
	staffPerson  = accessdomain.Principal{UserID: 20, PersonID: 2}
	clientUser   = accessdomain.Principal{UserID: 30, PersonID: 3}
	otherStaff   = accessdomain.Principal{UserID: 40, PersonID: 4}
	foreignStaff = accessdomain.Principal{UserID: 50, PersonID: 5}
	stranger     = accessdomain.Principal{UserID: 60, PersonID: 6}
)

type env struct {
	repo   *memory.Repository
	policy *accessuc.Policy
	locker *lock.LocalLocker
	now    time.Time

	companyA, companyB uint

	staff1, staff2, staffB uint
	client1, clientB       uint
	service1, serviceB     uint
}

// empresa A: funcionários 1 (pessoa 2) e 2 (pessoa 4), cliente pessoa 3.
// empresa B: funcionário pessoa 5. Pessoa 1 é administrador.
func newEnv(t *testing.T) *env {
	t.Helper()

	repo := memory.NewRepository()
	e := &env{
		repo:   repo,
		policy: accessuc.NewPolicy(repo, repo),
		locker: lock.NewLocalLocker(),
		now:    time.Date(2024, 2, 20, 8, 0, 0, 0, time.UTC),
	}

	e.companyA = repo.AddCompany(models.Company{TradeName: "Studio A", Slug: "studio-a"})
	e.companyB = repo.AddCompany(models.Company{TradeName: "Studio B", Slug: "studio-b"})

	repo.AddAdministrator(admin.PersonID)

	e.staff1 = repo.AddStaff(models.Staff{PersonID: staffPerson.PersonID, CompanyID: e.companyA})
	e.staff2 = repo.AddStaff(models.Staff{PersonID: otherStaff.PersonID, CompanyID: e.companyA})
	e.staffB = repo.AddStaff(models.Staff{PersonID: foreignStaff.PersonID, CompanyID: e.companyB})

	e.client1 = repo.AddClient(models.Client{PersonID: clientUser.PersonID, CompanyID: e.companyA})
	e.clientB = repo.AddClient(models.Client{PersonID: 7, CompanyID: e.companyB})

	e.service1 = repo.AddService(models.Service{CompanyID: e.companyA, Name: "Corte", DurationMin: 60})
	e.serviceB = repo.AddService(models.Service{CompanyID: e.companyB, Name: "Aula", DurationMin: 60})

	return e
}

func (e *env) clock() time.Time { return e.now }

func (e *env) create() *CreateAppointment {
	return NewCreateAppointment(e.repo, e.policy, e.locker, nil, e.clock)
}

func (e *env) update() *UpdateAppointment {
	return NewUpdateAppointment(e.repo, e.policy, e.locker, nil, e.clock)
}

func (e *env) changeStatus() *ChangeStatus {
	return NewChangeStatus(e.repo, e.policy, e.locker, nil, e.clock)
}

// seed grava direto no repositório, na empresa A com cliente 1 e serviço 1.
func (e *env) seed(staffID uint, date, start, end string, status domain.Status) uint {
	return e.repo.AddAppointment(models.Appointment{
		CompanyID: e.companyA,
		ClientID:  e.client1,
		StaffID:   staffID,
		ServiceID: e.service1,
		Date:      mustDate(date),
		StartTime: mustClock(start),
		EndTime:   mustClock(end),
		Status:    string(status),
	})
}

func (e *env) input(staffID uint, date, start, end string) CreateAppointmentInput {
	return CreateAppointmentInput{
		CompanyID: e.companyA,
		ClientID:  e.client1,
		StaffID:   staffID,
		ServiceID: e.service1,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
}

func mustDate(raw string) datatypes.Date {
	d, err := domain.ParseDate(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func mustClock(raw string) datatypes.Time {
	c, err := domain.ParseClock("horário", raw)
	if err != nil {
		panic(err)
	}
	return c
}

func ptr[T any](v T) *T { return &v }

func expectKind(t *testing.T, err error, kind httperr.Kind) httperr.BusinessError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	be, ok := httperr.As(err)
	if !ok {
		t.Fatalf("expected business error, got %T: %v", err, err)
	}
	if be.Kind != kind {
		t.Fatalf("expected %s, got %s (%s)", kind, be.Kind, be.Code)
	}
	return be
}

func conflictsOf(t *testing.T, err error) []models.Appointment {
	t.Helper()

	be := expectKind(t, err, httperr.KindConflict)
	list, ok := be.Payload.([]models.Appointment)
	if !ok {
		t.Fatalf("expected []models.Appointment payload, got %T", be.Payload)
	}
	return list
}

func ids(aps []models.Appointment) []uint {
	out := make([]uint, 0, len(aps))
	for _, ap := range aps {
		out = append(out, ap.ID)
	}
	return out
}

func sameIDs(got []models.Appointment, want ...uint) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

var bg = context.Background()
