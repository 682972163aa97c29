package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	accessdomain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// Repository guarda tudo em memória. Transações são serializadas e
// desfeitas por snapshot quando fn retorna erro. Create/Update recusam
// sobreposição como a constraint de exclusão do Postgres.
type Repository struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	nextID uint
	now    func() time.Time

	appointments   map[uint]models.Appointment
	staff          map[uint]models.Staff
	clients        map[uint]models.Client
	services       map[uint]models.Service
	companies      map[uint]models.Company
	administrators map[uint]models.Administrator

	conflictQueries int
}

func NewRepository() *Repository {
	return &Repository{
		now:            time.Now,
		appointments:   map[uint]models.Appointment{},
		staff:          map[uint]models.Staff{},
		clients:        map[uint]models.Client{},
		services:       map[uint]models.Service{},
		companies:      map[uint]models.Company{},
		administrators: map[uint]models.Administrator{},
	}
}

func (r *Repository) id() uint {
	r.nextID++
	return r.nextID
}

// --------------------------------------------------
// Seed
// --------------------------------------------------

func (r *Repository) AddCompany(c models.Company) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.id()
	}
	r.companies[c.ID] = c
	return c.ID
}

func (r *Repository) AddStaff(s models.Staff) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.id()
	}
	r.staff[s.ID] = s
	return s.ID
}

func (r *Repository) AddClient(c models.Client) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.id()
	}
	r.clients[c.ID] = c
	return c.ID
}

func (r *Repository) AddService(s models.Service) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.id()
	}
	r.services[s.ID] = s
	return s.ID
}

func (r *Repository) AddAdministrator(personID uint) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := models.Administrator{ID: r.id(), PersonID: personID, Active: true}
	r.administrators[a.ID] = a
	return a.ID
}

// AddAppointment grava sem nenhuma validação.
func (r *Repository) AddAppointment(ap models.Appointment) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == 0 {
		ap.ID = r.id()
	}
	r.appointments[ap.ID] = ap
	return ap.ID
}

// Appointment devolve o registro bruto, inclusive se excluído.
func (r *Repository) Appointment(id uint) (models.Appointment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ap, ok := r.appointments[id]
	return ap, ok
}

func (r *Repository) ConflictQueryCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conflictQueries
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *Repository) WithinTransaction(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.RLock()
	snapshot := make(map[uint]models.Appointment, len(r.appointments))
	for k, v := range r.appointments {
		snapshot[k] = v
	}
	r.mu.RUnlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.appointments = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *Repository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.appointments[id]
	if !ok || ap.DeletedAt.Valid {
		return nil, domain.ErrRecordNotFound
	}
	return &ap, nil
}

func (r *Repository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.overlapsLocked(*ap) {
		return domain.ErrSlotTaken
	}

	ap.ID = r.id()
	now := r.now()
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = now
	}
	if ap.UpdatedAt.IsZero() {
		ap.UpdatedAt = now
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *Repository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	seen time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.liveLocked(ap.ID, seen)
	if err != nil {
		return err
	}
	if r.overlapsLocked(*ap) {
		return domain.ErrSlotTaken
	}

	next := *ap
	next.CreatedAt = stored.CreatedAt
	next.DeletedAt = stored.DeletedAt
	r.appointments[ap.ID] = next
	return nil
}

func (r *Repository) SoftDeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
	seen time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.liveLocked(ap.ID, seen)
	if err != nil {
		return err
	}

	stored.DeletedAt = ap.DeletedAt
	if !stored.DeletedAt.Valid {
		stored.DeletedAt.Time = r.now()
		stored.DeletedAt.Valid = true
	}
	r.appointments[ap.ID] = stored
	*ap = stored
	return nil
}

func (r *Repository) FindConflicts(
	ctx context.Context,
	q domain.ConflictQuery,
) ([]models.Appointment, error) {
	r.mu.Lock()
	r.conflictQueries++
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if q.Matches(ap) {
			out = append(out, ap)
		}
	}
	sortAppointments(out, domain.Filter{Order: domain.OrderStartAsc})
	return out, nil
}

func (r *Repository) ListAppointments(
	ctx context.Context,
	f domain.Filter,
) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if f.Matches(ap) {
			out = append(out, ap)
		}
	}
	sortAppointments(out, f)
	return out, nil
}

// liveLocked devolve a linha ativa, desde que ninguém a tenha alterado
// depois de seen.
func (r *Repository) liveLocked(id uint, seen time.Time) (models.Appointment, error) {
	stored, ok := r.appointments[id]
	if !ok || stored.DeletedAt.Valid {
		return models.Appointment{}, domain.ErrRecordNotFound
	}
	if !stored.UpdatedAt.Equal(seen) {
		return models.Appointment{}, domain.ErrStaleRecord
	}
	return stored, nil
}

func (r *Repository) overlapsLocked(ap models.Appointment) bool {
	if domain.Status(ap.Status) == domain.StatusCancelled || ap.DeletedAt.Valid {
		return false
	}
	id := ap.ID
	q := domain.ConflictQuery{
		StaffID:   ap.StaffID,
		Date:      ap.Date,
		Start:     ap.StartTime,
		End:       ap.EndTime,
		ExcludeID: &id,
	}
	for _, other := range r.appointments {
		if q.Matches(other) {
			return true
		}
	}
	return false
}

func sortAppointments(aps []models.Appointment, f domain.Filter) {
	sort.SliceStable(aps, func(i, j int) bool {
		if f.Less(aps[i], aps[j]) {
			return true
		}
		if f.Less(aps[j], aps[i]) {
			return false
		}
		return aps[i].ID < aps[j].ID
	})
}

// --------------------------------------------------
// Related entities
// --------------------------------------------------

func (r *Repository) GetStaff(ctx context.Context, id uint) (*models.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.staff[id]
	if !ok || s.DeletedAt.Valid {
		return nil, domain.ErrRecordNotFound
	}
	return &s, nil
}

func (r *Repository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok || c.DeletedAt.Valid {
		return nil, domain.ErrRecordNotFound
	}
	return &c, nil
}

func (r *Repository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.services[id]
	if !ok || s.DeletedAt.Valid {
		return nil, domain.ErrRecordNotFound
	}
	return &s, nil
}

// --------------------------------------------------
// Access links
// --------------------------------------------------

func (r *Repository) IsAdministrator(ctx context.Context, personID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.administrators {
		if a.PersonID == personID && !a.DeletedAt.Valid {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) IsStaffOfCompany(ctx context.Context, personID, companyID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.staff {
		if s.PersonID == personID && s.CompanyID == companyID && !s.DeletedAt.Valid {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) IsClientOfCompany(ctx context.Context, personID, companyID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.PersonID == personID && c.CompanyID == companyID && !c.DeletedAt.Valid {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) IsStaffRecord(ctx context.Context, personID, staffID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.staff[staffID]
	return ok && !s.DeletedAt.Valid && s.PersonID == personID, nil
}

func (r *Repository) IsClientRecord(ctx context.Context, personID, clientID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[clientID]
	return ok && !c.DeletedAt.Valid && c.PersonID == personID, nil
}

func (r *Repository) CompaniesOfPerson(ctx context.Context, personID uint) ([]uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[uint]bool{}
	var ids []uint
	add := func(id uint) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, s := range r.staff {
		if s.PersonID == personID && !s.DeletedAt.Valid {
			add(s.CompanyID)
		}
	}
	for _, c := range r.clients {
		if c.PersonID == personID && !c.DeletedAt.Valid {
			add(c.CompanyID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Compile-time checks
var (
	_ domain.Repository       = (*Repository)(nil)
	_ accessdomain.Repository = (*Repository)(nil)
)
