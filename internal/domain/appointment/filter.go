package appointment

import (
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type Order int

const (
	// data DESC, início ASC
	OrderDateDescStartAsc Order = iota
	// data DESC, início DESC
	OrderDateDescStartDesc
	// início ASC (agenda de um dia)
	OrderStartAsc
)

// Filter reúne critérios opcionais, combinados com AND.
type Filter struct {
	Status    *Status
	DateFrom  *datatypes.Date
	DateTo    *datatypes.Date
	ClientID  *uint
	StaffID   *uint
	ServiceID *uint
	CompanyID *uint

	ExcludeCancelled bool

	// Scoped restringe o resultado às empresas em CompanyIn (vazio = nada).
	Scoped    bool
	CompanyIn []uint

	Order Order
}

func (f Filter) Matches(ap models.Appointment) bool {
	if ap.DeletedAt.Valid {
		return false
	}
	if f.Status != nil && Status(ap.Status) != *f.Status {
		return false
	}
	if f.ExcludeCancelled && Status(ap.Status) == StatusCancelled {
		return false
	}
	if f.DateFrom != nil && time.Time(ap.Date).Before(time.Time(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && time.Time(ap.Date).After(time.Time(*f.DateTo)) {
		return false
	}
	if f.ClientID != nil && ap.ClientID != *f.ClientID {
		return false
	}
	if f.StaffID != nil && ap.StaffID != *f.StaffID {
		return false
	}
	if f.ServiceID != nil && ap.ServiceID != *f.ServiceID {
		return false
	}
	if f.CompanyID != nil && ap.CompanyID != *f.CompanyID {
		return false
	}
	if f.Scoped && !containsID(f.CompanyIn, ap.CompanyID) {
		return false
	}
	return true
}

// Less ordena dois agendamentos segundo f.Order.
func (f Filter) Less(a, b models.Appointment) bool {
	da, db := time.Time(a.Date), time.Time(b.Date)

	switch f.Order {
	case OrderStartAsc:
		if !da.Equal(db) {
			return da.Before(db)
		}
		return a.StartTime < b.StartTime
	case OrderDateDescStartDesc:
		if !da.Equal(db) {
			return da.After(db)
		}
		return a.StartTime > b.StartTime
	default:
		if !da.Equal(db) {
			return da.After(db)
		}
		return a.StartTime < b.StartTime
	}
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
