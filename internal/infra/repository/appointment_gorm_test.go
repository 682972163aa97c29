package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
)

func TestTranslate(t *testing.T) {
	other := errors.New("connection refused")

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, domain.ErrRecordNotFound},
		{"wrapped record not found", fmt.Errorf("first: %w", gorm.ErrRecordNotFound), domain.ErrRecordNotFound},
		{"exclusion violation", &pgconn.PgError{Code: "23P01"}, domain.ErrSlotTaken},
		{"wrapped exclusion violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"}), domain.ErrSlotTaken},
		{"unique violation passes through", &pgconn.PgError{Code: "23505"}, nil},
		{"other", other, other},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translate(tc.in)

			if tc.name == "unique violation passes through" {
				var pgErr *pgconn.PgError
				if !errors.As(got, &pgErr) {
					t.Fatalf("expected wrapped pg error, got %v", got)
				}
				return
			}
			if !errors.Is(got, tc.want) && got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestOrderBy(t *testing.T) {
	cases := map[domain.Order]string{
		domain.OrderDateDescStartAsc:  "data_agendamento DESC, horario_inicio ASC, agendamento_id ASC",
		domain.OrderDateDescStartDesc: "data_agendamento DESC, horario_inicio DESC, agendamento_id ASC",
		domain.OrderStartAsc:          "data_agendamento ASC, horario_inicio ASC, agendamento_id ASC",
	}

	for order, want := range cases {
		if got := orderBy(order); got != want {
			t.Fatalf("order %d: expected %q, got %q", order, want, got)
		}
	}
}
