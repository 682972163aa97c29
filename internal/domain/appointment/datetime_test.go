package appointment

import (
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		code string
	}{
		{name: "valid", raw: "2024-03-01"},
		{name: "leap day", raw: "2024-02-29"},
		{name: "wrong layout", raw: "01/03/2024", code: "invalid_date_format"},
		{name: "with time", raw: "2024-03-01T10:00", code: "invalid_date_format"},
		{name: "empty", raw: "", code: "invalid_date_format"},
		{name: "impossible day", raw: "2024-02-30", code: "invalid_date"},
		{name: "impossible month", raw: "2024-13-01", code: "invalid_date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ParseDate(tc.raw)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if FormatDate(d) != tc.raw {
					t.Fatalf("expected %s, got %s", tc.raw, FormatDate(d))
				}
				return
			}
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
		code string
	}{
		{raw: "09:30", want: 9*time.Hour + 30*time.Minute},
		{raw: "00:00", want: 0},
		{raw: "23:59", want: 23*time.Hour + 59*time.Minute},
		{raw: "9:30", code: "invalid_time_format"},
		{raw: "09:30:00", code: "invalid_time_format"},
		{raw: "24:00", code: "invalid_time"},
		{raw: "10:75", code: "invalid_time"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseClock("horário de início", tc.raw)
			if tc.code != "" {
				if !httperr.IsBusiness(err, tc.code) {
					t.Fatalf("expected %s, got %v", tc.code, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if time.Duration(got) != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, time.Duration(got))
			}
			if FormatClock(got) != tc.raw {
				t.Fatalf("expected %s, got %s", tc.raw, FormatClock(got))
			}
		})
	}
}

func TestValidateWindow(t *testing.T) {
	nine := datatypes.NewTime(9, 0, 0, 0)
	ten := datatypes.NewTime(10, 0, 0, 0)

	if err := ValidateWindow(nine, ten); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateWindow(ten, nine); err == nil {
		t.Fatalf("expected error for inverted window")
	}
	if err := ValidateWindow(nine, nine); err == nil {
		t.Fatalf("expected error for empty window")
	}
}
