package appointment

import (
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

func hm(h, m int) datatypes.Time {
	return datatypes.NewTime(h, m, 0, 0)
}

func day(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name       string
		start, end datatypes.Time
		want       bool
	}{
		{"partial overlap at end", hm(9, 30), hm(10, 30), true},
		{"partial overlap at start", hm(8, 30), hm(9, 30), true},
		{"contained", hm(9, 15), hm(9, 45), true},
		{"containing", hm(8, 0), hm(11, 0), true},
		{"identical", hm(9, 0), hm(10, 0), true},
		{"back to back after", hm(10, 0), hm(11, 0), false},
		{"back to back before", hm(8, 0), hm(9, 0), false},
		{"disjoint", hm(14, 0), hm(15, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(hm(9, 0), hm(10, 0), tc.start, tc.end)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			// simétrico
			if Overlaps(tc.start, tc.end, hm(9, 0), hm(10, 0)) != tc.want {
				t.Fatalf("overlap must be symmetric")
			}
		})
	}
}

func TestConflictQuery_Matches(t *testing.T) {
	existing := models.Appointment{
		ID:        1,
		StaffID:   10,
		Date:      day(2024, 3, 1),
		StartTime: hm(9, 0),
		EndTime:   hm(10, 0),
		Status:    string(StatusScheduled),
	}

	base := ConflictQuery{
		StaffID: 10,
		Date:    day(2024, 3, 1),
		Start:   hm(9, 30),
		End:     hm(10, 30),
	}

	t.Run("overlap", func(t *testing.T) {
		if !base.Matches(existing) {
			t.Fatalf("expected conflict")
		}
	})

	t.Run("other staff", func(t *testing.T) {
		q := base
		q.StaffID = 11
		if q.Matches(existing) {
			t.Fatalf("different staff must not conflict")
		}
	})

	t.Run("other date", func(t *testing.T) {
		q := base
		q.Date = day(2024, 3, 2)
		if q.Matches(existing) {
			t.Fatalf("different date must not conflict")
		}
	})

	t.Run("cancelled ignored", func(t *testing.T) {
		ap := existing
		ap.Status = string(StatusCancelled)
		if base.Matches(ap) {
			t.Fatalf("cancelled appointments must not conflict")
		}
	})

	t.Run("soft deleted ignored", func(t *testing.T) {
		ap := existing
		ap.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		if base.Matches(ap) {
			t.Fatalf("deleted appointments must not conflict")
		}
	})

	t.Run("exclude self", func(t *testing.T) {
		q := base
		id := uint(1)
		q.ExcludeID = &id
		if q.Matches(existing) {
			t.Fatalf("excluded appointment must not conflict")
		}
	})

	t.Run("non cancelled statuses still block", func(t *testing.T) {
		for _, s := range []Status{StatusConfirmed, StatusInProgress, StatusCompleted} {
			ap := existing
			ap.Status = string(s)
			if !base.Matches(ap) {
				t.Fatalf("%s must block the slot", s)
			}
		}
	})
}

func TestSlotKey(t *testing.T) {
	if got := SlotKey(7, day(2024, 3, 1)); got != "agenda:7:2024-03-01" {
		t.Fatalf("unexpected key %s", got)
	}
}
