package models

import (
	"testing"
	"time"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCirculaireCovers_InclusiveBoundaries(t *testing.T) {
	c := Circulaire{DateDebut: day("2026-09-01"), DateFin: day("2026-09-07")}

	cases := []struct {
		today string
		want  bool
	}{
		{"2026-08-31", false},
		{"2026-09-01", true},
		{"2026-09-04", true},
		{"2026-09-07", true},
		{"2026-09-08", false},
	}
	for _, tc := range cases {
		if got := c.Covers(day(tc.today)); got != tc.want {
			t.Errorf("Covers(%s) = %v, want %v", tc.today, got, tc.want)
		}
	}
}

func TestCirculaireCovers_IgnoresTimeOfDay(t *testing.T) {
	c := Circulaire{DateDebut: day("2026-09-01"), DateFin: day("2026-09-01")}
	lateEvening := time.Date(2026, 9, 1, 23, 59, 59, 0, time.UTC)
	if !c.Covers(lateEvening) {
		t.Fatal("a flyer ending today is still valid at 23:59")
	}
}
