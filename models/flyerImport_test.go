package models

import (
	"context"
	"testing"

	"github.com/epiceriemtl/epicerie_backend/utils"
)

// Payload validation happens before any database work, so these run DB-free.

func TestImportFlyer_RejectsBadWindow(t *testing.T) {
	cases := []struct {
		name    string
		payload FlyerImport
	}{
		{"bad start date", FlyerImport{Store: "IGA", DateDebut: "01/09/2026", DateFin: "2026-09-07"}},
		{"bad end date", FlyerImport{Store: "IGA", DateDebut: "2026-09-01", DateFin: "septembre"}},
		{"inverted window", FlyerImport{Store: "IGA", DateDebut: "2026-09-07", DateFin: "2026-09-01"}},
	}
	for _, tc := range cases {
		_, err := ImportFlyer(context.Background(), &tc.payload)
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		if !utils.IsValidation(err) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestImportFlyer_RejectsBlankStore(t *testing.T) {
	payload := FlyerImport{Store: "   ", DateDebut: "2026-09-01", DateFin: "2026-09-07"}
	_, err := ImportFlyer(context.Background(), &payload)
	if err == nil || !utils.IsValidation(err) {
		t.Fatalf("expected ValidationError for blank store, got %v", err)
	}
}
