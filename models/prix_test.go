package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCommunityPriceFresh_WindowBoundary(t *testing.T) {
	now := time.Date(2026, 9, 8, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		lastModified time.Time
		want         bool
	}{
		{"just submitted", now, true},
		{"mid window", now.AddDate(0, 0, -3), true},
		{"exactly at window start", now.AddDate(0, 0, -7), true},
		{"one second past the window", now.AddDate(0, 0, -7).Add(-time.Second), false},
		{"long stale", now.AddDate(0, 0, -30), false},
	}
	for _, tc := range cases {
		if got := CommunityPriceFresh(tc.lastModified, now); got != tc.want {
			t.Errorf("%s: CommunityPriceFresh = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFormatFlyerDetails(t *testing.T) {
	prix := &Prix{Prix: decimal.RequireFromString("3.99"), DetailsPrix: "2 pour 5$"}
	if got := FormatFlyerDetails(prix); got != "🔥 2 pour 5$" {
		t.Fatalf("unexpected details: %q", got)
	}

	// no promo text falls back to the unit price
	prix = &Prix{Prix: decimal.RequireFromString("3.9")}
	if got := FormatFlyerDetails(prix); got != "🔥 3.90 $" {
		t.Fatalf("unexpected fallback details: %q", got)
	}

	prix = &Prix{
		Prix:        decimal.RequireFromString("3.99"),
		DetailsPrix: "2 pour 5$",
		SubmittedBy: &User{Username: "marie"},
	}
	if got := FormatFlyerDetails(prix); got != "🔥 2 pour 5$ (Ajouté par 👤 marie)" {
		t.Fatalf("unexpected submitter details: %q", got)
	}
}

func TestFormatCommunityDetails(t *testing.T) {
	prix := &Prix{Prix: decimal.RequireFromString("2.5")}
	if got := FormatCommunityDetails(prix, 0); got != "👥 2.50 $" {
		t.Fatalf("unexpected details without confirmations: %q", got)
	}
	if got := FormatCommunityDetails(prix, 3); got != "👥 2.50 $ (3 ✓)" {
		t.Fatalf("unexpected details with confirmations: %q", got)
	}

	prix.SubmittedBy = &User{Username: "jean"}
	if got := FormatCommunityDetails(prix, 3); got != "👥 2.50 $ (3 ✓) (Ajouté par 👤 jean)" {
		t.Fatalf("unexpected submitter details: %q", got)
	}
}

func TestActivePriceSubmitterUsername(t *testing.T) {
	imported := &ActivePrice{Class: PriceClassFlyer, Prix: &Prix{}}
	if got := imported.SubmitterUsername(); got != "" {
		t.Fatalf("imported price has no submitter, got %q", got)
	}
	submitted := &ActivePrice{Class: PriceClassCommunity, Prix: &Prix{SubmittedBy: &User{Username: "marie"}}}
	if got := submitted.SubmitterUsername(); got != "marie" {
		t.Fatalf("expected marie, got %q", got)
	}
}

func TestReportReasonValid(t *testing.T) {
	for _, reason := range []ReportReason{ReportReasonIncorrectPrice, ReportReasonWrongProduct, ReportReasonExpiredDeal, ReportReasonOther} {
		if !reason.Valid() {
			t.Errorf("%s should be valid", reason)
		}
	}
	if ReportReason("SPAM").Valid() {
		t.Error("unknown reason should be invalid")
	}
	if ReportReason("").Valid() {
		t.Error("empty reason should be invalid")
	}
}
