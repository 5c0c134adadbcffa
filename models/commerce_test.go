package models

import "testing"

func TestNormalizeSelectors(t *testing.T) {
	got := NormalizeSelectors([]string{" IGA ", "iga", "", "  ", "Metro"})
	want := []string{"iga", "metro"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestNameMatchesAnySelector(t *testing.T) {
	selectors := NormalizeSelectors([]string{"iga", "super c"})

	cases := []struct {
		name string
		want bool
	}{
		{"IGA Extra Beaubien", true},
		{"Super C Jean-Talon", true},
		{"Metro Plus", false},
		{"Provigo", false},
	}
	for _, tc := range cases {
		if got := NameMatchesAnySelector(tc.name, selectors); got != tc.want {
			t.Errorf("NameMatchesAnySelector(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNameMatchesAnySelector_EmptySelectors(t *testing.T) {
	if NameMatchesAnySelector("IGA Extra", nil) {
		t.Fatal("no selectors must match no store")
	}
	if NameMatchesAnySelector("IGA Extra", NormalizeSelectors([]string{"", "  "})) {
		t.Fatal("blank selectors must be dropped, not match everything")
	}
}
