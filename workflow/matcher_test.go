package workflow

import (
	"testing"

	"github.com/epiceriemtl/epicerie_backend/models"
)

// NOTE: These tests are intentionally DB-free. Candidates are built in memory
// the way ResolveActivePrices would hand them over.

func testConfig() MatchConfig {
	return MatchConfig{FuzzyCutoff: 0.5, FuzzyLimit: 5, MinExactMatches: 3}
}

func candidate(id int, productName string, class models.PriceClass) *models.ActivePrice {
	return &models.ActivePrice{
		Class: class,
		Prix: &models.Prix{
			ID:      id,
			Produit: models.Produit{ID: id, Nom: productName},
		},
	}
}

func ids(matches []*models.ActivePrice) []int {
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Prix.ID)
	}
	return out
}

func TestMatchPrices_ExactSubstring(t *testing.T) {
	candidates := []*models.ActivePrice{
		candidate(1, "Lait 2% 2L", models.PriceClassFlyer),
		candidate(2, "Fromage cheddar", models.PriceClassFlyer),
		candidate(3, "LAIT d'amande", models.PriceClassCommunity),
		candidate(4, "Boisson de lait de coco", models.PriceClassFlyer),
	}

	matches := MatchPrices("  Lait ", candidates, testConfig())

	got := ids(matches)
	want := []int{1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v in discovery order, got %v", want, got)
		}
	}
}

func TestMatchPrices_FuzzyOnlyWhenExactIsSparse(t *testing.T) {
	candidates := []*models.ActivePrice{
		candidate(1, "Yaourt nature", models.PriceClassFlyer),
		candidate(2, "Jus d'orange", models.PriceClassFlyer),
	}

	matches := MatchPrices("yogourt", candidates, testConfig())

	if len(matches) != 1 {
		t.Fatalf("expected exactly the fuzzy match, got %v", ids(matches))
	}
	if matches[0].Prix.ID != 1 {
		t.Fatalf("expected yaourt to match yogourt, got id=%d", matches[0].Prix.ID)
	}
}

func TestMatchPrices_FuzzySkippedWhenExactIsPlentiful(t *testing.T) {
	candidates := []*models.ActivePrice{
		candidate(1, "Pain blanc", models.PriceClassFlyer),
		candidate(2, "Pain de campagne", models.PriceClassFlyer),
		candidate(3, "Pain aux noix", models.PriceClassFlyer),
		// near-miss that would pass the fuzzy cutoff
		candidate(4, "Pains pita", models.PriceClassFlyer),
	}
	cfg := testConfig()

	matches := MatchPrices("pain", candidates, cfg)

	// "pains pita" also contains "pain", so everything is exact here; the
	// point is that nothing beyond the exact set is added.
	if len(matches) != 4 {
		t.Fatalf("expected 4 exact matches, got %v", ids(matches))
	}

	// Now force an exact-only set at the threshold and verify no fuzzy
	// additions sneak in.
	candidates = []*models.ActivePrice{
		candidate(1, "Pain blanc", models.PriceClassFlyer),
		candidate(2, "Pain de campagne", models.PriceClassFlyer),
		candidate(3, "Pain aux noix", models.PriceClassFlyer),
		candidate(4, "Poire Bartlett", models.PriceClassFlyer),
	}
	matches = MatchPrices("pain", candidates, cfg)
	if len(matches) != 3 {
		t.Fatalf("expected the 3 exact matches only, got %v", ids(matches))
	}
}

func TestMatchPrices_FuzzyLimitAndNoDuplicates(t *testing.T) {
	cfg := testConfig()
	cfg.FuzzyLimit = 2

	candidates := []*models.ActivePrice{
		candidate(1, "Tomate", models.PriceClassFlyer),
		candidate(2, "Tomates cerises", models.PriceClassFlyer),
		candidate(3, "Tomate italienne", models.PriceClassFlyer),
		candidate(4, "Tamate", models.PriceClassCommunity),
	}

	matches := MatchPrices("tomate", candidates, cfg)

	seen := map[int]int{}
	for _, id := range ids(matches) {
		seen[id]++
		if seen[id] > 1 {
			t.Fatalf("price %d matched twice: %v", id, ids(matches))
		}
	}
	// exact yields 3, which meets MinExactMatches, so the misspelling never
	// enters via the fuzzy phase
	if _, ok := seen[4]; ok {
		t.Fatalf("fuzzy phase ran despite enough exact matches: %v", ids(matches))
	}
}

func TestMatchPrices_BlankItemMatchesNothing(t *testing.T) {
	candidates := []*models.ActivePrice{
		candidate(1, "Lait 2% 2L", models.PriceClassFlyer),
	}
	for _, name := range []string{"", "   ", "\t"} {
		if matches := MatchPrices(name, candidates, testConfig()); len(matches) != 0 {
			t.Fatalf("blank item %q matched %v", name, ids(matches))
		}
	}
}

func TestMatchPrices_FuzzyRespectsCutoff(t *testing.T) {
	cfg := testConfig()
	cfg.FuzzyCutoff = 0.95

	candidates := []*models.ActivePrice{
		candidate(1, "Saumon fumé", models.PriceClassFlyer),
	}
	if matches := MatchPrices("poulet", candidates, cfg); len(matches) != 0 {
		t.Fatalf("dissimilar product slipped past the cutoff: %v", ids(matches))
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	if s := Similarity("lait", "lait"); s != 1 {
		t.Fatalf("identical strings should score 1, got %f", s)
	}
	s := Similarity("yogourt", "yaourt")
	if s <= 0.5 || s > 1 {
		t.Fatalf("expected yogourt/yaourt similarity in (0.5, 1], got %f", s)
	}
}
