package workflow

import (
	"sort"
	"strings"

	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/models"
	"github.com/xrash/smetrics"
)

// MatchConfig tunes the two-phase product matcher. Zero values are replaced
// by the environment-backed defaults.
type MatchConfig struct {
	// FuzzyCutoff is the minimum similarity ratio a fuzzy candidate needs.
	FuzzyCutoff float64
	// FuzzyLimit caps how many fuzzy candidates are accepted per item.
	FuzzyLimit int
	// MinExactMatches is the exact-phase yield below which the fuzzy phase
	// runs at all.
	MinExactMatches int
}

func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		FuzzyCutoff:     config.FuzzyMatchCutoff(),
		FuzzyLimit:      config.FuzzyMatchLimit(),
		MinExactMatches: config.MinExactMatches(),
	}
}

func (c MatchConfig) withDefaults() MatchConfig {
	defaults := DefaultMatchConfig()
	if c.FuzzyCutoff == 0 {
		c.FuzzyCutoff = defaults.FuzzyCutoff
	}
	if c.FuzzyLimit == 0 {
		c.FuzzyLimit = defaults.FuzzyLimit
	}
	if c.MinExactMatches == 0 {
		c.MinExactMatches = defaults.MinExactMatches
	}
	return c
}

// NormalizeItemName lowercases and trims a shopping list entry for matching.
func NormalizeItemName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Similarity is the ratio used by the fuzzy phase, in [0, 1].
func Similarity(a string, b string) float64 {
	return smetrics.JaroWinkler(a, b, 0.7, 4)
}

// MatchPrices finds the active prices relevant to one shopping list entry.
//
// The exact phase takes every price whose product name contains the entry as
// a substring, in discovery order. Only when that yields fewer than
// MinExactMatches does the fuzzy phase run: remaining candidates are ranked
// by similarity, those at or above the cutoff are taken best-first up to
// FuzzyLimit. A blank entry matches nothing.
func MatchPrices(itemName string, candidates []*models.ActivePrice, cfg MatchConfig) []*models.ActivePrice {
	cfg = cfg.withDefaults()
	needle := NormalizeItemName(itemName)
	if needle == "" {
		return []*models.ActivePrice{}
	}

	matched := make([]*models.ActivePrice, 0)
	accepted := make(map[int]struct{})
	for _, candidate := range candidates {
		productName := NormalizeItemName(candidate.Prix.Produit.Nom)
		if strings.Contains(productName, needle) {
			matched = append(matched, candidate)
			accepted[candidate.Prix.ID] = struct{}{}
		}
	}
	if len(matched) >= cfg.MinExactMatches {
		return matched
	}

	type scored struct {
		candidate *models.ActivePrice
		score     float64
		order     int
	}
	fuzzy := make([]scored, 0)
	for order, candidate := range candidates {
		if _, ok := accepted[candidate.Prix.ID]; ok {
			continue
		}
		score := Similarity(needle, NormalizeItemName(candidate.Prix.Produit.Nom))
		if score >= cfg.FuzzyCutoff {
			fuzzy = append(fuzzy, scored{candidate: candidate, score: score, order: order})
		}
	}
	sort.SliceStable(fuzzy, func(i, j int) bool {
		if fuzzy[i].score != fuzzy[j].score {
			return fuzzy[i].score > fuzzy[j].score
		}
		return fuzzy[i].order < fuzzy[j].order
	})
	for i, s := range fuzzy {
		if i >= cfg.FuzzyLimit {
			break
		}
		matched = append(matched, s.candidate)
	}
	return matched
}
