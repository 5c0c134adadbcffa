package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Matching/trust tunables. The defaults come from the behaviour the frontend
// was built against; they are exploratory rather than contractual, so every
// one of them can be overridden from env without a rebuild.

// FuzzyMatchCutoff is the minimum similarity ratio [0,1] a product name must
// score against the requested item to survive the fuzzy phase.
//
// Env: FUZZY_MATCH_CUTOFF (default 0.5)
func FuzzyMatchCutoff() float64 {
	return floatFromEnv("FUZZY_MATCH_CUTOFF", 0.5)
}

// FuzzyMatchLimit caps how many fuzzy-matched names are considered per item.
//
// Env: FUZZY_MATCH_LIMIT (default 5)
func FuzzyMatchLimit() int {
	return intFromEnv("FUZZY_MATCH_LIMIT", 5)
}

// MinExactMatches is the number of exact-phase candidates below which the
// fuzzy phase kicks in.
//
// Env: MIN_EXACT_MATCHES (default 3)
func MinExactMatches() int {
	return intFromEnv("MIN_EXACT_MATCHES", 3)
}

// CommunityPriceWindow is how long a community-submitted price stays valid
// after its last modification.
//
// Env: COMMUNITY_PRICE_WINDOW_DAYS (default 7)
func CommunityPriceWindow() time.Duration {
	return time.Duration(intFromEnv("COMMUNITY_PRICE_WINDOW_DAYS", 7)) * 24 * time.Hour
}

// ReputationPerConfirmation is the number of points a submitter earns each
// time a distinct user confirms one of their prices.
//
// Env: REPUTATION_PER_CONFIRMATION (default 5)
func ReputationPerConfirmation() int {
	return intFromEnv("REPUTATION_PER_CONFIRMATION", 5)
}

func floatFromEnv(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
