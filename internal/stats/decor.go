package stats

import "math/rand"

// Decorate fills in the display-only "top N% of shoppers" flavor value on
// each vendor stat, 1 through 100. It is intentionally random and kept out
// of the deterministic aggregation; callers that need reproducible output
// pass a seeded source.
func Decorate(vendors []VendorStat, rng *rand.Rand) {
	for i := range vendors {
		vendors[i].TopPercent = rng.Intn(100) + 1
	}
}
