package filter

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/clawfood/clawfood/internal/model"
)

// Apply returns the restaurants that pass f, ordered by f.SortBy. The
// input slice is not modified. Restaurants with an unknown distance or
// price tier are kept; an unknown rating fails a minimum rating.
func Apply(restaurants []model.Restaurant, f model.Filters) []model.Restaurant {
	wantTier := PriceTier(f.PriceRange)

	out := make([]model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if f.MaxDistanceKm > 0 {
			if d, ok := DistanceOf(r); ok && d > f.MaxDistanceKm {
				continue
			}
		}
		if f.MinRating > 0 && (r.Rating == nil || *r.Rating < f.MinRating) {
			continue
		}
		if f.PriceRange != "" && !priceMatches(r.PriceRange, f.PriceRange, wantTier) {
			continue
		}
		out = append(out, r)
	}

	switch f.SortBy {
	case model.SortRatingDesc:
		slices.SortStableFunc(out, byRatingDesc)
	case model.SortDistanceAsc:
		slices.SortStableFunc(out, byDistanceAsc)
	}
	return out
}

// DistanceOf prefers the computed distance and falls back to parsing the
// display string.
func DistanceOf(r model.Restaurant) (float64, bool) {
	if r.DistanceKm != nil {
		return *r.DistanceKm, true
	}
	return ParseDistanceKm(r.Distance)
}

func byRatingDesc(a, b model.Restaurant) int {
	switch {
	case a.Rating == nil && b.Rating == nil:
		return 0
	case a.Rating == nil:
		return 1
	case b.Rating == nil:
		return -1
	}
	return cmp.Compare(*b.Rating, *a.Rating)
}

func byDistanceAsc(a, b model.Restaurant) int {
	da, okA := DistanceOf(a)
	db, okB := DistanceOf(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	return cmp.Compare(da, db)
}

var amountPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([kK])?`)

// PriceTier maps a price to 1 (budget), 2 (mid-range) or 3 (fine dining).
// "$", "$$" and "$$$" map directly; amounts such as "$5-$15" or
// "35k-55k" (VND) are bucketed by their lower bound. 0 means unknown.
func PriceTier(price string) int {
	p := strings.TrimSpace(price)
	if p == "" {
		return 0
	}
	if strings.Trim(p, "$") == "" {
		return min(len(p), 3)
	}

	m := amountPattern.FindStringSubmatch(p)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return 0
	}

	switch {
	case strings.Contains(p, "$"):
		return bucket(v, 15, 40)
	case m[2] != "":
		return bucket(v*1000, 60_000, 200_000)
	case v >= 1000:
		return bucket(v, 60_000, 200_000)
	default:
		return 0
	}
}

func bucket(v, mid, high float64) int {
	switch {
	case v < mid:
		return 1
	case v < high:
		return 2
	default:
		return 3
	}
}

func priceMatches(price, want string, wantTier int) bool {
	if strings.EqualFold(strings.TrimSpace(price), strings.TrimSpace(want)) {
		return true
	}
	tier := PriceTier(price)
	if tier == 0 || wantTier == 0 {
		return tier == 0
	}
	return tier == wantTier
}
