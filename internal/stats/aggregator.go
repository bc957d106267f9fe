package stats

import (
	"math"
	"sort"
	"time"

	"property-expert/internal/models"
)

// topLocationCount caps the location histogram at the ten largest buckets.
const topLocationCount = 10

// priceBucketBounds mirrors the dashboard's price bands (in rupees).
// A zero upper bound means unbounded.
var priceBucketBounds = []struct {
	label string
	max   float64
}{
	{"0-10L", 1000000},
	{"10L-25L", 2500000},
	{"25L-50L", 5000000},
	{"50L-1Cr", 10000000},
	{"1Cr+", 0},
}

// Summary holds everything the single aggregation pass produces.
type Summary struct {
	Totals            models.ReportTotals
	LocationHistogram []models.LocationCount
	MonthlyHistogram  []models.MonthCount
	PriceHistogram    []models.PriceBucket
}

// Aggregate reduces the full property set in one pass. Malformed fields
// degrade per record: a listing with a bad price or date still counts toward
// the total and its location bucket. The pass is deterministic for a given
// input order; location ties keep first-encountered order.
func Aggregate(properties []models.Property, now time.Time) Summary {
	var (
		priceSum      float64
		priceCount    int
		recentWeek    int
		distinctUsers = make(map[string]struct{})

		locationCounts = make(map[string]int)
		locationOrder  []string

		monthCounts = make(map[time.Time]int)
		monthLabels = make(map[time.Time]string)
	)

	bucketCounts := make([]int, len(priceBucketBounds))
	weekAgo := now.AddDate(0, 0, -7)

	for i := range properties {
		p := &properties[i]

		if p.OwnerUserID != "" {
			distinctUsers[p.OwnerUserID] = struct{}{}
		}

		if p.HasValidPrice() {
			priceSum += *p.Price
			priceCount++
			bucketCounts[priceBucketIndex(*p.Price)]++
		}

		loc := p.EffectiveLocation()
		if _, seen := locationCounts[loc]; !seen {
			locationOrder = append(locationOrder, loc)
		}
		locationCounts[loc]++

		if p.CreatedAt != nil {
			created := *p.CreatedAt
			if !created.Before(weekAgo) {
				recentWeek++
			}
			// Key by calendar year+month only; stored timestamps may carry
			// different zones and must not split one month into two buckets.
			month := time.Date(created.Year(), created.Month(), 1, 0, 0, 0, 0, time.UTC)
			if _, seen := monthCounts[month]; !seen {
				monthLabels[month] = created.Format("Jan 2006")
			}
			monthCounts[month]++
		}
	}

	avgPrice := 0
	if priceCount > 0 {
		avgPrice = int(math.Round(priceSum / float64(priceCount)))
	}

	return Summary{
		Totals: models.ReportTotals{
			PropertyCount:        len(properties),
			DistinctUserCount:    len(distinctUsers),
			PropertiesInLastWeek: recentWeek,
			AveragePrice:         avgPrice,
		},
		LocationHistogram: topLocations(locationOrder, locationCounts),
		MonthlyHistogram:  sortedMonths(monthCounts, monthLabels),
		PriceHistogram:    priceHistogram(bucketCounts),
	}
}

func priceBucketIndex(price float64) int {
	for i, b := range priceBucketBounds {
		if b.max == 0 || price <= b.max {
			return i
		}
	}
	return len(priceBucketBounds) - 1
}

// topLocations sorts by count descending and truncates to the top ten.
// The stable sort over insertion order gives the documented tie-break.
func topLocations(order []string, counts map[string]int) []models.LocationCount {
	entries := make([]models.LocationCount, 0, len(order))
	for _, loc := range order {
		entries = append(entries, models.LocationCount{Location: loc, Count: counts[loc]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > topLocationCount {
		entries = entries[:topLocationCount]
	}
	return entries
}

// sortedMonths orders buckets by actual calendar date, never by label.
func sortedMonths(counts map[time.Time]int, labels map[time.Time]string) []models.MonthCount {
	entries := make([]models.MonthCount, 0, len(counts))
	for month, count := range counts {
		entries = append(entries, models.MonthCount{
			Label: labels[month],
			Month: month,
			Count: count,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Month.Before(entries[j].Month)
	})
	return entries
}

func priceHistogram(counts []int) []models.PriceBucket {
	buckets := make([]models.PriceBucket, len(priceBucketBounds))
	for i, b := range priceBucketBounds {
		buckets[i] = models.PriceBucket{Label: b.label, Count: counts[i]}
	}
	return buckets
}
