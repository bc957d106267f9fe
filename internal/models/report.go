package models

import "time"

// ReportTotals are the headline numbers on the admin dashboard.
type ReportTotals struct {
	PropertyCount        int `bson:"totalProperties" json:"total_properties"`
	DistinctUserCount    int `bson:"totalUsers" json:"total_users"`
	PropertiesInLastWeek int `bson:"propertiesThisWeek" json:"properties_this_week"`
	AveragePrice         int `bson:"avgPrice" json:"avg_price"`
}

// LocationCount is one bar of the per-location chart.
type LocationCount struct {
	Location string `bson:"location" json:"location"`
	Count    int    `bson:"count" json:"count"`
}

// MonthCount is one point of the listings-over-time chart. Label is the
// short "Jan 2006" form; Month carries the actual date so consumers never
// sort labels lexically.
type MonthCount struct {
	Label string    `bson:"month" json:"month"`
	Month time.Time `bson:"monthDate" json:"month_date"`
	Count int       `bson:"count" json:"count"`
}

// PriceBucket is one band of the price distribution chart.
type PriceBucket struct {
	Label string `bson:"label" json:"label"`
	Count int    `bson:"count" json:"count"`
}

// OwnerStat is one row of the per-user leaderboard: how many listings an
// owner has and when their earliest listing was created.
type OwnerStat struct {
	UserID          string     `bson:"userId" json:"user_id"`
	Email           string     `bson:"email" json:"email"`
	PropertiesCount int        `bson:"propertiesCount" json:"properties_count"`
	JoinDate        *time.Time `bson:"joinDate,omitempty" json:"join_date,omitempty"`
}

// AggregateReport is the derived statistics snapshot. It is recomputed from
// scratch on every run and persisted whole into the single "latest" slot of
// the reports collection; there is no incremental update path.
type AggregateReport struct {
	GeneratedAt       time.Time       `bson:"generatedAt" json:"generated_at"`
	Totals            ReportTotals    `bson:"statistics" json:"statistics"`
	LocationHistogram []LocationCount `bson:"locations" json:"locations"`
	MonthlyHistogram  []MonthCount    `bson:"timeData" json:"time_data"`
	PriceHistogram    []PriceBucket   `bson:"priceRanges" json:"price_ranges"`
	RecentProperties  []Property      `bson:"recentProperties" json:"recent_properties"`
	UserLeaderboard   []OwnerStat     `bson:"users" json:"users"`
}
