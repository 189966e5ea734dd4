package model

// CategoryCount is one (category, frequency) pair in ranked order.
type CategoryCount struct {
	Category string
	Count    int
}

// WeekdayCount is one (weekday, frequency) pair; weekday is Sunday = 0.
type WeekdayCount struct {
	Weekday int
	Count   int
}

// HourCount is one (hour-of-day, frequency) pair.
type HourCount struct {
	Hour  int
	Count int
}

// LocationCount is one (location, frequency) pair.
type LocationCount struct {
	Location string
	Count    int
}

// SpendingProfile is the behavioral profile derived from a user's recent
// transactions. It is recomputed per request and never persisted; an empty
// profile (all fields nil) means "no history yet", not an error.
type SpendingProfile struct {
	TopCategories       []CategoryCount
	AvgAmountByCategory map[string]float64
	PreferredWeekdays   []WeekdayCount
	TopLocations        []LocationCount
	PeakHours           []HourCount
}

// Empty reports whether the profile carries no signal at all.
func (p SpendingProfile) Empty() bool {
	return len(p.TopCategories) == 0 &&
		len(p.AvgAmountByCategory) == 0 &&
		len(p.PreferredWeekdays) == 0 &&
		len(p.TopLocations) == 0 &&
		len(p.PeakHours) == 0
}

// CategoryRank returns the 1-indexed rank of category among the top
// categories, or 0 when the category is not ranked.
func (p SpendingProfile) CategoryRank(category string) (rank, count int) {
	for i, c := range p.TopCategories {
		if c.Category == category {
			return i + 1, c.Count
		}
	}
	return 0, 0
}

// IsPeakHour reports whether hour is one of the profile's peak hours.
func (p SpendingProfile) IsPeakHour(hour int) bool {
	for _, h := range p.PeakHours {
		if h.Hour == hour {
			return true
		}
	}
	return false
}
