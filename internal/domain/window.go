package domain

import "time"

// DayMetrics is one zero-initialized bucket in a daily metrics window.
type DayMetrics struct {
	Impressions int64   `json:"impressions"`
	CPM         float64 `json:"cpm"`
	Earning     float64 `json:"earning"`
}

// DailyWindow maps ISO dates (YYYY-MM-DD, UTC) to per-day metrics.
// A window is built once, anchored at creation time, and never extended.
type DailyWindow map[string]DayMetrics

// NewDailyWindow builds exactly days contiguous date keys ending at anchor,
// each entry zeroed.
func NewDailyWindow(days int, anchor time.Time) DailyWindow {
	out := make(DailyWindow, days)
	day := anchor.UTC()
	for i := 0; i < days; i++ {
		out[day.AddDate(0, 0, -i).Format(time.DateOnly)] = DayMetrics{}
	}
	return out
}
