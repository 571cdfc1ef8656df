package domain

import (
	"testing"
	"time"
)

func TestNewDailyWindowLengthAndZeroInit(t *testing.T) {
	anchor := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)
	w := NewDailyWindow(90, anchor)

	if len(w) != 90 {
		t.Fatalf("expected 90 keys, got %d", len(w))
	}
	for date, m := range w {
		if m.Impressions != 0 || m.CPM != 0 || m.Earning != 0 {
			t.Fatalf("bucket %s not zero-initialized: %+v", date, m)
		}
	}
}

func TestNewDailyWindowEndsAtAnchor(t *testing.T) {
	anchor := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	w := NewDailyWindow(10, anchor)

	if _, ok := w["2025-06-15"]; !ok {
		t.Fatal("anchor date missing from window")
	}
	if _, ok := w["2025-06-06"]; !ok {
		t.Fatal("oldest expected date missing from window")
	}
	if _, ok := w["2025-06-16"]; ok {
		t.Fatal("window extends past the anchor")
	}
	if _, ok := w["2025-06-05"]; ok {
		t.Fatal("window extends before its range")
	}
}

func TestNewDailyWindowContiguous(t *testing.T) {
	anchor := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	w := NewDailyWindow(5, anchor)

	for i := 0; i < 5; i++ {
		key := anchor.AddDate(0, 0, -i).Format(time.DateOnly)
		if _, ok := w[key]; !ok {
			t.Fatalf("missing contiguous date %s", key)
		}
	}
}

func TestNewDailyWindowCrossesMonthBoundary(t *testing.T) {
	anchor := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	w := NewDailyWindow(3, anchor)

	for _, key := range []string{"2025-03-01", "2025-02-28", "2025-02-27"} {
		if _, ok := w[key]; !ok {
			t.Fatalf("missing date %s across month boundary", key)
		}
	}
}
