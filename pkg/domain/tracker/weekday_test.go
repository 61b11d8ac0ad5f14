package tracker

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWeekdaysMondayFirst(t *testing.T) {
	days := WeekdaysMondayFirst()
	if len(days) != 7 {
		t.Fatalf("len = %d, want 7", len(days))
	}
	for i, d := range days {
		if d.Order() != i {
			t.Errorf("%s Order() = %d, want %d", d, d.Order(), i)
		}
	}
	if days[0] != Monday || days[6] != Sunday {
		t.Errorf("ordering = %v, want Monday first, Sunday last", days)
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2025-03-10 is a Monday.
	base := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)
	want := WeekdaysMondayFirst()
	for i := 0; i < 7; i++ {
		if got := WeekdayOf(base.AddDate(0, 0, i)); got != want[i] {
			t.Errorf("WeekdayOf(+%dd) = %s, want %s", i, got, want[i])
		}
	}
}

func TestWeekday_TimeRoundTrip(t *testing.T) {
	for _, d := range WeekdaysMondayFirst() {
		if got := WeekdayFromTime(d.Time()); got != d {
			t.Errorf("WeekdayFromTime(%s.Time()) = %s, want %s", d, got, d)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	if _, err := ParseWeekday("wednesday"); err != nil {
		t.Errorf("ParseWeekday(wednesday) error = %v", err)
	}
	if _, err := ParseWeekday("Wednesday"); err == nil {
		t.Error("ParseWeekday(Wednesday) succeeded, want error: values are stored lowercase")
	}
	if _, err := ParseWeekday("someday"); err == nil {
		t.Error("ParseWeekday(someday) succeeded, want error")
	}
}

func TestWeekday_JSON(t *testing.T) {
	data, err := json.Marshal(Saturday)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"saturday"` {
		t.Errorf("Marshal = %s, want \"saturday\"", data)
	}

	var d Weekday
	if err := json.Unmarshal([]byte(`"sunday"`), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if d != Sunday {
		t.Errorf("Unmarshal = %s, want sunday", d)
	}

	if err := json.Unmarshal([]byte(`"noday"`), &d); err == nil {
		t.Error("Unmarshal(noday) succeeded, want error")
	}
}
