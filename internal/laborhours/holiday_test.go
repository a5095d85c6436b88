package laborhours

import (
	"reflect"
	"testing"
)

func testCalendar() *HolidayCalendar {
	return NewHolidayCalendar(map[int][]string{
		2025: {"2025-01-01", "2025-03-01", "2025-08-15", "bogus"},
		2026: {"2026-01-01"},
	})
}

func TestHolidayCalendar_IsHoliday(t *testing.T) {
	cal := testCalendar()
	tests := []struct {
		date string
		want bool
	}{
		{"2025-01-01", true},
		{"2025-01-02", false},
		{"not-a-date", false},
		{"", false},
		{"2025-08-15T09:00:00Z", true},
		{"2025/03/01", true},
		{"2026-01-01", true},
		{"2027-01-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := cal.IsHoliday(tt.date); got != tt.want {
				t.Errorf("IsHoliday(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestHolidayCalendar_Nil(t *testing.T) {
	var cal *HolidayCalendar
	if cal.IsHoliday("2025-01-01") {
		t.Error("nil calendar reported a holiday")
	}
	if got := cal.Holidays(2025); len(got) != 0 {
		t.Errorf("Holidays on nil calendar = %v", got)
	}
}

func TestHolidayCalendar_Holidays(t *testing.T) {
	cal := NewHolidayCalendar(map[int][]string{
		// 年キーと日付の年がずれていても日付側の年で登録される
		2025: {"2025-08-15", "2025-01-01", "2026-02-17", "2025-01-01"},
	})
	if got, want := cal.Holidays(2025), []string{"2025-01-01", "2025-08-15"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Holidays(2025) = %v, want %v", got, want)
	}
	if got, want := cal.Years(), []int{2025, 2026}; !reflect.DeepEqual(got, want) {
		t.Errorf("Years() = %v, want %v", got, want)
	}

	got := cal.Holidays(2025)
	got[0] = "mutated"
	if cal.Holidays(2025)[0] != "2025-01-01" {
		t.Error("Holidays returned internal slice")
	}
}
