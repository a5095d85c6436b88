package laborhours

import (
	"math"
	"reflect"
	"testing"
)

func TestMonthlyTotals_Scenario(t *testing.T) {
	agg := NewAggregator(nil)
	records := []AttendanceRecord{
		{Date: "2025-08-01", LaborHours: 1.0},
		{Date: "2025-08-02", LaborHours: 0},
		{Date: "2025-08-03", LaborHours: 1.5},
	}
	got := agg.MonthlyTotals(records, "2025-08")

	if got.WorkDays != 2 || got.AbsentDays != 1 {
		t.Errorf("days = %d/%d, want 2/1", got.WorkDays, got.AbsentDays)
	}
	if got.TotalLaborHours != 2.5 {
		t.Errorf("TotalLaborHours = %v, want 2.5", got.TotalLaborHours)
	}
	if got.TotalActualHours != 20 {
		t.Errorf("TotalActualHours = %v, want 20", got.TotalActualHours)
	}
	if got.TotalOvertimeHours != 4 {
		t.Errorf("TotalOvertimeHours = %v, want 4", got.TotalOvertimeHours)
	}
	if got.AverageLaborHours != 1.25 {
		t.Errorf("AverageLaborHours = %v, want 1.25", got.AverageLaborHours)
	}
	if len(got.Records) != 3 {
		t.Errorf("len(Records) = %d, want 3", len(got.Records))
	}
}

func TestMonthlyTotals_NilInput(t *testing.T) {
	got := NewAggregator(testCalendar()).MonthlyTotals(nil, "2025-08")
	want := MonthlyTotals{Month: "2025-08", Totals: Totals{Records: []AttendanceRecord{}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MonthlyTotals(nil) = %+v, want %+v", got, want)
	}

	var nilAgg *Aggregator
	if got := nilAgg.MonthlyTotals(nil, "2025-08"); got.WorkDays != 0 || got.Records == nil {
		t.Errorf("nil aggregator = %+v", got)
	}
}

func TestMonthlyTotals_FiltersAndCounts(t *testing.T) {
	agg := NewAggregator(testCalendar())
	records := []AttendanceRecord{
		{Date: "2025-08-15", LaborHours: 1.5},                      // 광복절に残業
		{Date: "2025-08-16", LaborHours: 1.0, WorkType: "holiday"}, // 明示的に休日扱い
		{Date: "2025-08-17", LaborHours: math.NaN()},               // 결근
		{Date: "2025-08-18", LaborHours: -2},                       // 결근
		{Date: "garbage", LaborHours: 1.0},                         // 除外
		{Date: "2025-09-01", LaborHours: 1.0},                      // 別月
		{Date: "2025-08-20T07:30:00+09:00", LaborHours: 0.5},
	}
	got := agg.MonthlyTotals(records, "2025-08")

	if got.WorkDays != 3 || got.AbsentDays != 2 {
		t.Errorf("days = %d/%d, want 3/2", got.WorkDays, got.AbsentDays)
	}
	if got.WorkDays+got.AbsentDays != len(got.Records) {
		t.Errorf("work+absent = %d, records = %d", got.WorkDays+got.AbsentDays, len(got.Records))
	}
	if got.HolidayDays != 2 {
		t.Errorf("HolidayDays = %d, want 2", got.HolidayDays)
	}
	if math.IsNaN(got.TotalLaborHours) || got.TotalLaborHours != 3.0 {
		t.Errorf("TotalLaborHours = %v, want 3", got.TotalLaborHours)
	}
	if got.AverageLaborHours != 1.0 {
		t.Errorf("AverageLaborHours = %v, want 1", got.AverageLaborHours)
	}
}

func TestMonthlyTotals_DoesNotMutateInput(t *testing.T) {
	records := []AttendanceRecord{
		{Date: "2025-08-03", LaborHours: -1},
		{Date: "2025-08-01", LaborHours: 1},
	}
	before := append([]AttendanceRecord(nil), records...)
	NewAggregator(nil).MonthlyTotals(records, "2025-08")
	ByDateRange(records, "2025-08-01", "2025-08-31")
	if !reflect.DeepEqual(records, before) {
		t.Errorf("input mutated: %+v", records)
	}
}

func TestMonthlyTotals_AverageRounding(t *testing.T) {
	records := []AttendanceRecord{
		{Date: "2025-08-01", LaborHours: 1},
		{Date: "2025-08-02", LaborHours: 1},
		{Date: "2025-08-03", LaborHours: 1.5},
	}
	got := NewAggregator(nil).MonthlyTotals(records, "2025-08")
	if got.AverageLaborHours != 1.17 {
		t.Errorf("AverageLaborHours = %v, want 1.17", got.AverageLaborHours)
	}
	if got.TotalLaborHours != 3.5 {
		t.Errorf("TotalLaborHours = %v, want 3.5 (unrounded)", got.TotalLaborHours)
	}
}

func TestByDateRange(t *testing.T) {
	records := []AttendanceRecord{
		{Date: "2025-08-10", LaborHours: 1},
		{Date: "2025-07-31", LaborHours: 1},
		{Date: "2025-08-01", LaborHours: 0.5},
		{Date: "nope", LaborHours: 1},
		{Date: "2025-08-31", LaborHours: 1.5},
		{Date: "2025-09-01", LaborHours: 1},
	}

	got := ByDateRange(records, "2025-08-01", "2025-08-31")
	var dates []string
	for _, r := range got {
		dates = append(dates, r.Date)
	}
	want := []string{"2025-08-01", "2025-08-10", "2025-08-31"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("ByDateRange dates = %v, want %v", dates, want)
	}

	if got := ByDateRange(records, "2025-09-01", "2025-08-01"); got == nil || len(got) != 0 {
		t.Errorf("inverted range = %v, want empty", got)
	}
	if got := ByDateRange(records, "bad", "2025-08-01"); len(got) != 0 {
		t.Errorf("unparsable start = %v, want empty", got)
	}
	if got := ByDateRange(nil, "2025-08-01", "2025-08-31"); got == nil || len(got) != 0 {
		t.Errorf("nil records = %v, want empty", got)
	}
}

func TestRangeTotals(t *testing.T) {
	records := []AttendanceRecord{
		{Date: "2025-08-30", LaborHours: 1},
		{Date: "2025-09-01", LaborHours: 1.25},
		{Date: "2025-09-02", LaborHours: 0},
	}
	got := NewAggregator(nil).RangeTotals(records, "2025-08-30", "2025-09-01")
	if got.WorkDays != 2 || got.AbsentDays != 0 {
		t.Errorf("days = %d/%d, want 2/0", got.WorkDays, got.AbsentDays)
	}
	if got.TotalOvertimeHours != 2 {
		t.Errorf("TotalOvertimeHours = %v, want 2", got.TotalOvertimeHours)
	}
	if got.Records[0].Date != "2025-08-30" {
		t.Errorf("Records not sorted: %+v", got.Records)
	}
}
