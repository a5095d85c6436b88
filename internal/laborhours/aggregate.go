package laborhours

import "sort"

// Aggregator は공수記録の月次・期間集計を行う。保持するのは不変のカレンダーだけなので並行利用してよい。
type Aggregator struct {
	holidays *HolidayCalendar
}

func NewAggregator(holidays *HolidayCalendar) *Aggregator {
	return &Aggregator{holidays: holidays}
}

func (a *Aggregator) calendar() *HolidayCalendar {
	if a == nil {
		return nil
	}
	return a.holidays
}

// MonthlyTotals folds the records whose date falls in month ("YYYY-MM").
// Records with unparsable dates are dropped before counting.
func (a *Aggregator) MonthlyTotals(records []AttendanceRecord, month string) MonthlyTotals {
	filtered := make([]AttendanceRecord, 0, len(records))
	for _, r := range records {
		t, ok := parseDate(r.Date)
		if !ok {
			continue
		}
		if t.Format(MonthLayout) != month {
			continue
		}
		filtered = append(filtered, r)
	}
	return MonthlyTotals{Month: month, Totals: a.fold(filtered)}
}

// RangeTotals folds the records inside [start, end].
func (a *Aggregator) RangeTotals(records []AttendanceRecord, start, end string) RangeTotals {
	return RangeTotals{
		StartDate: start,
		EndDate:   end,
		Totals:    a.fold(ByDateRange(records, start, end)),
	}
}

// fold: records は既にフィルタ済み。途中の合計は丸めない
func (a *Aggregator) fold(records []AttendanceRecord) Totals {
	t := Totals{Records: records}
	if t.Records == nil {
		t.Records = []AttendanceRecord{}
	}
	cal := a.calendar()
	for _, r := range records {
		calc := Calculate(r.LaborHours)
		t.TotalLaborHours += calc.LaborHours
		t.TotalActualHours += calc.ActualHours
		t.TotalOvertimeHours += calc.OvertimeHours
		if calc.LaborHours > 0 {
			t.WorkDays++
		} else {
			t.AbsentDays++
		}
		if cal.IsHoliday(r.Date) || r.WorkType == WorkTypeHoliday {
			t.HolidayDays++
		}
	}
	if t.WorkDays > 0 {
		t.AverageLaborHours = round2(t.TotalLaborHours / float64(t.WorkDays))
	}
	return t
}

// ByDateRange returns the records dated within [start, end] sorted by date.
// start after end, or an unparsable bound, yields an empty slice.
func ByDateRange(records []AttendanceRecord, start, end string) []AttendanceRecord {
	out := []AttendanceRecord{}
	from, ok := parseDate(start)
	if !ok {
		return out
	}
	to, ok := parseDate(end)
	if !ok {
		return out
	}
	lo, hi := from.Format(DateLayout), to.Format(DateLayout)
	if lo > hi {
		return out
	}

	keys := make([]string, 0, len(records))
	for _, r := range records {
		d := NormalizeDate(r.Date)
		if d == "" || d < lo || d > hi {
			continue
		}
		out = append(out, r)
		keys = append(keys, d)
	}
	sort.Stable(byKey{recs: out, keys: keys})
	return out
}

type byKey struct {
	recs []AttendanceRecord
	keys []string
}

func (b byKey) Len() int           { return len(b.recs) }
func (b byKey) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b byKey) Swap(i, j int) {
	b.recs[i], b.recs[j] = b.recs[j], b.recs[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}
