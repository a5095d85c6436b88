package laborhours

import (
	"math"
	"strconv"
)

// sanitize: NaN・負数・Inf は 0（결근）扱い
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Calculate converts one day's 공수 into actual, regular and overtime hours.
// It never fails: defective input is treated as an absent day.
func Calculate(laborHours float64) LaborHoursCalculation {
	lh := sanitize(laborHours)
	actual := lh * HoursPerDay
	return LaborHoursCalculation{
		LaborHours:    lh,
		ActualHours:   actual,
		RegularHours:  math.Min(actual, HoursPerDay),
		OvertimeHours: OvertimeHours(actual),
		Type:          classify(lh),
	}
}

// OvertimeHours returns the hours beyond the 8-hour daily cap.
func OvertimeHours(actualHours float64) float64 {
	if math.IsNaN(actualHours) || actualHours <= HoursPerDay {
		return 0
	}
	return actualHours - HoursPerDay
}

func classify(lh float64) AttendanceType {
	switch {
	case lh == 0:
		return TypeAbsent
	case lh < 1.0:
		return TypePartial
	case lh == 1.0:
		return TypeRegular
	default:
		return TypeOvertime
	}
}

// Format renders 공수 with one decimal (round half up) for display only.
func Format(laborHours float64) string {
	lh := sanitize(laborHours)
	rounded := math.Floor(lh*10+0.5) / 10
	return strconv.FormatFloat(rounded, 'f', 1, 64) + UnitSuffix
}

func Color(laborHours float64) AttendanceColor {
	lh := sanitize(laborHours)
	switch {
	case lh >= 1.0:
		return ColorGreen
	case lh >= 0.5:
		return ColorYellow
	case lh > 0:
		return ColorOrange
	default:
		return ColorGray
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
