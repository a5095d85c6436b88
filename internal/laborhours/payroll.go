package laborhours

// CalculatePayroll applies hourly and overtime rates to a worker's records.
// The 8-hour cap is applied per record, so partial days never add up into overtime.
// Pay is not rounded here.
func CalculatePayroll(in PayrollInput) PayrollTotals {
	var p PayrollTotals
	for _, r := range in.AttendanceRecords {
		calc := Calculate(r.LaborHours)
		p.TotalLaborHours += calc.LaborHours
		p.TotalActualHours += calc.ActualHours
		p.RegularHours += calc.RegularHours
		p.OvertimeHours += calc.OvertimeHours
		if calc.LaborHours > 0 {
			p.WorkDays++
		} else {
			p.AbsentDays++
		}
	}
	p.RegularPay = p.RegularHours * sanitize(in.HourlyRate)
	p.OvertimePay = p.OvertimeHours * sanitize(in.OvertimeRate)
	p.TotalPay = p.RegularPay + p.OvertimePay
	return p
}
