package laborhours

const (
	HoursPerDay     = 8.0
	DateLayout      = "2006-01-02"
	MonthLayout     = "2006-01"
	WorkTypeHoliday = "holiday"
	UnitSuffix      = "공수"
)

// AttendanceType: 1日分の공수から導出される区分（保存しない）
type AttendanceType string

const (
	TypeAbsent   AttendanceType = "absent"
	TypePartial  AttendanceType = "partial"
	TypeRegular  AttendanceType = "regular"
	TypeOvertime AttendanceType = "overtime"
)

// AttendanceColor: 画面表示用の色ヒント
type AttendanceColor string

const (
	ColorGreen  AttendanceColor = "green"
	ColorYellow AttendanceColor = "yellow"
	ColorOrange AttendanceColor = "orange"
	ColorGray   AttendanceColor = "gray"
)

// AttendanceRecord: 作業者1人・1日分の출역記録
type AttendanceRecord struct {
	Date       string  `json:"date"`
	LaborHours float64 `json:"laborHours"`
	WorkType   string  `json:"workType,omitempty"`
}

type LaborHoursCalculation struct {
	LaborHours    float64        `json:"laborHours"`
	ActualHours   float64        `json:"actualHours"`
	RegularHours  float64        `json:"regularHours"`
	OvertimeHours float64        `json:"overtimeHours"`
	Type          AttendanceType `json:"type"`
}

// Totals: 月次・期間集計の共通部分
type Totals struct {
	TotalLaborHours    float64            `json:"totalLaborHours"`
	TotalActualHours   float64            `json:"totalActualHours"`
	TotalOvertimeHours float64            `json:"totalOvertimeHours"`
	WorkDays           int                `json:"workDays"`
	AbsentDays         int                `json:"absentDays"`
	HolidayDays        int                `json:"holidayDays"`
	AverageLaborHours  float64            `json:"averageLaborHours"`
	Records            []AttendanceRecord `json:"records"`
}

type MonthlyTotals struct {
	Month string `json:"month"`
	Totals
}

type RangeTotals struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Totals
}

type PayrollInput struct {
	HourlyRate        float64
	OvertimeRate      float64
	AttendanceRecords []AttendanceRecord
}

// PayrollTotals: 金額は丸めない（丸めは表示側の責務）
type PayrollTotals struct {
	TotalLaborHours  float64 `json:"totalLaborHours"`
	TotalActualHours float64 `json:"totalActualHours"`
	RegularHours     float64 `json:"regularHours"`
	OvertimeHours    float64 `json:"overtimeHours"`
	RegularPay       float64 `json:"regularPay"`
	OvertimePay      float64 `json:"overtimePay"`
	TotalPay         float64 `json:"totalPay"`
	WorkDays         int     `json:"workDays"`
	AbsentDays       int     `json:"absentDays"`
}
