package payroll

import (
	"time"

	"INOPNC-backend/internal/laborhours"
)

const (
	DateLayout  = laborhours.DateLayout
	MonthLayout = laborhours.MonthLayout
)

// WorkerPayroll: 作業者1人・1か月分の급여集計
type WorkerPayroll struct {
	WorkerID     uint64  `json:"workerId"`
	WorkerName   string  `json:"workerName"`
	Month        string  `json:"month"`
	HourlyRate   float64 `json:"hourlyRate"`
	OvertimeRate float64 `json:"overtimeRate"`
	laborhours.PayrollTotals
}

type SummaryResponse struct {
	Month             string          `json:"month"`
	SiteID            *uint64         `json:"siteId,omitempty"`
	TotalWorkers      int             `json:"totalWorkers"`
	TotalLaborHours   float64         `json:"totalLaborHours"`
	TotalGrossPay     float64         `json:"totalGrossPay"`
	TotalGrossPayText string          `json:"totalGrossPayText"`
	Workers           []WorkerPayroll `json:"workers"`
}

type IssuePayslipRequest struct {
	Month string `json:"month" binding:"required"` // YYYY-MM
}

type PayslipResponse struct {
	PayslipID   uint64    `json:"payslip_id"`
	PayslipULID string    `json:"payslip_ulid"`
	WorkerID    uint64    `json:"worker_id"`
	Month       string    `json:"month"`
	RegularPay  string    `json:"regular_pay"` // 원単位に丸めた金額
	OvertimePay string    `json:"overtime_pay"`
	TotalPay    string    `json:"total_pay"`
	IssuedAt    time.Time `json:"issued_at"`
	IssuedBy    string    `json:"issued_by"`
}
