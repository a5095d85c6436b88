package payroll

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type workerRow struct {
	WorkerID     uint64
	Name         string
	SiteID       sql.NullInt64
	HourlyRate   sql.NullFloat64
	OvertimeRate sql.NullFloat64
}

// Rates: 作業者の単価（원/時間）
type Rates struct {
	Hourly   float64
	Overtime float64
}

// rates: 単価未設定の列は既定値で埋める
func (w workerRow) rates(def Rates) Rates {
	r := def
	if w.HourlyRate.Valid {
		r.Hourly = w.HourlyRate.Float64
	}
	if w.OvertimeRate.Valid {
		r.Overtime = w.OvertimeRate.Float64
	}
	return r
}

type payslip struct {
	PayslipID   uint64
	PayslipULID string
	WorkerID    uint64
	Month       string
	RegularPay  decimal.Decimal
	OvertimePay decimal.Decimal
	TotalPay    decimal.Decimal
	IssuedAt    time.Time
	IssuedBy    string
}

func (p payslip) toDTO() PayslipResponse {
	return PayslipResponse{
		PayslipID:   p.PayslipID,
		PayslipULID: p.PayslipULID,
		WorkerID:    p.WorkerID,
		Month:       p.Month,
		RegularPay:  p.RegularPay.String(),
		OvertimePay: p.OvertimePay.String(),
		TotalPay:    p.TotalPay.String(),
		IssuedAt:    p.IssuedAt,
		IssuedBy:    p.IssuedBy,
	}
}
