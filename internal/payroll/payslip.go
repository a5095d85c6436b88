package payroll

import (
	"context"
	"embed"
	"html/template"
	"io"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"INOPNC-backend/internal/laborhours"
)

const CompanyName = "INOPNC"

//go:embed templates/payslip.html.tmpl
var templateFS embed.FS

var payslipTmpl = template.Must(template.New("payslip.html.tmpl").ParseFS(templateFS, "templates/payslip.html.tmpl"))

// RoundWon: 원未満を四捨五入（表示・発行時のみ使う）
func RoundWon(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(0)
}

// roundedPay: 基本給・残業手当を원単位に丸める。合計は丸めた2つの和
func roundedPay(t laborhours.PayrollTotals) (regular, overtime, total decimal.Decimal) {
	regular = RoundWon(t.RegularPay)
	overtime = RoundWon(t.OvertimePay)
	return regular, overtime, regular.Add(overtime)
}

func formatDecimalWon(d decimal.Decimal) string {
	p := message.NewPrinter(language.Korean)
	return p.Sprintf("%d원", d.IntPart())
}

// FormatWon formats an amount as "1,234,567원".
func FormatWon(v float64) string {
	return formatDecimalWon(RoundWon(v))
}

func formatHours(v float64) string {
	p := message.NewPrinter(language.Korean)
	return p.Sprintf("%.1f시간", v)
}

type payslipLine struct {
	Label string
	Value string
}

type payslipView struct {
	Company    string
	Month      string
	WorkerID   uint64
	WorkerName string
	Attendance []payslipLine
	Earnings   []payslipLine
	Total      string
}

func newPayslipView(wp WorkerPayroll) payslipView {
	regular, overtime, total := roundedPay(wp.PayrollTotals)
	return payslipView{
		Company:    CompanyName,
		Month:      wp.Month,
		WorkerID:   wp.WorkerID,
		WorkerName: wp.WorkerName,
		Attendance: []payslipLine{
			{"출역일수", message.NewPrinter(language.Korean).Sprintf("%d일", wp.WorkDays)},
			{"결근일수", message.NewPrinter(language.Korean).Sprintf("%d일", wp.AbsentDays)},
			{"총 공수", laborhours.Format(wp.TotalLaborHours)},
			{"기본 근로시간", formatHours(wp.RegularHours)},
			{"연장 근로시간", formatHours(wp.OvertimeHours)},
		},
		Earnings: []payslipLine{
			{"시간당 단가", FormatWon(wp.HourlyRate)},
			{"연장 단가", FormatWon(wp.OvertimeRate)},
			{"기본급", formatDecimalWon(regular)},
			{"연장수당", formatDecimalWon(overtime)},
		},
		Total: formatDecimalWon(total),
	}
}

// GET /workers/:worker_id/payslip.html?month=
func (s *Service) RenderPayslip(ctx context.Context, workerID uint64, month string, w io.Writer) error {
	wp, err := s.WorkerPayroll(ctx, workerID, month)
	if err != nil {
		return err
	}
	if err := payslipTmpl.Execute(w, newPayslipView(wp)); err != nil {
		log.Printf("[ERROR] render payslip failed: worker=%d %v", workerID, err)
		return ErrInternal("failed to render payslip")
	}
	return nil
}
