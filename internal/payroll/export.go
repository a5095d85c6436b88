package payroll

import (
	"context"
	"encoding/csv"
	"io"
	"log"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

const SheetName = "급여대장"

var exportHeaders = []string{
	"작업자ID", "성명", "출역일수", "결근일수", "총공수",
	"기본시간", "연장시간", "기본급", "연장수당", "지급합계",
}

// exportRow: 金額は원単位に丸めた整数で出す
func exportRow(wp WorkerPayroll) []any {
	regular, overtime, total := roundedPay(wp.PayrollTotals)
	return []any{
		wp.WorkerID,
		wp.WorkerName,
		wp.WorkDays,
		wp.AbsentDays,
		wp.TotalLaborHours,
		wp.RegularHours,
		wp.OvertimeHours,
		regular.IntPart(),
		overtime.IntPart(),
		total.IntPart(),
	}
}

// GET /payroll/export.xlsx?month=
func (s *Service) ExportXLSX(ctx context.Context, month string, siteID *uint64, w io.Writer) error {
	sum, err := s.Summary(ctx, month, siteID)
	if err != nil {
		return err
	}
	if err := writeXLSX(w, sum); err != nil {
		log.Printf("[ERROR] xlsx export failed: month=%s %v", month, err)
		return ErrInternal("failed to build xlsx")
	}
	return nil
}

func writeXLSX(w io.Writer, sum SummaryResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	setRow := func(row int, values []any) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	headers := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		headers[i] = h
	}
	if err := setRow(1, headers); err != nil {
		return err
	}
	for i, wp := range sum.Workers {
		if err := setRow(i+2, exportRow(wp)); err != nil {
			return err
		}
	}
	// 合計行
	footer := make([]any, len(exportHeaders))
	footer[1] = "합계 (" + sum.Month + ")"
	footer[4] = sum.TotalLaborHours
	footer[9] = grossWon(sum.Workers).IntPart()
	if err := setRow(len(sum.Workers)+2, footer); err != nil {
		return err
	}
	return f.Write(w)
}

// grossWon: 各行の丸め済み合計の和（台帳の合計行と明細が一致する）
func grossWon(workers []WorkerPayroll) decimal.Decimal {
	gross := decimal.Zero
	for _, wp := range workers {
		_, _, total := roundedPay(wp.PayrollTotals)
		gross = gross.Add(total)
	}
	return gross
}

// GET /payroll/export.csv?month=
// 韓国語版 Excel でそのまま開けるよう CP949(EUC-KR) で出力する
func (s *Service) ExportCSV(ctx context.Context, month string, siteID *uint64, w io.Writer) error {
	sum, err := s.Summary(ctx, month, siteID)
	if err != nil {
		return err
	}
	if err := writeCSVcp949(w, sum); err != nil {
		log.Printf("[ERROR] csv export failed: month=%s %v", month, err)
		return ErrInternal("failed to build csv")
	}
	return nil
}

func writeCSVcp949(w io.Writer, sum SummaryResponse) error {
	tw := transform.NewWriter(w, korean.EUCKR.NewEncoder())
	cw := csv.NewWriter(tw)

	if err := cw.Write(exportHeaders); err != nil {
		return err
	}
	for _, wp := range sum.Workers {
		row := exportRow(wp)
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = csvValue(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return tw.Close()
}

func csvValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}
