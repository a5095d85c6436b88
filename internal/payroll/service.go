package payroll

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"INOPNC-backend/internal/laborhours"
	"INOPNC-backend/internal/platform/db"
)

// ===== インターフェース群 =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ===== Service本体 =====

type Service struct {
	db       *sql.DB
	store    *Store
	defaults Rates
	clock    Clock
	id       IDGen
}

func NewService(conn *sql.DB, defaults Rates) *Service {
	return &Service{
		db:       conn,
		store:    NewStore(conn),
		defaults: defaults,
		clock:    realClock{},
		id:       ulidGen{},
	}
}

// GET /workers/:worker_id/payroll?month=
func (s *Service) WorkerPayroll(ctx context.Context, workerID uint64, month string) (WorkerPayroll, error) {
	first, last, err := parseMonth(month)
	if err != nil {
		return WorkerPayroll{}, err
	}
	return s.workerPayroll(ctx, s.store, workerID, first, last)
}

func (s *Service) workerPayroll(ctx context.Context, st *Store, workerID uint64, first, last time.Time) (WorkerPayroll, error) {
	w, err := st.GetWorker(ctx, workerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WorkerPayroll{}, ErrNotFound("worker not found")
		}
		log.Printf("[ERROR] get worker failed: worker=%d %v", workerID, err)
		return WorkerPayroll{}, ErrInternal("failed to get worker")
	}
	records, err := st.WorkerRecords(ctx, workerID, first, last)
	if err != nil {
		log.Printf("[ERROR] load work reports failed: worker=%d %v", workerID, err)
		return WorkerPayroll{}, ErrInternal("failed to load work reports")
	}
	return s.compute(w, first.Format(MonthLayout), records), nil
}

func (s *Service) compute(w workerRow, month string, records []laborhours.AttendanceRecord) WorkerPayroll {
	rates := w.rates(s.defaults)
	totals := laborhours.CalculatePayroll(laborhours.PayrollInput{
		HourlyRate:        rates.Hourly,
		OvertimeRate:      rates.Overtime,
		AttendanceRecords: records,
	})
	return WorkerPayroll{
		WorkerID:      w.WorkerID,
		WorkerName:    w.Name,
		Month:         month,
		HourlyRate:    rates.Hourly,
		OvertimeRate:  rates.Overtime,
		PayrollTotals: totals,
	}
}

// GET /payroll/summary?month=&site_id=
func (s *Service) Summary(ctx context.Context, month string, siteID *uint64) (SummaryResponse, error) {
	first, last, err := parseMonth(month)
	if err != nil {
		return SummaryResponse{}, err
	}
	groups, err := s.store.MonthRecords(ctx, first, last, siteID)
	if err != nil {
		log.Printf("[ERROR] load month records failed: month=%s %v", month, err)
		return SummaryResponse{}, ErrInternal("failed to load work reports")
	}

	out := SummaryResponse{
		Month:   first.Format(MonthLayout),
		SiteID:  siteID,
		Workers: make([]WorkerPayroll, 0, len(groups)),
	}
	for _, g := range groups {
		wp := s.compute(g.Worker, out.Month, g.Records)
		out.TotalLaborHours += wp.TotalLaborHours
		out.TotalGrossPay += wp.TotalPay
		out.Workers = append(out.Workers, wp)
	}
	out.TotalWorkers = len(out.Workers)
	out.TotalGrossPayText = formatDecimalWon(grossWon(out.Workers))
	return out, nil
}

// POST /workers/:worker_id/payslips
// 同じ作業者・同じ月の명세서は1回だけ発行できる
func (s *Service) IssuePayslip(ctx context.Context, workerID uint64, month, issuedBy string) (PayslipResponse, error) {
	first, last, err := parseMonth(month)
	if err != nil {
		return PayslipResponse{}, err
	}
	ulidStr, err := s.id.New()
	if err != nil {
		return PayslipResponse{}, ErrInternal("failed to generate payslip id")
	}

	var issued payslip
	err = db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		st := s.store.withTx(tx)
		m := first.Format(MonthLayout)

		exists, err := st.PayslipExists(ctx, workerID, m)
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict("payslip already issued for " + m)
		}

		wp, err := s.workerPayroll(ctx, st, workerID, first, last)
		if err != nil {
			return err
		}
		regular, overtime, total := roundedPay(wp.PayrollTotals)
		issued = payslip{
			PayslipULID: ulidStr,
			WorkerID:    workerID,
			Month:       m,
			RegularPay:  regular,
			OvertimePay: overtime,
			TotalPay:    total,
			IssuedAt:    s.clock.Now().UTC(),
			IssuedBy:    issuedBy,
		}
		return st.InsertPayslip(ctx, &issued)
	})
	if err != nil {
		var api *APIError
		switch {
		case errors.As(err, &api):
			return PayslipResponse{}, api
		case isDuplicateKey(err):
			return PayslipResponse{}, ErrConflict("payslip already issued")
		}
		log.Printf("[ERROR] issue payslip failed: worker=%d month=%s %v", workerID, month, err)
		return PayslipResponse{}, ErrInternal("failed to issue payslip")
	}
	log.Printf("[INFO] payslip issued: %s worker=%d month=%s", issued.PayslipULID, workerID, issued.Month)
	return issued.toDTO(), nil
}

func parseMonth(month string) (time.Time, time.Time, error) {
	first, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(month), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalid("month must be YYYY-MM")
	}
	return first, first.AddDate(0, 1, -1), nil
}
