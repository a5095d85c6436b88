package payroll

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"INOPNC-backend/internal/laborhours"
	"INOPNC-backend/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

// withTx: 同じクエリを Tx 上で使う
func (s *Store) withTx(tx db.DBTX) *Store { return &Store{db: tx} }

// GetWorker: 見つからなければ sql.ErrNoRows
func (s *Store) GetWorker(ctx context.Context, workerID uint64) (workerRow, error) {
	var w workerRow
	err := s.db.QueryRowContext(ctx, `
	SELECT worker_id, name, site_id, hourly_rate, overtime_rate
	FROM workers
	WHERE worker_id = ?`, workerID).Scan(&w.WorkerID, &w.Name, &w.SiteID, &w.HourlyRate, &w.OvertimeRate)
	return w, err
}

func (s *Store) WorkerRecords(ctx context.Context, workerID uint64, from, to time.Time) ([]laborhours.AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT DATE_FORMAT(work_date, '%Y-%m-%d') AS work_date, labor_hours, COALESCE(work_type, '')
	FROM work_reports
	WHERE worker_id = ? AND work_date BETWEEN ? AND ?
	ORDER BY work_date ASC`, workerID, from.Format(DateLayout), to.Format(DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []laborhours.AttendanceRecord{}
	for rows.Next() {
		var r laborhours.AttendanceRecord
		if err := rows.Scan(&r.Date, &r.LaborHours, &r.WorkType); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type workerRecords struct {
	Worker  workerRow
	Records []laborhours.AttendanceRecord
}

// MonthRecords: 期間内に記録のある作業者とその記録（worker_id 昇順）
func (s *Store) MonthRecords(ctx context.Context, from, to time.Time, siteID *uint64) ([]workerRecords, error) {
	var (
		sb   strings.Builder
		args = []any{from.Format(DateLayout), to.Format(DateLayout)}
	)
	sb.WriteString(`
	SELECT w.worker_id, w.name, w.site_id, w.hourly_rate, w.overtime_rate,
	       DATE_FORMAT(r.work_date, '%Y-%m-%d') AS work_date, r.labor_hours, COALESCE(r.work_type, '')
	FROM work_reports r
	JOIN workers w ON w.worker_id = r.worker_id
	WHERE r.work_date BETWEEN ? AND ?`)
	if siteID != nil {
		sb.WriteString(" AND r.site_id = ?")
		args = append(args, *siteID)
	}
	sb.WriteString(" ORDER BY w.worker_id ASC, r.work_date ASC")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []workerRecords{}
	for rows.Next() {
		var (
			w workerRow
			r laborhours.AttendanceRecord
		)
		if err := rows.Scan(&w.WorkerID, &w.Name, &w.SiteID, &w.HourlyRate, &w.OvertimeRate,
			&r.Date, &r.LaborHours, &r.WorkType); err != nil {
			return nil, err
		}
		if n := len(out); n == 0 || out[n-1].Worker.WorkerID != w.WorkerID {
			out = append(out, workerRecords{Worker: w})
		}
		last := &out[len(out)-1]
		last.Records = append(last.Records, r)
	}
	return out, rows.Err()
}

// PayslipExists: 同月の발급済み명세서があるか（Tx 内で行ロック）
func (s *Store) PayslipExists(ctx context.Context, workerID uint64, month string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
	SELECT 1 FROM payslips WHERE worker_id = ? AND month = ? LIMIT 1 FOR UPDATE`, workerID, month).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) InsertPayslip(ctx context.Context, p *payslip) error {
	res, err := s.db.ExecContext(ctx, `
	INSERT INTO payslips
	(payslip_ulid, worker_id, month, regular_pay, overtime_pay, total_pay, issued_at, issued_by)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PayslipULID, p.WorkerID, p.Month, p.RegularPay, p.OvertimePay, p.TotalPay, p.IssuedAt, p.IssuedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.PayslipID = uint64(id)
	return nil
}
