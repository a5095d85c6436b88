package attendance

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"INOPNC-backend/internal/laborhours"
	"INOPNC-backend/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

type upsertParams struct {
	WorkerID   uint64
	SiteID     *uint64
	WorkDate   time.Time
	LaborHours float64
	WorkType   *string
	Note       *string
}

const selectWorkReport = `
	SELECT report_id, worker_id, site_id, DATE_FORMAT(work_date, '%Y-%m-%d') AS work_date,
	       labor_hours, work_type, note, reported_at
	FROM work_reports`

// Upsert: worker_id + work_date（UNIQUE）で INSERT または UPDATE。
// created=true は新規、false は既存行の上書き
func (s *Store) Upsert(ctx context.Context, p upsertParams) (WorkReport, bool, error) {
	// INSERT ... ON DUPLICATE KEY UPDATE
	// - 新規: RowsAffected = 1
	// - 既存更新: RowsAffected = 2（値が同じなら 0）
	const q = `
	INSERT INTO work_reports (worker_id, site_id, work_date, labor_hours, work_type, note, reported_at)
	VALUES (?, ?, ?, ?, ?, ?, UTC_TIMESTAMP())
	ON DUPLICATE KEY UPDATE
	site_id     = VALUES(site_id),
	labor_hours = VALUES(labor_hours),
	work_type   = VALUES(work_type),
	note        = VALUES(note),
	reported_at = VALUES(reported_at)`

	date := p.WorkDate.Format(DateLayout)
	res, err := s.db.ExecContext(ctx, q,
		p.WorkerID, uint64OrNil(p.SiteID), date, p.LaborHours, strOrNil(p.WorkType), strOrNil(p.Note))
	if err != nil {
		return WorkReport{}, false, err
	}
	aff, _ := res.RowsAffected()
	created := aff == 1

	row := s.db.QueryRowContext(ctx, selectWorkReport+`
	WHERE worker_id = ? AND work_date = ?`, p.WorkerID, date)
	r, err := scanWorkReport(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return WorkReport{}, created, ErrInternal("upserted but not found")
		}
		return WorkReport{}, created, err
	}
	return r.toModel(), created, nil
}

func (s *Store) WorkerExists(ctx context.Context, workerID uint64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM workers WHERE worker_id = ? LIMIT 1`, workerID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List: 条件に応じて動的WHERE + ORDER + LIMIT/OFFSET
func (s *Store) List(ctx context.Context, q ListQuery) ([]WorkReport, int64, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)

	buf.WriteString(selectWorkReport)
	if q.WorkerID != nil {
		wheres = append(wheres, "worker_id = ?")
		args = append(args, *q.WorkerID)
	}
	if q.SiteID != nil {
		wheres = append(wheres, "site_id = ?")
		args = append(args, *q.SiteID)
	}
	if q.On != nil && *q.On != "" {
		wheres = append(wheres, "work_date = ?")
		args = append(args, *q.On)
	} else {
		if q.From != nil && *q.From != "" {
			wheres = append(wheres, "work_date >= ?")
			args = append(args, *q.From)
		}
		if q.To != nil && *q.To != "" {
			wheres = append(wheres, "work_date <= ?")
			args = append(args, *q.To)
		}
	}
	where := ""
	if len(wheres) > 0 {
		where = " WHERE " + strings.Join(wheres, " AND ")
	}
	buf.WriteString(where)

	switch q.Sort {
	case SortWorkDateAsc:
		buf.WriteString(" ORDER BY work_date ASC, report_id ASC")
	case SortReportedAtDesc:
		buf.WriteString(" ORDER BY reported_at DESC, report_id DESC")
	default:
		buf.WriteString(" ORDER BY work_date DESC, report_id DESC")
	}
	buf.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", clampLimit(q.Limit), max(q.Offset, 0)))

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []WorkReport
	for rows.Next() {
		r, err := scanWorkReport(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, r.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM work_reports"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// RecordsForWorker: 期間内の공수記録を日付昇順で返す
func (s *Store) RecordsForWorker(ctx context.Context, workerID uint64, from, to time.Time) ([]laborhours.AttendanceRecord, error) {
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

// SiteStats: 期間の공수合計を作業者別に集計（TOP N）
func (s *Store) SiteStats(ctx context.Context, siteID uint64, from, to time.Time, limit int) ([]StatsRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
	SELECT r.worker_id, w.name, SUM(r.labor_hours) AS total, SUM(r.labor_hours > 0) AS days
	FROM work_reports r
	JOIN workers w ON w.worker_id = r.worker_id
	WHERE r.site_id = ? AND r.work_date BETWEEN ? AND ?
	GROUP BY r.worker_id, w.name
	ORDER BY total DESC, r.worker_id ASC
	LIMIT ?`, siteID, from.Format(DateLayout), to.Format(DateLayout), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StatsRow{}
	for rows.Next() {
		var row StatsRow
		if err := rows.Scan(&row.WorkerID, &row.WorkerName, &row.TotalLaborHours, &row.WorkDays); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ===== helpers =====

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkReport(sc scanner) (workReportRow, error) {
	var r workReportRow
	err := sc.Scan(&r.ReportID, &r.WorkerID, &r.SiteID, &r.WorkDate,
		&r.LaborHours, &r.WorkType, &r.Note, &r.ReportedAt)
	return r, err
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

func strOrNil(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func uint64OrNil(v *uint64) any {
	if v == nil {
		return nil
	}
	return *v
}
