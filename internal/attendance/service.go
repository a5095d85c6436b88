package attendance

import (
	"context"
	"database/sql"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"INOPNC-backend/internal/laborhours"
)

type Service struct {
	store    *Store
	agg      *laborhours.Aggregator
	holidays *laborhours.HolidayCalendar
}

func NewService(conn *sql.DB, holidays *laborhours.HolidayCalendar) *Service {
	return &Service{
		store:    NewStore(conn),
		agg:      laborhours.NewAggregator(holidays),
		holidays: holidays,
	}
}

// POST /work-reports
func (s *Service) UpsertReport(ctx context.Context, in UpsertWorkReportRequest) (WorkReportResponse, bool, error) {
	if in.WorkerID == 0 {
		return WorkReportResponse{}, false, ErrInvalid("worker_id is required")
	}
	if in.LaborHours == nil {
		return WorkReportResponse{}, false, ErrInvalid("labor_hours is required")
	}
	lh := *in.LaborHours
	if math.IsNaN(lh) || lh < 0 || lh > MaxLaborHours {
		return WorkReportResponse{}, false, ErrInvalid("labor_hours must be between 0 and 3.0")
	}
	on := todayIn(tzLoc())
	if in.WorkDate != nil && *in.WorkDate != "" {
		parsed, err := parseOn(*in.WorkDate)
		if err != nil {
			return WorkReportResponse{}, false, ErrInvalid("work_date must be YYYY-MM-DD or 'today'")
		}
		on = parsed
	}

	ok, err := s.store.WorkerExists(ctx, in.WorkerID)
	if err != nil {
		log.Printf("[ERROR] worker lookup failed: %v", err)
		return WorkReportResponse{}, false, ErrInternal("failed to look up worker")
	}
	if !ok {
		return WorkReportResponse{}, false, ErrNotFound("worker not found")
	}

	wr, created, err := s.store.Upsert(ctx, upsertParams{
		WorkerID:   in.WorkerID,
		SiteID:     in.SiteID,
		WorkDate:   on,
		LaborHours: lh,
		WorkType:   in.WorkType,
		Note:       in.Note,
	})
	if err != nil {
		log.Printf("[ERROR] upsert work report failed: %v", err)
		return WorkReportResponse{}, false, ErrInternal("failed to save work report")
	}
	return wr.toDTO(), created, nil
}

// GET /work-reports
func (s *Service) List(ctx context.Context, q ListQuery) (ListResponse, error) {
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	q.Limit = clampLimit(q.Limit)
	if q.Offset < 0 {
		q.Offset = 0
	}
	for _, p := range []*string{q.On, q.From, q.To} {
		if p == nil || *p == "" {
			continue
		}
		d, err := parseOn(*p)
		if err != nil {
			return ListResponse{}, ErrInvalid("on/from/to must be YYYY-MM-DD or 'today'")
		}
		*p = d.Format(DateLayout)
	}

	rows, total, err := s.store.List(ctx, q)
	if err != nil {
		log.Printf("[ERROR] list work reports failed: %v", err)
		return ListResponse{}, ErrInternal("failed to list work reports")
	}
	items := make([]WorkReportResponse, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDTO())
	}
	return ListResponse{Items: items, Total: total, NextOffset: nextOffset(total, q.Limit, q.Offset)}, nil
}

// GET /workers/:worker_id/labor-hours/monthly?month=YYYY-MM
func (s *Service) MonthlySummary(ctx context.Context, workerID uint64, month string) (MonthlySummaryResponse, error) {
	first, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(month), time.UTC)
	if err != nil {
		return MonthlySummaryResponse{}, ErrInvalid("month must be YYYY-MM")
	}
	last := first.AddDate(0, 1, -1)

	records, err := s.workerRecords(ctx, workerID, first, last)
	if err != nil {
		return MonthlySummaryResponse{}, err
	}
	totals := s.agg.MonthlyTotals(records, first.Format(MonthLayout))
	return MonthlySummaryResponse{
		WorkerID:      workerID,
		MonthlyTotals: totals,
		Display:       laborhours.Format(totals.TotalLaborHours),
		Days:          dayDetails(totals.Records, s.holidays),
	}, nil
}

// GET /workers/:worker_id/labor-hours/range?from=&to=
func (s *Service) RangeSummary(ctx context.Context, workerID uint64, fromStr, toStr string) (RangeSummaryResponse, error) {
	from, err := parseOn(fromStr)
	if err != nil {
		return RangeSummaryResponse{}, ErrInvalid("from must be YYYY-MM-DD")
	}
	to, err := parseOn(toStr)
	if err != nil {
		return RangeSummaryResponse{}, ErrInvalid("to must be YYYY-MM-DD")
	}
	// 集計側は逆転期間を空で返すだけなので、API としてはここで弾く
	if to.Before(from) {
		return RangeSummaryResponse{}, ErrInvalid("to must be >= from")
	}

	records, err := s.workerRecords(ctx, workerID, from, to)
	if err != nil {
		return RangeSummaryResponse{}, err
	}
	totals := s.agg.RangeTotals(records, from.Format(DateLayout), to.Format(DateLayout))
	return RangeSummaryResponse{
		WorkerID:    workerID,
		RangeTotals: totals,
		Display:     laborhours.Format(totals.TotalLaborHours),
		Days:        dayDetails(totals.Records, s.holidays),
	}, nil
}

func (s *Service) workerRecords(ctx context.Context, workerID uint64, from, to time.Time) ([]laborhours.AttendanceRecord, error) {
	ok, err := s.store.WorkerExists(ctx, workerID)
	if err != nil {
		log.Printf("[ERROR] worker lookup failed: %v", err)
		return nil, ErrInternal("failed to look up worker")
	}
	if !ok {
		return nil, ErrNotFound("worker not found")
	}
	records, err := s.store.RecordsForWorker(ctx, workerID, from, to)
	if err != nil {
		log.Printf("[ERROR] load labor hours failed: worker=%d %v", workerID, err)
		return nil, ErrInternal("failed to load labor hours")
	}
	return records, nil
}

// GET /sites/:site_id/labor-hours/stats
func (s *Service) SiteStats(ctx context.Context, siteID uint64, req StatsRequest) ([]StatsRow, error) {
	from, err := time.ParseInLocation(DateLayout, req.From, time.UTC)
	if err != nil {
		return nil, ErrInvalid("from must be YYYY-MM-DD")
	}
	to, err := time.ParseInLocation(DateLayout, req.To, time.UTC)
	if err != nil {
		return nil, ErrInvalid("to must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, ErrInvalid("to must be >= from")
	}
	rows, err := s.store.SiteStats(ctx, siteID, from, to, req.Limit)
	if err != nil {
		log.Printf("[ERROR] site stats failed: site=%d %v", siteID, err)
		return nil, ErrInternal("failed to aggregate site stats")
	}
	return rows, nil
}

// GET /holidays?year=
func (s *Service) Holidays(year int) HolidayListResponse {
	return HolidayListResponse{Year: year, Holidays: s.holidays.Holidays(year)}
}

// GET /holidays/check?date=
// 解析できない日付は休日ではない扱い（エラーにしない）
func (s *Service) CheckHoliday(date string) HolidayCheckResponse {
	return HolidayCheckResponse{
		Date:    laborhours.NormalizeDate(date),
		Holiday: s.holidays.IsHoliday(date),
	}
}

// ===== helpers =====

func parseOn(v string) (time.Time, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "today" {
		return todayIn(tzLoc()), nil
	}
	return time.ParseInLocation(DateLayout, v, time.UTC)
}

// todayIn: 現場の暦日（KST）を UTC の 0 時として返す
func todayIn(loc *time.Location) time.Time {
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func nextOffset(total int64, limit, offset int) *int {
	n := offset + limit
	if int64(n) >= total {
		return nil
	}
	return &n
}

var (
	locOnce   sync.Once
	cachedLoc *time.Location
)

func tzLoc() *time.Location {
	locOnce.Do(func() {
		loc, err := time.LoadLocation(DefaultTZ)
		if err != nil {
			// tzdata の無いコンテナ向け
			loc = time.FixedZone("KST", 9*60*60)
		}
		cachedLoc = loc
	})
	return cachedLoc
}
