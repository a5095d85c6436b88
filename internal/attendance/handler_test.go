package attendance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"INOPNC-backend/internal/laborhours"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	cal := laborhours.NewHolidayCalendar(map[int][]string{2025: {"2025-08-15"}})
	r := gin.New()
	api := r.Group("/api/v1")
	svc := NewService(conn, cal)
	RegisterRoutes(api, svc)
	RegisterManagerRoutes(api, svc)
	return r, mock
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func expectWorker(mock sqlmock.Sqlmock, found bool) {
	q := mock.ExpectQuery(`SELECT 1 FROM workers WHERE worker_id = \? LIMIT 1`).WithArgs(7)
	if found {
		q.WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		return
	}
	q.WillReturnRows(sqlmock.NewRows([]string{"1"}))
}

func TestMonthlySummary(t *testing.T) {
	r, mock := newTestRouter(t)
	expectWorker(mock, true)
	mock.ExpectQuery(`FROM work_reports\s+WHERE worker_id = \? AND work_date BETWEEN`).
		WithArgs(7, "2025-08-01", "2025-08-31").
		WillReturnRows(sqlmock.NewRows([]string{"work_date", "labor_hours", "work_type"}).
			AddRow("2025-08-01", 1.0, "").
			AddRow("2025-08-02", 0.0, "").
			AddRow("2025-08-15", 1.5, ""))

	w := doRequest(r, http.MethodGet, "/api/v1/workers/7/labor-hours/monthly?month=2025-08", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var got struct {
		WorkerID           uint64      `json:"workerId"`
		Month              string      `json:"month"`
		WorkDays           int         `json:"workDays"`
		AbsentDays         int         `json:"absentDays"`
		HolidayDays        int         `json:"holidayDays"`
		TotalLaborHours    float64     `json:"totalLaborHours"`
		TotalOvertimeHours float64     `json:"totalOvertimeHours"`
		AverageLaborHours  float64     `json:"averageLaborHours"`
		Display            string      `json:"display"`
		Days               []DayDetail `json:"days"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.WorkerID != 7 || got.Month != "2025-08" {
		t.Errorf("worker/month = %d/%s", got.WorkerID, got.Month)
	}
	if got.WorkDays != 2 || got.AbsentDays != 1 || got.HolidayDays != 1 {
		t.Errorf("days = %d/%d/%d, want 2/1/1", got.WorkDays, got.AbsentDays, got.HolidayDays)
	}
	if got.TotalLaborHours != 2.5 || got.TotalOvertimeHours != 4 || got.AverageLaborHours != 1.25 {
		t.Errorf("totals = %+v", got)
	}
	if got.Display != "2.5공수" {
		t.Errorf("Display = %q", got.Display)
	}
	if len(got.Days) != 3 || got.Days[1].Color != laborhours.ColorGray || !got.Days[2].Holiday {
		t.Errorf("Days = %+v", got.Days)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMonthlySummary_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		worker *bool
		want   int
	}{
		{name: "bad month", path: "/api/v1/workers/7/labor-hours/monthly?month=2025-8", want: http.StatusBadRequest},
		{name: "bad id", path: "/api/v1/workers/abc/labor-hours/monthly?month=2025-08", want: http.StatusBadRequest},
		{name: "unknown worker", path: "/api/v1/workers/7/labor-hours/monthly?month=2025-08", worker: new(bool), want: http.StatusNotFound},
		{name: "inverted range", path: "/api/v1/workers/7/labor-hours/range?from=2025-09-01&to=2025-08-01", want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mock := newTestRouter(t)
			if tt.worker != nil {
				expectWorker(mock, *tt.worker)
			}
			w := doRequest(r, http.MethodGet, tt.path, nil)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestRangeSummary(t *testing.T) {
	r, mock := newTestRouter(t)
	expectWorker(mock, true)
	mock.ExpectQuery(`FROM work_reports\s+WHERE worker_id = \? AND work_date BETWEEN`).
		WithArgs(7, "2025-08-30", "2025-09-02").
		WillReturnRows(sqlmock.NewRows([]string{"work_date", "labor_hours", "work_type"}).
			AddRow("2025-08-30", 1.0, "holiday").
			AddRow("2025-09-01", 1.25, ""))

	w := doRequest(r, http.MethodGet, "/api/v1/workers/7/labor-hours/range?from=2025-08-30&to=2025-09-02", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got RangeSummaryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.WorkDays != 2 || got.HolidayDays != 1 || got.TotalOvertimeHours != 2 {
		t.Errorf("totals = %+v", got.RangeTotals)
	}
	if got.StartDate != "2025-08-30" || got.EndDate != "2025-09-02" {
		t.Errorf("range = %s..%s", got.StartDate, got.EndDate)
	}
}

func TestUpsertReport(t *testing.T) {
	r, mock := newTestRouter(t)
	expectWorker(mock, true)
	mock.ExpectExec(`INSERT INTO work_reports`).
		WithArgs(7, nil, "2025-08-01", 1.5, nil, "타설 야간작업").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(`FROM work_reports\s+WHERE worker_id = \? AND work_date = \?`).
		WithArgs(7, "2025-08-01").
		WillReturnRows(sqlmock.NewRows([]string{
			"report_id", "worker_id", "site_id", "work_date", "labor_hours", "work_type", "note", "reported_at",
		}).AddRow(5, 7, nil, "2025-08-01", 1.5, nil, "타설 야간작업", time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)))

	body := map[string]any{"worker_id": 7, "work_date": "2025-08-01", "labor_hours": 1.5, "note": "타설 야간작업"}
	w := doRequest(r, http.MethodPost, "/api/v1/work-reports", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/work-reports/5" {
		t.Errorf("Location = %q", loc)
	}
	var got WorkReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Display != "1.5공수" || got.Color != laborhours.ColorGreen {
		t.Errorf("display/color = %q/%q", got.Display, got.Color)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpsertReport_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing labor hours", map[string]any{"worker_id": 7}},
		{"negative", map[string]any{"worker_id": 7, "labor_hours": -0.5}},
		{"too many", map[string]any{"worker_id": 7, "labor_hours": 3.5}},
		{"bad date", map[string]any{"worker_id": 7, "labor_hours": 1, "work_date": "08/01/2025"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mock := newTestRouter(t)
			w := doRequest(r, http.MethodPost, "/api/v1/work-reports", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestHolidays(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/holidays?year=2025", nil)
	var list HolidayListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Holidays) != 1 || list.Holidays[0] != "2025-08-15" {
		t.Errorf("holidays = %+v", list)
	}

	tests := []struct {
		date string
		want bool
	}{
		{"2025-08-15", true},
		{"2025-08-16", false},
		{"not-a-date", false},
	}
	for _, tt := range tests {
		w := doRequest(r, http.MethodGet, "/api/v1/holidays/check?date="+tt.date, nil)
		var got HolidayCheckResponse
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if w.Code != http.StatusOK || got.Holiday != tt.want {
			t.Errorf("check %s = %d %+v", tt.date, w.Code, got)
		}
	}

	if w := doRequest(r, http.MethodGet, "/api/v1/holidays/check", nil); w.Code != http.StatusBadRequest {
		t.Errorf("missing date status = %d", w.Code)
	}
}

func TestListReports(t *testing.T) {
	r, mock := newTestRouter(t)
	cols := []string{"report_id", "worker_id", "site_id", "work_date", "labor_hours", "work_type", "note", "reported_at"}
	mock.ExpectQuery(`FROM work_reports WHERE site_id = \? AND work_date >= \? ORDER BY work_date DESC`).
		WithArgs(3, "2025-08-01").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(9, 7, 3, "2025-08-02", 0.5, nil, nil, time.Now()))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM work_reports WHERE site_id = \? AND work_date >= \?`).
		WithArgs(3, "2025-08-01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	w := doRequest(r, http.MethodGet, "/api/v1/work-reports?site_id=3&from=2025-08-01", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got ListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Total != 1 || len(got.Items) != 1 || got.Items[0].Color != laborhours.ColorYellow || got.NextOffset != nil {
		t.Errorf("list = %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSiteStats(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`FROM work_reports r\s+JOIN workers w ON w.worker_id = r.worker_id\s+WHERE r.site_id = \? AND r.work_date BETWEEN \? AND \?`).
		WithArgs(3, "2025-08-01", "2025-08-31", 5).
		WillReturnRows(sqlmock.NewRows([]string{"worker_id", "name", "total", "days"}).
			AddRow(7, "김철수", 22.5, 20).
			AddRow(9, "이영희", 18.0, 18))

	w := doRequest(r, http.MethodGet, "/api/v1/sites/3/labor-hours/stats?from=2025-08-01&to=2025-08-31&limit=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got struct {
		Items []StatsRow `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 2 || got.Items[0].WorkerName != "김철수" || got.Items[0].TotalLaborHours != 22.5 {
		t.Errorf("items = %+v", got.Items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}

	if w := doRequest(r, http.MethodGet, "/api/v1/sites/3/labor-hours/stats?from=2025-08-31&to=2025-08-01", nil); w.Code != http.StatusBadRequest {
		t.Errorf("inverted range status = %d", w.Code)
	}
}
