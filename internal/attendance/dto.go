package attendance

import (
	"time"

	"INOPNC-backend/internal/laborhours"
)

const (
	SortWorkDateDesc   = "work_date_desc"
	SortWorkDateAsc    = "work_date_asc"
	SortReportedAtDesc = "reported_at_desc"
	DefaultPageLimit   = 50
	MaxPageLimit       = 200
	DefaultSort        = SortWorkDateDesc
	DefaultTZ          = "Asia/Seoul"
	DateLayout         = laborhours.DateLayout
	MonthLayout        = laborhours.MonthLayout

	// 1日の공수の上限（3.0 = 24時間）
	MaxLaborHours = 3.0
)

type UpsertWorkReportRequest struct {
	WorkerID   uint64   `json:"worker_id" binding:"required"`
	SiteID     *uint64  `json:"site_id,omitempty"`
	WorkDate   *string  `json:"work_date,omitempty"` // "YYYY-MM-DD" or "today"
	LaborHours *float64 `json:"labor_hours" binding:"required"`
	WorkType   *string  `json:"work_type,omitempty"` // "holiday" など
	Note       *string  `json:"note,omitempty"`
}

type WorkReportResponse struct {
	ReportID   uint64                     `json:"report_id"`
	WorkerID   uint64                     `json:"worker_id"`
	SiteID     *uint64                    `json:"site_id,omitempty"`
	WorkDate   string                     `json:"work_date"`
	LaborHours float64                    `json:"labor_hours"`
	Display    string                     `json:"display"`
	Color      laborhours.AttendanceColor `json:"color"`
	WorkType   string                     `json:"work_type,omitempty"`
	Note       *string                    `json:"note,omitempty"`
	ReportedAt time.Time                  `json:"reported_at"`
}

type ListQuery struct {
	WorkerID *uint64
	SiteID   *uint64
	On       *string
	From     *string
	To       *string
	Limit    int
	Offset   int
	Sort     string
}

type ListResponse struct {
	Items      []WorkReportResponse `json:"items"`
	Total      int64                `json:"total"`
	NextOffset *int                 `json:"next_offset"`
}

// DayDetail: 日別の表示用明細
type DayDetail struct {
	Date          string                     `json:"date"`
	LaborHours    float64                    `json:"laborHours"`
	ActualHours   float64                    `json:"actualHours"`
	OvertimeHours float64                    `json:"overtimeHours"`
	Type          laborhours.AttendanceType  `json:"type"`
	Display       string                     `json:"display"`
	Color         laborhours.AttendanceColor `json:"color"`
	Holiday       bool                       `json:"holiday"`
}

type MonthlySummaryResponse struct {
	WorkerID uint64 `json:"workerId"`
	laborhours.MonthlyTotals
	Display string      `json:"display"`
	Days    []DayDetail `json:"days"`
}

type RangeSummaryResponse struct {
	WorkerID uint64 `json:"workerId"`
	laborhours.RangeTotals
	Display string      `json:"display"`
	Days    []DayDetail `json:"days"`
}

type StatsRequest struct {
	From  string // YYYY-MM-DD
	To    string // YYYY-MM-DD
	Limit int
}

type StatsRow struct {
	WorkerID        uint64  `json:"worker_id"`
	WorkerName      string  `json:"worker_name"`
	TotalLaborHours float64 `json:"total_labor_hours"`
	WorkDays        int64   `json:"work_days"`
}

type HolidayListResponse struct {
	Year     int      `json:"year"`
	Holidays []string `json:"holidays"`
}

type HolidayCheckResponse struct {
	Date    string `json:"date"`
	Holiday bool   `json:"holiday"`
}
