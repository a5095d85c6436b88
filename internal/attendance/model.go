package attendance

import (
	"database/sql"
	"time"

	"INOPNC-backend/internal/laborhours"
)

// DB行に対応（スキャン用）
type workReportRow struct {
	ReportID   uint64
	WorkerID   uint64
	SiteID     sql.NullInt64
	WorkDate   string // DATE → "YYYY-MM-DD"
	LaborHours float64
	WorkType   sql.NullString
	Note       sql.NullString
	ReportedAt time.Time
}

type WorkReport struct {
	ReportID   uint64
	WorkerID   uint64
	SiteID     *uint64
	WorkDate   string
	LaborHours float64
	WorkType   string
	Note       *string
	ReportedAt time.Time
}

func (r workReportRow) toModel() WorkReport {
	m := WorkReport{
		ReportID:   r.ReportID,
		WorkerID:   r.WorkerID,
		WorkDate:   r.WorkDate,
		LaborHours: r.LaborHours,
		WorkType:   r.WorkType.String,
		ReportedAt: r.ReportedAt.UTC(),
	}
	if r.SiteID.Valid {
		v := uint64(r.SiteID.Int64)
		m.SiteID = &v
	}
	if r.Note.Valid {
		v := r.Note.String
		m.Note = &v
	}
	return m
}

func (w WorkReport) toDTO() WorkReportResponse {
	return WorkReportResponse{
		ReportID:   w.ReportID,
		WorkerID:   w.WorkerID,
		SiteID:     w.SiteID,
		WorkDate:   w.WorkDate,
		LaborHours: w.LaborHours,
		Display:    laborhours.Format(w.LaborHours),
		Color:      laborhours.Color(w.LaborHours),
		WorkType:   w.WorkType,
		Note:       w.Note,
		ReportedAt: w.ReportedAt,
	}
}

func dayDetails(records []laborhours.AttendanceRecord, cal *laborhours.HolidayCalendar) []DayDetail {
	out := make([]DayDetail, 0, len(records))
	for _, r := range records {
		c := laborhours.Calculate(r.LaborHours)
		out = append(out, DayDetail{
			Date:          r.Date,
			LaborHours:    c.LaborHours,
			ActualHours:   c.ActualHours,
			OvertimeHours: c.OvertimeHours,
			Type:          c.Type,
			Display:       laborhours.Format(c.LaborHours),
			Color:         laborhours.Color(c.LaborHours),
			Holiday:       cal.IsHoliday(r.Date) || r.WorkType == laborhours.WorkTypeHoliday,
		})
	}
	return out
}
