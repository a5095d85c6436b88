package attendance

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// RegisterRoutes: 認証済みユーザー向け（参照のみ）
func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// 작업일지
	r.GET("/work-reports", h.ListReports)

	// 集計
	r.GET("/workers/:worker_id/labor-hours/monthly", h.MonthlySummary)
	r.GET("/workers/:worker_id/labor-hours/range", h.RangeSummary)
	r.GET("/sites/:site_id/labor-hours/stats", h.SiteStats)

	// 공휴일カレンダー
	r.GET("/holidays", h.ListHolidays)
	r.GET("/holidays/check", h.CheckHoliday)
}

// RegisterManagerRoutes: 공수の入力は현장관리자・admin のみ
func RegisterManagerRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/work-reports", h.UpsertReport)
}

// ---------- handlers ----------

func (h *Handler) UpsertReport(c *gin.Context) {
	var req UpsertWorkReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorDTO{Error: ErrInvalid("invalid json or missing required fields")})
		return
	}
	res, created, err := h.svc.UpsertReport(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	if created {
		c.Header("Location", "/work-reports/"+strconv.FormatUint(res.ReportID, 10))
		c.JSON(http.StatusCreated, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListReports(c *gin.Context) {
	q := ListQuery{
		Limit:  parseIntDefault(c.Query("limit"), DefaultPageLimit),
		Offset: parseIntDefault(c.Query("offset"), 0),
		Sort:   c.Query("sort"),
	}
	if v, ok := parseUintQuery(c, "worker_id"); ok {
		q.WorkerID = &v
	}
	if v, ok := parseUintQuery(c, "site_id"); ok {
		q.SiteID = &v
	}
	if v := c.Query("on"); v != "" {
		q.On = &v
	}
	if v := c.Query("from"); v != "" {
		q.From = &v
	}
	if v := c.Query("to"); v != "" {
		q.To = &v
	}
	res, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) MonthlySummary(c *gin.Context) {
	id, ok := parseIDParam(c, "worker_id")
	if !ok {
		return
	}
	month := c.Query("month")
	if month == "" {
		month = todayIn(tzLoc()).Format(MonthLayout)
	}
	res, err := h.svc.MonthlySummary(c.Request.Context(), id, month)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) RangeSummary(c *gin.Context) {
	id, ok := parseIDParam(c, "worker_id")
	if !ok {
		return
	}
	res, err := h.svc.RangeSummary(c.Request.Context(), id, c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) SiteStats(c *gin.Context) {
	id, ok := parseIDParam(c, "site_id")
	if !ok {
		return
	}
	req := StatsRequest{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Limit: parseIntDefault(c.Query("limit"), 10),
	}
	res, err := h.svc.SiteStats(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func (h *Handler) ListHolidays(c *gin.Context) {
	year := parseIntDefault(c.Query("year"), time.Now().In(tzLoc()).Year())
	c.JSON(http.StatusOK, h.svc.Holidays(year))
}

func (h *Handler) CheckHoliday(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, errorDTO{Error: ErrInvalid("date is required")})
		return
	}
	c.JSON(http.StatusOK, h.svc.CheckHoliday(date))
}

// ---------- helpers ----------

func parseIntDefault(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func parseUintQuery(c *gin.Context, key string) (uint64, bool) {
	v, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}

func parseIDParam(c *gin.Context, key string) (uint64, bool) {
	v, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, errorDTO{Error: ErrInvalid(key + " must be a positive number")})
		return 0, false
	}
	return v, true
}
