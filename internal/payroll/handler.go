package payroll

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"INOPNC-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

// RegisterRoutes: 급여の参照（현장관리자・admin）
func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.GET("/workers/:worker_id/payroll", h.WorkerPayroll)
	r.GET("/workers/:worker_id/payslip.html", h.PayslipHTML)
	r.GET("/payroll/summary", h.Summary)
}

// RegisterAdminRoutes: admin ロールのみ
func RegisterAdminRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/workers/:worker_id/payslips", h.IssuePayslip)
	r.GET("/payroll/export.xlsx", h.ExportXLSX)
	r.GET("/payroll/export.csv", h.ExportCSV)
}

// ---------- handlers ----------

func (h *Handler) WorkerPayroll(c *gin.Context) {
	id, ok := parseIDParam(c, "worker_id")
	if !ok {
		return
	}
	res, err := h.svc.WorkerPayroll(c.Request.Context(), id, c.Query("month"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) PayslipHTML(c *gin.Context) {
	id, ok := parseIDParam(c, "worker_id")
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.svc.RenderPayslip(c.Request.Context(), id, c.Query("month"), &buf); err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) Summary(c *gin.Context) {
	res, err := h.svc.Summary(c.Request.Context(), c.Query("month"), siteQuery(c))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) IssuePayslip(c *gin.Context) {
	id, ok := parseIDParam(c, "worker_id")
	if !ok {
		return
	}
	var req IssuePayslipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorDTO{Error: ErrInvalid("month is required")})
		return
	}
	res, err := h.svc.IssuePayslip(c.Request.Context(), id, req.Month, c.GetString(auth.CtxUserIDKey))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.Header("Location", "/payslips/"+res.PayslipULID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) ExportXLSX(c *gin.Context) {
	month := c.Query("month")
	var buf bytes.Buffer
	if err := h.svc.ExportXLSX(c.Request.Context(), month, siteQuery(c), &buf); err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="payroll-`+month+`.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *Handler) ExportCSV(c *gin.Context) {
	month := c.Query("month")
	var buf bytes.Buffer
	if err := h.svc.ExportCSV(c.Request.Context(), month, siteQuery(c), &buf); err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="payroll-`+month+`.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=EUC-KR", buf.Bytes())
}

// ---------- helpers ----------

func siteQuery(c *gin.Context) *uint64 {
	v, err := strconv.ParseUint(c.Query("site_id"), 10, 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

func parseIDParam(c *gin.Context, key string) (uint64, bool) {
	v, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, errorDTO{Error: ErrInvalid(key + " must be a positive number")})
		return 0, false
	}
	return v, true
}
