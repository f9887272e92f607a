package deviceloans

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"device-loans-backend/internal/platform/cosmos"
	"device-loans-backend/internal/platform/web"
)

type Handler struct {
	svc *Service
	dev bool
}

// RegisterRoutes wires the loan endpoints. Mutating routes go through guard
// when one is supplied (auth is optional in dev).
func RegisterRoutes(r gin.IRouter, svc *Service, dev bool, guard gin.HandlerFunc) {
	h := &Handler{svc: svc, dev: dev}

	r.GET("/loans", h.List)
	r.GET("/loans/export", h.Export)
	r.GET("/loans/:id", h.Get)
	r.HEAD("/loans/:id", h.Head)

	mut := r.Group("")
	if guard != nil {
		mut.Use(guard)
	}
	mut.POST("/loans", h.Create)
	mut.PUT("/loans/:id", h.Replace)
	mut.DELETE("/loans/:id", h.Delete)
}

// POST /loans
func (h *Handler) Create(c *gin.Context) {
	var req UpsertLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.Fail(c, http.StatusBadRequest, CodeInvalidArgument, "invalid json or missing required fields", nil)
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Location", "/api/v1/loans/"+res.ID)
	web.OK(c, http.StatusCreated, res)
}

// GET /loans
func (h *Handler) List(c *gin.Context) {
	f := ListFilter{
		BorrowerID: c.Query("borrower_id"),
		DeviceID:   c.Query("device_id"),
		SortBy:     c.Query("sort"),
		Order:      c.DefaultQuery("order", "asc"),
	}
	if v := c.Query("status"); v != "" {
		st := Status(v)
		if !st.Valid() {
			web.Fail(c, http.StatusBadRequest, CodeInvalidArgument, "status must be one of: active, returned, overdue", nil)
			return
		}
		f.Status = &st
	}
	if v := c.Query("overdue"); v == "true" || v == "1" {
		f.OverdueOnly = true
	}

	res, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	web.OKList(c, http.StatusOK, len(res), res)
}

// GET /loans/:id
func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	web.OK(c, http.StatusOK, res)
}

// HEAD /loans/:id
func (h *Handler) Head(c *gin.Context) {
	ok, err := h.svc.Exists(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(ToHTTPStatus(err))
		return
	}
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /loans/:id
func (h *Handler) Replace(c *gin.Context) {
	var req UpsertLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.Fail(c, http.StatusBadRequest, CodeInvalidArgument, "invalid json or missing required fields", nil)
		return
	}
	res, err := h.svc.Replace(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	web.OK(c, http.StatusOK, res)
}

// DELETE /loans/:id
func (h *Handler) Delete(c *gin.Context) {
	removed, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !removed {
		web.Fail(c, http.StatusNotFound, CodeNotFound, "loan not found: "+c.Param("id"), nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /loans/export
func (h *Handler) Export(c *gin.Context) {
	book, err := h.svc.ExportXLSX(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="device-loans.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := book.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// respondError translates typed errors into the response envelope. Internal
// detail is only exposed in dev mode.
func (h *Handler) respondError(c *gin.Context, err error) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		web.Fail(c, http.StatusBadRequest, CodeValidationFailed, "device loan validation failed", valErr.Violations)
		return
	}
	var cfgErr *cosmos.ConfigError
	if errors.As(err, &cfgErr) {
		web.Fail(c, http.StatusBadRequest, CodeMissingConfig, cfgErr.Error(), nil)
		return
	}
	var domErr *DomainError
	if errors.As(err, &domErr) {
		web.Fail(c, ToHTTPStatus(err), domErr.Code, domErr.Message, nil)
		return
	}

	var details any
	if h.dev {
		details = err.Error()
	}
	web.Fail(c, http.StatusInternalServerError, CodeInternal, "internal server error", details)
}
