package devices

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

// RegisterRoutes mounts the catalogue listing. The route keeps its
// historical /products path.
func RegisterRoutes(r gin.IRouter, svc *Service, dev bool) {
	h := &Handler{svc: svc, dev: dev}
	r.GET("/products", h.List)
}

// GET /products
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		var cfgErr *cosmos.ConfigError
		if errors.As(err, &cfgErr) {
			web.Fail(c, http.StatusBadRequest, "MissingConfig", cfgErr.Error(), nil)
			return
		}
		var details any
		if h.dev {
			details = err.Error()
		}
		web.Fail(c, http.StatusInternalServerError, "InternalServerError", "internal server error", details)
		return
	}
	web.OKList(c, http.StatusOK, len(res), res)
}
