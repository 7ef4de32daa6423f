package handlers

import (
	xhttp "github.com/finbook/bookkeeper/pkg/http"
)

type HealthService interface {
	Get() error
}

type HealthHandler struct {
	svc HealthService
}

// RegisterHealthRoutes hangs the probe off the root, outside /api/v1, so
// load balancers reach it without credentials.
func RegisterHealthRoutes(r *xhttp.Router, h *HealthHandler) {
	r.GET("/health", h.GetHealth)
}

func NewHealthHandler(healthService HealthService) *HealthHandler {
	return &HealthHandler{
		svc: healthService,
	}
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	if h.svc != nil {
		if err := h.svc.Get(); err != nil {
			ctx.Response.SetStatusCode(500)
			ctx.Response.SetBodyString("unhealthy")
			return
		}
	}
	ctx.Response.SetBodyString("success")
}
