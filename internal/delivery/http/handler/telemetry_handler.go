package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-device-tracker/internal/usecase/telemetry"
	"fleet-device-tracker/pkg/utils"
)

type TelemetryHandler struct {
	service *telemetry.Service
}

func NewTelemetryHandler(service *telemetry.Service) *TelemetryHandler {
	return &TelemetryHandler{service: service}
}

func (h *TelemetryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/telemetry", h.ListSamples)
}

func (h *TelemetryHandler) ListSamples(c *gin.Context) {
	var req telemetry.TelemetryFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.ListByIMEI(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.PagedResponse(c, "Telemetry retrieved successfully", result, result.TotalPages)
}
