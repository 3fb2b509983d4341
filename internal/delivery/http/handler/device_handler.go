package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-device-tracker/internal/usecase/device"
	"fleet-device-tracker/pkg/utils"
)

type DeviceHandler struct {
	service *device.Service
}

func NewDeviceHandler(service *device.Service) *DeviceHandler {
	return &DeviceHandler{service: service}
}

func (h *DeviceHandler) RegisterRoutes(router *gin.RouterGroup) {
	devices := router.Group("/devices")
	{
		devices.GET("/:imei", h.GetDevice)
	}
}

func (h *DeviceHandler) GetDevice(c *gin.Context) {
	result, err := h.service.GetByIMEI(c.Request.Context(), c.Param("imei"))
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device retrieved successfully", result)
}
