package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet-device-tracker/internal/usecase/movement"
	"fleet-device-tracker/pkg/utils"
)

type MovementHandler struct {
	service *movement.Service
}

func NewMovementHandler(service *movement.Service) *MovementHandler {
	return &MovementHandler{service: service}
}

func (h *MovementHandler) RegisterRoutes(router *gin.RouterGroup) {
	movements := router.Group("/movements")
	{
		movements.GET("", h.ListMovements)
		movements.POST("", h.CreateMovement)
		movements.GET("/:id", h.GetMovement)
		movements.POST("/:id/receive", h.ReceiveMovement)
		movements.POST("/:id/cancel", h.CancelMovement)
	}
}

func (h *MovementHandler) CreateMovement(c *gin.Context) {
	var req movement.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), nil, &req)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Movement created successfully", result)
}

func (h *MovementHandler) GetMovement(c *gin.Context) {
	movementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid movement ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), movementID)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Movement retrieved successfully", result)
}

func (h *MovementHandler) ListMovements(c *gin.Context) {
	var req movement.MovementFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.PagedResponse(c, "Movements retrieved successfully", result, result.TotalPages)
}

func (h *MovementHandler) ReceiveMovement(c *gin.Context) {
	movementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid movement ID")
		return
	}

	req := &movement.ReceiveMovementRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(req); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	result, err := h.service.Receive(c.Request.Context(), movementID, req)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Movement received successfully", result)
}

func (h *MovementHandler) CancelMovement(c *gin.Context) {
	movementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid movement ID")
		return
	}

	req := &movement.CancelMovementRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(req); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	result, err := h.service.Cancel(c.Request.Context(), movementID, req)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Movement cancelled successfully", result)
}
