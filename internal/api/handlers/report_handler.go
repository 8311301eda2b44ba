package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/services"
	"github.com/roomsathi/roomsathi/internal/utils"
)

type ReportHandler struct {
	svc services.ReportService
}

func NewReportHandler(svc services.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

type FileReportRequest struct {
	TargetType string `json:"target_type"` // user|listing|request
	TargetID   string `json:"target_id"`
	Reason     string `json:"reason"`
}

func (h *ReportHandler) File(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req FileReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ReportHandler.File", "invalid request body", err))
		return
	}

	rep, err := h.svc.File(c.Request.Context(), userID, models.ReportTarget(req.TargetType), req.TargetID, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rep)
}
