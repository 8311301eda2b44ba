package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/services"
	"github.com/roomsathi/roomsathi/internal/utils"
)

type AdminHandler struct {
	admin         services.AdminService
	reports       services.ReportService
	verifications services.VerificationService
}

func NewAdminHandler(admin services.AdminService, reports services.ReportService, verifications services.VerificationService) *AdminHandler {
	return &AdminHandler{admin: admin, reports: reports, verifications: verifications}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) OpenReports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.reports.ListOpen(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type ResolveReportRequest struct {
	Status     string `json:"status"` // resolved|dismissed
	Resolution string `json:"resolution"`
}

func (h *AdminHandler) ResolveReport(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdminHandler.ResolveReport", "invalid request body", err))
		return
	}

	if err := h.reports.Resolve(c.Request.Context(), adminID, c.Param("report_id"), models.ReportStatus(req.Status), req.Resolution); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *AdminHandler) PendingVerifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.verifications.ListPending(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *AdminHandler) VerificationDocument(c *gin.Context) {
	url, err := h.verifications.DocumentURL(c.Request.Context(), c.Param("verification_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

type ReviewVerificationRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note,omitempty"`
}

func (h *AdminHandler) ReviewVerification(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ReviewVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdminHandler.ReviewVerification", "invalid request body", err))
		return
	}

	if err := h.verifications.Review(c.Request.Context(), adminID, c.Param("verification_id"), req.Approve, req.Note); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": req.Approve})
}

func (h *AdminHandler) ForceExpireListing(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	if err := h.admin.ForceExpireListing(c.Request.Context(), c.Param("listing_id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.ListingExpired})
}
