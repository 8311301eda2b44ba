package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/roomsathi/roomsathi/internal/services"
	"github.com/roomsathi/roomsathi/internal/utils"
)

type RatingHandler struct {
	svc services.RatingService
}

func NewRatingHandler(svc services.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

type RateRequest struct {
	RatedID string `json:"rated_id"`
	Stars   int    `json:"stars"`
	Comment string `json:"comment,omitempty"`
}

func (h *RatingHandler) Rate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "RatingHandler.Rate", "invalid request body", err))
		return
	}

	if err := h.svc.Rate(c.Request.Context(), userID, req.RatedID, req.Stars, req.Comment); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rated": req.RatedID})
}

func (h *RatingHandler) ForUser(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	targetID := c.Param("user_id")
	limit, _ := strconv.Atoi(c.Query("limit"))

	summary, err := h.svc.Summary(c.Request.Context(), targetID)
	if err != nil {
		writeError(c, err)
		return
	}
	rows, err := h.svc.ListForUser(c.Request.Context(), targetID, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary, "ratings": rows})
}
