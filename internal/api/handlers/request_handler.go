package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/services"
	"github.com/roomsathi/roomsathi/internal/utils"
	"gorm.io/datatypes"
)

type RequestHandler struct {
	svc services.RequestService
}

func NewRequestHandler(svc services.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

type CreateRoomRequest struct {
	City     string `json:"city"`
	Location string `json:"location"`

	BudgetMin int        `json:"budget_min"`
	BudgetMax int        `json:"budget_max"`
	MoveIn    *time.Time `json:"move_in,omitempty"`

	Preferences models.RequestPreferences `json:"preferences"`

	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "RequestHandler.Create", "invalid request body", err))
		return
	}

	rr := &models.RoomRequest{
		OwnerID:     userID,
		City:        req.City,
		Location:    req.Location,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		MoveIn:      req.MoveIn,
		Preferences: datatypes.NewJSONType(req.Preferences),
	}
	if req.ExpiresAt != nil {
		rr.ExpiresAt = req.ExpiresAt.UTC()
	}

	out, err := h.svc.Create(c.Request.Context(), rr)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *RequestHandler) Get(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	rr, err := h.svc.Get(c.Request.Context(), c.Param("request_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rr)
}

func (h *RequestHandler) List(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.svc.ListOpen(c.Request.Context(), c.Query("city"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *RequestHandler) Mine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := h.svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *RequestHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "RequestHandler.Update", "invalid request body", err))
		return
	}

	rr := &models.RoomRequest{
		ID:          c.Param("request_id"),
		City:        req.City,
		Location:    req.Location,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		MoveIn:      req.MoveIn,
		Preferences: datatypes.NewJSONType(req.Preferences),
	}
	if req.ExpiresAt != nil {
		rr.ExpiresAt = req.ExpiresAt.UTC()
	}

	if err := h.svc.Update(c.Request.Context(), userID, rr); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rr)
}

type SetRequestStatusRequest struct {
	Status string `json:"status"`
}

func (h *RequestHandler) SetStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req SetRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "RequestHandler.SetStatus", "invalid request body", err))
		return
	}

	if err := h.svc.SetStatus(c.Request.Context(), userID, c.Param("request_id"), models.RequestStatus(req.Status)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
