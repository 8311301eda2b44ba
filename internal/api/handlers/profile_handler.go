package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/services"
	"github.com/roomsathi/roomsathi/internal/utils"
	"gorm.io/datatypes"
)

type ProfileHandler struct {
	svc     services.ProfileService
	ratings services.RatingService
}

func NewProfileHandler(svc services.ProfileService, ratings services.RatingService) *ProfileHandler {
	return &ProfileHandler{svc: svc, ratings: ratings}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Get returns another user's public profile with their rating summary.
func (h *ProfileHandler) Get(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	targetID := c.Param("user_id")
	p, err := h.svc.Get(c.Request.Context(), targetID)
	if err != nil {
		writeError(c, err)
		return
	}

	summary, err := h.ratings.Summary(c.Request.Context(), targetID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": p, "rating": summary})
}

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`

	City         *string `json:"city,omitempty"`
	HomeDistrict *string `json:"home_district,omitempty"`
	College      *string `json:"college,omitempty"`
	Company      *string `json:"company,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	ProfileType  *string `json:"profile_type,omitempty"`

	Languages *[]string `json:"languages,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// JSONB field (raw)
	Preferences *json.RawMessage `json:"preferences,omitempty"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.Update", "invalid request body", err))
		return
	}

	// Load existing (if not found => create new)
	var existing *models.Profile
	existing, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			existing = &models.Profile{UserID: userID}
		} else {
			writeError(c, err)
			return
		}
	}

	// Apply partial updates
	if req.FullName != nil {
		existing.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		existing.PhoneNumber = *req.PhoneNumber
	}
	if req.Bio != nil {
		existing.Bio = *req.Bio
	}
	if req.PhotoURL != nil {
		existing.PhotoURL = *req.PhotoURL
	}
	if req.City != nil {
		existing.City = *req.City
	}
	if req.HomeDistrict != nil {
		existing.HomeDistrict = *req.HomeDistrict
	}
	if req.College != nil {
		existing.College = *req.College
	}
	if req.Company != nil {
		existing.Company = *req.Company
	}
	if req.Gender != nil {
		existing.Gender = *req.Gender
	}
	if req.ProfileType != nil {
		existing.ProfileType = models.ProfileType(*req.ProfileType)
	}
	if req.Languages != nil {
		existing.Languages = *req.Languages
	}
	if req.Latitude != nil {
		existing.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		existing.Longitude = req.Longitude
	}
	if req.Preferences != nil {
		existing.Preferences = datatypes.JSON(*req.Preferences)
	}

	existing.UpdatedAt = time.Now().UTC()

	if err := h.svc.Upsert(c.Request.Context(), existing); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, existing)
}
