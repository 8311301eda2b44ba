package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/roomsathi/roomsathi/internal/models"
	"github.com/roomsathi/roomsathi/internal/services"
	"github.com/roomsathi/roomsathi/internal/storage"
	"github.com/roomsathi/roomsathi/internal/utils"
)

type ListingHandler struct {
	svc      services.ListingService
	uploader storage.Uploader
}

func NewListingHandler(svc services.ListingService, uploader storage.Uploader) *ListingHandler {
	return &ListingHandler{svc: svc, uploader: uploader}
}

type CreateListingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	City     string `json:"city"`
	Location string `json:"location"`
	Address  string `json:"address"`

	Rent     int    `json:"rent"`
	Deposit  int    `json:"deposit"`
	RoomType string `json:"room_type"`

	GenderPreference string   `json:"gender_preference"`
	Amenities        []string `json:"amenities"`

	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (h *ListingHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ListingHandler.Create", "invalid request body", err))
		return
	}

	l := &models.Listing{
		OwnerID:          userID,
		Title:            req.Title,
		Description:      req.Description,
		City:             req.City,
		Location:         req.Location,
		Address:          req.Address,
		Rent:             req.Rent,
		Deposit:          req.Deposit,
		RoomType:         req.RoomType,
		GenderPreference: req.GenderPreference,
		Amenities:        req.Amenities,
	}
	if req.ExpiresAt != nil {
		l.ExpiresAt = req.ExpiresAt.UTC()
	}

	out, err := h.svc.Create(c.Request.Context(), l)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

func (h *ListingHandler) Get(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	l, err := h.svc.Get(c.Request.Context(), c.Param("listing_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *ListingHandler) List(c *gin.Context) {
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

func (h *ListingHandler) Mine(c *gin.Context) {
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

func (h *ListingHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var l models.Listing
	if err := c.ShouldBindJSON(&l); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ListingHandler.Update", "invalid request body", err))
		return
	}
	l.ID = c.Param("listing_id")

	if err := h.svc.Update(c.Request.Context(), userID, &l); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

type SetListingStatusRequest struct {
	Status string `json:"status"`
}

func (h *ListingHandler) SetStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req SetListingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ListingHandler.SetStatus", "invalid request body", err))
		return
	}

	if err := h.svc.SetStatus(c.Request.Context(), userID, c.Param("listing_id"), models.ListingStatus(req.Status)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadPhoto accepts a multipart image, pushes it to object storage and
// appends the public URL to the listing.
func (h *ListingHandler) UploadPhoto(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ListingHandler.UploadPhoto", "missing multipart field 'photo'", err))
		return
	}
	if fh.Size <= 0 || fh.Size > 10<<20 {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ListingHandler.UploadPhoto", "file too large (max 10MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "ListingHandler.UploadPhoto", "failed to open upload", err))
		return
	}
	defer file.Close()

	// sniff content type (read 512 bytes)
	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	ct := http.DetectContentType(head)
	if !imageContentTypes[ct] {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ListingHandler.UploadPhoto", "invalid content type (must be an image)", nil))
		return
	}

	// re-compose stream: head + remaining file
	reader := bytes.NewReader(head)
	r := &readJoin{a: reader, b: file}

	listingID := c.Param("listing_id")
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	objectName := "listings/" + listingID + "/" + uuid.NewString() + ext

	url, err := h.uploader.Upload(c.Request.Context(), objectName, ct, r)
	if err != nil {
		writeError(c, utils.E(utils.CodeUnavailable, "ListingHandler.UploadPhoto", "failed to store photo", err))
		return
	}

	l, err := h.svc.AddPhoto(c.Request.Context(), userID, listingID, url)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

type readJoin struct {
	a *bytes.Reader
	b io.Reader
}

func (r *readJoin) Read(p []byte) (int, error) {
	if r.a != nil && r.a.Len() > 0 {
		return r.a.Read(p)
	}
	return r.b.Read(p)
}
