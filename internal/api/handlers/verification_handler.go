package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roomsathi/roomsathi/internal/services"
	"github.com/roomsathi/roomsathi/internal/utils"
)

type VerificationHandler struct {
	svc services.VerificationService
}

func NewVerificationHandler(svc services.VerificationService) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

var documentContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// Submit accepts a multipart identity document plus its type.
func (h *VerificationHandler) Submit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	documentType := c.PostForm("document_type")
	if documentType == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "VerificationHandler.Submit", "document_type is required", nil))
		return
	}

	fh, err := c.FormFile("document")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "VerificationHandler.Submit", "missing multipart field 'document'", err))
		return
	}
	if fh.Size <= 0 || fh.Size > 10<<20 {
		writeError(c, utils.E(utils.CodeInvalidArgument, "VerificationHandler.Submit", "file too large (max 10MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "VerificationHandler.Submit", "failed to open upload", err))
		return
	}
	defer file.Close()

	// sniff content type (read 512 bytes)
	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	ct := http.DetectContentType(head)
	if !documentContentTypes[ct] {
		writeError(c, utils.E(utils.CodeInvalidArgument, "VerificationHandler.Submit", "invalid content type (image or pdf)", nil))
		return
	}

	r := &readJoin{a: bytes.NewReader(head), b: file}

	v, err := h.svc.Submit(c.Request.Context(), userID, documentType, ct, int(fh.Size), r)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *VerificationHandler) Status(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	v, err := h.svc.Status(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
