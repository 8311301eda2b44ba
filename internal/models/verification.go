package models

import "time"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Verification is a document-based identity check. The document image lives
// in object storage; only the path is kept here.
type Verification struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;index" json:"user_id"`

	DocumentType string `gorm:"column:document_type;type:text" json:"document_type"` // aadhaar|passport|license|student_id
	DocumentPath string `gorm:"column:document_path;type:text" json:"document_path"`

	FileSize int    `gorm:"column:file_size;type:integer" json:"file_size"`
	MimeType string `gorm:"column:mime_type;type:text" json:"mime_type"`

	Status     VerificationStatus `gorm:"column:status;type:text;index" json:"status"`
	ReviewNote string             `gorm:"column:review_note;type:text" json:"review_note"`
	ReviewedBy string             `gorm:"column:reviewed_by;type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time         `gorm:"column:reviewed_at;type:timestamptz" json:"reviewed_at,omitempty"`

	SubmittedAt time.Time `gorm:"column:submitted_at;type:timestamptz" json:"submitted_at"`
}

func (Verification) TableName() string { return "verifications" }
