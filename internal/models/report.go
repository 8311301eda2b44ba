package models

import "time"

type ReportStatus string

const (
	ReportOpen      ReportStatus = "open"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

type ReportTarget string

const (
	ReportTargetUser    ReportTarget = "user"
	ReportTargetListing ReportTarget = "listing"
	ReportTargetRequest ReportTarget = "request"
)

type Report struct {
	ID         string       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ReporterID string       `gorm:"column:reporter_id;type:uuid;index" json:"reporter_id"`
	TargetType ReportTarget `gorm:"column:target_type;type:text" json:"target_type"`
	TargetID   string       `gorm:"column:target_id;type:uuid;index" json:"target_id"`

	Reason string `gorm:"column:reason;type:text" json:"reason"`

	Status     ReportStatus `gorm:"column:status;type:text;index" json:"status"`
	Resolution string       `gorm:"column:resolution;type:text" json:"resolution"`
	ResolvedBy string       `gorm:"column:resolved_by;type:uuid" json:"resolved_by,omitempty"`
	ResolvedAt *time.Time   `gorm:"column:resolved_at;type:timestamptz" json:"resolved_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (Report) TableName() string { return "reports" }
