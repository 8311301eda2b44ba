package models

import "time"

// Rating is one user's review of another. One row per (rater, rated) pair;
// writes upsert.
type Rating struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RaterID string `gorm:"column:rater_id;type:uuid;uniqueIndex:uniq_rater_rated" json:"rater_id"`
	RatedID string `gorm:"column:rated_id;type:uuid;uniqueIndex:uniq_rater_rated;index" json:"rated_id"`

	Stars   int    `gorm:"column:stars;type:integer" json:"stars"` // 1..5
	Comment string `gorm:"column:comment;type:text" json:"comment"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Rating) TableName() string { return "ratings" }

// RatingSummary is the aggregate shown on a profile. Computed, never stored.
type RatingSummary struct {
	UserID  string  `json:"user_id"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
