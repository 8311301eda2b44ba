package models

import (
	"time"

	"gorm.io/datatypes"
)

type RequestStatus string

const (
	RequestOpen    RequestStatus = "open"
	RequestMatched RequestStatus = "matched"
	RequestExpired RequestStatus = "expired"
	RequestRemoved RequestStatus = "removed"
)

// RequestPreferences is the nested preferences block a room request carries.
// GenderPreference may be empty, which scoring treats as "any".
type RequestPreferences struct {
	GenderPreference string `json:"gender_preference,omitempty"`
	NonSmoker        bool   `json:"non_smoker,omitempty"`
	Vegetarian       bool   `json:"vegetarian,omitempty"`
	PetsOK           bool   `json:"pets_ok,omitempty"`
}

type RoomRequest struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID string `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`

	City     string `gorm:"column:city;type:text;index" json:"city"`
	Location string `gorm:"column:location;type:text" json:"location"`

	BudgetMin int        `gorm:"column:budget_min;type:integer" json:"budget_min"`
	BudgetMax int        `gorm:"column:budget_max;type:integer" json:"budget_max"`
	MoveIn    *time.Time `gorm:"column:move_in;type:timestamptz" json:"move_in,omitempty"`

	Preferences datatypes.JSONType[RequestPreferences] `gorm:"column:preferences;type:jsonb" json:"preferences"`

	Status    RequestStatus `gorm:"column:status;type:text;index" json:"status"`
	ExpiresAt time.Time     `gorm:"column:expires_at;type:timestamptz" json:"expires_at"`
	CreatedAt time.Time     `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (RoomRequest) TableName() string { return "room_requests" }
