package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type ProfileType string

const (
	ProfileStudent      ProfileType = "student"
	ProfileProfessional ProfileType = "professional"
)

// Profile is the marketplace-facing slice of a user. College and Company are
// both nullable; the registration flow fills at most one of them depending
// on ProfileType.
type Profile struct {
	UserID      string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	FullName    string `gorm:"column:full_name;type:text" json:"full_name"`
	PhoneNumber string `gorm:"column:phone_number;type:text" json:"phone_number"`
	Bio         string `gorm:"column:bio;type:text" json:"bio"`
	PhotoURL    string `gorm:"column:photo_url;type:text" json:"photo_url"`

	City         string      `gorm:"column:city;type:text;index" json:"city"`
	HomeDistrict string      `gorm:"column:home_district;type:text" json:"home_district"`
	College      string      `gorm:"column:college;type:text" json:"college"`
	Company      string      `gorm:"column:company;type:text" json:"company"`
	Gender       string      `gorm:"column:gender;type:text" json:"gender"` // male|female|other
	ProfileType  ProfileType `gorm:"column:profile_type;type:text" json:"profile_type"`

	Languages pq.StringArray `gorm:"column:languages;type:text[]" json:"languages"`

	// JSONB (raw JSON, flexible structure)
	Preferences datatypes.JSON `gorm:"column:preferences;type:jsonb" json:"preferences"`

	Latitude  *float64 `gorm:"column:latitude;type:double precision" json:"latitude,omitempty"`
	Longitude *float64 `gorm:"column:longitude;type:double precision" json:"longitude,omitempty"`

	Verified  bool      `gorm:"column:verified;default:false" json:"verified"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
