package models

import (
	"time"

	"github.com/lib/pq"
)

type ListingStatus string

const (
	ListingOpen    ListingStatus = "open"
	ListingRented  ListingStatus = "rented"
	ListingExpired ListingStatus = "expired"
	ListingRemoved ListingStatus = "removed"
)

type Listing struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID string `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`

	Title       string `gorm:"column:title;type:text" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`

	City     string `gorm:"column:city;type:text;index" json:"city"`
	Location string `gorm:"column:location;type:text" json:"location"` // free-text neighbourhood
	Address  string `gorm:"column:address;type:text" json:"address"`   // geocoded by the worker

	Rent     int    `gorm:"column:rent;type:integer" json:"rent"`
	Deposit  int    `gorm:"column:deposit;type:integer" json:"deposit"`
	RoomType string `gorm:"column:room_type;type:text" json:"room_type"` // private|shared|studio

	GenderPreference string `gorm:"column:gender_preference;type:text" json:"gender_preference"` // male|female|other|any

	Amenities pq.StringArray `gorm:"column:amenities;type:text[]" json:"amenities"`
	Photos    pq.StringArray `gorm:"column:photos;type:text[]" json:"photos"`

	Latitude  *float64 `gorm:"column:latitude;type:double precision" json:"latitude,omitempty"`
	Longitude *float64 `gorm:"column:longitude;type:double precision" json:"longitude,omitempty"`

	Status    ListingStatus `gorm:"column:status;type:text;index" json:"status"`
	ExpiresAt time.Time     `gorm:"column:expires_at;type:timestamptz" json:"expires_at"`
	CreatedAt time.Time     `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Listing) TableName() string { return "listings" }
