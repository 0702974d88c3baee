package models

import "time"

type Listing struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	User           User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Price          float64        `gorm:"not null" json:"price"`
	Currency       string         `gorm:"size:3;not null;default:'TRY'" json:"currency"`
	Category       string         `gorm:"size:50;not null;index" json:"category"`
	Status         string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RejectReason   string         `gorm:"size:500" json:"reject_reason,omitempty"`
	CityID         *uint          `gorm:"index" json:"city_id,omitempty"`
	DistrictID     *uint          `json:"district_id,omitempty"`
	NeighborhoodID *uint          `json:"neighborhood_id,omitempty"`
	VehicleMakeID  *uint          `json:"vehicle_make_id,omitempty"`
	VehicleModelID *uint          `json:"vehicle_model_id,omitempty"`
	PhoneBrandID   *uint          `json:"phone_brand_id,omitempty"`
	PhoneModelID   *uint          `json:"phone_model_id,omitempty"`
	Images         []ListingImage `gorm:"foreignKey:ListingID" json:"images,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type ListingImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ListingID uint   `gorm:"not null;index" json:"listing_id"`
	URL       string `gorm:"size:500;not null" json:"url"`
	OrderNum  int    `gorm:"not null;default:0" json:"order_num"`
}

const (
	ListingStatusPending  = "pending"
	ListingStatusApproved = "approved"
	ListingStatusRejected = "rejected"
)

const (
	CategoryAll         = "all"
	CategoryVehicle     = "vasita"
	CategoryRealEstate  = "emlak"
	CategoryPhone       = "telefon"
	CategorySport       = "spor"
	CategoryElectronics = "elektronik"
	CategoryFurniture   = "mobilya"
	CategoryOther       = "diger"
)
