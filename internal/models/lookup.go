package models

type City struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

type District struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	CityID uint   `gorm:"not null;index" json:"city_id"`
	Name   string `gorm:"size:100;not null" json:"name"`
}

type Neighborhood struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	DistrictID uint   `gorm:"not null;index" json:"district_id"`
	Name       string `gorm:"size:100;not null" json:"name"`
}

type VehicleMake struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

type VehicleModel struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	MakeID uint   `gorm:"not null;index" json:"make_id"`
	Name   string `gorm:"size:100;not null" json:"name"`
}

type PhoneBrand struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

type PhoneModel struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	BrandID uint   `gorm:"not null;index" json:"brand_id"`
	Name    string `gorm:"size:100;not null" json:"name"`
}
