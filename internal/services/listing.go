package services

import (
	"errors"
	"strings"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"

	"gorm.io/gorm"
)

const (
	listingPageSize    = 20
	listingMaxPageSize = 50
)

// ChangeFeed receives table change events after listing mutations.
// Subscribers refetch; events carry no row data.
type ChangeFeed interface {
	BroadcastChange(table, action string, id uint)
}

type ListingService struct {
	db   *gorm.DB
	feed ChangeFeed
}

func NewListingService(db *gorm.DB, feed ChangeFeed) *ListingService {
	return &ListingService{db: db, feed: feed}
}

func (s *ListingService) changed(action string, id uint) {
	if s.feed != nil {
		s.feed.BroadcastChange("listings", action, id)
	}
}

type ListingInput struct {
	Title          string   `json:"title" binding:"required,min=3,max=255"`
	Description    string   `json:"description"`
	Price          float64  `json:"price" binding:"required,gt=0"`
	Currency       string   `json:"currency"`
	Category       string   `json:"category" binding:"required"`
	CityID         *uint    `json:"city_id"`
	DistrictID     *uint    `json:"district_id"`
	NeighborhoodID *uint    `json:"neighborhood_id"`
	VehicleMakeID  *uint    `json:"vehicle_make_id"`
	VehicleModelID *uint    `json:"vehicle_model_id"`
	PhoneBrandID   *uint    `json:"phone_brand_id"`
	PhoneModelID   *uint    `json:"phone_model_id"`
	ImageURLs      []string `json:"image_urls"`
}

type ListingFilter struct {
	Category string
	CityID   uint
	MinPrice float64
	MaxPrice float64
	Query    string
	Page     int
	PageSize int
}

func (s *ListingService) Create(userID uint, in ListingInput) (*models.Listing, error) {
	listing := models.Listing{
		UserID:         userID,
		Title:          in.Title,
		Description:    in.Description,
		Price:          in.Price,
		Currency:       in.Currency,
		Category:       strings.ToLower(in.Category),
		Status:         models.ListingStatusPending,
		CityID:         in.CityID,
		DistrictID:     in.DistrictID,
		NeighborhoodID: in.NeighborhoodID,
		VehicleMakeID:  in.VehicleMakeID,
		VehicleModelID: in.VehicleModelID,
		PhoneBrandID:   in.PhoneBrandID,
		PhoneModelID:   in.PhoneModelID,
	}
	if listing.Currency == "" {
		listing.Currency = "TRY"
	}
	for i, url := range in.ImageURLs {
		listing.Images = append(listing.Images, models.ListingImage{URL: url, OrderNum: i})
	}

	if err := s.db.Create(&listing).Error; err != nil {
		return nil, err
	}

	s.changed("insert", listing.ID)
	return &listing, nil
}

// Update is owner-only and always sends the listing back to moderation.
func (s *ListingService) Update(listingID, userID uint, in ListingInput) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.Where("id = ? AND user_id = ?", listingID, userID).First(&listing).Error; err != nil {
		return nil, ErrNotFound
	}

	listing.Title = in.Title
	listing.Description = in.Description
	listing.Price = in.Price
	listing.Category = strings.ToLower(in.Category)
	listing.CityID = in.CityID
	listing.DistrictID = in.DistrictID
	listing.NeighborhoodID = in.NeighborhoodID
	listing.VehicleMakeID = in.VehicleMakeID
	listing.VehicleModelID = in.VehicleModelID
	listing.PhoneBrandID = in.PhoneBrandID
	listing.PhoneModelID = in.PhoneModelID
	listing.Status = models.ListingStatusPending
	listing.RejectReason = ""

	tx := s.db.Begin()
	if err := tx.Save(&listing).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if in.ImageURLs != nil {
		if err := tx.Where("listing_id = ?", listing.ID).Delete(&models.ListingImage{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		for i, url := range in.ImageURLs {
			img := models.ListingImage{ListingID: listing.ID, URL: url, OrderNum: i}
			if err := tx.Create(&img).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.changed("update", listing.ID)
	return s.Get(listing.ID)
}

// Delete removes a listing. Owners delete their own; moderators and
// admins can delete anyone's.
func (s *ListingService) Delete(listingID, actorID uint, actorRole string) error {
	var listing models.Listing
	if err := s.db.First(&listing, listingID).Error; err != nil {
		return ErrNotFound
	}

	privileged := actorRole == models.RoleModerator || actorRole == models.RoleAdmin
	if listing.UserID != actorID && !privileged {
		return ErrUnauthorized
	}

	tx := s.db.Begin()
	if err := tx.Where("listing_id = ?", listingID).Delete(&models.ListingImage{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&listing).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.changed("delete", listingID)
	return nil
}

func (s *ListingService) Get(listingID uint) (*models.Listing, error) {
	var listing models.Listing
	err := s.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).First(&listing, listingID).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &listing, nil
}

// Search returns approved listings only; the admin table goes through
// ListByStatus instead.
func (s *ListingService) Search(f ListingFilter) ([]models.Listing, error) {
	q := s.db.Where("status = ?", models.ListingStatusApproved)

	if f.Category != "" && f.Category != models.CategoryAll {
		q = q.Where("category = ?", strings.ToLower(f.Category))
	}
	if f.CityID > 0 {
		q = q.Where("city_id = ?", f.CityID)
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}
	if f.Query != "" {
		pattern := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = listingPageSize
	}
	if pageSize > listingMaxPageSize {
		pageSize = listingMaxPageSize
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	var listings []models.Listing
	err := q.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&listings).Error
	return listings, err
}

func (s *ListingService) ListMine(userID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.Where("user_id = ?", userID).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (s *ListingService) ListByStatus(status string) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.Where("status = ?", status).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Order("created_at ASC").
		Find(&listings).Error
	return listings, err
}

func (s *ListingService) Approve(listingID uint) (*models.Listing, error) {
	return s.setStatus(listingID, models.ListingStatusApproved, "")
}

func (s *ListingService) Reject(listingID uint, reason string) (*models.Listing, error) {
	return s.setStatus(listingID, models.ListingStatusRejected, reason)
}

func (s *ListingService) setStatus(listingID uint, status, reason string) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.First(&listing, listingID).Error; err != nil {
		return nil, ErrNotFound
	}
	if listing.Status == status {
		return nil, errors.New("listing is already " + status)
	}

	listing.Status = status
	listing.RejectReason = reason
	if err := s.db.Save(&listing).Error; err != nil {
		return nil, err
	}

	s.changed("update", listing.ID)
	return &listing, nil
}
