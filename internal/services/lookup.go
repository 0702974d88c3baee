package services

import (
	"errors"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"

	"gorm.io/gorm"
)

// LookupService serves the reference tables: geography and the vehicle
// and phone taxonomies.
type LookupService struct {
	db *gorm.DB
}

func NewLookupService(db *gorm.DB) *LookupService {
	return &LookupService{db: db}
}

func (s *LookupService) Cities() ([]models.City, error) {
	var cities []models.City
	err := s.db.Order("name ASC").Find(&cities).Error
	return cities, err
}

func (s *LookupService) Districts(cityID uint) ([]models.District, error) {
	var districts []models.District
	err := s.db.Where("city_id = ?", cityID).Order("name ASC").Find(&districts).Error
	return districts, err
}

func (s *LookupService) Neighborhoods(districtID uint) ([]models.Neighborhood, error) {
	var hoods []models.Neighborhood
	err := s.db.Where("district_id = ?", districtID).Order("name ASC").Find(&hoods).Error
	return hoods, err
}

func (s *LookupService) VehicleMakes() ([]models.VehicleMake, error) {
	var makes []models.VehicleMake
	err := s.db.Order("name ASC").Find(&makes).Error
	return makes, err
}

func (s *LookupService) VehicleModels(makeID uint) ([]models.VehicleModel, error) {
	var vmodels []models.VehicleModel
	err := s.db.Where("make_id = ?", makeID).Order("name ASC").Find(&vmodels).Error
	return vmodels, err
}

func (s *LookupService) PhoneBrands() ([]models.PhoneBrand, error) {
	var brands []models.PhoneBrand
	err := s.db.Order("name ASC").Find(&brands).Error
	return brands, err
}

func (s *LookupService) PhoneModels(brandID uint) ([]models.PhoneModel, error) {
	var pmodels []models.PhoneModel
	err := s.db.Where("brand_id = ?", brandID).Order("name ASC").Find(&pmodels).Error
	return pmodels, err
}

// ResolveVehicle turns make/model ids into a display name like
// "Renault Clio".
func (s *LookupService) ResolveVehicle(makeID, modelID uint) (string, error) {
	var mk models.VehicleMake
	if err := s.db.First(&mk, makeID).Error; err != nil {
		return "", errors.New("vehicle make not found")
	}
	var mdl models.VehicleModel
	if err := s.db.Where("id = ? AND make_id = ?", modelID, makeID).First(&mdl).Error; err != nil {
		return "", errors.New("vehicle model not found")
	}
	return mk.Name + " " + mdl.Name, nil
}

func (s *LookupService) ResolvePhone(brandID, modelID uint) (string, error) {
	var br models.PhoneBrand
	if err := s.db.First(&br, brandID).Error; err != nil {
		return "", errors.New("phone brand not found")
	}
	var mdl models.PhoneModel
	if err := s.db.Where("id = ? AND brand_id = ?", modelID, brandID).First(&mdl).Error; err != nil {
		return "", errors.New("phone model not found")
	}
	return br.Name + " " + mdl.Name, nil
}

func (s *LookupService) CityName(cityID uint) (string, error) {
	var city models.City
	if err := s.db.First(&city, cityID).Error; err != nil {
		return "", errors.New("city not found")
	}
	return city.Name, nil
}
