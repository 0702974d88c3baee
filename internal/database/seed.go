package database

import (
	"log"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"

	"gorm.io/gorm"
)

// SeedLookups populates the reference tables on an empty database.
// Running it against a populated database is a no-op.
func SeedLookups(db *gorm.DB) {
	var count int64
	db.Model(&models.City{}).Count(&count)
	if count > 0 {
		return
	}

	cities := map[string][]string{
		"İstanbul": {"Kadıköy", "Beşiktaş", "Üsküdar"},
		"Ankara":   {"Çankaya", "Keçiören"},
		"İzmir":    {"Konak", "Bornova"},
	}
	for cityName, districts := range cities {
		city := models.City{Name: cityName}
		if err := db.Create(&city).Error; err != nil {
			log.Printf("seed: city %s: %v", cityName, err)
			continue
		}
		for _, d := range districts {
			db.Create(&models.District{CityID: city.ID, Name: d})
		}
	}

	makes := map[string][]string{
		"Renault":    {"Clio", "Megane", "Symbol"},
		"Fiat":       {"Egea", "Doblo"},
		"Volkswagen": {"Golf", "Passat", "Polo"},
		"Toyota":     {"Corolla", "Yaris"},
	}
	for makeName, vmodels := range makes {
		mk := models.VehicleMake{Name: makeName}
		if err := db.Create(&mk).Error; err != nil {
			log.Printf("seed: vehicle make %s: %v", makeName, err)
			continue
		}
		for _, m := range vmodels {
			db.Create(&models.VehicleModel{MakeID: mk.ID, Name: m})
		}
	}

	brands := map[string][]string{
		"Apple":   {"iPhone 13", "iPhone 14", "iPhone 15"},
		"Samsung": {"Galaxy S23", "Galaxy A54"},
		"Xiaomi":  {"Redmi Note 12", "Mi 11"},
	}
	for brandName, pmodels := range brands {
		br := models.PhoneBrand{Name: brandName}
		if err := db.Create(&br).Error; err != nil {
			log.Printf("seed: phone brand %s: %v", brandName, err)
			continue
		}
		for _, m := range pmodels {
			db.Create(&models.PhoneModel{BrandID: br.ID, Name: m})
		}
	}

	log.Println("lookup tables seeded")
}
