package handlers

import (
	"net/http"
	"strconv"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type LookupHandler struct {
	lookups *services.LookupService
}

func NewLookupHandler(lookups *services.LookupService) *LookupHandler {
	return &LookupHandler{lookups: lookups}
}

// Categories godoc
// @Summary      List listing categories
// @Tags         lookups
// @Produce      json
// @Success      200 {array} string
// @Router       /api/v1/lookups/categories [get]
func (h *LookupHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, services.SearchCategories())
}

// Cities godoc
// @Summary      List cities
// @Tags         lookups
// @Produce      json
// @Success      200 {array} models.City
// @Router       /api/v1/lookups/cities [get]
func (h *LookupHandler) Cities(c *gin.Context) {
	cities, err := h.lookups.Cities()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

// Districts godoc
// @Summary      List districts of a city
// @Tags         lookups
// @Produce      json
// @Param        city_id query int true "City ID"
// @Success      200 {array} models.District
// @Router       /api/v1/lookups/districts [get]
func (h *LookupHandler) Districts(c *gin.Context) {
	cityID, err := strconv.ParseUint(c.Query("city_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid city_id"})
		return
	}

	districts, err := h.lookups.Districts(uint(cityID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, districts)
}

// Neighborhoods godoc
// @Summary      List neighborhoods of a district
// @Tags         lookups
// @Produce      json
// @Param        district_id query int true "District ID"
// @Success      200 {array} models.Neighborhood
// @Router       /api/v1/lookups/neighborhoods [get]
func (h *LookupHandler) Neighborhoods(c *gin.Context) {
	districtID, err := strconv.ParseUint(c.Query("district_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid district_id"})
		return
	}

	hoods, err := h.lookups.Neighborhoods(uint(districtID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hoods)
}

// VehicleMakes godoc
// @Summary      List vehicle makes
// @Tags         lookups
// @Produce      json
// @Success      200 {array} models.VehicleMake
// @Router       /api/v1/lookups/vehicle-makes [get]
func (h *LookupHandler) VehicleMakes(c *gin.Context) {
	makes, err := h.lookups.VehicleMakes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, makes)
}

// VehicleModels godoc
// @Summary      List models of a vehicle make
// @Tags         lookups
// @Produce      json
// @Param        make_id query int true "Make ID"
// @Success      200 {array} models.VehicleModel
// @Router       /api/v1/lookups/vehicle-models [get]
func (h *LookupHandler) VehicleModels(c *gin.Context) {
	makeID, err := strconv.ParseUint(c.Query("make_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid make_id"})
		return
	}

	vmodels, err := h.lookups.VehicleModels(uint(makeID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vmodels)
}

// PhoneBrands godoc
// @Summary      List phone brands
// @Tags         lookups
// @Produce      json
// @Success      200 {array} models.PhoneBrand
// @Router       /api/v1/lookups/phone-brands [get]
func (h *LookupHandler) PhoneBrands(c *gin.Context) {
	brands, err := h.lookups.PhoneBrands()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

// PhoneModels godoc
// @Summary      List models of a phone brand
// @Tags         lookups
// @Produce      json
// @Param        brand_id query int true "Brand ID"
// @Success      200 {array} models.PhoneModel
// @Router       /api/v1/lookups/phone-models [get]
func (h *LookupHandler) PhoneModels(c *gin.Context) {
	brandID, err := strconv.ParseUint(c.Query("brand_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid brand_id"})
		return
	}

	pmodels, err := h.lookups.PhoneModels(uint(brandID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pmodels)
}
