package handlers

import (
	"net/http"
	"strconv"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"
	"github.com/BilalK61/saticim.com.tr-sub001/internal/services"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	listingService *services.ListingService
	notifications  *services.NotificationService
}

func NewListingHandler(listingService *services.ListingService, notifications *services.NotificationService) *ListingHandler {
	return &ListingHandler{listingService: listingService, notifications: notifications}
}

// Search godoc
// @Summary      Search approved listings
// @Tags         listings
// @Produce      json
// @Param        category query string false "Category filter, 'all' for everything"
// @Param        city_id query int false "City filter"
// @Param        min_price query number false "Minimum price"
// @Param        max_price query number false "Maximum price"
// @Param        q query string false "Keyword match on title and description"
// @Param        page query int false "Page number"
// @Success      200 {array} Listing
// @Router       /api/v1/listings [get]
func (h *ListingHandler) Search(c *gin.Context) {
	cityID, _ := strconv.ParseUint(c.Query("city_id"), 10, 64)
	minPrice, _ := strconv.ParseFloat(c.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	listings, err := h.listingService.Search(services.ListingFilter{
		Category: c.Query("category"),
		CityID:   uint(cityID),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Query:    c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// Get godoc
// @Summary      Get a listing
// @Tags         listings
// @Produce      json
// @Param        id path int true "Listing ID"
// @Success      200 {object} Listing
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/listings/{id} [get]
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid listing id"})
		return
	}

	listing, err := h.listingService.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Create godoc
// @Summary      Create a listing
// @Description  New listings start in pending status and await moderation
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.ListingInput true "Listing data"
// @Success      201 {object} Listing
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	var in services.ListingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	listing, err := h.listingService.Create(c.GetUint("user_id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// Update godoc
// @Summary      Update own listing
// @Description  Owner edit; resets the listing back to pending status
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        request body services.ListingInput true "Listing data"
// @Success      200 {object} Listing
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/listings/{id} [put]
func (h *ListingHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid listing id"})
		return
	}

	var in services.ListingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	listing, err := h.listingService.Update(uint(id), c.GetUint("user_id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Delete godoc
// @Summary      Delete a listing
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/listings/{id} [delete]
func (h *ListingHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid listing id"})
		return
	}

	if err := h.listingService.Delete(uint(id), c.GetUint("user_id"), c.GetString("role")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "listing deleted"})
}

// ListMine godoc
// @Summary      List own listings
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Listing
// @Router       /api/v1/listings/mine [get]
func (h *ListingHandler) ListMine(c *gin.Context) {
	listings, err := h.listingService.ListMine(c.GetUint("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// ListByStatus godoc
// @Summary      List listings by moderation status
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending, approved or rejected" default(pending)
// @Success      200 {array} Listing
// @Router       /api/v1/admin/listings [get]
func (h *ListingHandler) ListByStatus(c *gin.Context) {
	status := c.DefaultQuery("status", models.ListingStatusPending)

	listings, err := h.listingService.ListByStatus(status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// Approve godoc
// @Summary      Approve a pending listing
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200 {object} Listing
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/listings/{id}/approve [post]
func (h *ListingHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid listing id"})
		return
	}

	listing, err := h.listingService.Approve(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	h.notifications.Notify(listing.UserID, models.NotificationTypeModeration,
		"İlanınız onaylandı", "\""+listing.Title+"\" ilanınız yayında.", "/listings/"+strconv.Itoa(int(listing.ID)))

	c.JSON(http.StatusOK, listing)
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required,min=3" example:"duplicate listing"`
}

// Reject godoc
// @Summary      Reject a pending listing
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Param        request body RejectRequest true "Rejection reason"
// @Success      200 {object} Listing
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/listings/{id}/reject [post]
func (h *ListingHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid listing id"})
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	listing, err := h.listingService.Reject(uint(id), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	h.notifications.Notify(listing.UserID, models.NotificationTypeModeration,
		"İlanınız reddedildi", "Sebep: "+req.Reason, "")

	c.JSON(http.StatusOK, listing)
}
