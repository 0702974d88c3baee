package services

import (
	"testing"

	"github.com/BilalK61/saticim.com.tr-sub001/internal/models"

	"github.com/stretchr/testify/require"
)

func TestListingLifecycle(t *testing.T) {
	db := setupDB(t)
	feed := &recordingFeed{}
	svc := NewListingService(db, feed)

	owner := createUser(t, db, "seller", models.RoleUser)

	listing, err := svc.Create(owner.ID, ListingInput{
		Title:     "Temiz Clio",
		Price:     250000,
		Category:  "Vasita",
		ImageURLs: []string{"/uploads/a.jpg", "/uploads/b.jpg"},
	})
	require.NoError(t, err)
	require.Equal(t, models.ListingStatusPending, listing.Status)
	require.Equal(t, models.CategoryVehicle, listing.Category)
	require.Equal(t, "TRY", listing.Currency)
	require.Len(t, listing.Images, 2)
	require.Equal(t, []string{"listings/insert/1"}, feed.events)

	approved, err := svc.Approve(listing.ID)
	require.NoError(t, err)
	require.Equal(t, models.ListingStatusApproved, approved.Status)

	// Owner edit sends the listing back to moderation.
	updated, err := svc.Update(listing.ID, owner.ID, ListingInput{
		Title:    "Temiz Clio, pazarlik payi var",
		Price:    240000,
		Category: "vasita",
	})
	require.NoError(t, err)
	require.Equal(t, models.ListingStatusPending, updated.Status)
	require.Empty(t, updated.RejectReason)

	rejected, err := svc.Reject(listing.ID, "duplicate listing")
	require.NoError(t, err)
	require.Equal(t, models.ListingStatusRejected, rejected.Status)
	require.Equal(t, "duplicate listing", rejected.RejectReason)
}

func TestListingUpdateIsOwnerOnly(t *testing.T) {
	db := setupDB(t)
	svc := NewListingService(db, nil)

	owner := createUser(t, db, "seller", models.RoleUser)
	stranger := createUser(t, db, "stranger", models.RoleUser)
	listing := createListing(t, db, owner.ID, models.CategoryPhone, 30000, models.ListingStatusApproved)

	_, err := svc.Update(listing.ID, stranger.ID, ListingInput{
		Title: "hijacked", Price: 1, Category: "telefon",
	})
	require.ErrorIs(t, err, ErrNotFound)

	var after models.Listing
	require.NoError(t, db.First(&after, listing.ID).Error)
	require.Equal(t, models.ListingStatusApproved, after.Status)
}

func TestListingDeletePermissions(t *testing.T) {
	db := setupDB(t)
	feed := &recordingFeed{}
	svc := NewListingService(db, feed)

	owner := createUser(t, db, "seller", models.RoleUser)
	stranger := createUser(t, db, "stranger", models.RoleUser)
	moderator := createUser(t, db, "mod", models.RoleModerator)

	first := createListing(t, db, owner.ID, models.CategoryPhone, 30000, models.ListingStatusApproved)
	second := createListing(t, db, owner.ID, models.CategoryPhone, 40000, models.ListingStatusApproved)

	err := svc.Delete(first.ID, stranger.ID, models.RoleUser)
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.Delete(first.ID, owner.ID, models.RoleUser))
	require.NoError(t, svc.Delete(second.ID, moderator.ID, models.RoleModerator))

	var count int64
	require.NoError(t, db.Model(&models.Listing{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestListingSearchFilters(t *testing.T) {
	db := setupDB(t)
	svc := NewListingService(db, nil)
	owner := createUser(t, db, "seller", models.RoleUser)

	city := models.City{Name: "İstanbul"}
	require.NoError(t, db.Create(&city).Error)

	cheap := createListing(t, db, owner.ID, models.CategoryPhone, 10000, models.ListingStatusApproved)
	mid := createListing(t, db, owner.ID, models.CategoryPhone, 30000, models.ListingStatusApproved)
	require.NoError(t, db.Model(mid).Update("city_id", city.ID).Error)
	createListing(t, db, owner.ID, models.CategoryVehicle, 250000, models.ListingStatusApproved)
	createListing(t, db, owner.ID, models.CategoryPhone, 99999, models.ListingStatusPending)

	byCategory, err := svc.Search(ListingFilter{Category: models.CategoryPhone})
	require.NoError(t, err)
	require.Len(t, byCategory, 2, "pending listings must not surface")

	byPrice, err := svc.Search(ListingFilter{Category: models.CategoryPhone, MinPrice: 20000, MaxPrice: 50000})
	require.NoError(t, err)
	require.Len(t, byPrice, 1)
	require.Equal(t, mid.ID, byPrice[0].ID)

	byCity, err := svc.Search(ListingFilter{CityID: city.ID})
	require.NoError(t, err)
	require.Len(t, byCity, 1)

	byKeyword, err := svc.Search(ListingFilter{Query: "telefon listing at 10000"})
	require.NoError(t, err)
	require.Len(t, byKeyword, 1)
	require.Equal(t, cheap.ID, byKeyword[0].ID)

	all, err := svc.Search(ListingFilter{Category: models.CategoryAll})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestListingModerationBroadcastsChanges(t *testing.T) {
	db := setupDB(t)
	feed := &recordingFeed{}
	svc := NewListingService(db, feed)
	owner := createUser(t, db, "seller", models.RoleUser)

	listing, err := svc.Create(owner.ID, ListingInput{Title: "Koltuk takimi", Price: 5000, Category: "mobilya"})
	require.NoError(t, err)

	_, err = svc.Approve(listing.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(listing.ID, owner.ID, models.RoleUser))

	require.Equal(t, []string{
		"listings/insert/1",
		"listings/update/1",
		"listings/delete/1",
	}, feed.events)
}

func TestListingApproveTwiceFails(t *testing.T) {
	db := setupDB(t)
	svc := NewListingService(db, nil)
	owner := createUser(t, db, "seller", models.RoleUser)
	listing := createListing(t, db, owner.ID, models.CategoryPhone, 30000, models.ListingStatusPending)

	_, err := svc.Approve(listing.ID)
	require.NoError(t, err)

	_, err = svc.Approve(listing.ID)
	require.Error(t, err)
}
