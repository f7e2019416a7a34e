package venues

import (
	"strings"
	"testing"

	"venuehub/models"
	"venuehub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestValidateVenueRequiredFields(t *testing.T) {
	fields := ValidateVenue(&models.Venue{})
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "address")
	assert.Contains(t, fields, "capacity")
	assert.Contains(t, fields, "pricingModel")
}

func TestValidateVenueAcceptsGoodPayload(t *testing.T) {
	v := &models.Venue{
		Name:         "Grand Hall",
		Address:      "1 Main St",
		Capacity:     120,
		BasePrice:    500,
		PricingModel: models.PriceModelDay,
		AvailabilityRules: models.AvailabilityRules{
			BlockedWeekdays: []models.BlockedWeekday{{Weekday: 0, RecurrenceRule: models.RecurrenceWeekly}},
		},
	}
	assert.Empty(t, ValidateVenue(v))
}

func TestValidateVenueRejectsBadWeekday(t *testing.T) {
	v := &models.Venue{
		Name: "X", Address: "Y", Capacity: 10, BasePrice: 1, PricingModel: models.PriceModelDay,
		AvailabilityRules: models.AvailabilityRules{
			BlockedWeekdays: []models.BlockedWeekday{{Weekday: 7}},
		},
	}
	fields := ValidateVenue(v)
	assert.Contains(t, fields, "availabilityRules.blockedWeekdays")
}

func TestVenuePatchRejectsUnknownFields(t *testing.T) {
	var patch models.VenuePatch
	err := utils.DecodeStrict(strings.NewReader(`{"name":"New","bogus":true}`), &patch)
	require.Error(t, err)
}

func TestVenuePatchFields(t *testing.T) {
	name := "Renamed"
	price := 750.0
	patch := models.VenuePatch{Name: &name, BasePrice: &price}

	set := patch.Fields()
	assert.Equal(t, "Renamed", set["name"])
	assert.Equal(t, 750.0, set["basePrice"])
	assert.Len(t, set, 2)
}

func TestPublicFilterExcludesSoftDeleted(t *testing.T) {
	filter := publicFilter()
	statusCond, ok := filter["status"].(bson.M)
	require.True(t, ok)
	allowed, ok := statusCond["$in"].([]string)
	require.True(t, ok)

	assert.Contains(t, allowed, models.ListingStatusApproved)
	assert.Contains(t, allowed, models.ListingStatusActive)
	assert.NotContains(t, allowed, models.ListingStatusSoftDeleted)
	assert.NotContains(t, allowed, models.ListingStatusRejected)
	assert.NotContains(t, allowed, models.ListingStatusPending)
}

func TestListCacheable(t *testing.T) {
	base := utils.QueryOptions{Page: 1, Limit: 20}
	assert.True(t, listCacheable(base))

	withCity := base
	withCity.City = "Austin"
	assert.False(t, listCacheable(withCity))

	withSearch := base
	withSearch.Search = "hall"
	assert.False(t, listCacheable(withSearch))

	page2 := base
	page2.Page = 2
	assert.False(t, listCacheable(page2))

	limit5 := base
	limit5.Limit = 5
	assert.False(t, listCacheable(limit5))
}
