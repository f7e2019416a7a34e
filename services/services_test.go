package services

import (
	"testing"

	"venuehub/models"
	"venuehub/utils"

	"github.com/stretchr/testify/assert"
)

func TestValidateServiceRequiredFields(t *testing.T) {
	svc := &models.VendorService{}
	fields := validateService(svc)

	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "pricingModel")
}

func TestValidateServiceGoodPayload(t *testing.T) {
	svc := &models.VendorService{
		Name:         "Prime Catering",
		Category:     "catering",
		BasePrice:    200,
		PricingModel: models.PriceModelDay,
	}
	assert.Empty(t, validateService(svc))
}

func TestValidateServiceBadWeekday(t *testing.T) {
	svc := &models.VendorService{
		Name:         "Prime Catering",
		Category:     "catering",
		BasePrice:    200,
		PricingModel: models.PriceModelDay,
		AvailabilityRules: models.AvailabilityRules{
			BlockedWeekdays: []models.BlockedWeekday{{Weekday: 7, RecurrenceRule: models.RecurrenceWeekly}},
		},
	}
	fields := validateService(svc)
	assert.Contains(t, fields, "availabilityRules.blockedWeekdays")
}

func TestServicePatchFields(t *testing.T) {
	name := "Renamed"
	price := 250.0
	patch := models.ServicePatch{Name: &name, BasePrice: &price}

	set := patch.Fields()
	assert.Equal(t, "Renamed", set["name"])
	assert.Equal(t, 250.0, set["basePrice"])
	assert.NotContains(t, set, "category")
}

func TestListCacheable(t *testing.T) {
	base := utils.QueryOptions{Page: 1, Limit: 20}
	assert.True(t, listCacheable("", base))
	assert.False(t, listCacheable("catering", base))

	withCity := base
	withCity.City = "Austin"
	assert.False(t, listCacheable("", withCity))

	limit5 := base
	limit5.Limit = 5
	assert.False(t, listCacheable("", limit5))
}
