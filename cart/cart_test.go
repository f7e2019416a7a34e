package cart

import (
	"testing"

	"venuehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayVenue(price float64) VenueSelection {
	return VenueSelection{ID: "v1", Name: "Grand Hall", Price: price, PricingModel: models.PriceModelDay}
}

func TestVenueDayPricing(t *testing.T) {
	c := New()
	c.SetVenue(dayVenue(500))
	c.ToggleDate("2025-06-02")
	c.ToggleDate("2025-06-03")
	c.ToggleDate("2025-06-04")

	assert.Equal(t, 1500.0, c.Total())
}

func TestVenueFlatPricing(t *testing.T) {
	c := New()
	c.SetVenue(VenueSelection{ID: "v2", Name: "Loft", Price: 900, PricingModel: models.PriceModelWeek})
	c.ToggleDate("2025-06-02")
	c.ToggleDate("2025-06-03")

	// Non-day models charge the flat base amount regardless of day count.
	assert.Equal(t, 900.0, c.Total())
}

func TestServiceChargedOnlyForOptedDays(t *testing.T) {
	c := New()
	c.SetVenue(dayVenue(500))
	c.ToggleDate("2025-06-02")
	c.ToggleDate("2025-06-03")

	require.NoError(t, c.AddService(ServiceSelection{
		ID: "s1", Name: "Catering", Price: 200, PricingModel: models.PriceModelDay,
	}))
	require.NoError(t, c.ToggleServiceDay("s1", "2025-06-02"))

	// 2-day event, service opted into 1 day: exactly one day's charge.
	assert.Equal(t, 200.0, c.ServiceSubtotal("s1"))
	assert.Equal(t, 1200.0, c.Total())
}

func TestServiceRequiresVenue(t *testing.T) {
	c := New()
	err := c.AddService(ServiceSelection{ID: "s1", Name: "Catering", Price: 200, PricingModel: models.PriceModelDay})
	assert.ErrorIs(t, err, ErrNoVenue)

	c.SetExternalVenue("Our backyard")
	assert.NoError(t, c.AddService(ServiceSelection{ID: "s1", Name: "Catering", Price: 200, PricingModel: models.PriceModelHour}))
}

func TestRemoveVenueClearsServices(t *testing.T) {
	c := New()
	c.SetVenue(dayVenue(500))
	require.NoError(t, c.AddService(ServiceSelection{ID: "s1", Name: "Catering", Price: 200, PricingModel: models.PriceModelDay}))
	require.NoError(t, c.AddService(ServiceSelection{ID: "s2", Name: "DJ", Price: 300, PricingModel: models.PriceModelHour}))

	c.RemoveVenue()

	assert.Nil(t, c.Venue())
	assert.Empty(t, c.Services())
	assert.Equal(t, 0.0, c.Total())
}

func TestReplacingVenueClearsDaySelections(t *testing.T) {
	c := New()
	c.SetVenue(dayVenue(500))
	c.ToggleDate("2025-06-02")
	require.NoError(t, c.AddService(ServiceSelection{ID: "s1", Name: "Catering", Price: 200, PricingModel: models.PriceModelDay}))
	require.NoError(t, c.ToggleServiceDay("s1", "2025-06-02"))

	c.SetVenue(VenueSelection{ID: "v2", Name: "Loft", Price: 400, PricingModel: models.PriceModelDay})

	// Dates and service opt-ins belonged to the old venue's availability.
	assert.Empty(t, c.Dates())
	assert.Empty(t, c.Service("s1").OptedDays())
	// The service itself stays attached.
	assert.NotNil(t, c.Service("s1"))
}

func TestToggleDateOffDropsServiceOptIns(t *testing.T) {
	c := New()
	c.SetVenue(dayVenue(500))
	c.ToggleDate("2025-06-02")
	require.NoError(t, c.AddService(ServiceSelection{ID: "s1", Name: "Catering", Price: 200, PricingModel: models.PriceModelDay}))
	require.NoError(t, c.ToggleServiceDay("s1", "2025-06-02"))

	c.ToggleDate("2025-06-02") // deselect

	assert.Empty(t, c.Service("s1").OptedDays())
	assert.Equal(t, 0.0, c.ServiceSubtotal("s1"))
}

func TestServiceDayMustBeSelectedDate(t *testing.T) {
	c := New()
	c.SetVenue(dayVenue(500))
	require.NoError(t, c.AddService(ServiceSelection{ID: "s1", Name: "Catering", Price: 200, PricingModel: models.PriceModelDay}))

	err := c.ToggleServiceDay("s1", "2025-06-09")
	assert.ErrorIs(t, err, ErrDateNotSelected)
}

func TestItemsQuantities(t *testing.T) {
	c := New()
	c.SetVenue(dayVenue(500))
	c.SelectAllDates([]string{"2025-06-02", "2025-06-03", "2025-06-04"})
	require.NoError(t, c.AddService(ServiceSelection{ID: "s1", Name: "Catering", Price: 200, PricingModel: models.PriceModelDay}))
	require.NoError(t, c.ToggleServiceDay("s1", "2025-06-02"))
	require.NoError(t, c.AddService(ServiceSelection{ID: "s2", Name: "DJ", Price: 300, PricingModel: models.PriceModelHour}))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(3), items[0].Quantity) // venue: one per day
	assert.Equal(t, int64(1), items[1].Quantity) // catering: one opted day
	assert.Equal(t, int64(1), items[2].Quantity) // DJ: flat
}

func TestExternalVenueNotBilled(t *testing.T) {
	c := New()
	c.SetExternalVenue("Community hall")
	c.ToggleDate("2025-06-02")
	require.NoError(t, c.AddService(ServiceSelection{ID: "s1", Name: "Catering", Price: 200, PricingModel: models.PriceModelDay}))
	require.NoError(t, c.ToggleServiceDay("s1", "2025-06-02"))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "service", items[0].Type)
	assert.Equal(t, 200.0, c.Total())
}
