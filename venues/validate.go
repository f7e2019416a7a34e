package venues

import (
	"strings"

	"venuehub/models"
	"venuehub/utils"
)

var validPricingModels = []string{
	models.PriceModelHour,
	models.PriceModelDay,
	models.PriceModelWeek,
}

// ValidateVenue checks a venue submission and returns a field->message map,
// empty when the payload is acceptable.
func ValidateVenue(v *models.Venue) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(v.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(v.Address) == "" {
		fields["address"] = "address is required"
	}
	if v.Capacity <= 0 {
		fields["capacity"] = "capacity must be a positive integer"
	}
	if v.BasePrice < 0 {
		fields["basePrice"] = "basePrice cannot be negative"
	}
	if !utils.Contains(validPricingModels, v.PricingModel) {
		fields["pricingModel"] = "pricingModel must be one of hour, day, week"
	}
	for _, bw := range v.AvailabilityRules.BlockedWeekdays {
		if bw.Weekday < 0 || bw.Weekday > 6 {
			fields["availabilityRules.blockedWeekdays"] = "weekday must be between 0 (Sunday) and 6 (Saturday)"
			break
		}
		if bw.RecurrenceRule != "" && !utils.Contains([]string{
			models.RecurrenceWeekly, models.RecurrenceBiweekly, models.RecurrenceMonthly,
		}, bw.RecurrenceRule) {
			fields["availabilityRules.blockedWeekdays"] = "recurrenceRule must be weekly, biweekly or monthly"
			break
		}
	}

	return fields
}

// ValidatePricingModel is shared with patch handling.
func ValidatePricingModel(m string) bool {
	return utils.Contains(validPricingModels, m)
}
