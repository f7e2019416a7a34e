package enums

import (
	"net/http"

	"venuehub/models"
	"venuehub/utils"

	"github.com/julienschmidt/httprouter"
)

// Vocabulary is the fixed set of values clients build pickers from.
type Vocabulary struct {
	PricingModels     []string `json:"pricingModels"`
	ListingStatuses   []string `json:"listingStatuses"`
	BookingStatuses   []string `json:"bookingStatuses"`
	RecurrenceRules   []string `json:"recurrenceRules"`
	Roles             []string `json:"roles"`
	ServiceCategories []string `json:"serviceCategories"`
	Weekdays          []string `json:"weekdays"`
}

func vocabulary() Vocabulary {
	return Vocabulary{
		PricingModels: []string{
			models.PriceModelHour,
			models.PriceModelDay,
			models.PriceModelWeek,
		},
		ListingStatuses: []string{
			models.ListingStatusPending,
			models.ListingStatusApproved,
			models.ListingStatusRejected,
			models.ListingStatusActive,
			models.ListingStatusInactive,
		},
		BookingStatuses: []string{
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
			models.BookingStatusCancelled,
		},
		RecurrenceRules: []string{
			models.RecurrenceWeekly,
			models.RecurrenceBiweekly,
			models.RecurrenceMonthly,
		},
		Roles: []string{
			models.RoleCustomer,
			models.RoleVendor,
			models.RoleAdmin,
		},
		ServiceCategories: []string{
			"catering", "photography", "music", "decoration",
			"security", "transport", "cleaning",
		},
		Weekdays: []string{
			"Sunday", "Monday", "Tuesday", "Wednesday",
			"Thursday", "Friday", "Saturday",
		},
	}
}

func GetEnums(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, vocabulary())
}
