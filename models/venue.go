package models

import "time"

// Pricing models for venues and vendor services.
const (
	PriceModelHour = "hour"
	PriceModelDay  = "day"
	PriceModelWeek = "week"
)

// Listing lifecycle. Vendor submissions start as pending, admins move them to
// approved/rejected, owners can toggle active/inactive, deletion is a status
// flag so the document survives.
const (
	ListingStatusPending     = "pending"
	ListingStatusApproved    = "approved"
	ListingStatusRejected    = "rejected"
	ListingStatusActive      = "active"
	ListingStatusInactive    = "inactive"
	ListingStatusSoftDeleted = "softDeleted"
)

// Blocked-weekday recurrence values. Recorded as submitted; the availability
// evaluator currently blocks every matching weekday regardless of recurrence.
const (
	RecurrenceWeekly   = "weekly"
	RecurrenceBiweekly = "biweekly"
	RecurrenceMonthly  = "monthly"
)

type BlockedWeekday struct {
	Weekday        int    `json:"weekday" bson:"weekday"` // 0=Sun..6=Sat
	RecurrenceRule string `json:"recurrenceRule" bson:"recurrenceRule"`
}

type AvailabilityRules struct {
	BlockedWeekdays []BlockedWeekday `json:"blockedWeekdays,omitempty" bson:"blockedWeekdays,omitempty"`
}

type BookedDate struct {
	Date      string `json:"date" bson:"date"` // YYYY-MM-DD
	BookingID string `json:"bookingId" bson:"bookingId"`
}

type Rating struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

type Venue struct {
	VenueID           string            `json:"venueid" bson:"venueid"`
	Name              string            `json:"name" bson:"name"`
	Description       string            `json:"description" bson:"description"`
	Address           string            `json:"address" bson:"address"`
	City              string            `json:"city,omitempty" bson:"city,omitempty"`
	Country           string            `json:"country,omitempty" bson:"country,omitempty"`
	ZipCode           string            `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
	Location          Coordinates       `json:"location" bson:"location,omitempty"`
	Capacity          int               `json:"capacity" bson:"capacity"`
	Amenities         []string          `json:"amenities,omitempty" bson:"amenities,omitempty"`
	BasePrice         float64           `json:"basePrice" bson:"basePrice"`
	PricingModel      string            `json:"pricingModel" bson:"pricingModel"`
	BookedDates       []BookedDate      `json:"bookedDates,omitempty" bson:"bookedDates,omitempty"`
	AvailabilityRules AvailabilityRules `json:"availabilityRules" bson:"availabilityRules"`
	Status            string            `json:"status" bson:"status"`
	OwnerID           string            `json:"ownerId" bson:"ownerId"`
	Rating            Rating            `json:"rating" bson:"rating"`
	Sponsored         bool              `json:"sponsored" bson:"sponsored"`
	Images            []string          `json:"images,omitempty" bson:"images,omitempty"`
	Tags              []string          `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt         time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" bson:"updated_at"`
	DeletedAt         *time.Time        `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
}
