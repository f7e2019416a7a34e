package models

import "time"

// VendorService is a bookable add-on offering (catering, photography, sound)
// listed by a vendor. It shares the venue lifecycle and availability shape.
type VendorService struct {
	ServiceID         string            `json:"serviceid" bson:"serviceid"`
	Name              string            `json:"name" bson:"name"`
	Description       string            `json:"description" bson:"description"`
	Category          string            `json:"category" bson:"category"`
	Features          []string          `json:"features,omitempty" bson:"features,omitempty"`
	City              string            `json:"city,omitempty" bson:"city,omitempty"`
	Country           string            `json:"country,omitempty" bson:"country,omitempty"`
	BasePrice         float64           `json:"basePrice" bson:"basePrice"`
	PricingModel      string            `json:"pricingModel" bson:"pricingModel"`
	BookedDates       []BookedDate      `json:"bookedDates,omitempty" bson:"bookedDates,omitempty"`
	AvailabilityRules AvailabilityRules `json:"availabilityRules" bson:"availabilityRules"`
	Status            string            `json:"status" bson:"status"`
	OwnerID           string            `json:"ownerId" bson:"ownerId"`
	Rating            Rating            `json:"rating" bson:"rating"`
	Sponsored         bool              `json:"sponsored" bson:"sponsored"`
	Images            []string          `json:"images,omitempty" bson:"images,omitempty"`
	CreatedAt         time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" bson:"updated_at"`
	DeletedAt         *time.Time        `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}
