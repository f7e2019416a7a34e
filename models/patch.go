package models

// Typed patch structs for PUT handlers. Every updatable field is enumerated;
// decoding rejects unknown fields (utils.DecodeStrict), so partial updates
// can't smuggle arbitrary keys into the document.

type VenuePatch struct {
	Name              *string            `json:"name,omitempty"`
	Description       *string            `json:"description,omitempty"`
	Address           *string            `json:"address,omitempty"`
	City              *string            `json:"city,omitempty"`
	Country           *string            `json:"country,omitempty"`
	ZipCode           *string            `json:"zipCode,omitempty"`
	Capacity          *int               `json:"capacity,omitempty"`
	Amenities         *[]string          `json:"amenities,omitempty"`
	BasePrice         *float64           `json:"basePrice,omitempty"`
	PricingModel      *string            `json:"pricingModel,omitempty"`
	AvailabilityRules *AvailabilityRules `json:"availabilityRules,omitempty"`
	Sponsored         *bool              `json:"sponsored,omitempty"`
	Images            *[]string          `json:"images,omitempty"`
	Tags              *[]string          `json:"tags,omitempty"`
}

// Fields returns the bson $set document for the patch. Empty when nothing
// was provided.
func (p *VenuePatch) Fields() map[string]any {
	set := map[string]any{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.City != nil {
		set["city"] = *p.City
	}
	if p.Country != nil {
		set["country"] = *p.Country
	}
	if p.ZipCode != nil {
		set["zipCode"] = *p.ZipCode
	}
	if p.Capacity != nil {
		set["capacity"] = *p.Capacity
	}
	if p.Amenities != nil {
		set["amenities"] = *p.Amenities
	}
	if p.BasePrice != nil {
		set["basePrice"] = *p.BasePrice
	}
	if p.PricingModel != nil {
		set["pricingModel"] = *p.PricingModel
	}
	if p.AvailabilityRules != nil {
		set["availabilityRules"] = *p.AvailabilityRules
	}
	if p.Sponsored != nil {
		set["sponsored"] = *p.Sponsored
	}
	if p.Images != nil {
		set["images"] = *p.Images
	}
	if p.Tags != nil {
		set["tags"] = *p.Tags
	}
	return set
}

type ServicePatch struct {
	Name              *string            `json:"name,omitempty"`
	Description       *string            `json:"description,omitempty"`
	Category          *string            `json:"category,omitempty"`
	Features          *[]string          `json:"features,omitempty"`
	City              *string            `json:"city,omitempty"`
	Country           *string            `json:"country,omitempty"`
	BasePrice         *float64           `json:"basePrice,omitempty"`
	PricingModel      *string            `json:"pricingModel,omitempty"`
	AvailabilityRules *AvailabilityRules `json:"availabilityRules,omitempty"`
	Sponsored         *bool              `json:"sponsored,omitempty"`
	Images            *[]string          `json:"images,omitempty"`
}

func (p *ServicePatch) Fields() map[string]any {
	set := map[string]any{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Features != nil {
		set["features"] = *p.Features
	}
	if p.City != nil {
		set["city"] = *p.City
	}
	if p.Country != nil {
		set["country"] = *p.Country
	}
	if p.BasePrice != nil {
		set["basePrice"] = *p.BasePrice
	}
	if p.PricingModel != nil {
		set["pricingModel"] = *p.PricingModel
	}
	if p.AvailabilityRules != nil {
		set["availabilityRules"] = *p.AvailabilityRules
	}
	if p.Sponsored != nil {
		set["sponsored"] = *p.Sponsored
	}
	if p.Images != nil {
		set["images"] = *p.Images
	}
	return set
}

type UserPatch struct {
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

func (p *UserPatch) Fields() map[string]any {
	set := map[string]any{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.PhoneNumber != nil {
		set["phone_number"] = *p.PhoneNumber
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.Avatar != nil {
		set["avatar"] = *p.Avatar
	}
	return set
}
