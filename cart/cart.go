package cart

import (
	"errors"
	"sort"

	"venuehub/models"
)

// ErrNoVenue is returned when a service is added before any venue selection.
var ErrNoVenue = errors.New("cart: a venue must be selected before adding services")

// ErrDateNotSelected is returned when a service day opt-in names a date that
// is not part of the event.
var ErrDateNotSelected = errors.New("cart: date is not among the selected event dates")

// VenueSelection is the single venue held by a cart. External marks a
// manually-entered venue that is not a platform listing; it carries no price.
type VenueSelection struct {
	ID           string
	Name         string
	Price        float64
	PricingModel string
	External     bool
}

// ServiceSelection is a service attached to the event, with per-day opt-ins
// for day-priced services.
type ServiceSelection struct {
	ID           string
	Name         string
	Price        float64
	PricingModel string
	days         map[string]bool
}

// OptedDays returns the sorted dates the customer opted this service into.
func (s *ServiceSelection) OptedDays() []string {
	out := make([]string, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Cart is the booking-in-progress: at most one venue, attached services, and
// the selected event dates. A Cart is owned by a single session and mutated
// from one goroutine; callers pass it by reference to their event handlers.
type Cart struct {
	venue    *VenueSelection
	services []*ServiceSelection
	dates    map[string]bool
}

func New() *Cart {
	return &Cart{dates: make(map[string]bool)}
}

// SetVenue replaces any previous venue selection. Selected dates and all
// per-service day opt-ins are cleared: they were picked against the old
// venue's availability and are incompatible with the new one. Attached
// services stay in the cart.
func (c *Cart) SetVenue(v VenueSelection) {
	c.venue = &v
	c.dates = make(map[string]bool)
	for _, s := range c.services {
		s.days = make(map[string]bool)
	}
}

// SetExternalVenue records a venue sourced outside the platform; it satisfies
// the "venue present" invariant without contributing to the total.
func (c *Cart) SetExternalVenue(name string) {
	c.SetVenue(VenueSelection{Name: name, External: true})
}

// RemoveVenue clears the venue and, with it, every attached service.
func (c *Cart) RemoveVenue() {
	c.venue = nil
	c.services = nil
	c.dates = make(map[string]bool)
}

func (c *Cart) Venue() *VenueSelection {
	return c.venue
}

// AddService attaches a service to the event. A venue (or the external-venue
// placeholder) must already be present. Re-adding an attached service is a
// no-op.
func (c *Cart) AddService(s ServiceSelection) error {
	if c.venue == nil {
		return ErrNoVenue
	}
	for _, existing := range c.services {
		if existing.ID == s.ID {
			return nil
		}
	}
	s.days = make(map[string]bool)
	c.services = append(c.services, &s)
	return nil
}

func (c *Cart) RemoveService(id string) {
	kept := c.services[:0]
	for _, s := range c.services {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	c.services = kept
}

func (c *Cart) Service(id string) *ServiceSelection {
	for _, s := range c.services {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (c *Cart) Services() []*ServiceSelection {
	return c.services
}

// ToggleDate flips one event day. Turning a day off also drops it from every
// service's opt-ins.
func (c *Cart) ToggleDate(date string) {
	if c.dates[date] {
		delete(c.dates, date)
		for _, s := range c.services {
			delete(s.days, date)
		}
		return
	}
	c.dates[date] = true
}

// SelectAllDates replaces the selected set with the given dates. Service
// opt-ins for dates no longer selected are dropped.
func (c *Cart) SelectAllDates(dates []string) {
	c.dates = make(map[string]bool, len(dates))
	for _, d := range dates {
		c.dates[d] = true
	}
	for _, s := range c.services {
		for d := range s.days {
			if !c.dates[d] {
				delete(s.days, d)
			}
		}
	}
}

// Dates returns the selected event dates, sorted.
func (c *Cart) Dates() []string {
	out := make([]string, 0, len(c.dates))
	for d := range c.dates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// ToggleServiceDay flips a day-priced service's participation on one selected
// event date.
func (c *Cart) ToggleServiceDay(serviceID, date string) error {
	s := c.Service(serviceID)
	if s == nil {
		return errors.New("cart: service not in cart")
	}
	if !c.dates[date] {
		return ErrDateNotSelected
	}
	if s.days[date] {
		delete(s.days, date)
	} else {
		s.days[date] = true
	}
	return nil
}

// VenueSubtotal is base price times selected days for day-priced venues and
// the flat base amount otherwise. External venues cost nothing here.
func (c *Cart) VenueSubtotal() float64 {
	if c.venue == nil || c.venue.External {
		return 0
	}
	if c.venue.PricingModel == models.PriceModelDay {
		return c.venue.Price * float64(len(c.dates))
	}
	return c.venue.Price
}

// ServiceSubtotal prices one attached service: day-priced services charge per
// opted-in day; hour- and week-priced services charge the flat base amount.
// The hourly figure is an estimate, not a metered computation.
func (c *Cart) ServiceSubtotal(serviceID string) float64 {
	s := c.Service(serviceID)
	if s == nil {
		return 0
	}
	if s.PricingModel == models.PriceModelDay {
		return s.Price * float64(len(s.days))
	}
	return s.Price
}

// Total aggregates the venue and every attached service.
func (c *Cart) Total() float64 {
	total := c.VenueSubtotal()
	for _, s := range c.services {
		total += c.ServiceSubtotal(s.ID)
	}
	return total
}

// Clear empties the cart, as on checkout success.
func (c *Cart) Clear() {
	c.venue = nil
	c.services = nil
	c.dates = make(map[string]bool)
}
