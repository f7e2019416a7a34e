package cart

import "venuehub/models"

// Item is one payable line produced from the cart, ready for the checkout
// bridge to turn into payment-processor line items.
type Item struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"` // "venue" or "service"
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int64   `json:"quantity"`
}

// Items flattens the cart into payable lines. Day-priced entries carry their
// day count as quantity; everything else is a single flat line. External
// venues and zero-quantity lines are skipped.
func (c *Cart) Items() []Item {
	var items []Item

	if c.venue != nil && !c.venue.External {
		qty := int64(1)
		if c.venue.PricingModel == models.PriceModelDay {
			qty = int64(len(c.dates))
		}
		if qty > 0 {
			items = append(items, Item{
				ID:        c.venue.ID,
				Type:      "venue",
				Name:      c.venue.Name,
				UnitPrice: c.venue.Price,
				Quantity:  qty,
			})
		}
	}

	for _, s := range c.services {
		qty := int64(1)
		if s.PricingModel == models.PriceModelDay {
			qty = int64(len(s.days))
		}
		if qty == 0 {
			continue
		}
		items = append(items, Item{
			ID:        s.ID,
			Type:      "service",
			Name:      s.Name,
			UnitPrice: s.Price,
			Quantity:  qty,
		})
	}

	return items
}
