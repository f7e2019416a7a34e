package cart

import (
	"context"
	"net/http"
	"time"

	"venuehub/db"
	"venuehub/models"
	"venuehub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type quoteRequest struct {
	VenueID       string              `json:"venueId,omitempty"`
	ExternalVenue string              `json:"externalVenue,omitempty"`
	ServiceIDs    []string            `json:"serviceIds,omitempty"`
	Dates         []string            `json:"dates"`
	ServiceDays   map[string][]string `json:"serviceDays,omitempty"`
}

func browsableFilter(idField, id string) bson.M {
	return bson.M{
		idField: id,
		"status": bson.M{"$in": []string{
			models.ListingStatusApproved,
			models.ListingStatusActive,
		}},
	}
}

// Quote prices a selection server-side. The client sends ids and dates; the
// cart is rebuilt from stored listings so prices can't be tampered with.
func Quote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req quoteRequest
	if err := utils.DecodeStrict(r.Body, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}
	if req.VenueID == "" && req.ExternalVenue == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "venueId or externalVenue is required")
		return
	}
	for _, d := range req.Dates {
		if _, err := utils.ParseDate(d); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid date "+d+": use YYYY-MM-DD")
			return
		}
	}

	c := New()
	if req.VenueID != "" {
		var venue models.Venue
		if err := db.VenuesCollection.FindOne(ctx, browsableFilter("venueid", req.VenueID)).Decode(&venue); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Venue not found or not bookable")
			return
		}
		c.SetVenue(VenueSelection{
			ID:           venue.VenueID,
			Name:         venue.Name,
			Price:        venue.BasePrice,
			PricingModel: venue.PricingModel,
		})
	} else {
		c.SetExternalVenue(req.ExternalVenue)
	}

	for _, id := range req.ServiceIDs {
		var svc models.VendorService
		if err := db.ServicesCollection.FindOne(ctx, browsableFilter("serviceid", id)).Decode(&svc); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Service not found or not bookable: "+id)
			return
		}
		if err := c.AddService(ServiceSelection{
			ID:           svc.ServiceID,
			Name:         svc.Name,
			Price:        svc.BasePrice,
			PricingModel: svc.PricingModel,
		}); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	c.SelectAllDates(req.Dates)
	for serviceID, days := range req.ServiceDays {
		for _, d := range days {
			if err := c.ToggleServiceDay(serviceID, d); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
	}

	serviceSubtotals := map[string]float64{}
	for _, s := range c.Services() {
		serviceSubtotals[s.ID] = c.ServiceSubtotal(s.ID)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":            c.Items(),
		"dates":            c.Dates(),
		"venueSubtotal":    c.VenueSubtotal(),
		"serviceSubtotals": serviceSubtotals,
		"total":            c.Total(),
	})
}
