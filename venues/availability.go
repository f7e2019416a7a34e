package venues

import (
	"context"
	"net/http"
	"time"

	"venuehub/availability"
	"venuehub/db"
	"venuehub/models"
	"venuehub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mongoAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// GetVenueAvailability returns selectable dates for ?from=&to= (YYYY-MM-DD),
// evaluated against the venue's booked dates and blocked-weekday rules.
func GetVenueAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	from, errF := utils.ParseDate(r.URL.Query().Get("from"))
	to, errT := utils.ParseDate(r.URL.Query().Get("to"))
	if errF != nil || errT != nil || from.After(to) {
		utils.RespondWithError(w, http.StatusBadRequest, "from/to must be YYYY-MM-DD with from <= to")
		return
	}
	if to.Sub(from) > 366*24*time.Hour {
		utils.RespondWithError(w, http.StatusBadRequest, "range too large")
		return
	}

	filter := publicFilter()
	filter["venueid"] = ps.ByName("venueid")

	var venue models.Venue
	if err := db.VenuesCollection.FindOne(ctx, filter).Decode(&venue); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch venue")
		return
	}

	dates := availability.SelectableDateStrings(from, to, venue.BookedDates, venue.AvailabilityRules)
	if dates == nil {
		dates = []string{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"venueid": venue.VenueID,
		"dates":   dates,
	})
}

// appendBookedDates marks dates as booked on the venue document. Called from
// the bookings package on booking creation.
func AppendBookedDates(ctx context.Context, venueID, bookingID string, dates []string) error {
	entries := make([]models.BookedDate, 0, len(dates))
	for _, d := range dates {
		entries = append(entries, models.BookedDate{Date: d, BookingID: bookingID})
	}
	_, err := db.VenuesCollection.UpdateOne(ctx,
		bson.M{"venueid": venueID},
		bson.M{"$push": bson.M{"bookedDates": bson.M{"$each": entries}}},
	)
	return err
}

// ReleaseBookedDates removes a booking's holds, used on cancellation.
func ReleaseBookedDates(ctx context.Context, venueID, bookingID string) error {
	_, err := db.VenuesCollection.UpdateOne(ctx,
		bson.M{"venueid": venueID},
		bson.M{"$pull": bson.M{"bookedDates": bson.M{"bookingId": bookingID}}},
	)
	return err
}
