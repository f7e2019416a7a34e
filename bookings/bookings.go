package bookings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"venuehub/availability"
	"venuehub/db"
	"venuehub/models"
	"venuehub/mq"
	"venuehub/services"
	"venuehub/utils"
	"venuehub/venues"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDateUnavailable = errors.New("date unavailable")

// validTransitions maps a current booking status to the statuses it may
// move to through the status endpoint.
var validTransitions = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCancelled},
	models.BookingStatusCancelled: {},
}

// firstBlockedDate returns the first requested date a listing cannot take.
func firstBlockedDate(parsed []time.Time, booked []models.BookedDate, rules models.AvailabilityRules) (time.Time, bool) {
	for _, t := range parsed {
		if availability.IsDateBlocked(t, booked, rules) {
			return t, true
		}
	}
	return time.Time{}, false
}

// releaseHolds drops every booked-date hold this booking placed, on the
// venue and on each attached service.
func releaseHolds(ctx context.Context, b *models.Booking) {
	if b.VenueID != "" {
		if err := venues.ReleaseBookedDates(ctx, b.VenueID, b.BookingID); err != nil {
			log.Println("ReleaseBookedDates error:", err)
		}
	}
	for _, sid := range b.ServiceIDs {
		if err := services.ReleaseBookedDates(ctx, sid, b.BookingID); err != nil {
			log.Println("ReleaseBookedDates error:", err)
		}
	}
}

func canTransition(from, to string) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type createRequest struct {
	VenueID    string   `json:"venueId"`
	ServiceIDs []string `json:"serviceIds"`
	Dates      []string `json:"dates"`
	Amount     float64  `json:"amount"`
	Currency   string   `json:"currency"`
}

// Create inserts a pending booking after checking every requested date
// against the booked dates and blocked weekdays of the venue and of each
// attached service. Holds are pushed onto every listing so concurrent
// carts see them.
func Create(ctx context.Context, userID string, req createRequest) (*models.Booking, error) {
	if len(req.Dates) == 0 {
		return nil, errors.New("at least one date is required")
	}
	if req.VenueID == "" && len(req.ServiceIDs) == 0 {
		return nil, errors.New("a venue or at least one service is required")
	}

	parsed := make([]time.Time, 0, len(req.Dates))
	for _, d := range req.Dates {
		t, err := utils.ParseDate(d)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD", d)
		}
		parsed = append(parsed, t)
	}

	if req.VenueID != "" {
		var venue models.Venue
		err := db.VenuesCollection.FindOne(ctx, bson.M{
			"venueid": req.VenueID,
			"status": bson.M{"$in": []string{
				models.ListingStatusApproved,
				models.ListingStatusActive,
			}},
		}).Decode(&venue)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, errors.New("venue not found or not bookable")
			}
			return nil, err
		}
		if t, blocked := firstBlockedDate(parsed, venue.BookedDates, venue.AvailabilityRules); blocked {
			return nil, fmt.Errorf("%w: %s", ErrDateUnavailable, t.Format(utils.DateLayout))
		}
	}

	for _, sid := range req.ServiceIDs {
		var svc models.VendorService
		err := db.ServicesCollection.FindOne(ctx, bson.M{
			"serviceid": sid,
			"status": bson.M{"$in": []string{
				models.ListingStatusApproved,
				models.ListingStatusActive,
			}},
		}).Decode(&svc)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, fmt.Errorf("service %s not found or not bookable", sid)
			}
			return nil, err
		}
		if t, blocked := firstBlockedDate(parsed, svc.BookedDates, svc.AvailabilityRules); blocked {
			return nil, fmt.Errorf("%w: %s (service %s)", ErrDateUnavailable, t.Format(utils.DateLayout), sid)
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	now := time.Now()
	booking := &models.Booking{
		BookingID:  utils.GenerateRandomString(16),
		UserID:     userID,
		VenueID:    req.VenueID,
		ServiceIDs: req.ServiceIDs,
		Dates:      req.Dates,
		Amount:     req.Amount,
		Currency:   currency,
		Status:     models.BookingStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, booking); err != nil {
		return nil, err
	}

	if req.VenueID != "" {
		if err := venues.AppendBookedDates(ctx, req.VenueID, booking.BookingID, req.Dates); err != nil {
			// roll back the orphan booking so the dates stay consistent
			_, _ = db.BookingsCollection.DeleteOne(ctx, bson.M{"bookingid": booking.BookingID})
			return nil, err
		}
	}
	for _, sid := range req.ServiceIDs {
		if err := services.AppendBookedDates(ctx, sid, booking.BookingID, req.Dates); err != nil {
			releaseHolds(ctx, booking)
			_, _ = db.BookingsCollection.DeleteOne(ctx, bson.M{"bookingid": booking.BookingID})
			return nil, err
		}
	}

	go mq.Emit(context.Background(), "booking-created", models.Index{EntityType: "booking", EntityId: booking.BookingID, Method: "POST"})
	return booking, nil
}

func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createRequest
	if err := utils.DecodeStrict(r.Body, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}

	booking, err := Create(ctx, userID, req)
	if err != nil {
		if errors.Is(err, ErrDateUnavailable) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, booking)
}

// ListBookings returns the caller's bookings. Admins may pass ?userId= to
// inspect another user; ?venueId= and ?status= narrow the result.
func ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := bson.M{"userId": userID}
	if other := r.URL.Query().Get("userId"); other != "" && utils.Contains(utils.GetRolesFromRequest(r), models.RoleAdmin) {
		filter["userId"] = other
	}
	if venueID := r.URL.Query().Get("venueId"); venueID != "" {
		filter["venueId"] = venueID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := utils.ParseQueryOptions(r)
	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cur, err := db.BookingsCollection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Println("ListBookings error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": bookings})
}

func loadOwnBooking(ctx context.Context, w http.ResponseWriter, r *http.Request, bookingID string) (*models.Booking, bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&booking)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return nil, false
	}
	if booking.UserID != userID && !utils.Contains(utils.GetRolesFromRequest(r), models.RoleAdmin) {
		utils.RespondWithError(w, http.StatusForbidden, "Not your booking")
		return nil, false
	}
	return &booking, true
}

func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	booking, ok := loadOwnBooking(ctx, w, r, ps.ByName("bookingid"))
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, booking)
}

func UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	booking, ok := loadOwnBooking(ctx, w, r, ps.ByName("bookingid"))
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := utils.DecodeStrict(r.Body, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if !canTransition(booking.Status, body.Status) {
		utils.RespondWithError(w, http.StatusConflict,
			fmt.Sprintf("Cannot move booking from %s to %s", booking.Status, body.Status))
		return
	}

	updated, err := setStatus(ctx, booking, body.Status)
	if err != nil {
		log.Println("UpdateBookingStatus error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// CancelBooking is idempotent: cancelling an already-cancelled booking
// returns it unchanged.
func CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	booking, ok := loadOwnBooking(ctx, w, r, ps.ByName("bookingid"))
	if !ok {
		return
	}
	if booking.Status == models.BookingStatusCancelled {
		utils.RespondWithJSON(w, http.StatusOK, booking)
		return
	}

	updated, err := setStatus(ctx, booking, models.BookingStatusCancelled)
	if err != nil {
		log.Println("CancelBooking error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel booking")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func setStatus(ctx context.Context, booking *models.Booking, status string) (*models.Booking, error) {
	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"bookingid": booking.BookingID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		return nil, err
	}

	if status == models.BookingStatusCancelled {
		releaseHolds(ctx, &updated)
	}

	go mq.Emit(context.Background(), "booking-"+status, models.Index{EntityType: "booking", EntityId: updated.BookingID, Method: "PUT"})
	Broadcast("booking", updated.BookingID, utils.ToJSON(utils.M{"bookingid": updated.BookingID, "status": status}))
	return &updated, nil
}

// ConfirmFromPayment marks the given bookings confirmed and stamps the
// transaction id. Used by the checkout webhook once a session settles.
func ConfirmFromPayment(ctx context.Context, bookingIDs []string, txnID string) error {
	if len(bookingIDs) == 0 {
		return nil
	}
	_, err := db.BookingsCollection.UpdateMany(ctx,
		bson.M{"bookingid": bson.M{"$in": bookingIDs}, "status": models.BookingStatusPending},
		bson.M{"$set": bson.M{
			"status":    models.BookingStatusConfirmed,
			"txnId":     txnID,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	for _, id := range bookingIDs {
		go mq.Emit(context.Background(), "booking-confirmed", models.Index{EntityType: "booking", EntityId: id, Method: "PUT"})
		Broadcast("booking", id, utils.ToJSON(utils.M{"bookingid": id, "status": models.BookingStatusConfirmed}))
	}
	return nil
}
