package venues

import (
	"context"
	"log"
	"net/http"
	"time"

	"venuehub/db"
	"venuehub/models"
	"venuehub/mq"
	"venuehub/rdx"
	"venuehub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const venuesCacheKey = "venues"

// publicFilter limits reads to listings a customer may see: moderated-in and
// not soft-deleted.
func publicFilter() bson.M {
	return bson.M{"status": bson.M{"$in": []string{
		models.ListingStatusApproved,
		models.ListingStatusActive,
	}}}
}

// listCacheable reports whether a listing request matches the one cached
// page: no filters, first page, default limit.
func listCacheable(opts utils.QueryOptions) bool {
	return opts.City == "" && opts.Search == "" && opts.Page == 1 && opts.Limit == 20
}

// GetVenues lists browsable venues. Sponsored listings sort first, then by
// rating. The unfiltered listing is cached in Redis.
func GetVenues(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	filter := publicFilter()
	if opts.City != "" {
		filter["city"] = opts.City
	}
	if opts.Search != "" {
		filter["name"] = bson.M{"$regex": opts.Search, "$options": "i"}
	}

	cacheable := listCacheable(opts)
	if cacheable {
		if cached, _ := rdx.RdxGet(venuesCacheKey); cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "sponsored", Value: -1}, {Key: "rating.average", Value: -1}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cur, err := db.VenuesCollection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Println("GetVenues find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch venues")
		return
	}
	defer cur.Close(ctx)

	venues := []models.Venue{}
	if err := cur.All(ctx, &venues); err != nil {
		log.Println("GetVenues decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read venues")
		return
	}

	if cacheable {
		if data := utils.ToJSON(venues); data != nil {
			rdx.RdxSetWithTTL(venuesCacheKey, string(data), 2*time.Minute)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, venues)
}

// GetVenue fetches one venue by id. Soft-deleted and rejected listings are
// invisible here even though the documents remain in storage.
func GetVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("venueid")
	filter := publicFilter()
	filter["venueid"] = id

	var venue models.Venue
	if err := db.VenuesCollection.FindOne(ctx, filter).Decode(&venue); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
			return
		}
		log.Println("GetVenue error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch venue")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, venue)
}

// CreateVenue accepts a vendor submission. New venues always enter the
// moderation queue as pending regardless of what the payload claims.
func CreateVenue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var venue models.Venue
	if err := utils.DecodeStrict(r.Body, &venue); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if fields := ValidateVenue(&venue); len(fields) > 0 {
		utils.RespondWithFieldErrors(w, fields)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	venue.VenueID = utils.GenerateRandomString(14)
	venue.OwnerID = userID
	venue.Status = models.ListingStatusPending
	venue.Rating = models.Rating{}
	venue.BookedDates = nil
	venue.CreatedAt = time.Now()
	venue.UpdatedAt = venue.CreatedAt

	if _, err := db.VenuesCollection.InsertOne(ctx, venue); err != nil {
		log.Println("CreateVenue insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating venue")
		return
	}

	go mq.Emit(context.Background(), "venue-created", models.Index{EntityType: "venue", EntityId: venue.VenueID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, venue)
}
