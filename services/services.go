package services

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"venuehub/db"
	"venuehub/models"
	"venuehub/mq"
	"venuehub/rdx"
	"venuehub/utils"
	"venuehub/venues"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const servicesCacheKey = "services"

func publicFilter() bson.M {
	return bson.M{"status": bson.M{"$in": []string{
		models.ListingStatusApproved,
		models.ListingStatusActive,
	}}}
}

func validateService(s *models.VendorService) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(s.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(s.Category) == "" {
		fields["category"] = "category is required"
	}
	if s.BasePrice < 0 {
		fields["basePrice"] = "basePrice cannot be negative"
	}
	if !venues.ValidatePricingModel(s.PricingModel) {
		fields["pricingModel"] = "pricingModel must be one of hour, day, week"
	}
	for _, bw := range s.AvailabilityRules.BlockedWeekdays {
		if bw.Weekday < 0 || bw.Weekday > 6 {
			fields["availabilityRules.blockedWeekdays"] = "weekday must be between 0 (Sunday) and 6 (Saturday)"
			break
		}
	}
	return fields
}

// listCacheable reports whether a listing request matches the one cached
// page: no filters, first page, default limit.
func listCacheable(category string, opts utils.QueryOptions) bool {
	return category == "" && opts.City == "" && opts.Page == 1 && opts.Limit == 20
}

// GetServices lists browsable services, optionally filtered by ?category=.
func GetServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)
	category := r.URL.Query().Get("category")

	filter := publicFilter()
	if category != "" {
		filter["category"] = category
	}
	if opts.City != "" {
		filter["city"] = opts.City
	}

	cacheable := listCacheable(category, opts)
	if cacheable {
		if cached, _ := rdx.RdxGet(servicesCacheKey); cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "sponsored", Value: -1}, {Key: "rating.average", Value: -1}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cur, err := db.ServicesCollection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Println("GetServices find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch services")
		return
	}
	defer cur.Close(ctx)

	list := []models.VendorService{}
	if err := cur.All(ctx, &list); err != nil {
		log.Println("GetServices decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read services")
		return
	}

	if cacheable {
		if data := utils.ToJSON(list); data != nil {
			rdx.RdxSetWithTTL(servicesCacheKey, string(data), 2*time.Minute)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func GetService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := publicFilter()
	filter["serviceid"] = ps.ByName("serviceid")

	var svc models.VendorService
	if err := db.ServicesCollection.FindOne(ctx, filter).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Service not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch service")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, svc)
}

func CreateService(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var svc models.VendorService
	if err := utils.DecodeStrict(r.Body, &svc); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if fields := validateService(&svc); len(fields) > 0 {
		utils.RespondWithFieldErrors(w, fields)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	svc.ServiceID = utils.GenerateRandomString(14)
	svc.OwnerID = userID
	svc.Status = models.ListingStatusPending
	svc.Rating = models.Rating{}
	svc.BookedDates = nil
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt

	if _, err := db.ServicesCollection.InsertOne(ctx, svc); err != nil {
		log.Println("CreateService insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating service")
		return
	}

	go mq.Emit(context.Background(), "service-created", models.Index{EntityType: "service", EntityId: svc.ServiceID, Method: "POST"})
	utils.RespondWithJSON(w, http.StatusCreated, svc)
}
