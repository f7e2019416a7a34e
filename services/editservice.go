package services

import (
	"context"
	"log"
	"net/http"
	"time"

	"venuehub/db"
	"venuehub/models"
	"venuehub/mq"
	"venuehub/utils"
	"venuehub/venues"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func loadOwned(ctx context.Context, w http.ResponseWriter, r *http.Request, serviceID string) (*models.VendorService, bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	var svc models.VendorService
	err := db.ServicesCollection.FindOne(ctx, bson.M{
		"serviceid": serviceID,
		"status":    bson.M{"$ne": models.ListingStatusSoftDeleted},
	}).Decode(&svc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Service not found")
			return nil, false
		}
		log.Println("services loadOwned error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch service")
		return nil, false
	}

	if svc.OwnerID != userID && !utils.Contains(utils.GetRolesFromRequest(r), models.RoleAdmin) {
		utils.RespondWithError(w, http.StatusForbidden, "Not the owner of this service")
		return nil, false
	}
	return &svc, true
}

func UpdateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	serviceID := ps.ByName("serviceid")
	if _, ok := loadOwned(ctx, w, r, serviceID); !ok {
		return
	}

	var patch models.ServicePatch
	if err := utils.DecodeStrict(r.Body, &patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid patch payload: "+err.Error())
		return
	}

	set := patch.Fields()
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No updatable fields provided")
		return
	}
	if pm, ok := set["pricingModel"].(string); ok && !venues.ValidatePricingModel(pm) {
		utils.RespondWithFieldErrors(w, map[string]string{"pricingModel": "pricingModel must be one of hour, day, week"})
		return
	}
	set["updated_at"] = time.Now()

	res := db.ServicesCollection.FindOneAndUpdate(ctx,
		bson.M{"serviceid": serviceID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.VendorService
	if err := res.Decode(&updated); err != nil {
		log.Println("UpdateService error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update service")
		return
	}

	go mq.Emit(context.Background(), "service-updated", models.Index{EntityType: "service", EntityId: serviceID, Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	serviceID := ps.ByName("serviceid")
	if _, ok := loadOwned(ctx, w, r, serviceID); !ok {
		return
	}

	now := time.Now()
	_, err := db.ServicesCollection.UpdateOne(ctx,
		bson.M{"serviceid": serviceID},
		bson.M{"$set": bson.M{
			"status":     models.ListingStatusSoftDeleted,
			"deletedAt":  now,
			"updated_at": now,
		}},
	)
	if err != nil {
		log.Println("DeleteService error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	go mq.Emit(context.Background(), "service-deleted", models.Index{EntityType: "service", EntityId: serviceID, Method: "DELETE"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted", "serviceid": serviceID})
}

var moderationTargets = map[string]string{
	"approve":    models.ListingStatusApproved,
	"reject":     models.ListingStatusRejected,
	"activate":   models.ListingStatusActive,
	"deactivate": models.ListingStatusInactive,
}

func ModerateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	serviceID := ps.ByName("serviceid")
	var body struct {
		Action string `json:"action"`
	}
	if err := utils.DecodeStrict(r.Body, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	target, ok := moderationTargets[body.Action]
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown moderation action")
		return
	}

	res := db.ServicesCollection.FindOneAndUpdate(ctx,
		bson.M{"serviceid": serviceID, "status": bson.M{"$ne": models.ListingStatusSoftDeleted}},
		bson.M{"$set": bson.M{"status": target, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.VendorService
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}

	go mq.Emit(context.Background(), "service-moderated", models.Index{EntityType: "service", EntityId: serviceID, Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, updated)
}
