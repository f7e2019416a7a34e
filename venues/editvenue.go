package venues

import (
	"context"
	"log"
	"net/http"
	"time"

	"venuehub/db"
	"venuehub/models"
	"venuehub/mq"
	"venuehub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// loadOwned fetches a venue and checks the caller owns it or is an admin.
func loadOwned(ctx context.Context, w http.ResponseWriter, r *http.Request, venueID string) (*models.Venue, bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	var venue models.Venue
	err := db.VenuesCollection.FindOne(ctx, bson.M{
		"venueid": venueID,
		"status":  bson.M{"$ne": models.ListingStatusSoftDeleted},
	}).Decode(&venue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
			return nil, false
		}
		log.Println("loadOwned error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch venue")
		return nil, false
	}

	if venue.OwnerID != userID && !utils.Contains(utils.GetRolesFromRequest(r), models.RoleAdmin) {
		utils.RespondWithError(w, http.StatusForbidden, "Not the owner of this venue")
		return nil, false
	}
	return &venue, true
}

// UpdateVenue applies a typed patch. Unknown fields in the payload are
// rejected outright rather than merged in.
func UpdateVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venueID := ps.ByName("venueid")
	if _, ok := loadOwned(ctx, w, r, venueID); !ok {
		return
	}

	var patch models.VenuePatch
	if err := utils.DecodeStrict(r.Body, &patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid patch payload: "+err.Error())
		return
	}

	set := patch.Fields()
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No updatable fields provided")
		return
	}
	if pm, ok := set["pricingModel"].(string); ok && !ValidatePricingModel(pm) {
		utils.RespondWithFieldErrors(w, map[string]string{"pricingModel": "pricingModel must be one of hour, day, week"})
		return
	}
	set["updatedBy"] = utils.GetUserIDFromRequest(r)
	set["updated_at"] = time.Now()

	res := db.VenuesCollection.FindOneAndUpdate(ctx,
		bson.M{"venueid": venueID},
		bson.M{"$set": set},
		mongoAfter(),
	)
	var updated models.Venue
	if err := res.Decode(&updated); err != nil {
		log.Println("UpdateVenue error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update venue")
		return
	}

	go mq.Emit(context.Background(), "venue-updated", models.Index{EntityType: "venue", EntityId: venueID, Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteVenue soft-deletes: the status flips to softDeleted and the document
// stays in storage, excluded from all public reads.
func DeleteVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venueID := ps.ByName("venueid")
	if _, ok := loadOwned(ctx, w, r, venueID); !ok {
		return
	}

	now := time.Now()
	_, err := db.VenuesCollection.UpdateOne(ctx,
		bson.M{"venueid": venueID},
		bson.M{"$set": bson.M{
			"status":     models.ListingStatusSoftDeleted,
			"deletedAt":  now,
			"updated_at": now,
		}},
	)
	if err != nil {
		log.Println("DeleteVenue error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete venue")
		return
	}

	go mq.Emit(context.Background(), "venue-deleted", models.Index{EntityType: "venue", EntityId: venueID, Method: "DELETE"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted", "venueid": venueID})
}

// moderationTargets maps an admin action to the status it applies.
var moderationTargets = map[string]string{
	"approve":    models.ListingStatusApproved,
	"reject":     models.ListingStatusRejected,
	"activate":   models.ListingStatusActive,
	"deactivate": models.ListingStatusInactive,
}

// ModerateVenue applies an admin lifecycle action to a pending or live
// listing. Routes guard this with RequireRoles(admin).
func ModerateVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venueID := ps.ByName("venueid")
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

	res := db.VenuesCollection.FindOneAndUpdate(ctx,
		bson.M{"venueid": venueID, "status": bson.M{"$ne": models.ListingStatusSoftDeleted}},
		bson.M{"$set": bson.M{"status": target, "updated_at": time.Now()}},
		mongoAfter(),
	)
	var updated models.Venue
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
		return
	}

	go mq.Emit(context.Background(), "venue-moderated", models.Index{EntityType: "venue", EntityId: venueID, Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, updated)
}
