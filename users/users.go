package users

import (
	"context"
	"log"
	"net/http"
	"time"

	"venuehub/db"
	"venuehub/models"
	"venuehub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// allowedRoles are the roles a user may pick during profile completion.
// Admin is only ever granted out of band.
var allowedRoles = map[string]bool{
	models.RoleCustomer: true,
	models.RoleVendor:   true,
}

func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Println("GetProfile error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"user":     user,
		"complete": user.Complete(),
	})
}

func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var patch models.UserPatch
	if err := utils.DecodeStrict(r.Body, &patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid patch payload: "+err.Error())
		return
	}
	set := patch.Fields()
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No updatable fields provided")
		return
	}
	set["updated_at"] = time.Now()

	res := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.User
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// CompleteProfile records the role chosen at the end of signup. Choosing a
// role the account already holds is a no-op; vendors keep any customer role
// they had.
func CompleteProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := utils.DecodeStrict(r.Body, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if !allowedRoles[body.Role] {
		utils.RespondWithError(w, http.StatusBadRequest, "Role must be customer or vendor")
		return
	}

	res := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{
			"$addToSet": bson.M{"role": body.Role},
			"$set":      bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.User
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	ensureAccount(ctx, userID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": updated, "complete": updated.Complete()})
}

// ensureAccount upserts the billing account that transactions settle
// against.
func ensureAccount(ctx context.Context, userID string) {
	now := time.Now()
	_, err := db.AccountsCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{
			"$setOnInsert": bson.M{
				"userid":         userID,
				"currency":       "usd",
				"status":         "active",
				"cached_balance": 0.0,
				"created_at":     now,
			},
			"$set": bson.M{"updated_at": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Println("ensureAccount error:", err)
	}
}

func GetAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var acc models.Account
	err := db.AccountsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&acc)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Account not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, acc)
}
