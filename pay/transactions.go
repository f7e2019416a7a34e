package pay

import (
	"log"
	"net/http"

	"venuehub/db"
	"venuehub/models"
	"venuehub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListTransactions returns the caller's payment history, newest first.
func ListTransactions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	opts := utils.ParseQueryOptions(r)
	findOptions := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	filter := bson.M{"userid": userID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["state"] = status
	}

	cur, err := db.TransactionCollection.Find(ctx, filter, findOptions)
	if err != nil {
		log.Printf("ListTransactions: DB error for user %s, err=%v\n", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	defer cur.Close(ctx)

	txns := []models.Transaction{}
	if err = cur.All(ctx, &txns); err != nil {
		log.Printf("ListTransactions: decode error for user %s, err=%v\n", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"transactions": txns})
}

// GetTransaction returns one of the caller's transactions by id.
func GetTransaction(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var txn models.Transaction
	err := db.TransactionCollection.FindOne(ctx, bson.M{
		"_id":    ps.ByName("txnid"),
		"userid": userID,
	}).Decode(&txn)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, txn)
}
