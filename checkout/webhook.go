package checkout

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"venuehub/bookings"
	"venuehub/models"
	"venuehub/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const webhookBodyLimit = 1 << 16

// HandleWebhook verifies the provider signature, records the settled
// transaction and notifies the customer. The booking-status write stays
// behind CHECKOUT_CONFIRM_BOOKINGS until reconciliation is in place;
// without it the outcome is only logged.
func (b *Bridge) HandleWebhook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, webhookBodyLimit))
	if err != nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Failed to read webhook body")
		return
	}

	event, err := webhook.ConstructEventWithOptions(payload, r.Header.Get("Stripe-Signature"), b.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		log.Println("webhook signature verification failed:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Println("webhook payload parse error:", err)
			utils.RespondWithError(w, http.StatusBadRequest, "Malformed session payload")
			return
		}
		b.handleSessionCompleted(r.Context(), &sess)
	default:
		log.Println("webhook ignoring event type:", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}

func (b *Bridge) handleSessionCompleted(ctx context.Context, sess *stripe.CheckoutSession) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	userID := sess.Metadata["userId"]
	bookingIDs := splitIDs(sess.Metadata["bookingIds"])

	txn := &models.Transaction{
		ID:             utils.GenerateRandomString(18),
		UserID:         userID,
		Type:           "payment",
		Amount:         float64(sess.AmountTotal) / 100.0,
		Currency:       string(sess.Currency),
		Method:         "card",
		Status:         "success",
		ProviderSessID: sess.ID,
		ProviderTxnID:  paymentIntentID(sess),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
		Meta:           models.Meta{"bookingIds": bookingIDs},
	}
	if len(bookingIDs) == 1 {
		txn.BookingID = bookingIDs[0]
	}
	if err := b.recordTxn(ctx, txn); err != nil {
		log.Println("webhook record txn error:", err)
	}

	if email := customerEmail(sess); email != "" {
		ref := txn.BookingID
		if ref == "" {
			ref = sess.ID
		}
		if err := b.mailer.SendBookingConfirmation(email, ref, txn.Amount, txn.Currency); err != nil {
			log.Println("webhook confirmation mail error:", err)
		}
	}

	if !b.confirmBookings {
		log.Printf("checkout session %s settled; booking confirmation deferred for %v", sess.ID, bookingIDs)
		return
	}
	if err := bookings.ConfirmFromPayment(ctx, bookingIDs, txn.ID); err != nil {
		log.Println("webhook booking confirm error:", err)
	}
}

func paymentIntentID(sess *stripe.CheckoutSession) string {
	if sess.PaymentIntent != nil {
		return sess.PaymentIntent.ID
	}
	return ""
}

func customerEmail(sess *stripe.CheckoutSession) string {
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		return sess.CustomerDetails.Email
	}
	return sess.Metadata["email"]
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
