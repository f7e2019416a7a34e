package checkout

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"venuehub/db"
	"venuehub/mailer"
	"venuehub/models"
	"venuehub/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.mongodb.org/mongo-driver/bson"
)

// PriceResolver resolves an item id to its display name and unit price.
type PriceResolver func(ctx context.Context, itemID string) (string, float64, error)

// Mailer sends the post-payment confirmation.
type Mailer interface {
	SendBookingConfirmation(toEmail, bookingRef string, amount float64, currency string) error
}

type mailerFunc func(toEmail, bookingRef string, amount float64, currency string) error

func (f mailerFunc) SendBookingConfirmation(toEmail, bookingRef string, amount float64, currency string) error {
	return f(toEmail, bookingRef, amount, currency)
}

// minorUnits converts a price to cents. Rounding, not truncation: 19.99
// must become 1999, never 1998.
func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// Bridge connects carts to the payment provider. The provider call, the
// transaction write and the mailer are injectable so handlers can be
// exercised without network access.
type Bridge struct {
	webhookSecret   string
	successURL      string
	cancelURL       string
	currency        string
	confirmBookings bool

	createSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	recordTxn     func(ctx context.Context, txn *models.Transaction) error
	mailer        Mailer

	resolvers map[string]PriceResolver
	rLock     sync.RWMutex
}

func NewBridge() *Bridge {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	b := &Bridge{
		webhookSecret:   os.Getenv("STRIPE_WEBHOOK_SECRET"),
		successURL:      envOr("CHECKOUT_SUCCESS_URL", "http://localhost:5173/checkout/success"),
		cancelURL:       envOr("CHECKOUT_CANCEL_URL", "http://localhost:5173/checkout/cancel"),
		currency:        envOr("CHECKOUT_CURRENCY", "usd"),
		confirmBookings: os.Getenv("CHECKOUT_CONFIRM_BOOKINGS") == "true",
		createSession:   session.New,
		recordTxn: func(ctx context.Context, txn *models.Transaction) error {
			_, err := db.TransactionCollection.InsertOne(ctx, txn)
			return err
		},
		mailer:    mailerFunc(mailer.SendBookingConfirmation),
		resolvers: make(map[string]PriceResolver),
	}
	b.registerDefaultResolvers()
	return b
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// RegisterResolver registers a resolver for an item type (thread-safe).
func (b *Bridge) RegisterResolver(itemType string, resolver PriceResolver) {
	b.rLock.Lock()
	defer b.rLock.Unlock()
	b.resolvers[itemType] = resolver
}

func (b *Bridge) getResolver(itemType string) (PriceResolver, error) {
	b.rLock.RLock()
	defer b.rLock.RUnlock()
	resolver, ok := b.resolvers[itemType]
	if !ok {
		return nil, fmt.Errorf("unsupported item type %q", itemType)
	}
	return resolver, nil
}

func (b *Bridge) registerDefaultResolvers() {
	b.RegisterResolver("venue", func(ctx context.Context, itemID string) (string, float64, error) {
		var venue struct {
			Name      string  `bson:"name"`
			BasePrice float64 `bson:"basePrice"`
		}
		if err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": itemID}).Decode(&venue); err != nil {
			return "", 0, err
		}
		return venue.Name, venue.BasePrice, nil
	})

	b.RegisterResolver("service", func(ctx context.Context, itemID string) (string, float64, error) {
		var svc struct {
			Name      string  `bson:"name"`
			BasePrice float64 `bson:"basePrice"`
		}
		if err := db.ServicesCollection.FindOne(ctx, bson.M{"serviceid": itemID}).Decode(&svc); err != nil {
			return "", 0, err
		}
		return svc.Name, svc.BasePrice, nil
	})
}

type checkoutItem struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Quantity int64  `json:"quantity"`
	Image    string `json:"image,omitempty"`
}

type checkoutRequest struct {
	Items      []checkoutItem `json:"items"`
	BookingIDs []string       `json:"bookingIds,omitempty"`
	Email      string         `json:"email,omitempty"`
}

// CreateSession turns cart line items into a hosted checkout session and
// returns its id. Prices come from the stored listings, never the client.
func (b *Bridge) CreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req checkoutRequest
	if err := utils.DecodeStrict(r.Body, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}
	if len(req.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	var total float64
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		resolver, err := b.getResolver(item.Type)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		name, price, err := resolver(ctx, item.ID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown item: "+item.ID)
			return
		}

		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(name),
		}
		if item.Image != "" {
			productData.Images = []*string{stripe.String(item.Image)}
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(b.currency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(minorUnits(price)),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
		total += price * float64(item.Quantity)
	}

	metadata := map[string]string{"userId": userID}
	if len(req.BookingIDs) > 0 {
		metadata["bookingIds"] = strings.Join(req.BookingIDs, ",")
	}
	if req.Email != "" {
		metadata["email"] = req.Email
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(b.successURL),
		CancelURL:  stripe.String(b.cancelURL),
		Metadata:   metadata,
	}
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		params.IdempotencyKey = stripe.String(key)
	}

	sess, err := b.createSession(params)
	if err != nil {
		log.Println("CreateSession provider error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Payment provider unavailable")
		return
	}

	txn := &models.Transaction{
		ID:             utils.GenerateRandomString(18),
		UserID:         userID,
		Type:           "payment",
		Amount:         total,
		Currency:       b.currency,
		Method:         "card",
		Status:         "initiated",
		ProviderSessID: sess.ID,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
		Meta:           models.Meta{"bookingIds": req.BookingIDs},
	}
	if err := b.recordTxn(ctx, txn); err != nil {
		log.Println("CreateSession record txn error:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"sessionId": sess.ID, "url": sess.URL})
}
