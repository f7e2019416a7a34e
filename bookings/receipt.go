package bookings

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"venuehub/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

func receiptSecret() []byte {
	if s := os.Getenv("RECEIPT_HMAC_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev-only-receipt-secret")
}

// GenerateQRPayload returns bookingID|userID|timestamp|signature so a door
// scanner can verify the receipt offline with the shared secret.
func GenerateQRPayload(bookingID, userID string, issuedAt time.Time) string {
	data := fmt.Sprintf("%s|%s|%d", bookingID, userID, issuedAt.Unix())

	h := hmac.New(sha256.New, receiptSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyQRPayload checks the signature on a scanned payload and returns the
// embedded booking id.
func VerifyQRPayload(payload string) (string, bool) {
	idx := strings.LastIndex(payload, "|")
	if idx < 0 {
		return "", false
	}
	data, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, receiptSecret())
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", false
	}

	parts := strings.Split(data, "|")
	if len(parts) != 3 {
		return "", false
	}
	return parts[0], true
}

// PrintReceipt renders the booking as a PDF with a signed QR code.
func PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	booking, ok := loadOwnBooking(ctx, w, r, ps.ByName("bookingid"))
	if !ok {
		return
	}

	qrPayload := GenerateQRPayload(booking.BookingID, booking.UserID, time.Now())
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Booking: %s", booking.BookingID))
	pdf.Ln(8)
	if booking.VenueID != "" {
		pdf.Cell(0, 10, fmt.Sprintf("Venue: %s", booking.VenueID))
		pdf.Ln(8)
	}
	if len(booking.ServiceIDs) > 0 {
		pdf.Cell(0, 10, fmt.Sprintf("Services: %s", strings.Join(booking.ServiceIDs, ", ")))
		pdf.Ln(8)
	}
	pdf.Cell(0, 10, fmt.Sprintf("Dates: %s", strings.Join(booking.Dates, ", ")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Amount: %.2f %s", booking.Amount, strings.ToUpper(booking.Currency)))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", booking.Status))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+booking.BookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
