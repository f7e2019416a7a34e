package bookings

import (
	"strings"
	"testing"
	"time"

	"venuehub/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, canTransition(models.BookingStatusPending, models.BookingStatusConfirmed))
	assert.True(t, canTransition(models.BookingStatusPending, models.BookingStatusCancelled))
	assert.True(t, canTransition(models.BookingStatusConfirmed, models.BookingStatusCancelled))

	assert.False(t, canTransition(models.BookingStatusCancelled, models.BookingStatusConfirmed))
	assert.False(t, canTransition(models.BookingStatusCancelled, models.BookingStatusPending))
	assert.False(t, canTransition(models.BookingStatusConfirmed, models.BookingStatusPending))
	assert.False(t, canTransition("bogus", models.BookingStatusConfirmed))
}

func TestFirstBlockedDateCoversServiceHolds(t *testing.T) {
	svc := models.VendorService{
		ServiceID:   "svc_1",
		BookedDates: []models.BookedDate{{Date: "2026-09-12", BookingID: "bk_other"}},
	}

	free := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
	taken := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	_, blocked := firstBlockedDate([]time.Time{free}, svc.BookedDates, svc.AvailabilityRules)
	assert.False(t, blocked)

	got, blocked := firstBlockedDate([]time.Time{free, taken}, svc.BookedDates, svc.AvailabilityRules)
	assert.True(t, blocked)
	assert.Equal(t, taken, got)
}

func TestFirstBlockedDateWeekdayRule(t *testing.T) {
	rules := models.AvailabilityRules{
		BlockedWeekdays: []models.BlockedWeekday{{Weekday: 0}}, // Sundays
	}
	sunday := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	got, blocked := firstBlockedDate([]time.Time{sunday}, nil, rules)
	assert.True(t, blocked)
	assert.Equal(t, sunday, got)
}

func TestQRPayloadRoundTrip(t *testing.T) {
	issued := time.Now()
	payload := GenerateQRPayload("bk_12345", "usr_678", issued)

	assert.True(t, strings.HasPrefix(payload, "bk_12345|usr_678|"))
	assert.Equal(t, 4, len(strings.Split(payload, "|")))

	id, ok := VerifyQRPayload(payload)
	assert.True(t, ok)
	assert.Equal(t, "bk_12345", id)
}

func TestQRPayloadTamperDetected(t *testing.T) {
	payload := GenerateQRPayload("bk_12345", "usr_678", time.Now())

	tampered := strings.Replace(payload, "bk_12345", "bk_99999", 1)
	_, ok := VerifyQRPayload(tampered)
	assert.False(t, ok)

	_, ok = VerifyQRPayload("no-signature-here")
	assert.False(t, ok)
}
