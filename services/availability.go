package services

import (
	"context"

	"venuehub/db"
	"venuehub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// AppendBookedDates marks dates as booked on the service document. Called
// from the bookings package on booking creation.
func AppendBookedDates(ctx context.Context, serviceID, bookingID string, dates []string) error {
	entries := make([]models.BookedDate, 0, len(dates))
	for _, d := range dates {
		entries = append(entries, models.BookedDate{Date: d, BookingID: bookingID})
	}
	_, err := db.ServicesCollection.UpdateOne(ctx,
		bson.M{"serviceid": serviceID},
		bson.M{"$push": bson.M{"bookedDates": bson.M{"$each": entries}}},
	)
	return err
}

// ReleaseBookedDates removes a booking's holds, used on cancellation.
func ReleaseBookedDates(ctx context.Context, serviceID, bookingID string) error {
	_, err := db.ServicesCollection.UpdateOne(ctx,
		bson.M{"serviceid": serviceID},
		bson.M{"$pull": bson.M{"bookedDates": bson.M{"bookingId": bookingID}}},
	)
	return err
}
