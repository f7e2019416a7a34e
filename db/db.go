package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection        *mongo.Collection
	VenuesCollection      *mongo.Collection
	ServicesCollection    *mongo.Collection
	BookingsCollection    *mongo.Collection
	TransactionCollection *mongo.Collection
	AccountsCollection    *mongo.Collection
	IdempotencyCollection *mongo.Collection
	FilesCollection       *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("venuedb")
	UserCollection = database.Collection("users")
	VenuesCollection = database.Collection("venues")
	ServicesCollection = database.Collection("services")
	BookingsCollection = database.Collection("bookings")
	TransactionCollection = database.Collection("transactions")
	AccountsCollection = database.Collection("accounts")
	IdempotencyCollection = database.Collection("idempotency")
	FilesCollection = database.Collection("files")
}
