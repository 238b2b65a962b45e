package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the rental backend.
const (
	VehiclesCollection = "vehicles"
	BookingsCollection = "bookings"
	UsersCollection    = "users"
	AdminsCollection   = "admins"
)

// ConnectMongo connects to MongoDB using the MONGO_URI environment
// variable. The client is built once at startup and shared by every
// request handler.
func ConnectMongo() (*mongo.Client, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// DatabaseName returns the database the backend uses, from MONGO_DB.
func DatabaseName() string {
	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = "drivego"
	}
	return name
}
