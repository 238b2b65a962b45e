package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drivego/drivego-backend/internal/models"
)

// MongoBookingCollection implements BookingCollection for MongoDB.
type MongoBookingCollection struct {
	Collection *mongo.Collection
}

// InsertBooking inserts a booking and returns the persisted record
// with its assigned ID and timestamps.
func (c *MongoBookingCollection) InsertBooking(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	res, err := c.Collection.InsertOne(ctx, booking)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}
	return &booking, nil
}

// FindBookings returns every booking, most recently created first.
func (c *MongoBookingCollection) FindBookings(ctx context.Context) ([]models.Booking, error) {
	return c.find(ctx, bson.M{})
}

// FindBookingsByUser returns a user's bookings, most recently created
// first.
func (c *MongoBookingCollection) FindBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return c.find(ctx, bson.M{"user_id": userID})
}

func (c *MongoBookingCollection) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
