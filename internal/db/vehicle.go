package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drivego/drivego-backend/internal/models"
)

// ErrInvalidID is returned when a path id is not a valid ObjectID hex.
var ErrInvalidID = errors.New("invalid id")

// MongoVehicleCollection implements VehicleCollection for MongoDB.
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// InsertVehicle inserts a vehicle and returns it with its assigned ID
// and timestamps.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	now := time.Now()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now
	res, err := c.Collection.InsertOne(ctx, vehicle)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		vehicle.ID = oid
	}
	return &vehicle, nil
}

// FindVehicles returns all vehicles, most recently created first.
func (c *MongoVehicleCollection) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := c.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	vehicles := []models.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindVehicleByID finds a vehicle by its ID. A missing vehicle yields
// (nil, nil); a malformed id yields ErrInvalidID.
func (c *MongoVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var vehicle models.Vehicle
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

// UpdateVehicle applies a partial edit ($set of the supplied fields
// only) and returns the updated document, or (nil, nil) when the id
// does not resolve.
func (c *MongoVehicleCollection) UpdateVehicle(ctx context.Context, id string, update models.VehicleUpdate) (*models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	set := updateFields(update)
	set["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var vehicle models.Vehicle
	err = c.Collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

// DeleteVehicle deletes a vehicle by its ID and reports whether a
// document was removed.
func (c *MongoVehicleCollection) DeleteVehicle(ctx context.Context, id string) (bool, error) {
	if c.Collection == nil {
		return false, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrInvalidID
	}
	res, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func updateFields(u models.VehicleUpdate) bson.M {
	set := bson.M{}
	if u.Make != nil {
		set["make"] = *u.Make
	}
	if u.Model != nil {
		set["model"] = *u.Model
	}
	if u.Year != nil {
		set["year"] = *u.Year
	}
	if u.VIN != nil {
		set["vin"] = *u.VIN
	}
	if u.LicensePlate != nil {
		set["license_plate"] = *u.LicensePlate
	}
	if u.Color != nil {
		set["color"] = *u.Color
	}
	if u.Mileage != nil {
		set["mileage"] = *u.Mileage
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.PurchaseDate != nil {
		set["purchase_date"] = *u.PurchaseDate
	}
	if u.LastServiceDate != nil {
		set["last_service_date"] = *u.LastServiceDate
	}
	if u.Notes != nil {
		set["notes"] = *u.Notes
	}
	if u.ImageURL != nil {
		set["image_url"] = *u.ImageURL
	}
	if u.DailyRate != nil {
		set["daily_rate"] = *u.DailyRate
	}
	return set
}
