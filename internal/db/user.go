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

// MongoUserCollection implements UserCollection for MongoDB. The same
// type backs both the users and admins collections.
type MongoUserCollection struct {
	Collection *mongo.Collection
}

// InsertUser inserts a new account and returns it with its assigned ID.
func (c *MongoUserCollection) InsertUser(ctx context.Context, user models.User) (*models.User, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	res, err := c.Collection.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return &user, nil
}

// FindUserByEmail finds an account by email. A missing account yields
// (nil, nil).
func (c *MongoUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var user models.User
	err := c.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByID finds an account by its ID. A missing account yields
// (nil, nil).
func (c *MongoUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var user models.User
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpsertUserByEmail creates or replaces the account with the given
// email. Used by the seeder to keep demo accounts current.
func (c *MongoUserCollection) UpsertUserByEmail(ctx context.Context, user models.User) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	now := time.Now()
	set := bson.M{
		"full_name":  user.FullName,
		"email":      user.Email,
		"password":   user.Password,
		"updated_at": now,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)
	_, err := c.Collection.UpdateOne(ctx, bson.M{"email": user.Email}, update, opts)
	return err
}
