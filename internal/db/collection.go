package db

import (
	"context"

	"github.com/drivego/drivego-backend/internal/models"
)

// VehicleCollection defines the interface for vehicle catalog operations.
// FindVehicleByID returns (nil, nil) when no vehicle matches, so callers
// can distinguish "absent" from a store failure.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error)
	FindVehicles(ctx context.Context) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, update models.VehicleUpdate) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) (bool, error)
}

// BookingCollection defines the interface for booking store operations.
// Bookings are insert-only; both finders return newest-first.
type BookingCollection interface {
	InsertBooking(ctx context.Context, booking models.Booking) (*models.Booking, error)
	FindBookings(ctx context.Context) ([]models.Booking, error)
	FindBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

// UserCollection defines the interface for account operations, shared
// by the users and admins collections.
type UserCollection interface {
	InsertUser(ctx context.Context, user models.User) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	UpsertUserByEmail(ctx context.Context, user models.User) error
}
