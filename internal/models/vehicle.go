package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle statuses. The booking workflow does not check these; a
// vehicle in maintenance can still be booked.
const (
	VehicleStatusActive      = "active"
	VehicleStatusMaintenance = "maintenance"
	VehicleStatusRetired     = "retired"
)

// Vehicle represents a rentable fleet vehicle.
type Vehicle struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Make            string             `bson:"make" json:"make"`
	Model           string             `bson:"model" json:"model"`
	Year            int                `bson:"year" json:"year"`
	VIN             string             `bson:"vin" json:"vin"`
	LicensePlate    string             `bson:"license_plate" json:"licensePlate"`
	Color           string             `bson:"color" json:"color"`
	Mileage         int                `bson:"mileage" json:"mileage"`
	Status          string             `bson:"status" json:"status"` // "active", "maintenance" or "retired"
	PurchaseDate    string             `bson:"purchase_date" json:"purchaseDate"`
	LastServiceDate string             `bson:"last_service_date,omitempty" json:"lastServiceDate,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	ImageURL        string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	DailyRate       float64            `bson:"daily_rate" json:"dailyRate"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// DisplayName returns the name snapshotted into bookings,
// e.g. "2020 Honda Civic".
func (v *Vehicle) DisplayName() string {
	return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
}

// VehicleUpdate carries a partial vehicle edit. Nil fields are left
// untouched by the store (merge semantics).
type VehicleUpdate struct {
	Make            *string  `json:"make"`
	Model           *string  `json:"model"`
	Year            *int     `json:"year"`
	VIN             *string  `json:"vin"`
	LicensePlate    *string  `json:"licensePlate"`
	Color           *string  `json:"color"`
	Mileage         *int     `json:"mileage"`
	Status          *string  `json:"status"`
	PurchaseDate    *string  `json:"purchaseDate"`
	LastServiceDate *string  `json:"lastServiceDate"`
	Notes           *string  `json:"notes"`
	ImageURL        *string  `json:"imageUrl"`
	DailyRate       *float64 `json:"dailyRate"`
}
