package models

import (
	"encoding/json"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment methods and statuses a booking can carry.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Booking is a persisted record of a user renting a vehicle for a date
// range. Bookings are only ever created, never updated or deleted; a
// later payment confirmation arrives as a second booking creation with
// an explicit "paid" status.
type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID       string             `bson:"vehicle_id" json:"vehicleId"`
	VehicleName     string             `bson:"vehicle_name" json:"vehicleName"` // "{year} {make} {model}" at booking time
	UserID          string             `bson:"user_id" json:"userId"`
	UserEmail       string             `bson:"user_email" json:"userEmail"`
	PickupDate      string             `bson:"pickup_date" json:"pickupDate"`
	ReturnDate      string             `bson:"return_date" json:"returnDate"`
	PickupLocation  string             `bson:"pickup_location" json:"pickupLocation"`
	TotalDays       int                `bson:"total_days" json:"totalDays"`
	TotalPrice      float64            `bson:"total_price" json:"totalPrice"`
	NumberOfDrivers int                `bson:"number_of_drivers" json:"numberOfDrivers"`
	PaymentMethod   string             `bson:"payment_method" json:"paymentMethod"` // "cash" or "card"
	PaymentStatus   string             `bson:"payment_status" json:"paymentStatus"` // "pending" or "paid"
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// BookingRequest is the booking-creation body. Dates and price are
// computed by the client and stored as supplied. NumberOfDrivers is
// decoded loosely because callers send numbers, strings or nothing.
type BookingRequest struct {
	VehicleID       string          `json:"vehicleId"`
	PickupDate      string          `json:"pickupDate"`
	ReturnDate      string          `json:"returnDate"`
	PickupLocation  string          `json:"pickupLocation"`
	TotalDays       int             `json:"totalDays"`
	TotalPrice      float64         `json:"totalPrice"`
	UserID          string          `json:"userId"`
	UserEmail       string          `json:"userEmail"`
	NumberOfDrivers json.RawMessage `json:"numberOfDrivers"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
}

// HasRequiredFields reports whether every required field is present.
// Zero TotalDays or TotalPrice counts as missing.
func (r *BookingRequest) HasRequiredFields() bool {
	return r.VehicleID != "" &&
		r.PickupDate != "" &&
		r.ReturnDate != "" &&
		r.PickupLocation != "" &&
		r.TotalDays != 0 &&
		r.TotalPrice != 0 &&
		r.UserID != "" &&
		r.UserEmail != ""
}

// ResolvePaymentMethod maps the caller-supplied method to its final
// value: exactly "cash" stays cash, everything else becomes card.
func ResolvePaymentMethod(method string) string {
	if method == PaymentMethodCash {
		return PaymentMethodCash
	}
	return PaymentMethodCard
}

// ResolvePaymentStatus keeps an explicit "paid"/"pending" and otherwise
// defaults by resolved method: cash starts pending, card counts as paid.
func ResolvePaymentStatus(status, resolvedMethod string) string {
	if status == PaymentStatusPaid || status == PaymentStatusPending {
		return status
	}
	if resolvedMethod == PaymentMethodCash {
		return PaymentStatusPending
	}
	return PaymentStatusPaid
}

// ResolveNumberOfDrivers coerces the raw driver count to a positive
// integer, defaulting to 1 when absent, zero, negative or non-numeric.
func ResolveNumberOfDrivers(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 1
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		// Strings like "2" still count, matching the loose coercion
		// the frontend relies on.
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 1
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 1
		}
		n = parsed
	}
	if n < 1 {
		return 1
	}
	return int(n)
}
