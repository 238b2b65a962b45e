package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/drivego/drivego-backend/internal/db"
	"github.com/drivego/drivego-backend/internal/email"
	"github.com/drivego/drivego-backend/internal/models"
)

// BookingHandler handles booking creation and listing. It reads the
// vehicle catalog, writes the booking store and dispatches the
// confirmation email without awaiting it; the two stores are not
// coupled by any transaction.
type BookingHandler struct {
	vehicles     db.VehicleCollection
	bookings     db.BookingCollection
	sender       email.Sender
	emailTimeout time.Duration
}

// NewBookingHandler creates a booking handler. The email timeout bounds
// the detached confirmation send (EMAIL_TIMEOUT, default 15s).
func NewBookingHandler(vehicles db.VehicleCollection, bookings db.BookingCollection, sender email.Sender) *BookingHandler {
	timeout := 15 * time.Second
	if v := os.Getenv("EMAIL_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}
	return &BookingHandler{
		vehicles:     vehicles,
		bookings:     bookings,
		sender:       sender,
		emailTimeout: timeout,
	}
}

// Create handles POST /api/bookings.
//
// Dates, day count and price arrive client-computed and are stored as
// supplied. No availability check is made: overlapping bookings for the
// same vehicle all succeed.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Zero totalDays/totalPrice is treated as missing, like every other
	// empty field.
	if !req.HasRequiredFields() {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), req.VehicleID)
	if err != nil && !errors.Is(err, db.ErrInvalidID) {
		log.WithError(err).Error("Booking error: vehicle lookup failed")
		writeError(w, http.StatusInternalServerError, "Booking failed")
		return
	}
	if vehicle == nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	resolvedMethod := models.ResolvePaymentMethod(req.PaymentMethod)
	booking := models.Booking{
		VehicleID:       req.VehicleID,
		VehicleName:     vehicle.DisplayName(),
		UserID:          req.UserID,
		UserEmail:       req.UserEmail,
		PickupDate:      req.PickupDate,
		ReturnDate:      req.ReturnDate,
		PickupLocation:  req.PickupLocation,
		TotalDays:       req.TotalDays,
		TotalPrice:      req.TotalPrice,
		NumberOfDrivers: models.ResolveNumberOfDrivers(req.NumberOfDrivers),
		PaymentMethod:   resolvedMethod,
		PaymentStatus:   models.ResolvePaymentStatus(req.PaymentStatus, resolvedMethod),
	}

	persisted, err := h.bookings.InsertBooking(r.Context(), booking)
	if err != nil {
		log.WithError(err).Error("Booking error: insert failed")
		writeError(w, http.StatusInternalServerError, "Booking failed")
		return
	}

	// Fire-and-forget confirmation email. Failures are logged and never
	// affect the response already owed to the caller.
	go h.sendConfirmation(*persisted)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"booking": persisted,
	})
}

func (h *BookingHandler) sendConfirmation(booking models.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), h.emailTimeout)
	defer cancel()
	if err := h.sender.SendBookingConfirmation(ctx, booking.UserEmail, booking); err != nil {
		log.WithError(err).WithField("booking_id", booking.ID.Hex()).Error("Email failed")
	}
}

// ListByUser handles GET /api/bookings/user/{userId}, returning the
// user's bookings newest first as a bare array.
func (h *BookingHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	bookings, err := h.bookings.FindBookingsByUser(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Fetch user bookings failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// ListAll handles GET /api/bookings, returning every booking newest
// first. Admin-only by caller convention; the server enforces nothing.
func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.FindBookings(r.Context())
	if err != nil {
		log.WithError(err).Error("Fetch all bookings failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
