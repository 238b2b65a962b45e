package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/drivego/drivego-backend/internal/db"
	"github.com/drivego/drivego-backend/internal/models"
)

// VehicleHandler handles the admin fleet catalog CRUD. Uniqueness of
// VIN or plate is not enforced.
type VehicleHandler struct {
	vehicles db.VehicleCollection
}

// NewVehicleHandler creates a vehicle catalog handler.
func NewVehicleHandler(vehicles db.VehicleCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// List handles GET /api/vehicles, newest first.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.FindVehicles(r.Context())
	if err != nil {
		log.WithError(err).Error("Fetch vehicles failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch vehicles")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    vehicles,
	})
}

// Get handles GET /api/vehicles/{id}.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrInvalidID) {
			writeError(w, http.StatusBadRequest, "Invalid vehicle ID")
			return
		}
		log.WithError(err).Error("Fetch vehicle failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch vehicle")
		return
	}
	if vehicle == nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    vehicle,
	})
}

// Create handles POST /api/vehicles.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	created, err := h.vehicles.InsertVehicle(r.Context(), vehicle)
	if err != nil {
		log.WithError(err).Error("Create vehicle failed")
		writeError(w, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    created,
	})
}

// Update handles PUT /api/vehicles/{id} with partial merge semantics:
// only the fields present in the body are written.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var update models.VehicleUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	updated, err := h.vehicles.UpdateVehicle(r.Context(), id, update)
	if err != nil && !errors.Is(err, db.ErrInvalidID) {
		log.WithError(err).Error("Update vehicle failed")
		writeError(w, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    updated,
	})
}

// Delete handles DELETE /api/vehicles/{id}.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	deleted, err := h.vehicles.DeleteVehicle(r.Context(), id)
	if err != nil && !errors.Is(err, db.ErrInvalidID) {
		log.WithError(err).Error("Delete vehicle failed")
		writeError(w, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Vehicle deleted successfully",
	})
}
