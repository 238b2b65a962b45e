package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/drivego/drivego-backend/internal/auth"
	"github.com/drivego/drivego-backend/internal/db"
	"github.com/drivego/drivego-backend/internal/models"
)

// envOr returns the value of key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// starterVehicles are inserted once, only when the catalog is empty.
func starterVehicles() []models.Vehicle {
	return []models.Vehicle{
		{
			Make:            "Toyota",
			Model:           "Prius",
			Year:            2018,
			VIN:             "JTDBR32E720123456",
			LicensePlate:    "WP-CAB-1234",
			Color:           "White",
			Mileage:         54000,
			Status:          models.VehicleStatusActive,
			PurchaseDate:    "2023-01-15",
			LastServiceDate: "2025-11-20",
			Notes:           "Fuel efficient hybrid",
			DailyRate:       12000,
		},
		{
			Make:            "Honda",
			Model:           "Civic",
			Year:            2020,
			VIN:             "2HGFC2F69LH123456",
			LicensePlate:    "WP-CAD-7788",
			Color:           "Silver",
			Mileage:         42000,
			Status:          models.VehicleStatusActive,
			PurchaseDate:    "2023-06-10",
			LastServiceDate: "2025-10-05",
			Notes:           "Comfortable city car",
			DailyRate:       15000,
		},
	}
}

func upsertAccount(ctx context.Context, accounts db.UserCollection, authService *auth.Service, email, password, fullName string) error {
	hashed, err := authService.HashPassword(password)
	if err != nil {
		return err
	}
	return accounts.UpsertUserByEmail(ctx, models.User{
		FullName: fullName,
		Email:    email,
		Password: hashed,
	})
}

func main() {
	godotenv.Load()

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer client.Disconnect(ctx)

	database := client.Database(db.DatabaseName())
	users := &db.MongoUserCollection{Collection: database.Collection(db.UsersCollection)}
	admins := &db.MongoUserCollection{Collection: database.Collection(db.AdminsCollection)}
	vehicles := database.Collection(db.VehiclesCollection)

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("Failed to create auth service")
	}

	adminEmail := envOr("DEMO_ADMIN_EMAIL", "admin@drivego.demo")
	if err := upsertAccount(ctx, admins, authService,
		adminEmail,
		envOr("DEMO_ADMIN_PASSWORD", "Admin1234!"),
		envOr("DEMO_ADMIN_NAME", "Demo Admin"),
	); err != nil {
		log.WithError(err).Fatal("Seed failed: admin upsert")
	}

	userEmail := envOr("DEMO_USER_EMAIL", "user@drivego.demo")
	if err := upsertAccount(ctx, users, authService,
		userEmail,
		envOr("DEMO_USER_PASSWORD", "User1234!"),
		envOr("DEMO_USER_NAME", "Demo User"),
	); err != nil {
		log.WithError(err).Fatal("Seed failed: user upsert")
	}

	count, err := vehicles.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.WithError(err).Fatal("Seed failed: vehicle count")
	}
	if count == 0 {
		catalog := &db.MongoVehicleCollection{Collection: vehicles}
		for _, v := range starterVehicles() {
			if _, err := catalog.InsertVehicle(ctx, v); err != nil {
				log.WithError(err).Fatal("Seed failed: vehicle insert")
			}
		}
		log.WithField("count", len(starterVehicles())).Info("Seeded starter vehicles")
	}

	log.WithFields(log.Fields{
		"admin": adminEmail,
		"user":  userEmail,
	}).Info("Demo accounts ready")
}
