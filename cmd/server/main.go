package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	gorilla "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/drivego/drivego-backend/internal/auth"
	"github.com/drivego/drivego-backend/internal/db"
	"github.com/drivego/drivego-backend/internal/email"
	"github.com/drivego/drivego-backend/internal/handlers"
	"github.com/drivego/drivego-backend/internal/middleware"
)

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"ok":true,"service":"drivego-backend"}`))
}

// corsOptions builds the CORS policy from CORS_ORIGIN, a comma-separated
// origin list. Empty means allow any origin.
func corsOptions() []gorilla.CORSOption {
	opts := []gorilla.CORSOption{
		gorilla.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		gorilla.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorilla.AllowCredentials(),
	}
	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ORIGIN"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return append(opts, gorilla.AllowedOrigins(origins))
}

func main() {
	godotenv.Load()

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	log.Info("Connected to MongoDB")

	database := client.Database(db.DatabaseName())
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection(db.VehiclesCollection)}
	bookings := &db.MongoBookingCollection{Collection: database.Collection(db.BookingsCollection)}
	users := &db.MongoUserCollection{Collection: database.Collection(db.UsersCollection)}
	admins := &db.MongoUserCollection{Collection: database.Collection(db.AdminsCollection)}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("Failed to create auth service")
	}

	bookingHandler := handlers.NewBookingHandler(vehicles, bookings, email.NewSendGridSender())
	vehicleHandler := handlers.NewVehicleHandler(vehicles)
	authHandler := handlers.NewAuthHandler(authService, users, admins)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := mux.NewRouter()
	r.HandleFunc("/api/health", healthHandler).Methods(http.MethodGet)

	r.HandleFunc("/api/vehicles", vehicleHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/api/vehicles", vehicleHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/api/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.Handle("/api/auth/me", authMiddleware.Authenticate(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

	r.HandleFunc("/api/bookings", bookingHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/bookings", bookingHandler.ListAll).Methods(http.MethodGet)
	r.HandleFunc("/api/bookings/user/{userId}", bookingHandler.ListByUser).Methods(http.MethodGet)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:    ":" + port,
		Handler: gorilla.CORS(corsOptions()...)(r),
	}

	go func() {
		log.WithField("port", port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("HTTP shutdown failed")
	}
	if err := client.Disconnect(ctx); err != nil {
		log.WithError(err).Error("MongoDB disconnect failed")
	}
}
