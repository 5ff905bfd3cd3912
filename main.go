package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-booking-api/config"
	"hotel-booking-api/controllers"
	"hotel-booking-api/routes"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("database connection established, migrations applied")

	notifier := utils.NewSMTPNotifier(cfg.SMTP)

	// Services
	guestService := services.NewGuestService(db)
	roomService := services.NewRoomService(db)
	roomTypeService := services.NewRoomTypeService(db)
	availabilityService := services.NewAvailabilityService(db)
	bookingService := services.NewBookingService(db, notifier)

	// Controllers
	bookingController := controllers.NewBookingController(bookingService, availabilityService)
	guestController := controllers.NewGuestController(guestService)
	roomController := controllers.NewRoomController(roomService)
	roomTypeController := controllers.NewRoomTypeController(roomTypeService)

	router := routes.SetupRouter(bookingController, guestController, roomController, roomTypeController, cfg.CORSOrigins)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown on interrupt.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped gracefully")
}
