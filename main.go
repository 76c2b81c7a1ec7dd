package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Eurie-R/IMS-CristinaVilla/config"
	"github.com/Eurie-R/IMS-CristinaVilla/routes"
	"github.com/Eurie-R/IMS-CristinaVilla/services"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "villa",
		Short: "Villa back-office: inventory, tasks, bookings and ledger",
		RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run migrations, seed and start the HTTP server",
			RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				db, err := config.ConnectDatabase(cfg)
				if err != nil {
					return err
				}
				return config.Migrate(db)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load initial categories, rooms and the default admin",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				db, err := config.ConnectDatabase(cfg)
				if err != nil {
					return err
				}
				if err := config.Migrate(db); err != nil {
					return err
				}
				return config.SeedDatabase(cmd.Context(), db, cfg)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		return err
	}
	log.Println("✅ JWT_SECRET detected.")

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Printf("❌ Database connect failed: %v", err)
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}
	if err := config.SeedDatabase(context.Background(), db, cfg); err != nil {
		return err
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Refresh tokens live in redis when configured, else in the database.
	var store services.TokenStore = services.NewDBTokenStore(db)
	rdb, err := config.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v); storing refresh tokens in the database", err)
	} else if rdb != nil {
		defer rdb.Close()
		store = services.NewRedisTokenStore(rdb)
	}

	// Initialize services
	locks := services.NewRoomLocks()
	users := services.NewUserService(db)
	inventory := services.NewInventoryService(db)
	tasks := services.NewTaskService(db)
	rooms := services.NewRoomService(db, locks)
	bookings := services.NewBookingService(db, locks)
	finance := services.NewFinanceService(db)

	app := &routes.App{
		Auth:      services.NewAuthService(users, store, cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL),
		Users:     users,
		Inventory: inventory,
		Tasks:     tasks,
		Rooms:     rooms,
		Bookings:  bookings,
		Finance:   finance,
		Calendar:  services.NewCalendarService(db),
		Dashboard: services.NewDashboardService(tasks, inventory, finance, bookings, rooms),
	}

	router := routes.SetupRouter(app, cfg.CorsOrigins)
	addr := ":" + cfg.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return err
	}

	log.Println("✅ Server stopped gracefully")
	return nil
}
