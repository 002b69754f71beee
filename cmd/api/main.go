package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teralab-sn/gmaogo/internal/config"
	"github.com/teralab-sn/gmaogo/internal/database"
	"github.com/teralab-sn/gmaogo/internal/handlers"
	"github.com/teralab-sn/gmaogo/internal/models"
	"github.com/teralab-sn/gmaogo/internal/services/maintenance"
	"github.com/teralab-sn/gmaogo/internal/services/utilisateur"
	"github.com/teralab-sn/gmaogo/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema (Critical for Zero-Config)
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.Domaine{},
		&models.Categorie{},
		&models.Materiel{},
		&models.Utilisateur{},
		&models.Maintenance{},
		&models.Rapport{},
		&models.Notification{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Printf("⚠️ Upload directory: %v", err)
	}

	// 4. Start the real-time hub
	hub := websocket.NewHub()
	go hub.Run()

	// 5. Wire services and the HTTP router
	maintSvc := maintenance.NewService(db.DB, hub)
	userSvc := utilisateur.NewService(db.DB, maintSvc, cfg.JWTSecret)
	router := handlers.NewRouter(db, cfg, hub, maintSvc, userSvc)

	// 6. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on port %s [env: %s]\n", cfg.Port, cfg.NodeEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
