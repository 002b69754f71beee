package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/teralab-sn/gmaogo/internal/config"
	"github.com/teralab-sn/gmaogo/internal/database"
	"github.com/teralab-sn/gmaogo/internal/models"
	"github.com/teralab-sn/gmaogo/internal/utils"
)

func main() {
	nom := flag.String("nom", "Administrateur", "Full name of the admin account")
	email := flag.String("email", "", "Email of the admin account (required)")
	password := flag.String("password", "", "Password of the admin account (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("❌ Usage: create_admin -email admin@example.com -password secret [-nom \"Nom Complet\"]")
	}
	if len(*password) < 8 {
		log.Fatal("❌ Password must be at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.Utilisateur{}); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	var existing models.Utilisateur
	err = db.Where("email = ?", *email).First(&existing).Error
	if err == nil {
		log.Fatalf("❌ An account with email %s already exists (id=%d)", *email, existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("❌ Lookup failed: %v", err)
	}

	hashed, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	admin := models.Utilisateur{
		NomComplet: *nom,
		Email:      *email,
		Password:   hashed,
		Role:       models.RoleAdmin,
		Status:     models.UtilisateurActif,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("❌ Failed to create admin: %v", err)
	}

	fmt.Printf("✅ Admin account created: %s <%s> (id=%d)\n", admin.NomComplet, admin.Email, admin.ID)
}
