package main

import (
	"fmt"
	"log"
	"time"

	"github.com/teralab-sn/gmaogo/internal/config"
	"github.com/teralab-sn/gmaogo/internal/database"
	"github.com/teralab-sn/gmaogo/internal/models"
	"github.com/teralab-sn/gmaogo/internal/utils"
)

func main() {
	fmt.Println("🌱 GMAO Demo Data Seeder")
	fmt.Println("=" + string(make([]rune, 60)))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
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
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Check if data already exists
	var materielCount int64
	db.Model(&models.Materiel{}).Count(&materielCount)
	if materielCount > 0 {
		fmt.Printf("⚠️  Database already has %d materiels. Clear it first? (y/N): ", materielCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		// Clear existing data
		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE notifications CASCADE")
		db.Exec("TRUNCATE TABLE rapports CASCADE")
		db.Exec("TRUNCATE TABLE maintenances CASCADE")
		db.Exec("TRUNCATE TABLE materiels CASCADE")
		db.Exec("TRUNCATE TABLE categories CASCADE")
		db.Exec("TRUNCATE TABLE utilisateurs CASCADE")
		db.Exec("TRUNCATE TABLE domaines CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("📦 Creating demo data...")
	fmt.Println()

	// 1. Create Domaines
	fmt.Println("🗂️  Creating domaines...")
	domaines := []models.Domaine{
		{Nom: "Réseau"},
		{Nom: "Informatique"},
		{Nom: "Électricité"},
		{Nom: "Climatisation"},
	}
	for i := range domaines {
		if err := db.Create(&domaines[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create domaine %s: %v", domaines[i].Nom, err)
		} else {
			fmt.Printf("   ✓ Created domaine: %s\n", domaines[i].Nom)
		}
	}
	fmt.Printf("✅ Created %d domaines\n\n", len(domaines))

	// 2. Create Categories
	fmt.Println("🏷️  Creating categories...")
	categories := []models.Categorie{
		{Nom: "Switch", DomaineID: domaines[0].ID},
		{Nom: "Routeur", DomaineID: domaines[0].ID},
		{Nom: "Serveur", DomaineID: domaines[1].ID},
		{Nom: "Poste de travail", DomaineID: domaines[1].ID},
		{Nom: "Onduleur", DomaineID: domaines[2].ID},
		{Nom: "Split", DomaineID: domaines[3].ID},
	}
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create categorie %s: %v", categories[i].Nom, err)
		} else {
			fmt.Printf("   ✓ Created categorie: %s\n", categories[i].Nom)
		}
	}
	fmt.Printf("✅ Created %d categories\n\n", len(categories))

	// 3. Create Materiels
	fmt.Println("🖥️  Creating materiels...")
	acquisition := time.Now().AddDate(-1, 0, 0)
	materiels := []models.Materiel{
		{Nom: "Switch coeur de réseau", NumeroSerie: "SW-2023-001", CategorieID: categories[0].ID, DateAcquisition: acquisition, Statut: models.MaterielActif},
		{Nom: "Routeur agence", NumeroSerie: "RT-2023-014", CategorieID: categories[1].ID, DateAcquisition: acquisition, Statut: models.MaterielActif},
		{Nom: "Serveur de fichiers", NumeroSerie: "SRV-2022-003", CategorieID: categories[2].ID, DateAcquisition: acquisition, Statut: models.MaterielEnPanne},
		{Nom: "Poste comptabilité", NumeroSerie: "PC-2024-027", CategorieID: categories[3].ID, DateAcquisition: acquisition, Statut: models.MaterielActif},
		{Nom: "Onduleur salle serveur", NumeroSerie: "OND-2021-002", CategorieID: categories[4].ID, DateAcquisition: acquisition, Statut: models.MaterielEnPanne},
		{Nom: "Split direction", NumeroSerie: "CLIM-2023-008", CategorieID: categories[5].ID, DateAcquisition: acquisition, Statut: models.MaterielStock},
	}
	for i := range materiels {
		if err := db.Create(&materiels[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create materiel %s: %v", materiels[i].Nom, err)
		} else {
			fmt.Printf("   ✓ Created materiel: [%s] %s\n", materiels[i].NumeroSerie, materiels[i].Nom)
		}
	}
	fmt.Printf("✅ Created %d materiels\n\n", len(materiels))

	// 4. Create Utilisateurs
	fmt.Println("👥 Creating utilisateurs...")
	password, err := utils.HashPassword("passer123")
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}
	utilisateurs := []models.Utilisateur{
		{NomComplet: "Fatou Sarr", Email: "admin@gmao.local", Password: password, Role: models.RoleAdmin, Status: models.UtilisateurActif},
		{NomComplet: "Awa Ndiaye", Email: "awa@gmao.local", Password: password, Role: models.RoleTechnicien, Status: models.UtilisateurActif, DomaineID: &domaines[0].ID},
		{NomComplet: "Moussa Diop", Email: "moussa@gmao.local", Password: password, Role: models.RoleTechnicien, Status: models.UtilisateurActif, DomaineID: &domaines[1].ID},
		{NomComplet: "Ibrahima Fall", Email: "ibrahima@gmao.local", Password: password, Role: models.RoleTechnicien, Status: models.UtilisateurActif, DomaineID: &domaines[2].ID},
	}
	for i := range utilisateurs {
		if err := db.Create(&utilisateurs[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create utilisateur %s: %v", utilisateurs[i].Email, err)
		} else {
			fmt.Printf("   ✓ Created utilisateur: %s (%s)\n", utilisateurs[i].NomComplet, utilisateurs[i].Role)
		}
	}
	fmt.Printf("✅ Created %d utilisateurs (password: passer123)\n\n", len(utilisateurs))

	// 5. Create Maintenances
	fmt.Println("🔧 Creating maintenances...")
	maintenances := []models.Maintenance{
		{
			MaterielID:   materiels[2].ID,
			TechnicienID: utilisateurs[2].ID,
			Description:  "Disque en défaut sur la grappe RAID, remplacement à prévoir",
			DateDebut:    time.Now().Add(24 * time.Hour),
			Priorite:     models.PrioriteHaute,
			Statut:       models.MaintenancePlanifiee,
		},
		{
			MaterielID:   materiels[4].ID,
			TechnicienID: utilisateurs[3].ID,
			Description:  "Batteries en fin de vie, autonomie insuffisante",
			DateDebut:    time.Now(),
			Priorite:     models.PrioriteUrgente,
			Statut:       models.MaintenanceEnCours,
		},
	}
	for i := range maintenances {
		if err := db.Create(&maintenances[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create maintenance: %v", err)
		} else {
			fmt.Printf("   ✓ Created maintenance: #%d [%s] %s\n", maintenances[i].ID, maintenances[i].Statut, maintenances[i].Description)
		}
	}
	fmt.Printf("✅ Created %d maintenances\n\n", len(maintenances))

	// Summary
	fmt.Println()
	fmt.Println("=" + string(make([]rune, 60)))
	fmt.Println("🎉 Demo data created successfully!")
	fmt.Println()
	fmt.Println("📊 Summary:")
	fmt.Printf("   • %d domaines\n", len(domaines))
	fmt.Printf("   • %d categories\n", len(categories))
	fmt.Printf("   • %d materiels\n", len(materiels))
	fmt.Printf("   • %d utilisateurs (admin@gmao.local / passer123)\n", len(utilisateurs))
	fmt.Printf("   • %d maintenances\n", len(maintenances))
	fmt.Println()
	fmt.Println("🌐 Start the server:")
	fmt.Println("   go run ./cmd/api/main.go")
	fmt.Println("=" + string(make([]rune, 60)))
}
