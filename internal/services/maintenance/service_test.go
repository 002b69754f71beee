package maintenance

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teralab-sn/gmaogo/internal/apperr"
	"github.com/teralab-sn/gmaogo/internal/models"
)

var testDBSeq atomic.Int64

// testDB opens an isolated in-memory database restricted to one connection
// so concurrent transactions serialize the way row locks do on postgres.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:maints%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Domaine{}, &models.Categorie{}, &models.Materiel{},
		&models.Utilisateur{}, &models.Maintenance{}, &models.Notification{},
		&models.Rapport{},
	); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}
	return db
}

type sentEvent struct {
	UserID  uint
	Event   string
	Payload interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (f *fakeNotifier) SendToUser(userID uint, event string, payload interface{}) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, sentEvent{UserID: userID, Event: event, Payload: payload})
	return true
}

func (f *fakeNotifier) Broadcast(event string, payload interface{}) {}

func (f *fakeNotifier) byEvent(event string) []sentEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentEvent
	for _, e := range f.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// fixture seeds one domain/category/equipment/technician and returns their ids
type fixture struct {
	db         *gorm.DB
	materiel   models.Materiel
	technicien models.Utilisateur
}

func newFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	domaine := models.Domaine{Nom: "Réseau"}
	if err := db.Create(&domaine).Error; err != nil {
		t.Fatalf("Seed domaine: %v", err)
	}
	categorie := models.Categorie{Nom: "Switch", DomaineID: domaine.ID}
	if err := db.Create(&categorie).Error; err != nil {
		t.Fatalf("Seed categorie: %v", err)
	}
	materiel := models.Materiel{
		Nom:             "Switch coeur",
		NumeroSerie:     "SW-001",
		CategorieID:     categorie.ID,
		DateAcquisition: time.Now(),
		Statut:          models.MaterielActif,
	}
	if err := db.Create(&materiel).Error; err != nil {
		t.Fatalf("Seed materiel: %v", err)
	}
	technicien := models.Utilisateur{
		NomComplet: "Awa Ndiaye",
		Email:      "awa@example.com",
		Password:   "x",
		Role:       models.RoleTechnicien,
		Status:     models.UtilisateurActif,
		DomaineID:  &domaine.ID,
	}
	if err := db.Create(&technicien).Error; err != nil {
		t.Fatalf("Seed technicien: %v", err)
	}
	return &fixture{db: db, materiel: materiel, technicien: technicien}
}

func (f *fixture) addAdmin(t *testing.T, email string, status models.StatutUtilisateur) models.Utilisateur {
	t.Helper()
	admin := models.Utilisateur{
		NomComplet: "Admin " + email,
		Email:      email,
		Password:   "x",
		Role:       models.RoleAdmin,
		Status:     status,
	}
	if err := f.db.Create(&admin).Error; err != nil {
		t.Fatalf("Seed admin: %v", err)
	}
	return admin
}

func (f *fixture) orderAt(t *testing.T, statut models.StatutMaintenance) models.Maintenance {
	t.Helper()
	m := models.Maintenance{
		MaterielID:   f.materiel.ID,
		TechnicienID: f.technicien.ID,
		Description:  "Remplacement ventilateur",
		DateDebut:    time.Now(),
		Priorite:     models.PrioriteMoyenne,
		Statut:       statut,
	}
	if err := f.db.Create(&m).Error; err != nil {
		t.Fatalf("Seed maintenance: %v", err)
	}
	return m
}

func (f *fixture) materielStatut(t *testing.T) models.StatutMateriel {
	t.Helper()
	var m models.Materiel
	if err := f.db.First(&m, f.materiel.ID).Error; err != nil {
		t.Fatalf("Reload materiel: %v", err)
	}
	return m.Statut
}

func TestCreateSchedulesOrderAndNotifiesTechnician(t *testing.T) {
	db := testDB(t)
	fx := newFixture(t, db)
	notifier := &fakeNotifier{}
	svc := NewService(db, notifier)

	m, err := svc.Create(CreateInput{
		MaterielID:   fx.materiel.ID,
		TechnicienID: fx.technicien.ID,
		Description:  "Inspection annuelle",
		DateDebut:    time.Now(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if m.Statut != models.MaintenancePlanifiee {
		t.Errorf("Expected statut PLANIFIEE, got %s", m.Statut)
	}
	if m.Priorite != models.PrioriteMoyenne {
		t.Errorf("Expected default priorite MOYENNE, got %s", m.Priorite)
	}
	if got := fx.materielStatut(t); got != models.MaterielEnMaintenance {
		t.Errorf("Expected materiel EN_MAINTENANCE, got %s", got)
	}

	var notifs []models.Notification
	if err := db.Where("utilisateur_id = ?", fx.technicien.ID).Find(&notifs).Error; err != nil {
		t.Fatalf("Load notifications: %v", err)
	}
	if len(notifs) != 1 {
		t.Fatalf("Expected exactly 1 notification for the technician, got %d", len(notifs))
	}
	if notifs[0].Type != models.NotificationAssignation {
		t.Errorf("Expected type ASSIGNATION, got %s", notifs[0].Type)
	}
	if notifs[0].MaintenanceID == nil || *notifs[0].MaintenanceID != m.ID {
		t.Error("Notification should reference the created order")
	}
	if notifs[0].Lu {
		t.Error("New notification should be unread")
	}

	if got := notifier.byEvent("nouvelle_notification"); len(got) != 1 || got[0].UserID != fx.technicien.ID {
		t.Errorf("Expected one nouvelle_notification push to the technician, got %+v", got)
	}
	counts := notifier.byEvent("update_unread_count")
	if len(counts) != 1 || counts[0].UserID != fx.technicien.ID || counts[0].Payload.(int64) != 1 {
		t.Errorf("Expected unread count 1 pushed to the technician, got %+v", counts)
	}
}

func TestCreateValidation(t *testing.T) {
	db := testDB(t)
	fx := newFixture(t, db)
	svc := NewService(db, &fakeNotifier{})

	cases := []struct {
		name  string
		input CreateInput
		kind  apperr.Kind
	}{
		{
			name: "short description",
			input: CreateInput{MaterielID: fx.materiel.ID, TechnicienID: fx.technicien.ID,
				Description: "abc", DateDebut: time.Now()},
			kind: apperr.InvalidInput,
		},
		{
			name: "missing date",
			input: CreateInput{MaterielID: fx.materiel.ID, TechnicienID: fx.technicien.ID,
				Description: "Inspection annuelle"},
			kind: apperr.InvalidInput,
		},
		{
			name: "unknown priority",
			input: CreateInput{MaterielID: fx.materiel.ID, TechnicienID: fx.technicien.ID,
				Description: "Inspection annuelle", DateDebut: time.Now(), Priorite: "EXTREME"},
			kind: apperr.InvalidInput,
		},
		{
			name: "non-initial status",
			input: CreateInput{MaterielID: fx.materiel.ID, TechnicienID: fx.technicien.ID,
				Description: "Inspection annuelle", DateDebut: time.Now(), Statut: models.MaintenanceTerminee},
			kind: apperr.InvalidInput,
		},
		{
			name: "unknown equipment",
			input: CreateInput{MaterielID: 9999, TechnicienID: fx.technicien.ID,
				Description: "Inspection annuelle", DateDebut: time.Now()},
			kind: apperr.NotFound,
		},
		{
			name: "unknown technician",
			input: CreateInput{MaterielID: fx.materiel.ID, TechnicienID: 9999,
				Description: "Inspection annuelle", DateDebut: time.Now()},
			kind: apperr.NotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(tc.input)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if got := apperr.KindOf(err); got != tc.kind {
				t.Errorf("Expected kind %v, got %v (%v)", tc.kind, got, err)
			}
		})
	}

	// Nothing may be persisted by failed creations
	var count int64
	db.Model(&models.Maintenance{}).Count(&count)
	if count != 0 {
		t.Errorf("Failed creations must not persist orders, found %d", count)
	}
	if got := fx.materielStatut(t); got != models.MaterielActif {
		t.Errorf("Equipment status must be untouched, got %s", got)
	}
}

func TestTransitionTable(t *testing.T) {
	all := []models.StatutMaintenance{
		models.MaintenancePlanifiee, models.MaintenanceEnCours,
		models.MaintenanceTerminee, models.MaintenanceAnnulee,
	}
	expected := map[models.StatutMaintenance]map[models.StatutMaintenance]models.StatutMateriel{
		models.MaintenancePlanifiee: {
			models.MaintenanceEnCours: models.MaterielEnMaintenance,
			models.MaintenanceAnnulee: models.MaterielActif,
		},
		models.MaintenanceEnCours: {
			models.MaintenanceTerminee: models.MaterielActif,
			models.MaintenanceAnnulee:  models.MaterielActif,
		},
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				db := testDB(t)
				fx := newFixture(t, db)
				fx.addAdmin(t, "admin@example.com", models.UtilisateurActif)
				svc := NewService(db, &fakeNotifier{})
				order := fx.orderAt(t, from)

				updated, err := svc.UpdateStatut(order.ID, to)

				wantMateriel, legal := expected[from][to]
				if legal {
					if err != nil {
						t.Fatalf("Legal transition %s -> %s failed: %v", from, to, err)
					}
					if updated.Statut != to {
						t.Errorf("Expected statut %s, got %s", to, updated.Statut)
					}
					if got := fx.materielStatut(t); got != wantMateriel {
						t.Errorf("Expected materiel %s, got %s", wantMateriel, got)
					}
					return
				}

				if !apperr.Is(err, apperr.InvalidTransition) {
					t.Fatalf("Illegal transition %s -> %s: expected InvalidTransition, got %v", from, to, err)
				}
				var reloaded models.Maintenance
				if err := db.First(&reloaded, order.ID).Error; err != nil {
					t.Fatalf("Reload order: %v", err)
				}
				if reloaded.Statut != from {
					t.Errorf("Order status must be unchanged, got %s", reloaded.Statut)
				}
				if got := fx.materielStatut(t); got != models.MaterielActif {
					t.Errorf("Equipment status must be unchanged, got %s", got)
				}
				var notifCount int64
				db.Model(&models.Notification{}).Count(&notifCount)
				if notifCount != 0 {
					t.Errorf("Illegal transition must not create notifications, found %d", notifCount)
				}
			})
		}
	}
}

func TestUpdateStatutBroadcastsToActiveAdmins(t *testing.T) {
	db := testDB(t)
	fx := newFixture(t, db)
	a1 := fx.addAdmin(t, "a1@example.com", models.UtilisateurActif)
	a2 := fx.addAdmin(t, "a2@example.com", models.UtilisateurActif)
	fx.addAdmin(t, "gone@example.com", models.UtilisateurInactif)
	notifier := &fakeNotifier{}
	svc := NewService(db, notifier)
	order := fx.orderAt(t, models.MaintenancePlanifiee)

	if _, err := svc.UpdateStatut(order.ID, models.MaintenanceEnCours); err != nil {
		t.Fatalf("UpdateStatut failed: %v", err)
	}

	var notifs []models.Notification
	if err := db.Where("type = ?", models.NotificationMiseAJour).Find(&notifs).Error; err != nil {
		t.Fatalf("Load notifications: %v", err)
	}
	if len(notifs) != 2 {
		t.Fatalf("Expected one STATUS_UPDATE row per active admin (2), got %d", len(notifs))
	}
	recipients := map[uint]bool{}
	for _, n := range notifs {
		recipients[n.UtilisateurID] = true
		if n.MaintenanceID == nil || *n.MaintenanceID != order.ID {
			t.Error("Notification should reference the order")
		}
	}
	if !recipients[a1.ID] || !recipients[a2.ID] {
		t.Errorf("Expected recipients %d and %d, got %v", a1.ID, a2.ID, recipients)
	}

	if pushes := notifier.byEvent("nouvelle_notification"); len(pushes) != 2 {
		t.Errorf("Expected 2 real-time pushes, got %d", len(pushes))
	}
}

func TestUpdateStatutErrors(t *testing.T) {
	db := testDB(t)
	fx := newFixture(t, db)
	svc := NewService(db, &fakeNotifier{})

	if _, err := svc.UpdateStatut(12345, models.MaintenanceEnCours); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("Expected NotFound for missing order, got %v", err)
	}

	order := fx.orderAt(t, models.MaintenancePlanifiee)
	if _, err := svc.UpdateStatut(order.ID, "EN_ATTENTE"); !apperr.Is(err, apperr.InvalidInput) {
		t.Errorf("Expected InvalidInput for unknown status, got %v", err)
	}
}

func TestFullLifecycle(t *testing.T) {
	db := testDB(t)
	fx := newFixture(t, db)
	fx.addAdmin(t, "a1@example.com", models.UtilisateurActif)
	fx.addAdmin(t, "a2@example.com", models.UtilisateurActif)
	svc := NewService(db, &fakeNotifier{})

	m, err := svc.Create(CreateInput{
		MaterielID:   fx.materiel.ID,
		TechnicienID: fx.technicien.ID,
		Description:  "Inspection annuelle",
		DateDebut:    time.Now(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := fx.materielStatut(t); got != models.MaterielEnMaintenance {
		t.Fatalf("Expected EN_MAINTENANCE after creation, got %s", got)
	}

	if _, err := svc.UpdateStatut(m.ID, models.MaintenanceEnCours); err != nil {
		t.Fatalf("PLANIFIEE -> EN_COURS failed: %v", err)
	}
	if _, err := svc.UpdateStatut(m.ID, models.MaintenanceTerminee); err != nil {
		t.Fatalf("EN_COURS -> TERMINEE failed: %v", err)
	}

	if got := fx.materielStatut(t); got != models.MaterielActif {
		t.Errorf("Expected materiel ACTIF after TERMINEE, got %s", got)
	}

	// One row per active admin at each of the two transitions
	var updateCount int64
	db.Model(&models.Notification{}).Where("type = ?", models.NotificationMiseAJour).Count(&updateCount)
	if updateCount != 4 {
		t.Errorf("Expected 4 STATUS_UPDATE notifications (2 admins x 2 transitions), got %d", updateCount)
	}

	// Terminal: no way back
	if _, err := svc.UpdateStatut(m.ID, models.MaintenanceEnCours); !apperr.Is(err, apperr.InvalidTransition) {
		t.Errorf("Expected InvalidTransition on TERMINEE -> EN_COURS, got %v", err)
	}
}

func TestAjouterRapportIsUpsertAndForcesDone(t *testing.T) {
	db := testDB(t)
	fx := newFixture(t, db)
	fx.addAdmin(t, "admin@example.com", models.UtilisateurActif)
	svc := NewService(db, &fakeNotifier{})
	order := fx.orderAt(t, models.MaintenanceEnCours)

	r1, err := svc.AjouterRapport(order.ID, "Ventilateur remplacé")
	if err != nil {
		t.Fatalf("First AjouterRapport failed: %v", err)
	}
	if r1.Contenu != "Ventilateur remplacé" {
		t.Errorf("Unexpected content: %q", r1.Contenu)
	}

	var m models.Maintenance
	if err := db.First(&m, order.ID).Error; err != nil {
		t.Fatalf("Reload order: %v", err)
	}
	if m.Statut != models.MaintenanceTerminee {
		t.Errorf("Expected TERMINEE after report, got %s", m.Statut)
	}
	if got := fx.materielStatut(t); got != models.MaterielActif {
		t.Errorf("Expected materiel ACTIF after report closes the order, got %s", got)
	}

	// Second submission replaces content, keeps one row, status stays TERMINEE
	r2, err := svc.AjouterRapport(order.ID, "Ventilateur remplacé et filtres nettoyés")
	if err != nil {
		t.Fatalf("Second AjouterRapport failed: %v", err)
	}
	if r2.ID != r1.ID {
		t.Errorf("Expected the same report row, got %d and %d", r1.ID, r2.ID)
	}

	var count int64
	db.Model(&models.Rapport{}).Where("maintenance_id = ?", order.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly one report row, got %d", count)
	}
	var r models.Rapport
	db.Where("maintenance_id = ?", order.ID).First(&r)
	if r.Contenu != "Ventilateur remplacé et filtres nettoyés" {
		t.Errorf("Expected latest content, got %q", r.Contenu)
	}
	db.First(&m, order.ID)
	if m.Statut != models.MaintenanceTerminee {
		t.Errorf("Status must stay TERMINEE, got %s", m.Statut)
	}
}

func TestAjouterRapportRollsBackOnIllegalTransition(t *testing.T) {
	db := testDB(t)
	fx := newFixture(t, db)
	svc := NewService(db, &fakeNotifier{})
	order := fx.orderAt(t, models.MaintenancePlanifiee)

	_, err := svc.AjouterRapport(order.ID, "Rapport prématuré")
	if !apperr.Is(err, apperr.InvalidTransition) {
		t.Fatalf("Expected InvalidTransition from PLANIFIEE, got %v", err)
	}

	// The report write must roll back with the refused transition
	var count int64
	db.Model(&models.Rapport{}).Where("maintenance_id = ?", order.ID).Count(&count)
	if count != 0 {
		t.Errorf("Report row must not survive the rollback, found %d", count)
	}
	var m models.Maintenance
	db.First(&m, order.ID)
	if m.Statut != models.MaintenancePlanifiee {
		t.Errorf("Order status must be unchanged, got %s", m.Statut)
	}
}

func TestConcurrentTransitionsSingleWinner(t *testing.T) {
	db := testDB(t)
	fx := newFixture(t, db)
	fx.addAdmin(t, "admin@example.com", models.UtilisateurActif)
	svc := NewService(db, &fakeNotifier{})
	order := fx.orderAt(t, models.MaintenanceEnCours)

	targets := []models.StatutMaintenance{models.MaintenanceTerminee, models.MaintenanceAnnulee}
	errs := make([]error, len(targets))

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target models.StatutMaintenance) {
			defer wg.Done()
			_, errs[i] = svc.UpdateStatut(order.ID, target)
		}(i, target)
	}
	wg.Wait()

	winners := 0
	var winner models.StatutMaintenance
	for i, err := range errs {
		if err == nil {
			winners++
			winner = targets[i]
		} else if !apperr.Is(err, apperr.InvalidTransition) {
			t.Errorf("Loser should observe a stale-state rejection, got %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("Exactly one concurrent transition must win, got %d", winners)
	}

	var m models.Maintenance
	if err := db.First(&m, order.ID).Error; err != nil {
		t.Fatalf("Reload order: %v", err)
	}
	if m.Statut != winner {
		t.Errorf("Final status %s does not match the winning transition %s", m.Statut, winner)
	}
}

func TestPlanningHelpers(t *testing.T) {
	db := testDB(t)
	newFixture(t, db) // healthy domain with an ACTIF equipment, must not appear
	svc := NewService(db, &fakeNotifier{})

	// Second domain with a broken equipment and its own technician
	d2 := models.Domaine{Nom: "Serveurs"}
	if err := db.Create(&d2).Error; err != nil {
		t.Fatalf("Seed domaine: %v", err)
	}
	c2 := models.Categorie{Nom: "Rack", DomaineID: d2.ID}
	if err := db.Create(&c2).Error; err != nil {
		t.Fatalf("Seed categorie: %v", err)
	}
	broken := models.Materiel{
		Nom: "Serveur fichiers", NumeroSerie: "SRV-042", CategorieID: c2.ID,
		DateAcquisition: time.Now(), Statut: models.MaterielEnPanne,
	}
	if err := db.Create(&broken).Error; err != nil {
		t.Fatalf("Seed materiel: %v", err)
	}
	t2 := models.Utilisateur{
		NomComplet: "Moussa Diop", Email: "moussa@example.com", Password: "x",
		Role: models.RoleTechnicien, Status: models.UtilisateurActif, DomaineID: &d2.ID,
	}
	if err := db.Create(&t2).Error; err != nil {
		t.Fatalf("Seed technicien: %v", err)
	}
	inactive := models.Utilisateur{
		NomComplet: "Parti Ailleurs", Email: "parti@example.com", Password: "x",
		Role: models.RoleTechnicien, Status: models.UtilisateurInactif, DomaineID: &d2.ID,
	}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatalf("Seed inactive technicien: %v", err)
	}

	pannes, err := svc.MaterielsEnPanne()
	if err != nil {
		t.Fatalf("MaterielsEnPanne failed: %v", err)
	}
	if len(pannes) != 1 || pannes[0].ID != broken.ID {
		t.Fatalf("Expected only the broken equipment, got %+v", pannes)
	}
	if pannes[0].Categorie == nil || pannes[0].Categorie.Domaine == nil {
		t.Error("Expected category and domain joined")
	}

	techs, err := svc.TechniciensDomainesEnPanne()
	if err != nil {
		t.Fatalf("TechniciensDomainesEnPanne failed: %v", err)
	}
	if len(techs) != 1 {
		t.Fatalf("Expected one active technician of the broken domain, got %d", len(techs))
	}
	if techs[0].ID != t2.ID {
		t.Errorf("Expected technician %d, got %d", t2.ID, techs[0].ID)
	}
}

func TestCountOpenByTechnicien(t *testing.T) {
	db := testDB(t)
	fx := newFixture(t, db)
	svc := NewService(db, &fakeNotifier{})

	fx.orderAt(t, models.MaintenancePlanifiee)
	fx.orderAt(t, models.MaintenanceEnCours)
	fx.orderAt(t, models.MaintenanceTerminee)
	fx.orderAt(t, models.MaintenanceAnnulee)

	count, err := svc.CountOpenByTechnicien(fx.technicien.ID)
	if err != nil {
		t.Fatalf("CountOpenByTechnicien failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 open orders, got %d", count)
	}
}

func TestUpdateRejectsDanglingReferences(t *testing.T) {
	db := testDB(t)
	fx := newFixture(t, db)
	svc := NewService(db, &fakeNotifier{})
	m := fx.orderAt(t, models.MaintenancePlanifiee)

	missing := uint(9999)
	if _, err := svc.Update(m.ID, UpdateInput{MaterielID: &missing}); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("Expected NotFound for unknown materiel, got %v", err)
	}
	if _, err := svc.Update(m.ID, UpdateInput{TechnicienID: &missing}); !apperr.Is(err, apperr.NotFound) {
		t.Errorf("Expected NotFound for unknown technicien, got %v", err)
	}

	// The order is untouched by the rejected patches
	var reloaded models.Maintenance
	if err := db.First(&reloaded, m.ID).Error; err != nil {
		t.Fatalf("Reload order: %v", err)
	}
	if reloaded.MaterielID != fx.materiel.ID || reloaded.TechnicienID != fx.technicien.ID {
		t.Error("Rejected patches must not modify the order")
	}

	// Valid references still go through
	updated, err := svc.Update(m.ID, UpdateInput{TechnicienID: &fx.technicien.ID})
	if err != nil {
		t.Fatalf("Update with valid reference failed: %v", err)
	}
	if updated.TechnicienID != fx.technicien.ID {
		t.Errorf("Expected technicien %d, got %d", fx.technicien.ID, updated.TechnicienID)
	}
}
