package maintenance

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/teralab-sn/gmaogo/internal/apperr"
	"github.com/teralab-sn/gmaogo/internal/models"
)

// Notifier is the real-time delivery capability the engine depends on.
// Delivery is best-effort: a false return or an offline recipient never
// fails the calling operation, the persisted notification row is the
// durable record.
type Notifier interface {
	SendToUser(userID uint, event string, payload interface{}) bool
	Broadcast(event string, payload interface{})
}

// Service owns the work-order lifecycle: the status state machine, its
// equipment side effects, the report rule and notification fan-out. It is
// the sole writer of maintenance records.
type Service struct {
	db       *gorm.DB
	notifier Notifier
}

// NewService creates a new maintenance service
func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

// CreateInput carries the fields of a creation request
type CreateInput struct {
	MaterielID   uint
	TechnicienID uint
	Description  string
	DateDebut    time.Time
	Priorite     models.Priorite
	Statut       models.StatutMaintenance
}

// UpdateInput carries the optional non-status fields of a partial update
type UpdateInput struct {
	MaterielID   *uint
	TechnicienID *uint
	Description  *string
	DateDebut    *time.Time
	Priorite     *models.Priorite
}

// Create schedules a new work order: persists it at PLANIFIEE, moves the
// equipment to EN_MAINTENANCE and notifies the assigned technician.
func (s *Service) Create(input CreateInput) (*models.Maintenance, error) {
	if len(input.Description) < 5 {
		return nil, apperr.New(apperr.InvalidInput, "la description doit contenir au moins 5 caractères")
	}
	if input.DateDebut.IsZero() {
		return nil, apperr.New(apperr.InvalidInput, "dateDebut invalide")
	}
	if input.Priorite == "" {
		input.Priorite = models.PrioriteMoyenne
	} else if !input.Priorite.Valid() {
		return nil, apperr.New(apperr.InvalidInput, "priorité inconnue: %s", input.Priorite)
	}
	// Orders always start at PLANIFIEE; a caller-supplied initial status is
	// only accepted when it says the same thing
	if input.Statut != "" && input.Statut != models.MaintenancePlanifiee {
		return nil, apperr.New(apperr.InvalidInput, "une maintenance doit débuter au statut PLANIFIEE")
	}

	var m models.Maintenance
	var notif models.Notification

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var materiel models.Materiel
		if err := tx.First(&materiel, input.MaterielID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "matériel %d introuvable", input.MaterielID)
			}
			return fmt.Errorf("load materiel: %w", err)
		}

		var technicien models.Utilisateur
		if err := tx.First(&technicien, input.TechnicienID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "technicien %d introuvable", input.TechnicienID)
			}
			return fmt.Errorf("load technicien: %w", err)
		}

		m = models.Maintenance{
			MaterielID:   input.MaterielID,
			TechnicienID: input.TechnicienID,
			Description:  input.Description,
			DateDebut:    input.DateDebut,
			Priorite:     input.Priorite,
			Statut:       models.MaintenancePlanifiee,
		}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("create maintenance: %w", err)
		}

		// Scheduling pulls the equipment out of service
		if err := tx.Model(&models.Materiel{}).Where("id = ?", materiel.ID).
			Update("statut", models.MaterielEnMaintenance).Error; err != nil {
			return fmt.Errorf("update materiel statut: %w", err)
		}

		mid := m.ID
		notif = models.Notification{
			Titre:         "Nouvelle maintenance assignée",
			Message:       fmt.Sprintf("Une maintenance concernant le matériel %q vous a été assignée.", materiel.Nom),
			Type:          models.NotificationAssignation,
			UtilisateurID: technicien.ID,
			MaintenanceID: &mid,
		}
		if err := tx.Create(&notif).Error; err != nil {
			return fmt.Errorf("create notification: %w", err)
		}

		m.Materiel = &materiel
		m.Technicien = &technicien
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish([]models.Notification{notif})
	log.Printf("📢 Maintenance %d créée, technicien %d notifié", m.ID, m.TechnicienID)
	return &m, nil
}

// UpdateStatut applies one transition of the state machine as a single
// transaction: status write (compare-and-swap against the loaded status),
// equipment side effect and one MISE_A_JOUR notification row per active
// admin. Real-time delivery is attempted after commit.
func (s *Service) UpdateStatut(id uint, statut models.StatutMaintenance) (*models.Maintenance, error) {
	var updated models.Maintenance
	var notifs []models.Notification

	err := s.db.Transaction(func(tx *gorm.DB) error {
		m, err := loadOrder(tx, id)
		if err != nil {
			return err
		}
		notifs, err = s.applyTransition(tx, m, statut)
		if err != nil {
			return err
		}
		updated = *m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(notifs)
	return &updated, nil
}

// AjouterRapport upserts the intervention report of an order and drives the
// order to TERMINEE through the same transition primitive as UpdateStatut,
// atomically. An already-terminated order only gets its report content
// replaced.
func (s *Service) AjouterRapport(maintenanceID uint, contenu string) (*models.Rapport, error) {
	var rapport models.Rapport
	var notifs []models.Notification

	err := s.db.Transaction(func(tx *gorm.DB) error {
		m, err := loadOrder(tx, maintenanceID)
		if err != nil {
			return err
		}

		r, err := upsertRapport(tx, maintenanceID, contenu)
		if err != nil {
			return err
		}
		rapport = *r

		if m.Statut != models.MaintenanceTerminee {
			notifs, err = s.applyTransition(tx, m, models.MaintenanceTerminee)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(notifs)
	return &rapport, nil
}

// checkExists verifies a referenced row is present before patching an order
// to point at it
func checkExists(db *gorm.DB, model interface{}, id uint, notFoundFormat string) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check reference: %w", err)
	}
	if count == 0 {
		return apperr.New(apperr.NotFound, notFoundFormat, id)
	}
	return nil
}

// loadOrder fetches an order with its equipment and technician joined
func loadOrder(tx *gorm.DB, id uint) (*models.Maintenance, error) {
	var m models.Maintenance
	if err := tx.Preload("Materiel").Preload("Technicien").First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "maintenance %d introuvable", id)
		}
		return nil, fmt.Errorf("load maintenance: %w", err)
	}
	return &m, nil
}

// upsertRapport creates or replaces the single report row of an order
func upsertRapport(tx *gorm.DB, maintenanceID uint, contenu string) (*models.Rapport, error) {
	var r models.Rapport
	err := tx.Where("maintenance_id = ?", maintenanceID).First(&r).Error
	switch {
	case err == nil:
		r.Contenu = contenu
		if err := tx.Save(&r).Error; err != nil {
			return nil, fmt.Errorf("update rapport: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		r = models.Rapport{MaintenanceID: maintenanceID, Contenu: contenu}
		if err := tx.Create(&r).Error; err != nil {
			return nil, fmt.Errorf("create rapport: %w", err)
		}
	default:
		return nil, fmt.Errorf("load rapport: %w", err)
	}
	return &r, nil
}

// applyTransition performs one edge of the state machine inside tx: CAS on
// the status column, equipment update, one notification row per active
// admin. m is mutated to the new status on success.
func (s *Service) applyTransition(tx *gorm.DB, m *models.Maintenance, target models.StatutMaintenance) ([]models.Notification, error) {
	if !target.Valid() {
		return nil, apperr.New(apperr.InvalidInput, "statut inconnu: %s", target)
	}

	materielStatut, ok := materielStatutFor(m.Statut, target)
	if !ok {
		return nil, apperr.New(apperr.InvalidTransition, "transition %s -> %s interdite", m.Statut, target)
	}

	// Compare-and-swap against the status we loaded: if a concurrent
	// transition won the race, zero rows match and nothing is written
	res := tx.Model(&models.Maintenance{}).
		Where("id = ? AND statut = ?", m.ID, m.Statut).
		Update("statut", target)
	if res.Error != nil {
		return nil, fmt.Errorf("update statut: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.New(apperr.InvalidTransition, "maintenance %d modifiée concurremment, transition vers %s rejetée", m.ID, target)
	}

	if err := tx.Model(&models.Materiel{}).Where("id = ?", m.MaterielID).
		Update("statut", materielStatut).Error; err != nil {
		return nil, fmt.Errorf("update materiel statut: %w", err)
	}

	var admins []models.Utilisateur
	if err := tx.Where("role = ? AND status = ?", models.RoleAdmin, models.UtilisateurActif).
		Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("list active admins: %w", err)
	}

	materielNom := ""
	if m.Materiel != nil {
		materielNom = m.Materiel.Nom
	}
	technicienNom := ""
	if m.Technicien != nil {
		technicienNom = m.Technicien.NomComplet
	}

	mid := m.ID
	notifs := make([]models.Notification, 0, len(admins))
	for _, admin := range admins {
		notifs = append(notifs, models.Notification{
			Titre:         fmt.Sprintf("Maintenance %s", target),
			Message:       fmt.Sprintf("La maintenance du matériel %q est passée au statut %q par %s.", materielNom, target, technicienNom),
			Type:          models.NotificationMiseAJour,
			UtilisateurID: admin.ID,
			MaintenanceID: &mid,
		})
	}
	if len(notifs) > 0 {
		if err := tx.Create(&notifs).Error; err != nil {
			return nil, fmt.Errorf("create notifications: %w", err)
		}
	}

	m.Statut = target
	if m.Materiel != nil {
		m.Materiel.Statut = materielStatut
	}
	return notifs, nil
}

// publish pushes committed notifications to their recipients and refreshes
// each recipient's unread counter. Failures are swallowed: the rows are
// already durable, an offline recipient will pull them later.
func (s *Service) publish(notifs []models.Notification) {
	if s.notifier == nil || len(notifs) == 0 {
		return
	}

	recipients := make(map[uint]bool)
	for i := range notifs {
		s.notifier.SendToUser(notifs[i].UtilisateurID, "nouvelle_notification", notifs[i])
		recipients[notifs[i].UtilisateurID] = true
	}

	for userID := range recipients {
		var count int64
		if err := s.db.Model(&models.Notification{}).
			Where("utilisateur_id = ? AND lu = ?", userID, false).
			Count(&count).Error; err != nil {
			log.Printf("⚠️ Unread count for user %d: %v", userID, err)
			continue
		}
		s.notifier.SendToUser(userID, "update_unread_count", count)
	}
}

// List returns all orders with equipment, category and technician joined,
// newest first
func (s *Service) List() ([]models.Maintenance, error) {
	var ms []models.Maintenance
	if err := s.db.Preload("Materiel.Categorie").Preload("Technicien").Preload("Rapport").
		Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list maintenances: %w", err)
	}
	return ms, nil
}

// ByTechnicien returns the orders assigned to one technician, newest first
func (s *Service) ByTechnicien(technicienID uint) ([]models.Maintenance, error) {
	var ms []models.Maintenance
	if err := s.db.Preload("Materiel.Categorie").
		Where("technicien_id = ?", technicienID).
		Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list maintenances by technicien: %w", err)
	}
	return ms, nil
}

// Update patches non-status fields of an order. Status changes go through
// UpdateStatut only.
func (s *Service) Update(id uint, input UpdateInput) (*models.Maintenance, error) {
	m, err := loadOrder(s.db, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if input.MaterielID != nil {
		if err := checkExists(s.db, &models.Materiel{}, *input.MaterielID,
			"matériel %d introuvable"); err != nil {
			return nil, err
		}
		changes["materiel_id"] = *input.MaterielID
	}
	if input.TechnicienID != nil {
		if err := checkExists(s.db, &models.Utilisateur{}, *input.TechnicienID,
			"technicien %d introuvable"); err != nil {
			return nil, err
		}
		changes["technicien_id"] = *input.TechnicienID
	}
	if input.Description != nil {
		if len(*input.Description) < 5 {
			return nil, apperr.New(apperr.InvalidInput, "la description doit contenir au moins 5 caractères")
		}
		changes["description"] = *input.Description
	}
	if input.DateDebut != nil {
		changes["date_debut"] = *input.DateDebut
	}
	if input.Priorite != nil {
		if !input.Priorite.Valid() {
			return nil, apperr.New(apperr.InvalidInput, "priorité inconnue: %s", *input.Priorite)
		}
		changes["priorite"] = *input.Priorite
	}

	if len(changes) > 0 {
		if err := s.db.Model(m).Updates(changes).Error; err != nil {
			return nil, fmt.Errorf("update maintenance: %w", err)
		}
	}
	return loadOrder(s.db, id)
}

// Delete removes an order unconditionally (any status)
func (s *Service) Delete(id uint) error {
	var m models.Maintenance
	if err := s.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "maintenance %d introuvable", id)
		}
		return fmt.Errorf("load maintenance: %w", err)
	}
	if err := s.db.Delete(&m).Error; err != nil {
		return fmt.Errorf("delete maintenance: %w", err)
	}
	return nil
}

// Rapport returns the report of an order, or nil when none exists yet
func (s *Service) Rapport(maintenanceID uint) (*models.Rapport, error) {
	var r models.Rapport
	err := s.db.Where("maintenance_id = ?", maintenanceID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load rapport: %w", err)
	}
	return &r, nil
}

// UpsertRapport replaces the report content without touching the order
// status (the plain /rapports path)
func (s *Service) UpsertRapport(maintenanceID uint, contenu string) (*models.Rapport, error) {
	var rapport *models.Rapport
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadOrder(tx, maintenanceID); err != nil {
			return err
		}
		r, err := upsertRapport(tx, maintenanceID, contenu)
		if err != nil {
			return err
		}
		rapport = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rapport, nil
}

// MaterielsEnPanne lists equipment currently down, with category and domain
// joined, for planning new orders
func (s *Service) MaterielsEnPanne() ([]models.Materiel, error) {
	var ms []models.Materiel
	if err := s.db.Preload("Categorie.Domaine").
		Where("statut = ?", models.MaterielEnPanne).
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list materiels en panne: %w", err)
	}
	return ms, nil
}

// TechniciensDomainesEnPanne lists the active technicians of every domain
// owning equipment currently down. A technician qualified for several such
// domains appears once: the merge is keyed by user id, independent of
// iteration order.
func (s *Service) TechniciensDomainesEnPanne() ([]models.Utilisateur, error) {
	var domaineIDs []uint
	if err := s.db.Model(&models.Materiel{}).
		Distinct("categories.domaine_id").
		Joins("JOIN categories ON categories.id = materiels.categorie_id").
		Where("materiels.statut = ?", models.MaterielEnPanne).
		Pluck("categories.domaine_id", &domaineIDs).Error; err != nil {
		return nil, fmt.Errorf("list domaines en panne: %w", err)
	}

	unique := make(map[uint]models.Utilisateur)
	for _, domaineID := range domaineIDs {
		var techs []models.Utilisateur
		if err := s.db.Preload("Domaine").
			Where("role = ? AND status = ? AND domaine_id = ?",
				models.RoleTechnicien, models.UtilisateurActif, domaineID).
			Find(&techs).Error; err != nil {
			return nil, fmt.Errorf("list techniciens du domaine %d: %w", domaineID, err)
		}
		for _, t := range techs {
			unique[t.ID] = t
		}
	}

	result := make([]models.Utilisateur, 0, len(unique))
	for _, t := range unique {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// CountOpenByTechnicien counts the orders a technician holds in a
// non-terminal status. The user directory consults this before
// deactivating an account.
func (s *Service) CountOpenByTechnicien(technicienID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Maintenance{}).
		Where("technicien_id = ? AND statut IN ?", technicienID,
			[]models.StatutMaintenance{models.MaintenancePlanifiee, models.MaintenanceEnCours}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count open maintenances: %w", err)
	}
	return count, nil
}
