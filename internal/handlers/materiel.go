package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/skip2/go-qrcode"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/teralab-sn/gmaogo/internal/models"
)

// MaterielRequest is the equipment create/update payload
type MaterielRequest struct {
	Nom              string          `json:"nom" validate:"required"`
	NumeroSerie      string          `json:"numeroSerie" validate:"required"`
	CategorieID      uint            `json:"categorieId" validate:"required"`
	DateAcquisition  string          `json:"dateAcquisition" validate:"required"`
	Statut           string          `json:"statut" validate:"omitempty,oneof=ACTIF EN_MAINTENANCE EN_PANNE STOCK"`
	Localisation     string          `json:"localisation"`
	Caracteristiques json.RawMessage `json:"caracteristiques"`
}

// parseDate accepts the two date shapes the frontend sends
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// listMateriels returns all equipment with the category joined
func (r *Router) listMateriels(w http.ResponseWriter, req *http.Request) {
	var materiels []models.Materiel
	if err := r.db.Preload("Categorie").Find(&materiels).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Chargement des matériels échoué")
		return
	}
	respondJSON(w, http.StatusOK, materiels)
}

// getMateriel returns one piece of equipment
func (r *Router) getMateriel(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant matériel invalide")
		return
	}

	var materiel models.Materiel
	if err := r.db.Preload("Categorie.Domaine").First(&materiel, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Matériel introuvable")
		return
	}
	respondJSON(w, http.StatusOK, materiel)
}

// createMateriel registers equipment, enforcing serial number uniqueness
func (r *Router) createMateriel(w http.ResponseWriter, req *http.Request) {
	var body MaterielRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	date, err := parseDate(body.DateAcquisition)
	if err != nil {
		respondError(w, http.StatusBadRequest, "dateAcquisition invalide")
		return
	}

	var existing models.Materiel
	if err := r.db.Where("numero_serie = ?", body.NumeroSerie).First(&existing).Error; err == nil {
		respondError(w, http.StatusConflict, "Un matériel avec ce numéro de série existe déjà")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusInternalServerError, "Vérification du numéro de série échouée")
		return
	}

	statut := models.StatutMateriel(body.Statut)
	if statut == "" {
		statut = models.MaterielStock
	}

	materiel := models.Materiel{
		Nom:              body.Nom,
		NumeroSerie:      body.NumeroSerie,
		CategorieID:      body.CategorieID,
		DateAcquisition:  date,
		Statut:           statut,
		Localisation:     body.Localisation,
		Caracteristiques: datatypes.JSON(body.Caracteristiques),
	}
	if err := r.db.Create(&materiel).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Création du matériel échouée")
		return
	}

	r.db.Preload("Categorie").First(&materiel, materiel.ID)
	respondJSON(w, http.StatusCreated, materiel)
}

// updateMateriel patches an equipment record
func (r *Router) updateMateriel(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant matériel invalide")
		return
	}

	var materiel models.Materiel
	if err := r.db.First(&materiel, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Matériel introuvable")
		return
	}

	var body MaterielRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	date, err := parseDate(body.DateAcquisition)
	if err != nil {
		respondError(w, http.StatusBadRequest, "dateAcquisition invalide")
		return
	}

	// Another equipment may not already carry the new serial number
	var other models.Materiel
	if err := r.db.Where("numero_serie = ? AND id <> ?", body.NumeroSerie, id).First(&other).Error; err == nil {
		respondError(w, http.StatusConflict, "Un matériel avec ce numéro de série existe déjà")
		return
	}

	materiel.Nom = body.Nom
	materiel.NumeroSerie = body.NumeroSerie
	materiel.CategorieID = body.CategorieID
	materiel.DateAcquisition = date
	materiel.Localisation = body.Localisation
	if body.Statut != "" {
		materiel.Statut = models.StatutMateriel(body.Statut)
	}
	if body.Caracteristiques != nil {
		materiel.Caracteristiques = datatypes.JSON(body.Caracteristiques)
	}

	if err := r.db.Save(&materiel).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Mise à jour du matériel échouée")
		return
	}

	r.db.Preload("Categorie").First(&materiel, materiel.ID)
	respondJSON(w, http.StatusOK, materiel)
}

// deleteMateriel removes equipment
func (r *Router) deleteMateriel(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant matériel invalide")
		return
	}

	var materiel models.Materiel
	if err := r.db.First(&materiel, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Matériel introuvable")
		return
	}
	if err := r.db.Delete(&materiel).Error; err != nil {
		respondError(w, http.StatusConflict, "Suppression impossible: des maintenances référencent ce matériel")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Matériel supprimé avec succès"})
}

// materielEtiquette renders an inventory label QR code for one equipment.
// The code carries the serial number so a scan identifies the unit.
func (r *Router) materielEtiquette(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant matériel invalide")
		return
	}

	var materiel models.Materiel
	if err := r.db.First(&materiel, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Matériel introuvable")
		return
	}

	content := fmt.Sprintf("GMAO/%d/%s", materiel.ID, materiel.NumeroSerie)
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Génération du QR échouée")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
