package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/teralab-sn/gmaogo/internal/models"
)

// DomaineRequest is the domain create/update payload
type DomaineRequest struct {
	Nom         string `json:"nom" validate:"required"`
	Description string `json:"description"`
}

// listDomaines returns all domains with their categories and technicians
func (r *Router) listDomaines(w http.ResponseWriter, req *http.Request) {
	var domaines []models.Domaine
	if err := r.db.Preload("Categories").Preload("Techniciens").Find(&domaines).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Chargement des domaines échoué")
		return
	}
	respondJSON(w, http.StatusOK, domaines)
}

// createDomaine adds a domain, names are unique
func (r *Router) createDomaine(w http.ResponseWriter, req *http.Request) {
	var body DomaineRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	var existing models.Domaine
	if err := r.db.Where("nom = ?", body.Nom).First(&existing).Error; err == nil {
		respondError(w, http.StatusConflict, "Un domaine avec ce nom existe déjà")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusInternalServerError, "Vérification du nom échouée")
		return
	}

	domaine := models.Domaine{Nom: body.Nom, Description: body.Description}
	if err := r.db.Create(&domaine).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Création du domaine échouée")
		return
	}
	respondJSON(w, http.StatusCreated, domaine)
}

// updateDomaine patches a domain
func (r *Router) updateDomaine(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant domaine invalide")
		return
	}

	var domaine models.Domaine
	if err := r.db.First(&domaine, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Domaine introuvable")
		return
	}

	var body DomaineRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	var other models.Domaine
	if err := r.db.Where("nom = ? AND id <> ?", body.Nom, id).First(&other).Error; err == nil {
		respondError(w, http.StatusConflict, "Un domaine avec ce nom existe déjà")
		return
	}

	domaine.Nom = body.Nom
	domaine.Description = body.Description
	if err := r.db.Save(&domaine).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Mise à jour du domaine échouée")
		return
	}
	respondJSON(w, http.StatusOK, domaine)
}

// deleteDomaine removes a domain without categories or technicians
func (r *Router) deleteDomaine(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant domaine invalide")
		return
	}

	var domaine models.Domaine
	if err := r.db.First(&domaine, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Domaine introuvable")
		return
	}

	var categories, techniciens int64
	r.db.Model(&models.Categorie{}).Where("domaine_id = ?", id).Count(&categories)
	r.db.Model(&models.Utilisateur{}).Where("domaine_id = ?", id).Count(&techniciens)
	if categories > 0 || techniciens > 0 {
		respondError(w, http.StatusConflict, "Des catégories ou des techniciens sont rattachés à ce domaine")
		return
	}

	if err := r.db.Delete(&domaine).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Suppression du domaine échouée")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Domaine supprimé avec succès"})
}
