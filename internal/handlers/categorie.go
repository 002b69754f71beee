package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/teralab-sn/gmaogo/internal/models"
)

// CategorieRequest is the category create/update payload
type CategorieRequest struct {
	Nom         string `json:"nom" validate:"required"`
	Description string `json:"description"`
	DomaineID   uint   `json:"domaineId" validate:"required"`
}

// listCategories returns all categories with their domain
func (r *Router) listCategories(w http.ResponseWriter, req *http.Request) {
	var categories []models.Categorie
	if err := r.db.Preload("Domaine").Find(&categories).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Chargement des catégories échoué")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// createCategorie adds a category, names are unique
func (r *Router) createCategorie(w http.ResponseWriter, req *http.Request) {
	var body CategorieRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	var existing models.Categorie
	if err := r.db.Where("nom = ?", body.Nom).First(&existing).Error; err == nil {
		respondError(w, http.StatusConflict, "Une catégorie avec ce nom existe déjà")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusInternalServerError, "Vérification du nom échouée")
		return
	}

	categorie := models.Categorie{Nom: body.Nom, Description: body.Description, DomaineID: body.DomaineID}
	if err := r.db.Create(&categorie).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Création de la catégorie échouée")
		return
	}
	respondJSON(w, http.StatusCreated, categorie)
}

// updateCategorie patches a category
func (r *Router) updateCategorie(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant catégorie invalide")
		return
	}

	var categorie models.Categorie
	if err := r.db.First(&categorie, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Catégorie introuvable")
		return
	}

	var body CategorieRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	var other models.Categorie
	if err := r.db.Where("nom = ? AND id <> ?", body.Nom, id).First(&other).Error; err == nil {
		respondError(w, http.StatusConflict, "Une catégorie avec ce nom existe déjà")
		return
	}

	categorie.Nom = body.Nom
	categorie.Description = body.Description
	categorie.DomaineID = body.DomaineID
	if err := r.db.Save(&categorie).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Mise à jour de la catégorie échouée")
		return
	}
	respondJSON(w, http.StatusOK, categorie)
}

// deleteCategorie removes a category without equipment
func (r *Router) deleteCategorie(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant catégorie invalide")
		return
	}

	var categorie models.Categorie
	if err := r.db.First(&categorie, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Catégorie introuvable")
		return
	}

	var materiels int64
	r.db.Model(&models.Materiel{}).Where("categorie_id = ?", id).Count(&materiels)
	if materiels > 0 {
		respondError(w, http.StatusConflict, "Des matériels sont rattachés à cette catégorie")
		return
	}

	if err := r.db.Delete(&categorie).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Suppression de la catégorie échouée")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Catégorie supprimée avec succès"})
}
