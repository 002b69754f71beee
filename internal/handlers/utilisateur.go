package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/teralab-sn/gmaogo/internal/models"
)

// UpdateStatusRequest is the activation toggle payload
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIF INACTIF"`
}

// listTechniciens returns all technician accounts with their domain
func (r *Router) listTechniciens(w http.ResponseWriter, req *http.Request) {
	users, err := r.utilisateurs.Techniciens()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// deleteUtilisateur removes an account
func (r *Router) deleteUtilisateur(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant utilisateur invalide")
		return
	}

	if err := r.utilisateurs.Delete(id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Utilisateur supprimé avec succès",
		"id":      id,
	})
}

// updateUtilisateurStatus toggles an account. Deactivation is refused while
// the technician holds open orders.
func (r *Router) updateUtilisateurStatus(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant utilisateur invalide")
		return
	}

	var body UpdateStatusRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	user, err := r.utilisateurs.SetStatus(id, models.StatutUtilisateur(body.Status))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// uploadPhoto stores a profile photo under the upload directory and records
// its public path on the account
func (r *Router) uploadPhoto(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant utilisateur invalide")
		return
	}

	file, header, err := req.FormFile("photo")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Champ 'photo' manquant")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(r.cfg.UploadDir, 0o755); err != nil {
		respondError(w, http.StatusInternalServerError, "Stockage indisponible")
		return
	}

	name := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(r.cfg.UploadDir, name))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Stockage indisponible")
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		respondError(w, http.StatusInternalServerError, "Écriture du fichier échouée")
		return
	}

	user, err := r.utilisateurs.SetPhoto(id, "/uploads/"+name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
