package handlers

import (
	"net/http"

	"github.com/teralab-sn/gmaogo/internal/models"
	"github.com/teralab-sn/gmaogo/internal/services/utilisateur"
)

// InscriptionRequest is the account creation payload
type InscriptionRequest struct {
	NomComplet string `json:"nom_complet" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	DomaineID  *uint  `json:"domaineId"`
	Role       string `json:"role" validate:"omitempty,oneof=ADMIN TECHNICIEN"`
	Status     string `json:"status" validate:"omitempty,oneof=ACTIF INACTIF"`
}

// ConnexionRequest is the login payload
type ConnexionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// inscription registers a new account
func (r *Router) inscription(w http.ResponseWriter, req *http.Request) {
	var body InscriptionRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	user, err := r.utilisateurs.Create(utilisateur.CreateInput{
		NomComplet: body.NomComplet,
		Email:      body.Email,
		Password:   body.Password,
		DomaineID:  body.DomaineID,
		Role:       models.Role(body.Role),
		Status:     models.StatutUtilisateur(body.Status),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// connexion authenticates and returns an access token
func (r *Router) connexion(w http.ResponseWriter, req *http.Request) {
	var body ConnexionRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	result, err := r.utilisateurs.Login(body.Email, body.Password)
	if err != nil {
		// Do not leak which of the two was wrong
		respondError(w, http.StatusUnauthorized, "Email ou mot de passe incorrect")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
