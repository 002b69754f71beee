package handlers

import (
	"net/http"

	"github.com/teralab-sn/gmaogo/internal/models"
	"github.com/teralab-sn/gmaogo/internal/services/maintenance"
)

// CreateMaintenanceRequest is the order creation payload
type CreateMaintenanceRequest struct {
	MaterielID   uint   `json:"materielId" validate:"required"`
	TechnicienID uint   `json:"technicienId" validate:"required"`
	Description  string `json:"description" validate:"required,min=5"`
	DateDebut    string `json:"dateDebut" validate:"required"`
	Priorite     string `json:"priorite" validate:"omitempty,oneof=BASSE MOYENNE HAUTE URGENTE"`
	Statut       string `json:"statut" validate:"omitempty,oneof=PLANIFIEE"`
}

// UpdateMaintenanceRequest is the partial update payload for non-status
// fields
type UpdateMaintenanceRequest struct {
	MaterielID   *uint   `json:"materielId"`
	TechnicienID *uint   `json:"technicienId"`
	Description  *string `json:"description" validate:"omitempty,min=5"`
	DateDebut    *string `json:"dateDebut"`
	Priorite     *string `json:"priorite" validate:"omitempty,oneof=BASSE MOYENNE HAUTE URGENTE"`
}

// UpdateStatutRequest is the status transition payload
type UpdateStatutRequest struct {
	Statut string `json:"statut" validate:"required"`
}

// AjouterRapportRequest is the close-with-report payload
type AjouterRapportRequest struct {
	MaintenanceID uint   `json:"maintenanceId" validate:"required"`
	Contenu       string `json:"contenu" validate:"required"`
}

// createMaintenance schedules a new work order
func (r *Router) createMaintenance(w http.ResponseWriter, req *http.Request) {
	var body CreateMaintenanceRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	date, err := parseDate(body.DateDebut)
	if err != nil {
		respondError(w, http.StatusBadRequest, "dateDebut invalide")
		return
	}

	m, err := r.maintenances.Create(maintenance.CreateInput{
		MaterielID:   body.MaterielID,
		TechnicienID: body.TechnicienID,
		Description:  body.Description,
		DateDebut:    date,
		Priorite:     models.Priorite(body.Priorite),
		Statut:       models.StatutMaintenance(body.Statut),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

// listMaintenances returns every order with equipment, category and
// technician joined
func (r *Router) listMaintenances(w http.ResponseWriter, req *http.Request) {
	ms, err := r.maintenances.List()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ms)
}

// maintenancesByTechnicien returns one technician's orders
func (r *Router) maintenancesByTechnicien(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant technicien invalide")
		return
	}

	ms, err := r.maintenances.ByTechnicien(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ms)
}

// updateMaintenance patches non-status fields
func (r *Router) updateMaintenance(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant maintenance invalide")
		return
	}

	var body UpdateMaintenanceRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	input := maintenance.UpdateInput{
		MaterielID:   body.MaterielID,
		TechnicienID: body.TechnicienID,
		Description:  body.Description,
	}
	if body.DateDebut != nil {
		date, err := parseDate(*body.DateDebut)
		if err != nil {
			respondError(w, http.StatusBadRequest, "dateDebut invalide")
			return
		}
		input.DateDebut = &date
	}
	if body.Priorite != nil {
		p := models.Priorite(*body.Priorite)
		input.Priorite = &p
	}

	m, err := r.maintenances.Update(id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// updateMaintenanceStatut is the state machine entry point
func (r *Router) updateMaintenanceStatut(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant maintenance invalide")
		return
	}

	var body UpdateStatutRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	m, err := r.maintenances.UpdateStatut(id, models.StatutMaintenance(body.Statut))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// deleteMaintenance removes an order unconditionally
func (r *Router) deleteMaintenance(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant maintenance invalide")
		return
	}

	if err := r.maintenances.Delete(id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Maintenance supprimée avec succès"})
}

// ajouterRapport attaches the intervention report and closes the order
func (r *Router) ajouterRapport(w http.ResponseWriter, req *http.Request) {
	var body AjouterRapportRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	rapport, err := r.maintenances.AjouterRapport(body.MaintenanceID, body.Contenu)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rapport)
}

// materielsEnPanne lists equipment currently down, for planning
func (r *Router) materielsEnPanne(w http.ResponseWriter, req *http.Request) {
	ms, err := r.maintenances.MaterielsEnPanne()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ms)
}

// techniciensDomainesEnPanne lists the technicians qualified for the
// domains of broken equipment
func (r *Router) techniciensDomainesEnPanne(w http.ResponseWriter, req *http.Request) {
	techs, err := r.maintenances.TechniciensDomainesEnPanne()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, techs)
}
