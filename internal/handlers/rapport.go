package handlers

import (
	"net/http"

	"github.com/teralab-sn/gmaogo/internal/models"
)

// UpsertRapportRequest edits a report without touching the order status
type UpsertRapportRequest struct {
	MaintenanceID uint   `json:"maintenanceId" validate:"required"`
	Contenu       string `json:"contenu" validate:"required"`
}

// getRapport returns the report of one order as a list, empty when no
// report was written yet. The frontend renders the same table either way.
func (r *Router) getRapport(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "maintenanceId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant maintenance invalide")
		return
	}

	rapport, err := r.maintenances.Rapport(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	rapports := []*models.Rapport{}
	if rapport != nil {
		rapports = append(rapports, rapport)
	}
	respondJSON(w, http.StatusOK, rapports)
}

// upsertRapport creates or replaces the report content of one order
func (r *Router) upsertRapport(w http.ResponseWriter, req *http.Request) {
	var body UpsertRapportRequest
	if !r.decodeBody(w, req, &body) {
		return
	}

	rapport, err := r.maintenances.UpsertRapport(body.MaintenanceID, body.Contenu)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rapport)
}
