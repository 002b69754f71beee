package handlers

import (
	"net/http"

	"github.com/teralab-sn/gmaogo/internal/models"
)

// dashboardStats aggregates the counters shown on the admin home screen
func (r *Router) dashboardStats(w http.ResponseWriter, req *http.Request) {
	stats := map[string]interface{}{}

	counts := []struct {
		key   string
		model interface{}
		where []interface{}
	}{
		{"materiels", &models.Materiel{}, nil},
		{"materielsEnPanne", &models.Materiel{}, []interface{}{"statut = ?", models.MaterielEnPanne}},
		{"materielsEnMaintenance", &models.Materiel{}, []interface{}{"statut = ?", models.MaterielEnMaintenance}},
		{"maintenances", &models.Maintenance{}, nil},
		{"maintenancesPlanifiees", &models.Maintenance{}, []interface{}{"statut = ?", models.MaintenancePlanifiee}},
		{"maintenancesEnCours", &models.Maintenance{}, []interface{}{"statut = ?", models.MaintenanceEnCours}},
		{"maintenancesTerminees", &models.Maintenance{}, []interface{}{"statut = ?", models.MaintenanceTerminee}},
		{"techniciens", &models.Utilisateur{}, []interface{}{"role = ?", models.RoleTechnicien}},
		{"techniciensActifs", &models.Utilisateur{}, []interface{}{"role = ? AND status = ?", models.RoleTechnicien, models.UtilisateurActif}},
	}

	for _, c := range counts {
		var n int64
		q := r.db.Model(c.model)
		if c.where != nil {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(&n).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Erreur lors du calcul des statistiques")
			return
		}
		stats[c.key] = n
	}

	var recentes []models.Maintenance
	if err := r.db.
		Preload("Materiel").
		Preload("Technicien").
		Order("created_at DESC").
		Limit(5).
		Find(&recentes).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Erreur lors du calcul des statistiques")
		return
	}
	stats["maintenancesRecentes"] = recentes

	respondJSON(w, http.StatusOK, stats)
}
