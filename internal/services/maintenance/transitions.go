package maintenance

import (
	"github.com/teralab-sn/gmaogo/internal/models"
)

// transitions is the single authoritative encoding of the work-order state
// machine. transitions[from][to] yields the equipment status to apply when
// the edge is taken; a missing entry means the edge is illegal.
//
//	PLANIFIEE -> EN_COURS   equipment EN_MAINTENANCE
//	PLANIFIEE -> ANNULER    equipment ACTIF
//	EN_COURS  -> TERMINEE   equipment ACTIF
//	EN_COURS  -> ANNULER    equipment ACTIF
//
// TERMINEE and ANNULER are terminal.
var transitions = map[models.StatutMaintenance]map[models.StatutMaintenance]models.StatutMateriel{
	models.MaintenancePlanifiee: {
		models.MaintenanceEnCours: models.MaterielEnMaintenance,
		models.MaintenanceAnnulee: models.MaterielActif,
	},
	models.MaintenanceEnCours: {
		models.MaintenanceTerminee: models.MaterielActif,
		models.MaintenanceAnnulee:  models.MaterielActif,
	},
}

// CanTransition reports whether the from -> to edge is legal
func CanTransition(from, to models.StatutMaintenance) bool {
	_, ok := transitions[from][to]
	return ok
}

// materielStatutFor returns the equipment status mandated by taking the
// from -> to edge
func materielStatutFor(from, to models.StatutMaintenance) (models.StatutMateriel, bool) {
	statut, ok := transitions[from][to]
	return statut, ok
}
