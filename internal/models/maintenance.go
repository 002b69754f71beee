package models

import "time"

// StatutMaintenance defines possible work-order statuses
type StatutMaintenance string

const (
	MaintenancePlanifiee StatutMaintenance = "PLANIFIEE"
	MaintenanceEnCours   StatutMaintenance = "EN_COURS"
	MaintenanceTerminee  StatutMaintenance = "TERMINEE"
	MaintenanceAnnulee   StatutMaintenance = "ANNULER"
)

// Valid reports whether s is a member of the status enum
func (s StatutMaintenance) Valid() bool {
	switch s {
	case MaintenancePlanifiee, MaintenanceEnCours, MaintenanceTerminee, MaintenanceAnnulee:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions
func (s StatutMaintenance) Terminal() bool {
	return s == MaintenanceTerminee || s == MaintenanceAnnulee
}

// Priorite defines work-order priority levels
type Priorite string

const (
	PrioriteBasse   Priorite = "BASSE"
	PrioriteMoyenne Priorite = "MOYENNE"
	PrioriteHaute   Priorite = "HAUTE"
	PrioriteUrgente Priorite = "URGENTE"
)

// Valid reports whether p is a member of the priority enum
func (p Priorite) Valid() bool {
	switch p {
	case PrioriteBasse, PrioriteMoyenne, PrioriteHaute, PrioriteUrgente:
		return true
	}
	return false
}

// Maintenance is a work order tying one piece of equipment to one technician
// for a bounded task.
type Maintenance struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	MaterielID   uint              `gorm:"index;not null" json:"materielId"`
	TechnicienID uint              `gorm:"index;not null" json:"technicienId"`
	Description  string            `gorm:"type:text;not null" json:"description"`
	DateDebut    time.Time         `gorm:"not null" json:"dateDebut"`
	Priorite     Priorite          `gorm:"default:'MOYENNE'" json:"priorite"`
	Statut       StatutMaintenance `gorm:"default:'PLANIFIEE';index" json:"statut"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Materiel   *Materiel    `gorm:"foreignKey:MaterielID" json:"materiel,omitempty"`
	Technicien *Utilisateur `gorm:"foreignKey:TechnicienID" json:"technicien,omitempty"`
	Rapport    *Rapport     `gorm:"foreignKey:MaintenanceID;constraint:OnDelete:CASCADE" json:"rapport,omitempty"`
}

// TableName specifies the table name for Maintenance model
func (Maintenance) TableName() string {
	return "maintenances"
}
