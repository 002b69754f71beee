package models

import (
	"time"

	"gorm.io/datatypes"
)

// StatutMateriel defines the operational status of a piece of equipment
type StatutMateriel string

const (
	MaterielActif         StatutMateriel = "ACTIF"
	MaterielEnMaintenance StatutMateriel = "EN_MAINTENANCE"
	MaterielEnPanne       StatutMateriel = "EN_PANNE"
	MaterielStock         StatutMateriel = "STOCK"
)

// Materiel represents a tracked piece of equipment.
//
// Status is written from two sides: direct admin edits, and the maintenance
// engine which sets EN_MAINTENANCE when an order is scheduled and ACTIF when
// the order reaches a terminal status. The engine never writes EN_PANNE or
// STOCK.
type Materiel struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Nom             string         `gorm:"not null" json:"nom"`
	NumeroSerie     string         `gorm:"uniqueIndex;not null" json:"numeroSerie"`
	CategorieID     uint           `gorm:"index;not null" json:"categorieId"`
	DateAcquisition time.Time      `json:"dateAcquisition"`
	Statut          StatutMateriel `gorm:"default:'STOCK';index" json:"statut"`
	Localisation    string         `json:"localisation,omitempty"`
	Caracteristiques datatypes.JSON `json:"caracteristiques,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Categorie *Categorie `gorm:"foreignKey:CategorieID" json:"categorie,omitempty"`
}

// TableName specifies the table name for Materiel model
func (Materiel) TableName() string {
	return "materiels"
}
