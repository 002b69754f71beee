package models

import "time"

// Domaine is an organizational grouping (networking, servers, ...) linking
// equipment categories to the technicians qualified for them.
type Domaine struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Nom         string `gorm:"uniqueIndex;not null" json:"nom"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Categories  []Categorie   `gorm:"foreignKey:DomaineID" json:"categories,omitempty"`
	Techniciens []Utilisateur `gorm:"foreignKey:DomaineID" json:"techniciens,omitempty"`
}

// TableName specifies the table name for Domaine model
func (Domaine) TableName() string {
	return "domaines"
}
