package models

import "time"

// Categorie groups equipment of the same kind inside a domain
type Categorie struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Nom         string `gorm:"uniqueIndex;not null" json:"nom"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	DomaineID   uint   `gorm:"index;not null" json:"domaineId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Domaine   *Domaine   `gorm:"foreignKey:DomaineID" json:"domaine,omitempty"`
	Materiels []Materiel `gorm:"foreignKey:CategorieID" json:"materiels,omitempty"`
}

// TableName specifies the table name for Categorie model
func (Categorie) TableName() string {
	return "categories"
}
