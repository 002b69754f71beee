package models

import "time"

// Rapport is the intervention report of a work order. At most one per order;
// submitting again replaces the content.
type Rapport struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	MaintenanceID uint   `gorm:"uniqueIndex;not null" json:"maintenanceId"`
	Contenu       string `gorm:"type:text;not null" json:"contenu"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Rapport model
func (Rapport) TableName() string {
	return "rapports"
}
