package models

import "time"

// TypeNotification defines the kind of event a notification records
type TypeNotification string

const (
	NotificationAssignation TypeNotification = "ASSIGNATION"
	NotificationMiseAJour   TypeNotification = "MISE_A_JOUR"
)

// Notification is the durable record of an event pushed to one user. A
// broadcast to N admins materializes as N rows, one per recipient.
type Notification struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Titre         string           `gorm:"not null" json:"titre"`
	Message       string           `gorm:"type:text;not null" json:"message"`
	Type          TypeNotification `gorm:"not null" json:"type"`
	Lu            bool             `gorm:"default:false;index" json:"lu"`
	UtilisateurID uint             `gorm:"index;not null" json:"utilisateurId"`
	MaintenanceID *uint            `gorm:"index" json:"maintenanceId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	Utilisateur *Utilisateur `gorm:"foreignKey:UtilisateurID" json:"utilisateur,omitempty"`
	// Notifications survive order deletion, the reference is just cleared
	Maintenance *Maintenance `gorm:"foreignKey:MaintenanceID;constraint:OnDelete:SET NULL" json:"maintenance,omitempty"`
}

// TableName specifies the table name for Notification model
func (Notification) TableName() string {
	return "notifications"
}
