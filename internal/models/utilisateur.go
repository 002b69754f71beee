package models

import (
	"time"
)

// Role defines possible user roles
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleTechnicien Role = "TECHNICIEN"
)

// StatutUtilisateur defines the activation status of an account
type StatutUtilisateur string

const (
	UtilisateurActif   StatutUtilisateur = "ACTIF"
	UtilisateurInactif StatutUtilisateur = "INACTIF"
)

// Utilisateur represents an admin or technician account.
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (front-end shape)
type Utilisateur struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	NomComplet string            `gorm:"column:nom_complet;not null" json:"nom_complet"`
	Email      string            `gorm:"uniqueIndex;not null" json:"email"`
	Password   string            `gorm:"not null" json:"-"`
	Role       Role              `gorm:"default:'TECHNICIEN';index" json:"role"`
	Status     StatutUtilisateur `gorm:"default:'ACTIF';index" json:"status"`
	Photo      string            `json:"photo,omitempty"`
	DomaineID  *uint             `gorm:"index" json:"domaineId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Domaine *Domaine `gorm:"foreignKey:DomaineID" json:"domaine,omitempty"`
}

// TableName specifies the table name for Utilisateur model
func (Utilisateur) TableName() string {
	return "utilisateurs"
}

// IsAdmin returns true for administrator accounts
func (u *Utilisateur) IsAdmin() bool {
	return u.Role == RoleAdmin
}
