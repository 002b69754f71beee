package utilisateur

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/teralab-sn/gmaogo/internal/apperr"
	"github.com/teralab-sn/gmaogo/internal/models"
	"github.com/teralab-sn/gmaogo/internal/services/maintenance"
	"github.com/teralab-sn/gmaogo/internal/utils"
)

// Service manages user accounts. Deactivation is coupled to the maintenance
// engine: a technician holding open work cannot be deactivated.
type Service struct {
	db          *gorm.DB
	maintenance *maintenance.Service
	jwtSecret   string
}

// NewService creates a new user service
func NewService(db *gorm.DB, maint *maintenance.Service, jwtSecret string) *Service {
	return &Service{db: db, maintenance: maint, jwtSecret: jwtSecret}
}

// CreateInput carries the fields of an account creation request
type CreateInput struct {
	NomComplet string
	Email      string
	Password   string
	DomaineID  *uint
	Role       models.Role
	Status     models.StatutUtilisateur
	Photo      string
}

// LoginResult is returned after a successful authentication
type LoginResult struct {
	AccessToken string             `json:"access_token"`
	Utilisateur models.Utilisateur `json:"utilisateur"`
}

// Create registers an account with a hashed password
func (s *Service) Create(input CreateInput) (*models.Utilisateur, error) {
	var existing models.Utilisateur
	err := s.db.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, apperr.New(apperr.Conflict, "cet email est déjà utilisé")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleTechnicien
	}
	status := input.Status
	if status == "" {
		status = models.UtilisateurActif
	}

	user := models.Utilisateur{
		NomComplet: input.NomComplet,
		Email:      input.Email,
		Password:   hashed,
		Role:       role,
		Status:     status,
		Photo:      input.Photo,
		DomaineID:  input.DomaineID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create utilisateur: %w", err)
	}
	return &user, nil
}

// Login authenticates by email and password and issues an access token
func (s *Service) Login(email, password string) (*LoginResult, error) {
	var user models.Utilisateur
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "utilisateur introuvable")
		}
		return nil, fmt.Errorf("load utilisateur: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, apperr.New(apperr.InvalidInput, "mot de passe incorrect")
	}

	token, err := utils.GenerateToken(&user, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &LoginResult{AccessToken: token, Utilisateur: user}, nil
}

// Techniciens lists all technician accounts with their domain joined
func (s *Service) Techniciens() ([]models.Utilisateur, error) {
	var users []models.Utilisateur
	if err := s.db.Preload("Domaine").
		Where("role = ?", models.RoleTechnicien).
		Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list techniciens: %w", err)
	}
	return users, nil
}

// SetStatus activates or deactivates an account. Deactivation is refused
// while the user holds orders in PLANIFIEE or EN_COURS.
func (s *Service) SetStatus(id uint, status models.StatutUtilisateur) (*models.Utilisateur, error) {
	var user models.Utilisateur
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "utilisateur %d introuvable", id)
		}
		return nil, fmt.Errorf("load utilisateur: %w", err)
	}

	if status == models.UtilisateurInactif {
		open, err := s.maintenance.CountOpenByTechnicien(id)
		if err != nil {
			return nil, err
		}
		if open > 0 {
			return nil, apperr.New(apperr.Conflict,
				"impossible de désactiver cet utilisateur : il a des maintenances en cours")
		}
	}

	if err := s.db.Model(&user).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	user.Status = status
	return &user, nil
}

// SetPhoto records the stored path of a profile photo
func (s *Service) SetPhoto(id uint, path string) (*models.Utilisateur, error) {
	var user models.Utilisateur
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "utilisateur %d introuvable", id)
		}
		return nil, fmt.Errorf("load utilisateur: %w", err)
	}
	if err := s.db.Model(&user).Update("photo", path).Error; err != nil {
		return nil, fmt.Errorf("update photo: %w", err)
	}
	user.Photo = path
	return &user, nil
}

// Delete removes an account
func (s *Service) Delete(id uint) error {
	var user models.Utilisateur
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "utilisateur %d introuvable", id)
		}
		return fmt.Errorf("load utilisateur: %w", err)
	}
	if err := s.db.Delete(&user).Error; err != nil {
		return fmt.Errorf("delete utilisateur: %w", err)
	}
	return nil
}
