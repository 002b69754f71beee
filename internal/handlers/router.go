package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/teralab-sn/gmaogo/internal/apperr"
	"github.com/teralab-sn/gmaogo/internal/buildinfo"
	"github.com/teralab-sn/gmaogo/internal/config"
	"github.com/teralab-sn/gmaogo/internal/database"
	"github.com/teralab-sn/gmaogo/internal/middleware"
	"github.com/teralab-sn/gmaogo/internal/services/maintenance"
	"github.com/teralab-sn/gmaogo/internal/services/utilisateur"
	"github.com/teralab-sn/gmaogo/internal/websocket"
)

// Router wraps the mux router, the database and the services
type Router struct {
	*mux.Router
	db           *database.DB
	cfg          *config.Config
	validate     *validator.Validate
	hub          *websocket.Hub
	maintenances *maintenance.Service
	utilisateurs *utilisateur.Service
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, hub *websocket.Hub,
	maintSvc *maintenance.Service, userSvc *utilisateur.Service) *Router {
	r := &Router{
		Router:       mux.NewRouter(),
		db:           db,
		cfg:          cfg,
		validate:     validator.New(),
		hub:          hub,
		maintenances: maintSvc,
		utilisateurs: userSvc,
	}

	r.Use(middleware.CORS)

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Real-time notification channel
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWs(hub, w, req)
	})

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/inscription", r.inscription).Methods("POST")
	auth.HandleFunc("/connexion", r.connexion).Methods("POST")

	// Utilisateur routes
	users := r.PathPrefix("/utilisateurs").Subrouter()
	users.HandleFunc("", r.listTechniciens).Methods("GET")
	users.HandleFunc("/{id}", r.deleteUtilisateur).Methods("DELETE")
	users.HandleFunc("/{id}/status", r.updateUtilisateurStatus).Methods("PUT")
	users.HandleFunc("/{id}/photo", r.uploadPhoto).Methods("POST")

	// Materiel routes
	materiels := r.PathPrefix("/materiels").Subrouter()
	materiels.HandleFunc("", r.listMateriels).Methods("GET")
	materiels.HandleFunc("", r.createMateriel).Methods("POST")
	materiels.HandleFunc("/{id}", r.getMateriel).Methods("GET")
	materiels.HandleFunc("/{id}", r.updateMateriel).Methods("PUT")
	materiels.HandleFunc("/{id}", r.deleteMateriel).Methods("DELETE")
	materiels.HandleFunc("/{id}/etiquette", r.materielEtiquette).Methods("GET")

	// Categorie routes
	categories := r.PathPrefix("/categories").Subrouter()
	categories.HandleFunc("", r.listCategories).Methods("GET")
	categories.HandleFunc("", r.createCategorie).Methods("POST")
	categories.HandleFunc("/{id}", r.updateCategorie).Methods("PUT")
	categories.HandleFunc("/{id}", r.deleteCategorie).Methods("DELETE")

	// Domaine routes
	domaines := r.PathPrefix("/domaines").Subrouter()
	domaines.HandleFunc("", r.listDomaines).Methods("GET")
	domaines.HandleFunc("", r.createDomaine).Methods("POST")
	domaines.HandleFunc("/{id}", r.updateDomaine).Methods("PUT")
	domaines.HandleFunc("/{id}", r.deleteDomaine).Methods("DELETE")

	// Maintenance routes. The two planning helpers are registered before the
	// parameterized routes so mux does not swallow them as ids.
	maintenances := r.PathPrefix("/maintenances").Subrouter()
	maintenances.HandleFunc("/materiels-en-panne", r.materielsEnPanne).Methods("GET")
	maintenances.HandleFunc("/techniciens-du-domaine-pannes", r.techniciensDomainesEnPanne).Methods("GET")
	maintenances.HandleFunc("/rapport", r.ajouterRapport).Methods("POST")
	maintenances.HandleFunc("/technicien/{id}", r.maintenancesByTechnicien).Methods("GET")
	maintenances.HandleFunc("", r.listMaintenances).Methods("GET")
	maintenances.HandleFunc("", r.createMaintenance).Methods("POST")
	maintenances.HandleFunc("/{id}", r.updateMaintenance).Methods("PUT")
	maintenances.HandleFunc("/{id}", r.deleteMaintenance).Methods("DELETE")
	maintenances.HandleFunc("/{id}/statut", r.updateMaintenanceStatut).Methods("PUT")

	// Rapport routes
	rapports := r.PathPrefix("/rapports").Subrouter()
	rapports.HandleFunc("", r.upsertRapport).Methods("POST")
	rapports.HandleFunc("/{maintenanceId}", r.getRapport).Methods("GET")

	// Notification routes
	notifications := r.PathPrefix("/notifications").Subrouter()
	notifications.HandleFunc("", r.listNotifications).Methods("GET")
	notifications.HandleFunc("/utilisateur/{id}", r.notificationsByUtilisateur).Methods("GET")
	notifications.HandleFunc("/utilisateur/{id}/non-lues", r.countUnread).Methods("GET")
	notifications.HandleFunc("/utilisateur/{id}/toutes-lues", r.markAllRead).Methods("PUT")
	notifications.HandleFunc("/{id}/lue", r.markRead).Methods("PUT")

	// Dashboard and export (admin screens, token required)
	dashboard := r.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(middleware.Auth(cfg.JWTSecret))
	dashboard.HandleFunc("/stats", r.dashboardStats).Methods("GET")

	exports := r.PathPrefix("/export").Subrouter()
	exports.Use(middleware.Auth(cfg.JWTSecret))
	exports.HandleFunc("/maintenances.csv", r.exportMaintenancesCSV).Methods("GET")
	exports.HandleFunc("/maintenances.pdf", r.exportMaintenancesPDF).Methods("GET")

	// Uploaded profile photos
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Static frontend build, when deployed alongside the API
	if cfg.FrontendDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.FrontendDir)))
	}

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"started": buildinfo.StartTime,
		"commit":  buildinfo.CommitHash,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondServiceError maps an application error to its HTTP status
func respondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.InvalidInput:
		status = http.StatusBadRequest
	case apperr.InvalidTransition:
		status = http.StatusUnprocessableEntity
	case apperr.Conflict:
		status = http.StatusConflict
	}
	respondError(w, status, err.Error())
}

// respondValidationError sends a field-level breakdown of a failed DTO
// validation
func respondValidationError(w http.ResponseWriter, err error) {
	fields := map[string]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
	}
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation échouée",
		"fields": fields,
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "ce champ est obligatoire"
	case "min":
		return "longueur minimale: " + fe.Param()
	case "email":
		return "adresse email invalide"
	case "oneof":
		return "valeurs acceptées: " + fe.Param()
	}
	return "valeur incorrecte"
}
