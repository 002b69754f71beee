package handlers

import (
	"net/http"

	"github.com/teralab-sn/gmaogo/internal/models"
)

// listNotifications returns every notification, newest first
func (r *Router) listNotifications(w http.ResponseWriter, req *http.Request) {
	var notifications []models.Notification
	if err := r.db.
		Preload("Utilisateur").
		Preload("Maintenance").
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Erreur lors de la récupération des notifications")
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

// notificationsByUtilisateur returns one user's notifications, newest
// first
func (r *Router) notificationsByUtilisateur(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant utilisateur invalide")
		return
	}

	var notifications []models.Notification
	if err := r.db.
		Preload("Maintenance").
		Preload("Maintenance.Materiel").
		Where("utilisateur_id = ?", id).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Erreur lors de la récupération des notifications")
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

// countUnread returns the badge counter for one user
func (r *Router) countUnread(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant utilisateur invalide")
		return
	}

	var count int64
	if err := r.db.Model(&models.Notification{}).
		Where("utilisateur_id = ? AND lu = ?", id, false).
		Count(&count).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Erreur lors du comptage des notifications")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// markRead flags one notification as read
func (r *Router) markRead(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant notification invalide")
		return
	}

	result := r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("lu", true)
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Erreur lors de la mise à jour de la notification")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Notification introuvable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Notification marquée comme lue"})
}

// markAllRead flags all of one user's notifications as read and resets
// their live badge counter
func (r *Router) markAllRead(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Identifiant utilisateur invalide")
		return
	}

	if err := r.db.Model(&models.Notification{}).
		Where("utilisateur_id = ? AND lu = ?", id, false).
		Update("lu", true).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Erreur lors de la mise à jour des notifications")
		return
	}

	r.hub.SendToUser(id, "update_unread_count", int64(0))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Toutes les notifications ont été marquées comme lues"})
}
