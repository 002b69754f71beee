package handlers

import (
	"net/http"
	"time"

	"github.com/teralab-sn/gmaogo/internal/services/export"
)

// exportMaintenancesCSV downloads the full registry as CSV
func (r *Router) exportMaintenancesCSV(w http.ResponseWriter, req *http.Request) {
	maintenances, err := r.maintenances.List()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	data, err := export.MaintenancesCSV(maintenances)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Erreur lors de la génération du CSV")
		return
	}

	filename := "maintenances-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(data)
}

// exportMaintenancesPDF downloads the full registry as a PDF table
func (r *Router) exportMaintenancesPDF(w http.ResponseWriter, req *http.Request) {
	maintenances, err := r.maintenances.List()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	data, err := export.MaintenancesPDF(maintenances)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Erreur lors de la génération du PDF")
		return
	}

	filename := "maintenances-" + time.Now().Format("2006-01-02") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(data)
}
