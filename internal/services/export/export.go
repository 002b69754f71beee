// Package export renders the maintenance registry as CSV or PDF for the
// admin "export data" screen.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/teralab-sn/gmaogo/internal/models"
)

// MaintenancesCSV renders the registry as CSV, one line per order
func MaintenancesCSV(maintenances []models.Maintenance) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "materiel", "numeroSerie", "technicien", "description", "dateDebut", "priorite", "statut"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, m := range maintenances {
		materielNom, numeroSerie := "", ""
		if m.Materiel != nil {
			materielNom = m.Materiel.Nom
			numeroSerie = m.Materiel.NumeroSerie
		}
		technicienNom := ""
		if m.Technicien != nil {
			technicienNom = m.Technicien.NomComplet
		}
		record := []string{
			fmt.Sprintf("%d", m.ID),
			materielNom,
			numeroSerie,
			technicienNom,
			m.Description,
			m.DateDebut.Format("2006-01-02"),
			string(m.Priorite),
			string(m.Statut),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// column layout of the PDF table, widths in mm on an A4 landscape page
var pdfColumns = []struct {
	title string
	width float64
}{
	{"ID", 12},
	{"Matériel", 45},
	{"N° série", 35},
	{"Technicien", 45},
	{"Date début", 28},
	{"Priorité", 25},
	{"Statut", 28},
}

// MaintenancesPDF renders the registry as a PDF table
func MaintenancesPDF(maintenances []models.Maintenance) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr("Registre des maintenances"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, tr(col.title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeader()

	pdf.SetFont("Arial", "", 9)
	for _, m := range maintenances {
		materielNom, numeroSerie := "", ""
		if m.Materiel != nil {
			materielNom = m.Materiel.Nom
			numeroSerie = m.Materiel.NumeroSerie
		}
		technicienNom := ""
		if m.Technicien != nil {
			technicienNom = m.Technicien.NomComplet
		}

		cells := []string{
			fmt.Sprintf("%d", m.ID),
			materielNom,
			numeroSerie,
			technicienNom,
			m.DateDebut.Format("2006-01-02"),
			string(m.Priorite),
			string(m.Statut),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, tr(cells[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
