package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"p9e.in/soltrack/models"
)

var exportHeader = []string{
	"ID", "Instalação", "Cliente", "Cidade", "UF", "Tipo", "Concessionária",
	"Protocolo", "Status", "Status do Projeto", "Status da Homologação",
	"Relatório", "Data Agendada", "Arquivada",
}

func exportRow(inst models.Installation) []string {
	report := "Pendente"
	if inst.ReportSubmitted {
		report = "Enviado"
	}
	scheduled := ""
	if inst.ScheduledDate != nil {
		scheduled = inst.ScheduledDate.Format("02/01/2006 15:04")
	}
	archived := "Não"
	if inst.Archived {
		archived = "Sim"
	}
	return []string{
		fmt.Sprintf("%d", inst.ID), inst.InstallationID, inst.ClientName,
		inst.City, inst.State, inst.InstallationType, inst.UtilityCompany,
		inst.ProtocolNumber, inst.Status, inst.ProjectStatus,
		inst.HomologationStatus, report, scheduled, archived,
	}
}

// ExportInstallationsToExcel downloads the installation table as xlsx.
func ExportInstallationsToExcel(w http.ResponseWriter, r *http.Request) {
	installations, err := Store.List()
	if err != nil {
		writeError(w, err)
		return
	}

	f := excelize.NewFile()
	sheet := "Instalações"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for row, inst := range installations {
		for col, value := range exportRow(inst) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("instalacoes_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportInstallationsToCSV downloads the installation table as CSV.
func ExportInstallationsToCSV(w http.ResponseWriter, r *http.Request) {
	installations, err := Store.List()
	if err != nil {
		writeError(w, err)
		return
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	if err := writer.Write(exportHeader); err != nil {
		http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
		return
	}
	for _, inst := range installations {
		if err := writer.Write(exportRow(inst)); err != nil {
			http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
			return
		}
	}
	writer.Flush()

	filename := fmt.Sprintf("instalacoes_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}
