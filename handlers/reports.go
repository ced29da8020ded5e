package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"p9e.in/soltrack/config"
	"p9e.in/soltrack/models"
	"p9e.in/soltrack/pkg/workflow"
)

const (
	maxReportStrings = 6
	maxReportPhotos  = 12
)

// SubmitInstallerReport is the public intake for the installer field
// report. One report per client; a re-submission replaces the payload.
// Submitting drives the report track of the client's installations to
// "Enviado" through the engine, so the cached flag and the timeline
// stay consistent with the report record.
func SubmitInstallerReport(w http.ResponseWriter, r *http.Request) {
	var payload models.InstallerReportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if payload.ClientName == "" {
		http.Error(w, "clientName is required", http.StatusBadRequest)
		return
	}
	if len(payload.Strings) > maxReportStrings {
		http.Error(w, "too many string measurements", http.StatusBadRequest)
		return
	}
	if len(payload.PhotoUploads) > maxReportPhotos {
		http.Error(w, "too many photo uploads", http.StatusBadRequest)
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		writeError(w, err)
		return
	}

	var report models.InstallerReport
	err = config.DB.Where("client_name = ?", payload.ClientName).First(&report).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		report = models.InstallerReport{
			ClientName:  payload.ClientName,
			Payload:     raw,
			SubmittedAt: time.Now(),
		}
		if err := config.DB.Create(&report).Error; err != nil {
			writeError(w, err)
			return
		}
	case err != nil:
		writeError(w, err)
		return
	default:
		report.Payload = raw
		report.SubmittedAt = time.Now()
		report.FinalReport = ""
		if err := config.DB.Save(&report).Error; err != nil {
			writeError(w, err)
			return
		}
	}

	// Flip the report track on every installation of this client.
	installations, err := Store.List()
	if err != nil {
		writeError(w, err)
		return
	}
	for i := range installations {
		inst := installations[i]
		if inst.ClientName != payload.ClientName {
			continue
		}
		changed, err := workflow.Transition(&inst, workflow.TrackReport, workflow.ReportEnviado)
		if err != nil {
			writeError(w, err)
			return
		}
		if changed {
			if err := Store.Save(&inst); err != nil {
				writeError(w, err)
				return
			}
		}
	}

	log.Printf("Installer report received for client %s", payload.ClientName)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":          report.ID,
		"clientName":  report.ClientName,
		"submittedAt": report.SubmittedAt,
	})
}

// GetInstallerReport returns the raw report for a client, for the
// admin detail page.
func GetInstallerReport(w http.ResponseWriter, r *http.Request) {
	clientName := r.URL.Query().Get("clientName")
	if clientName == "" {
		http.Error(w, "clientName is required", http.StatusBadRequest)
		return
	}
	var report models.InstallerReport
	if err := config.DB.Where("client_name = ?", clientName).First(&report).Error; err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GenerateFinalReport consolidates the installer report of the
// installation's client into prose through the external summarizer.
// Failure persists nothing and is retriable by the user.
func GenerateFinalReport(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid installation id", http.StatusBadRequest)
		return
	}
	inst, err := Store.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var report models.InstallerReport
	if err := config.DB.Where("client_name = ?", inst.ClientName).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "no installer report submitted for this client", http.StatusNotFound)
			return
		}
		writeError(w, err)
		return
	}

	if Summarizer == nil {
		http.Error(w, "report generation not configured", http.StatusServiceUnavailable)
		return
	}

	protocol := inst.ProtocolNumber
	if protocol == "" {
		protocol = "N/A"
	}
	text, err := Summarizer.Summarize(r.Context(), string(report.Payload), protocol)
	if err != nil {
		log.Printf("Final report generation failed for %s: %v", inst.InstallationID, err)
		writeError(w, err)
		return
	}

	report.FinalReport = text
	if err := config.DB.Save(&report).Error; err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"finalReport": text})
}
