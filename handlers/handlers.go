package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"p9e.in/soltrack/config"
	"p9e.in/soltrack/models"
	"p9e.in/soltrack/pkg/ai"
	"p9e.in/soltrack/pkg/workflow"
	"p9e.in/soltrack/store"
)

// Package-level collaborators, wired once at startup.
var (
	Store      store.InstallationStore
	Summarizer ai.Summarizer
)

// Setup injects the installation store and the report summarizer.
// Summarizer may be nil; the final-report endpoint then answers 503.
func Setup(s store.InstallationStore, sum ai.Summarizer) {
	Store = s
	Summarizer = sum
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to HTTP statuses: not-found 404,
// invalid input 400, external service failure 502.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, workflow.ErrInverterNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, workflow.ErrUnknownTrack),
		errors.Is(err, workflow.ErrInvalidReportValue),
		errors.Is(err, workflow.ErrProjectNotApproved),
		errors.Is(err, workflow.ErrInvalidTime),
		errors.Is(err, workflow.ErrInvalidDate),
		errors.Is(err, workflow.ErrFutureEventDate),
		errors.Is(err, workflow.ErrMissingDescription),
		errors.Is(err, workflow.ErrEmptyStatus),
		errors.Is(err, workflow.ErrDuplicateStatus),
		errors.Is(err, workflow.ErrStatusNotFound),
		errors.Is(err, workflow.ErrNotPermutation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ai.ErrUnavailable):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// loadStatusConfig fetches the singleton catalog row.
func loadStatusConfig() (*models.StatusConfig, error) {
	var cfg models.StatusConfig
	if err := config.DB.First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func saveStatusConfig(cfg *models.StatusConfig) error {
	return config.DB.Save(cfg).Error
}
