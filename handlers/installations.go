package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"p9e.in/soltrack/config"
	"p9e.in/soltrack/models"
	"p9e.in/soltrack/pkg/workflow"
)

func parseID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// GetAllInstallations returns every installation for the table view,
// archived records included.
func GetAllInstallations(w http.ResponseWriter, r *http.Request) {
	installations, err := Store.List()
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("archived") == "false" {
		active := installations[:0]
		for _, inst := range installations {
			if !inst.Archived {
				active = append(active, inst)
			}
		}
		installations = active
	}

	writeJSON(w, http.StatusOK, installations)
}

// CreateInstallationRequest is the creation payload. Address fields
// are not accepted here: they are copied from the client record.
type CreateInstallationRequest struct {
	ClientName       string `json:"clientName"`
	InstallationType string `json:"installationType"`
	UtilityCompany   string `json:"utilityCompany"`
	ProtocolNumber   string `json:"protocolNumber"`
}

// CreateInstallation creates a new installation for a registered
// client, denormalizing the client's address and applying the default
// status of each catalog.
func CreateInstallation(w http.ResponseWriter, r *http.Request) {
	var req CreateInstallationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ClientName == "" {
		http.Error(w, "clientName is required", http.StatusBadRequest)
		return
	}
	if req.InstallationType != models.TypeResidencial && req.InstallationType != models.TypeComercial {
		http.Error(w, "installationType must be residencial or comercial", http.StatusBadRequest)
		return
	}

	var client models.Client
	if err := config.DB.Where("name = ?", req.ClientName).First(&client).Error; err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	cfg, err := loadStatusConfig()
	if err != nil {
		writeError(w, err)
		return
	}
	defaultStatus, err := workflow.DefaultStatus(cfg, workflow.TrackInstallation)
	if err != nil {
		writeError(w, err)
		return
	}
	defaultProject, err := workflow.DefaultStatus(cfg, workflow.TrackProject)
	if err != nil {
		writeError(w, err)
		return
	}
	defaultHomologation, err := workflow.DefaultStatus(cfg, workflow.TrackHomologation)
	if err != nil {
		writeError(w, err)
		return
	}

	inst := models.Installation{
		ClientName:         client.Name,
		Address:            client.Address,
		City:               client.City,
		State:              client.State,
		ZipCode:            client.ZipCode,
		InstallationType:   req.InstallationType,
		UtilityCompany:     req.UtilityCompany,
		Status:             defaultStatus,
		ProjectStatus:      defaultProject,
		HomologationStatus: defaultHomologation,
		Events:             models.EventList{},
		Documents:          models.DocumentList{},
	}

	// A report submitted before the installation was registered still
	// counts: the report record is the authority for the flag.
	var reportCount int64
	config.DB.Model(&models.InstallerReport{}).Where("client_name = ?", client.Name).Count(&reportCount)
	inst.ReportSubmitted = reportCount > 0

	if err := Store.Create(&inst); err != nil {
		writeError(w, err)
		return
	}

	if req.ProtocolNumber != "" {
		workflow.UpdateProtocolNumber(&inst, req.ProtocolNumber)
		if err := Store.Save(&inst); err != nil {
			writeError(w, err)
			return
		}
	}

	log.Printf("Created installation %s for client %s", inst.InstallationID, inst.ClientName)
	writeJSON(w, http.StatusCreated, inst)
}

// GetInstallation returns a single installation with equipment.
func GetInstallation(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, inst)
}

// UpdateInstallationRequest carries the directly editable fields.
// Status tracks, protocol and scheduling have their own endpoints.
type UpdateInstallationRequest struct {
	InstallationType *string              `json:"installationType,omitempty"`
	UtilityCompany   *string              `json:"utilityCompany,omitempty"`
	Documents        *models.DocumentList `json:"documents,omitempty"`
}

func UpdateInstallation(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateInstallationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.InstallationType != nil {
		if *req.InstallationType != models.TypeResidencial && *req.InstallationType != models.TypeComercial {
			http.Error(w, "installationType must be residencial or comercial", http.StatusBadRequest)
			return
		}
		inst.InstallationType = *req.InstallationType
	}
	if req.UtilityCompany != nil {
		inst.UtilityCompany = *req.UtilityCompany
	}
	if req.Documents != nil {
		inst.Documents = *req.Documents
	}

	if err := Store.Save(inst); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func DeleteInstallation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid installation id", http.StatusBadRequest)
		return
	}
	if err := Store.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TransitionRequest is a drag-and-drop or dropdown status change:
// dropping a card on column X is transition(track, X).
type TransitionRequest struct {
	Track string `json:"track"`
	Value string `json:"value"`
}

// TransitionInstallation moves one status track through the workflow
// engine and persists the result. No-op transitions return the record
// unchanged without a save.
func TransitionInstallation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid installation id", http.StatusBadRequest)
		return
	}

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	track, err := workflow.ParseTrack(req.Track)
	if err != nil {
		writeError(w, err)
		return
	}

	inst, err := Store.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	changed, err := workflow.Transition(inst, track, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	if changed {
		if err := Store.Save(inst); err != nil {
			writeError(w, err)
			return
		}
		log.Printf("Installation %s: %s -> %q", inst.InstallationID, track, req.Value)
	}

	writeJSON(w, http.StatusOK, inst)
}

// ScheduleRequest sets an explicit installation visit.
type ScheduleRequest struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Time  string `json:"time"` // HH:mm
	Notes string `json:"notes"`
}

func ScheduleInstallation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid installation id", http.StatusBadRequest)
		return
	}
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	inst, err := Store.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := workflow.ScheduleInstallation(inst, req.Date, req.Time, req.Notes); err != nil {
		writeError(w, err)
		return
	}
	if err := Store.Save(inst); err != nil {
		writeError(w, err)
		return
	}

	log.Printf("Installation %s scheduled for %s %s", inst.InstallationID, req.Date, req.Time)
	writeJSON(w, http.StatusOK, inst)
}

// ManualEventRequest is a user-authored timeline entry.
type ManualEventRequest struct {
	Type        string              `json:"type"`
	Description string              `json:"description"`
	Date        time.Time           `json:"date"`
	Attachments []models.Attachment `json:"attachments"`
}

func AddInstallationEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid installation id", http.StatusBadRequest)
		return
	}
	var req ManualEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	inst, err := Store.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := workflow.RecordManualEvent(inst, req.Type, req.Description, req.Date, req.Attachments); err != nil {
		writeError(w, err)
		return
	}
	if err := Store.Save(inst); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

// ProtocolRequest updates the utility protocol number.
type ProtocolRequest struct {
	ProtocolNumber string `json:"protocolNumber"`
}

func UpdateProtocol(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid installation id", http.StatusBadRequest)
		return
	}
	var req ProtocolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	inst, err := Store.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if workflow.UpdateProtocolNumber(inst, req.ProtocolNumber) {
		if err := Store.Save(inst); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, inst)
}

// ArchiveInstallation flips the archived flag. Archived records leave
// the boards but stay in the table view.
func ArchiveInstallation(w http.ResponseWriter, r *http.Request) {
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

	workflow.ToggleArchive(inst)
	if err := Store.Save(inst); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

// GetScheduledInstallations feeds the calendar view: active
// installations with a scheduled date inside [from, to].
func GetScheduledInstallations(w http.ResponseWriter, r *http.Request) {
	// Scheduled dates are built in local time; the range must be too,
	// or the window shifts by the zone offset.
	from, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("from"), time.Local)
	if err != nil {
		http.Error(w, "invalid or missing from date", http.StatusBadRequest)
		return
	}
	to, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("to"), time.Local)
	if err != nil {
		http.Error(w, "invalid or missing to date", http.StatusBadRequest)
		return
	}
	to = to.Add(24 * time.Hour)

	installations, err := Store.List()
	if err != nil {
		writeError(w, err)
		return
	}

	scheduled := []models.Installation{}
	for _, inst := range installations {
		if inst.Archived || inst.ScheduledDate == nil {
			continue
		}
		if inst.ScheduledDate.Before(from) || !inst.ScheduledDate.Before(to) {
			continue
		}
		scheduled = append(scheduled, inst)
	}
	writeJSON(w, http.StatusOK, scheduled)
}
