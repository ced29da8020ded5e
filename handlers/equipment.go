package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"p9e.in/soltrack/config"
	"p9e.in/soltrack/models"
	"p9e.in/soltrack/pkg/workflow"
)

func GetAllInverters(w http.ResponseWriter, r *http.Request) {
	var inverters []models.Inverter
	query := config.DB.Order("id")
	if v := r.URL.Query().Get("unallocated"); v == "true" {
		query = query.Where("installation_id IS NULL")
	}
	if err := query.Find(&inverters).Error; err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inverters)
}

func CreateInverter(w http.ResponseWriter, r *http.Request) {
	var inv models.Inverter
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if inv.Brand == "" || inv.Model == "" {
		http.Error(w, "brand and model are required", http.StatusBadRequest)
		return
	}
	inv.ID = 0
	if err := config.DB.Create(&inv).Error; err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func GetAllPanels(w http.ResponseWriter, r *http.Request) {
	var panels []models.Panel
	if err := config.DB.Order("id").Find(&panels).Error; err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, panels)
}

func CreatePanel(w http.ResponseWriter, r *http.Request) {
	var panel models.Panel
	if err := json.NewDecoder(r.Body).Decode(&panel); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if panel.Brand == "" || panel.Model == "" {
		http.Error(w, "brand and model are required", http.StatusBadRequest)
		return
	}
	panel.ID = 0
	if panel.Quantity <= 0 {
		panel.Quantity = 1
	}
	if err := config.DB.Create(&panel).Error; err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, panel)
}

// TransferRequest moves an inverter between installations.
type TransferRequest struct {
	FromInstallationID int `json:"fromInstallationId"`
	ToInstallationID   int `json:"toInstallationId"`
}

// TransferInverter reallocates an inverter and records the transfer on
// both timelines through the workflow engine.
func TransferInverter(w http.ResponseWriter, r *http.Request) {
	inverterID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid inverter id", http.StatusBadRequest)
		return
	}

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.FromInstallationID == req.ToInstallationID {
		http.Error(w, "source and destination are the same installation", http.StatusBadRequest)
		return
	}

	src, err := Store.Get(req.FromInstallationID)
	if err != nil {
		writeError(w, err)
		return
	}
	dst, err := Store.Get(req.ToInstallationID)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := workflow.TransferEquipment(src, dst, inverterID); err != nil {
		writeError(w, err)
		return
	}

	// The inverter row owns the allocation; the store saves only the
	// installation rows (events).
	if err := config.DB.Model(&models.Inverter{}).
		Where("id = ?", inverterID).
		Update("installation_id", dst.ID).Error; err != nil {
		writeError(w, err)
		return
	}
	if err := Store.Save(src); err != nil {
		writeError(w, err)
		return
	}
	if err := Store.Save(dst); err != nil {
		writeError(w, err)
		return
	}

	log.Printf("Transferred inverter %d: %s -> %s", inverterID, src.InstallationID, dst.InstallationID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"source":      src,
		"destination": dst,
	})
}
