package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/soltrack/pkg/workflow"
)

// Status catalog administration. Every mutation loads the singleton
// config row, applies the pure catalog rule and saves it back. None of
// these operations touch installations already holding an affected
// value: records keep orphaned labels (known, deliberate gap).

func trackFromPath(r *http.Request) (workflow.Track, error) {
	return workflow.ParseTrack(mux.Vars(r)["track"])
}

func GetStatuses(w http.ResponseWriter, r *http.Request) {
	track, err := trackFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	cfg, err := loadStatusConfig()
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := workflow.ListStatuses(cfg, track)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"track":    track,
		"statuses": list,
	})
}

// StatusLabelRequest carries a label (add/delete) or a rename pair.
type StatusLabelRequest struct {
	Label    string `json:"label"`
	NewLabel string `json:"newLabel,omitempty"`
}

func AddStatus(w http.ResponseWriter, r *http.Request) {
	track, err := trackFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req StatusLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg, err := loadStatusConfig()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := workflow.AddStatus(cfg, track, req.Label); err != nil {
		writeError(w, err)
		return
	}
	if err := saveStatusConfig(cfg); err != nil {
		writeError(w, err)
		return
	}
	log.Printf("Catalog %s: added %q", track, req.Label)
	writeJSON(w, http.StatusCreated, cfg)
}

func RenameStatus(w http.ResponseWriter, r *http.Request) {
	track, err := trackFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req StatusLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg, err := loadStatusConfig()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := workflow.RenameStatus(cfg, track, req.Label, req.NewLabel); err != nil {
		writeError(w, err)
		return
	}
	if err := saveStatusConfig(cfg); err != nil {
		writeError(w, err)
		return
	}
	log.Printf("Catalog %s: renamed %q -> %q", track, req.Label, req.NewLabel)
	writeJSON(w, http.StatusOK, cfg)
}

func DeleteStatus(w http.ResponseWriter, r *http.Request) {
	track, err := trackFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req StatusLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg, err := loadStatusConfig()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := workflow.DeleteStatus(cfg, track, req.Label); err != nil {
		writeError(w, err)
		return
	}
	if err := saveStatusConfig(cfg); err != nil {
		writeError(w, err)
		return
	}
	log.Printf("Catalog %s: deleted %q", track, req.Label)
	writeJSON(w, http.StatusOK, cfg)
}

// ReorderRequest replaces a catalog wholesale (drag-and-drop order).
type ReorderRequest struct {
	Order []string `json:"order"`
}

func ReorderStatuses(w http.ResponseWriter, r *http.Request) {
	track, err := trackFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg, err := loadStatusConfig()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := workflow.ReorderStatuses(cfg, track, req.Order); err != nil {
		writeError(w, err)
		return
	}
	if err := saveStatusConfig(cfg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
