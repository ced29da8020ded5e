package handlers

import (
	"net/http"

	"p9e.in/soltrack/pkg/workflow"
)

// GetPublicStatus is the read-only page a client opens to follow their
// installation. Five fixed milestones, derived purely from the record.
// Deliberately thin on detail: no events, no documents, no equipment.
func GetPublicStatus(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"installationId": inst.InstallationID,
		"clientName":     inst.ClientName,
		"milestones":     workflow.Milestones(inst),
	})
}
