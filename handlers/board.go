package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/soltrack/pkg/workflow"
)

// GetBoard projects the active installations onto Kanban columns for
// one track. Column order follows the catalog; the report track uses
// the fixed Enviado/Pendente pair.
func GetBoard(w http.ResponseWriter, r *http.Request) {
	track, err := workflow.ParseTrack(mux.Vars(r)["track"])
	if err != nil {
		writeError(w, err)
		return
	}

	cfg, err := loadStatusConfig()
	if err != nil {
		writeError(w, err)
		return
	}
	installations, err := Store.List()
	if err != nil {
		writeError(w, err)
		return
	}

	columns, err := workflow.ProjectBoard(installations, track, cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"track":   track,
		"columns": columns,
	})
}
