package workflow

import (
	"p9e.in/soltrack/models"
)

// BoardColumn is one Kanban column: a catalog status and the
// installations currently holding it, in store order.
type BoardColumn struct {
	Status        string                `json:"status"`
	Installations []models.Installation `json:"installations"`
}

// ProjectBoard groups installations into columns for one track.
// Archived installations never appear. Column order follows the
// catalog; for the report track the two fixed synthetic columns
// "Enviado"/"Pendente" are used instead.
//
// An installation whose track value is no longer in the catalog (the
// label was deleted after assignment) lands in no column; it is still
// reachable through the full table view.
func ProjectBoard(installations []models.Installation, track Track, cfg *models.StatusConfig) ([]BoardColumn, error) {
	spec, ok := trackSpecs[track]
	if !ok {
		return nil, ErrUnknownTrack
	}

	var labels []string
	if track == TrackReport {
		labels = []string{ReportEnviado, ReportPendente}
	} else {
		var err error
		labels, err = ListStatuses(cfg, track)
		if err != nil {
			return nil, err
		}
	}

	columns := make([]BoardColumn, len(labels))
	byLabel := make(map[string]int, len(labels))
	for i, label := range labels {
		columns[i] = BoardColumn{Status: label, Installations: []models.Installation{}}
		byLabel[label] = i
	}

	for _, inst := range installations {
		if inst.Archived {
			continue
		}
		if i, ok := byLabel[spec.current(&inst)]; ok {
			columns[i].Installations = append(columns[i].Installations, inst)
		}
	}

	return columns, nil
}
