package workflow

import (
	"errors"
	"testing"

	"p9e.in/soltrack/models"
)

func testConfig() *models.StatusConfig {
	cfg := models.DefaultStatusConfig()
	return &cfg
}

func boardFixture() []models.Installation {
	return []models.Installation{
		{ID: 1, InstallationID: "INST-001", Status: StatusPendente, ProjectStatus: ProjectNaoEnviado, HomologationStatus: StatusPendente},
		{ID: 2, InstallationID: "INST-002", Status: StatusAgendado, ProjectStatus: ProjectAprovado, HomologationStatus: StatusPendente, ReportSubmitted: true},
		{ID: 3, InstallationID: "INST-003", Status: StatusPendente, ProjectStatus: ProjectEmAnalise, HomologationStatus: StatusPendente},
		{ID: 4, InstallationID: "INST-004", Status: StatusConcluido, ProjectStatus: ProjectAprovado, HomologationStatus: HomologationAprovado, Archived: true},
	}
}

func TestProjectBoardCompleteness(t *testing.T) {
	cfg := testConfig()
	installations := boardFixture()

	tracks := []Track{TrackInstallation, TrackProject, TrackHomologation}
	for _, track := range tracks {
		t.Run(string(track), func(t *testing.T) {
			columns, err := ProjectBoard(installations, track, cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			catalog, _ := ListStatuses(cfg, track)
			if len(columns) != len(catalog) {
				t.Fatalf("got %d columns, want %d", len(columns), len(catalog))
			}
			for i, col := range columns {
				if col.Status != catalog[i] {
					t.Errorf("column %d = %q, want %q (catalog order)", i, col.Status, catalog[i])
				}
			}

			// Every active installation appears exactly once, in the
			// column matching its current value.
			seen := map[int]int{}
			for _, col := range columns {
				for _, inst := range col.Installations {
					seen[inst.ID]++
					if got := trackSpecs[track].current(&inst); got != col.Status {
						t.Errorf("installation %d in column %q but value is %q", inst.ID, col.Status, got)
					}
				}
			}
			for _, inst := range installations {
				if inst.Archived {
					if seen[inst.ID] != 0 {
						t.Errorf("archived installation %d on board", inst.ID)
					}
					continue
				}
				if seen[inst.ID] != 1 {
					t.Errorf("installation %d appears %d times, want 1", inst.ID, seen[inst.ID])
				}
			}
		})
	}
}

func TestProjectBoardReportTrack(t *testing.T) {
	columns, err := ProjectBoard(boardFixture(), TrackReport, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(columns) != 2 || columns[0].Status != ReportEnviado || columns[1].Status != ReportPendente {
		t.Fatalf("report board must have the two synthetic columns, got %+v", columns)
	}
	if len(columns[0].Installations) != 1 || columns[0].Installations[0].ID != 2 {
		t.Errorf("Enviado column = %v", columns[0].Installations)
	}
	if len(columns[1].Installations) != 2 {
		t.Errorf("Pendente column has %d installations, want 2", len(columns[1].Installations))
	}
}

func TestProjectBoardOffCatalogValue(t *testing.T) {
	cfg := testConfig()
	installations := []models.Installation{
		{ID: 1, Status: "Aguardando Peças"},
	}
	columns, err := ProjectBoard(installations, TrackInstallation, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, col := range columns {
		if len(col.Installations) != 0 {
			t.Errorf("off-catalog installation placed in column %q", col.Status)
		}
	}
}

func TestProjectBoardUnknownTrack(t *testing.T) {
	if _, err := ProjectBoard(nil, Track("archived"), testConfig()); !errors.Is(err, ErrUnknownTrack) {
		t.Errorf("expected ErrUnknownTrack, got %v", err)
	}
}
