package workflow

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"p9e.in/soltrack/models"
)

func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = prev })
}

func testInstallation() *models.Installation {
	return &models.Installation{
		ID:                 1,
		InstallationID:     "INST-001",
		ClientName:         "Maria Silva",
		InstallationType:   models.TypeResidencial,
		Status:             StatusPendente,
		ProjectStatus:      ProjectNaoEnviado,
		HomologationStatus: StatusPendente,
	}
}

func TestTransitionNoOp(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		value string
	}{
		{"installation track", TrackInstallation, StatusPendente},
		{"project track", TrackProject, ProjectNaoEnviado},
		{"homologation track", TrackHomologation, StatusPendente},
		{"report track", TrackReport, ReportPendente},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := testInstallation()
			changed, err := Transition(inst, tt.track, tt.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if changed {
				t.Error("expected no-op, got changed=true")
			}
			if len(inst.Events) != 0 {
				t.Errorf("no-op appended %d event(s)", len(inst.Events))
			}
			if inst.ScheduledDate != nil {
				t.Error("no-op set scheduledDate")
			}
		})
	}
}

func TestTransitionAppendsNota(t *testing.T) {
	inst := testInstallation()
	changed, err := Transition(inst, TrackProject, ProjectEmAnalise)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected changed=true")
	}
	if inst.ProjectStatus != ProjectEmAnalise {
		t.Errorf("projectStatus = %q, want %q", inst.ProjectStatus, ProjectEmAnalise)
	}
	if len(inst.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(inst.Events))
	}
	ev := inst.Events[0]
	if ev.Type != models.EventNota {
		t.Errorf("event type = %q, want %q", ev.Type, models.EventNota)
	}
	want := `Status do Projeto alterado de "Não Enviado" para "Enviado para Análise".`
	if ev.Description != want {
		t.Errorf("description = %q, want %q", ev.Description, want)
	}
	if ev.ID == "" {
		t.Error("event id is empty")
	}
}

func TestTransitionAutoSchedule(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	fixedNow(t, now)

	inst := testInstallation()
	changed, err := Transition(inst, TrackInstallation, StatusAgendado)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected changed=true")
	}
	if inst.Status != StatusAgendado {
		t.Errorf("status = %q, want %q", inst.Status, StatusAgendado)
	}

	if inst.ScheduledDate == nil {
		t.Fatal("scheduledDate not set")
	}
	want := now.Add(7 * 24 * time.Hour)
	if !inst.ScheduledDate.Equal(want) {
		t.Errorf("scheduledDate = %v, want %v", inst.ScheduledDate, want)
	}

	if len(inst.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(inst.Events))
	}
	// Newest first: the generic Nota, then the auto-schedule record.
	if inst.Events[0].Type != models.EventNota {
		t.Errorf("events[0].Type = %q, want %q", inst.Events[0].Type, models.EventNota)
	}
	wantDesc := `Status da Instalação alterado de "Pendente" para "Agendado".`
	if inst.Events[0].Description != wantDesc {
		t.Errorf("events[0].Description = %q, want %q", inst.Events[0].Description, wantDesc)
	}
	if inst.Events[1].Type != models.EventAgendamento {
		t.Errorf("events[1].Type = %q, want %q", inst.Events[1].Type, models.EventAgendamento)
	}
}

func TestTransitionAutoScheduleReentrancy(t *testing.T) {
	scheduled := time.Date(2026, 9, 1, 14, 0, 0, 0, time.Local)
	inst := testInstallation()
	inst.Status = StatusEmAndamento
	inst.ScheduledDate = &scheduled

	if _, err := Transition(inst, TrackInstallation, StatusAgendado); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inst.Events) != 1 {
		t.Fatalf("got %d events, want 1 (no duplicate auto-schedule)", len(inst.Events))
	}
	if inst.Events[0].Type != models.EventNota {
		t.Errorf("event type = %q, want %q", inst.Events[0].Type, models.EventNota)
	}
	if !inst.ScheduledDate.Equal(scheduled) {
		t.Errorf("scheduledDate overwritten: %v", inst.ScheduledDate)
	}
}

func TestTransitionReportTrack(t *testing.T) {
	inst := testInstallation()

	if _, err := Transition(inst, TrackReport, ReportEnviado); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inst.ReportSubmitted {
		t.Error("reportSubmitted not set by \"Enviado\"")
	}
	want := `Relatório Técnico alterado de "Pendente" para "Enviado".`
	if inst.Events[0].Description != want {
		t.Errorf("description = %q, want %q", inst.Events[0].Description, want)
	}

	if _, err := Transition(inst, TrackReport, ReportPendente); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.ReportSubmitted {
		t.Error("reportSubmitted not cleared by \"Pendente\"")
	}

	before := len(inst.Events)
	_, err := Transition(inst, TrackReport, "Talvez")
	if !errors.Is(err, ErrInvalidReportValue) {
		t.Errorf("expected ErrInvalidReportValue, got %v", err)
	}
	if len(inst.Events) != before {
		t.Error("failed transition appended an event")
	}
}

func TestTransitionUnknownTrack(t *testing.T) {
	inst := testInstallation()
	if _, err := Transition(inst, Track("scheduledDate"), "x"); !errors.Is(err, ErrUnknownTrack) {
		t.Errorf("expected ErrUnknownTrack, got %v", err)
	}
}

func TestTransitionOffCatalogValue(t *testing.T) {
	// The catalogs do not constrain transitions: arbitrary labels are
	// accepted, matching the original system's permissiveness.
	inst := testInstallation()
	changed, err := Transition(inst, TrackInstallation, "Aguardando Peças")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed || inst.Status != "Aguardando Peças" {
		t.Errorf("off-catalog value rejected: changed=%v status=%q", changed, inst.Status)
	}
}

func TestEventOrderingAfterManyOperations(t *testing.T) {
	inst := testInstallation()

	ops := []func() error{
		func() error { _, err := Transition(inst, TrackProject, ProjectEmAnalise); return err },
		func() error { _, err := Transition(inst, TrackProject, ProjectAprovado); return err },
		func() error { return ScheduleInstallation(inst, "2026-09-10", "09:30", "") },
		func() error {
			return RecordManualEvent(inst, models.EventVistoria, "Vistoria inicial no local.",
				time.Now().Add(-48*time.Hour), nil)
		},
		func() error { _, err := Transition(inst, TrackInstallation, StatusEmAndamento); return err },
		func() error { UpdateProtocolNumber(inst, "12345"); return nil },
		func() error { _, err := Transition(inst, TrackInstallation, StatusConcluido); return err },
	}
	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
	}

	for i := 1; i < len(inst.Events); i++ {
		if inst.Events[i].Date.After(inst.Events[i-1].Date) {
			t.Fatalf("events out of order at %d: %v after %v", i, inst.Events[i].Date, inst.Events[i-1].Date)
		}
	}
}

func TestScheduleInstallation(t *testing.T) {
	t.Run("requires approved project", func(t *testing.T) {
		inst := testInstallation()
		err := ScheduleInstallation(inst, "2026-09-10", "14:30", "")
		if !errors.Is(err, ErrProjectNotApproved) {
			t.Errorf("expected ErrProjectNotApproved, got %v", err)
		}
	})

	t.Run("forces status and overwrites date", func(t *testing.T) {
		old := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
		inst := testInstallation()
		inst.ProjectStatus = ProjectAprovado
		inst.Status = StatusCancelado
		inst.ScheduledDate = &old

		if err := ScheduleInstallation(inst, "2026-09-10", "14:30", "Levar escada"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inst.Status != StatusAgendado {
			t.Errorf("status = %q, want %q", inst.Status, StatusAgendado)
		}
		want := time.Date(2026, 9, 10, 14, 30, 0, 0, time.Local)
		if !inst.ScheduledDate.Equal(want) {
			t.Errorf("scheduledDate = %v, want %v", inst.ScheduledDate, want)
		}
		if len(inst.Events) != 1 {
			t.Fatalf("got %d events, want 1", len(inst.Events))
		}
		ev := inst.Events[0]
		if ev.Type != models.EventAgendamento {
			t.Errorf("event type = %q, want %q", ev.Type, models.EventAgendamento)
		}
		wantDesc := "Instalação agendada para 10/09/2026 às 14:30. Observações: Levar escada"
		if ev.Description != wantDesc {
			t.Errorf("description = %q, want %q", ev.Description, wantDesc)
		}
	})

	t.Run("time validation", func(t *testing.T) {
		valid := []string{"00:00", "9:05", "19:59", "23:59"}
		invalid := []string{"24:00", "12:60", "7", "12h30", "", "ab:cd"}

		for _, v := range valid {
			inst := testInstallation()
			inst.ProjectStatus = ProjectAprovado
			if err := ScheduleInstallation(inst, "2026-09-10", v, ""); err != nil {
				t.Errorf("time %q rejected: %v", v, err)
			}
		}
		for _, v := range invalid {
			inst := testInstallation()
			inst.ProjectStatus = ProjectAprovado
			if err := ScheduleInstallation(inst, "2026-09-10", v, ""); !errors.Is(err, ErrInvalidTime) {
				t.Errorf("time %q: expected ErrInvalidTime, got %v", v, err)
			}
		}
	})

	t.Run("date validation", func(t *testing.T) {
		inst := testInstallation()
		inst.ProjectStatus = ProjectAprovado
		if err := ScheduleInstallation(inst, "10/09/2026", "14:30", ""); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate, got %v", err)
		}
	})
}

func TestRecordManualEvent(t *testing.T) {
	t.Run("rejects future date", func(t *testing.T) {
		inst := testInstallation()
		err := RecordManualEvent(inst, models.EventProblema, "Inversor com falha.", time.Now().Add(time.Hour), nil)
		if !errors.Is(err, ErrFutureEventDate) {
			t.Errorf("expected ErrFutureEventDate, got %v", err)
		}
		if len(inst.Events) != 0 {
			t.Error("rejected event was appended")
		}
	})

	t.Run("rejects empty description", func(t *testing.T) {
		inst := testInstallation()
		err := RecordManualEvent(inst, models.EventNota, "", time.Now(), nil)
		if !errors.Is(err, ErrMissingDescription) {
			t.Errorf("expected ErrMissingDescription, got %v", err)
		}
	})

	t.Run("backfilled event sorts into place", func(t *testing.T) {
		inst := testInstallation()
		if _, err := Transition(inst, TrackProject, ProjectEmAnalise); err != nil {
			t.Fatal(err)
		}
		past := time.Now().Add(-72 * time.Hour)
		att := []models.Attachment{{Name: "foto.jpg", Content: "data:image/jpeg;base64,..."}}
		if err := RecordManualEvent(inst, models.EventVistoria, "Vistoria do telhado.", past, att); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(inst.Events) != 2 {
			t.Fatalf("got %d events, want 2", len(inst.Events))
		}
		// The older manual event must sort below the newer transition.
		if inst.Events[1].Type != models.EventVistoria {
			t.Errorf("events[1].Type = %q, want %q", inst.Events[1].Type, models.EventVistoria)
		}
		if len(inst.Events[1].Attachments) != 1 {
			t.Errorf("attachments lost: %v", inst.Events[1].Attachments)
		}
	})

	t.Run("empty type defaults to Nota", func(t *testing.T) {
		inst := testInstallation()
		if err := RecordManualEvent(inst, "", "Anotação avulsa.", time.Now(), nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inst.Events[0].Type != models.EventNota {
			t.Errorf("type = %q, want %q", inst.Events[0].Type, models.EventNota)
		}
	})
}

func TestUpdateProtocolNumber(t *testing.T) {
	t.Run("first assignment uses N/A for the prior value", func(t *testing.T) {
		inst := testInstallation()
		if !UpdateProtocolNumber(inst, "12345") {
			t.Fatal("expected changed=true")
		}
		if inst.ProtocolNumber != "12345" {
			t.Errorf("protocolNumber = %q", inst.ProtocolNumber)
		}
		if inst.ProtocolDate == nil {
			t.Error("protocolDate not set with the number")
		}
		if len(inst.Events) != 1 {
			t.Fatalf("got %d events, want 1", len(inst.Events))
		}
		ev := inst.Events[0]
		if ev.Type != models.EventProtocolo {
			t.Errorf("event type = %q, want %q", ev.Type, models.EventProtocolo)
		}
		want := `Número de protocolo alterado de "N/A" para "12345".`
		if ev.Description != want {
			t.Errorf("description = %q, want %q", ev.Description, want)
		}
	})

	t.Run("unchanged value is a no-op", func(t *testing.T) {
		inst := testInstallation()
		inst.ProtocolNumber = "12345"
		if UpdateProtocolNumber(inst, "12345") {
			t.Error("expected changed=false")
		}
		if len(inst.Events) != 0 {
			t.Error("no-op appended an event")
		}
	})

	t.Run("subsequent change references old value", func(t *testing.T) {
		inst := testInstallation()
		UpdateProtocolNumber(inst, "12345")
		UpdateProtocolNumber(inst, "67890")
		want := `Número de protocolo alterado de "12345" para "67890".`
		if inst.Events[0].Description != want {
			t.Errorf("description = %q, want %q", inst.Events[0].Description, want)
		}
	})
}

func TestTransferEquipment(t *testing.T) {
	newPair := func() (*models.Installation, *models.Installation) {
		src := testInstallation()
		src.Inverters = []models.Inverter{
			{ID: 10, Brand: "Growatt", Model: "MIN 5000TL-X", SerialNumber: "GW-001", InstallationID: &src.ID},
			{ID: 11, Brand: "Fronius", Model: "Primo 6.0", SerialNumber: "FR-002", InstallationID: &src.ID},
		}
		dst := testInstallation()
		dst.ID = 2
		dst.InstallationID = "INST-002"
		dst.ClientName = "João Pereira"
		return src, dst
	}

	t.Run("moves the inverter and records both sides", func(t *testing.T) {
		src, dst := newPair()
		if err := TransferEquipment(src, dst, 10); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, inv := range src.Inverters {
			if inv.ID == 10 {
				t.Error("inverter still on source")
			}
		}
		found := false
		for _, inv := range dst.Inverters {
			if inv.ID == 10 {
				found = true
				if inv.InstallationID == nil || *inv.InstallationID != dst.ID {
					t.Error("inverter allocation not repointed")
				}
			}
		}
		if !found {
			t.Error("inverter missing on destination")
		}
		if len(src.Inverters) != 1 || len(dst.Inverters) != 1 {
			t.Errorf("conservation violated: src=%d dst=%d", len(src.Inverters), len(dst.Inverters))
		}

		if len(src.Events) != 1 || len(dst.Events) != 1 {
			t.Fatalf("each side must gain exactly one event, got src=%d dst=%d", len(src.Events), len(dst.Events))
		}
		wantSrc := `Inversor Growatt MIN 5000TL-X (nº de série GW-001) transferido para a instalação INST-002.`
		if src.Events[0].Description != wantSrc {
			t.Errorf("src description = %q, want %q", src.Events[0].Description, wantSrc)
		}
		wantDst := `Inversor Growatt MIN 5000TL-X (nº de série GW-001) recebido da instalação INST-001.`
		if dst.Events[0].Description != wantDst {
			t.Errorf("dst description = %q, want %q", dst.Events[0].Description, wantDst)
		}
	})

	t.Run("unknown inverter fails and mutates nothing", func(t *testing.T) {
		src, dst := newPair()
		if err := TransferEquipment(src, dst, 99); !errors.Is(err, ErrInverterNotFound) {
			t.Errorf("expected ErrInverterNotFound, got %v", err)
		}
		if len(src.Inverters) != 2 || len(dst.Inverters) != 0 {
			t.Error("failed transfer moved equipment")
		}
		if len(src.Events) != 0 || len(dst.Events) != 0 {
			t.Error("failed transfer appended events")
		}
	})
}

func TestToggleArchive(t *testing.T) {
	inst := testInstallation()
	ToggleArchive(inst)
	if !inst.Archived {
		t.Error("not archived")
	}
	ToggleArchive(inst)
	if inst.Archived {
		t.Error("not unarchived")
	}
	if len(inst.Events) != 0 {
		t.Errorf("archiving must be silent, got %d event(s)", len(inst.Events))
	}
}

func TestParseTrack(t *testing.T) {
	for _, s := range []string{"status", "projectStatus", "homologationStatus", "reportSubmitted"} {
		if _, err := ParseTrack(s); err != nil {
			t.Errorf("ParseTrack(%q) = %v", s, err)
		}
	}
	if _, err := ParseTrack("archived"); !errors.Is(err, ErrUnknownTrack) {
		t.Errorf("expected ErrUnknownTrack, got %v", err)
	}
}

func TestTrackLabels(t *testing.T) {
	want := map[Track]string{
		TrackInstallation: "Status da Instalação",
		TrackProject:      "Status do Projeto",
		TrackHomologation: "Status da Homologação",
		TrackReport:       "Relatório Técnico",
	}
	for track, label := range want {
		if got := track.Label(); got != label {
			t.Errorf("%s.Label() = %q, want %q", track, got, label)
		}
	}
}

func ExampleTransition() {
	inst := &models.Installation{Status: StatusPendente, ProjectStatus: ProjectNaoEnviado, HomologationStatus: StatusPendente}
	Transition(inst, TrackProject, ProjectEmAnalise)
	fmt.Println(inst.Events[0].Description)
	// Output: Status do Projeto alterado de "Não Enviado" para "Enviado para Análise".
}
