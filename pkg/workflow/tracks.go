package workflow

import (
	"p9e.in/soltrack/models"
)

// Track identifies one of the independent status tracks of an
// installation. The report track is boolean-backed but driven through
// the same interface using the "Enviado"/"Pendente" sentinels.
type Track string

const (
	TrackInstallation Track = "status"
	TrackProject      Track = "projectStatus"
	TrackHomologation Track = "homologationStatus"
	TrackReport       Track = "reportSubmitted"
)

// Well-known status values the engine itself depends on. Catalog lists
// are administrator-editable; these literals are the ones with wired
// behavior (auto-scheduling, scheduling precondition, milestones).
const (
	StatusPendente    = "Pendente"
	StatusAgendado    = "Agendado"
	StatusEmAndamento = "Em Andamento"
	StatusConcluido   = "Concluído"
	StatusCancelado   = "Cancelado"

	ProjectNaoEnviado = "Não Enviado"
	ProjectEmAnalise  = "Enviado para Análise"
	ProjectAprovado   = "Aprovado"
	ProjectReprovado  = "Reprovado"

	HomologationAprovado = "Aprovado"

	ReportEnviado  = "Enviado"
	ReportPendente = "Pendente"
)

// trackSpec resolves a track to its label, accessor and value rules.
// One table instead of runtime type inspection: every track knows how
// to read, write and normalize its own value.
type trackSpec struct {
	label     string
	current   func(*models.Installation) string
	apply     func(*models.Installation, string)
	normalize func(string) (string, error)
}

func acceptAny(v string) (string, error) { return v, nil }

var trackSpecs = map[Track]trackSpec{
	TrackInstallation: {
		label:     "Status da Instalação",
		current:   func(i *models.Installation) string { return i.Status },
		apply:     func(i *models.Installation, v string) { i.Status = v },
		normalize: acceptAny,
	},
	TrackProject: {
		label:     "Status do Projeto",
		current:   func(i *models.Installation) string { return i.ProjectStatus },
		apply:     func(i *models.Installation, v string) { i.ProjectStatus = v },
		normalize: acceptAny,
	},
	TrackHomologation: {
		label:     "Status da Homologação",
		current:   func(i *models.Installation) string { return i.HomologationStatus },
		apply:     func(i *models.Installation, v string) { i.HomologationStatus = v },
		normalize: acceptAny,
	},
	TrackReport: {
		label: "Relatório Técnico",
		current: func(i *models.Installation) string {
			if i.ReportSubmitted {
				return ReportEnviado
			}
			return ReportPendente
		},
		apply: func(i *models.Installation, v string) {
			i.ReportSubmitted = v == ReportEnviado
		},
		normalize: func(v string) (string, error) {
			if v != ReportEnviado && v != ReportPendente {
				return "", ErrInvalidReportValue
			}
			return v, nil
		},
	},
}

// ParseTrack validates a track identifier coming from the API.
func ParseTrack(s string) (Track, error) {
	t := Track(s)
	if _, ok := trackSpecs[t]; !ok {
		return "", ErrUnknownTrack
	}
	return t, nil
}

// Label returns the human label used in audit event descriptions.
func (t Track) Label() string {
	return trackSpecs[t].label
}
