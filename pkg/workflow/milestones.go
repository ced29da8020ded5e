package workflow

import (
	"time"

	"p9e.in/soltrack/models"
)

// Milestone is one step of the public status page. Everything here is
// derived from current field values; no extra state is stored.
type Milestone struct {
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	Completed  bool       `json:"completed"`
	InProgress bool       `json:"inProgress"`
	Date       *time.Time `json:"date,omitempty"`
}

// Milestones derives the five fixed steps shown to the client.
func Milestones(inst *models.Installation) []Milestone {
	return []Milestone{
		{
			Key:       "protocolo",
			Label:     "Protocolo",
			Completed: inst.ProtocolNumber != "",
			Date:      inst.ProtocolDate,
		},
		{
			Key:        "projeto",
			Label:      "Análise do Projeto",
			Completed:  inst.ProjectStatus == ProjectAprovado,
			InProgress: inst.ProjectStatus == ProjectEmAnalise,
		},
		{
			Key:       "agendamento",
			Label:     "Agendamento",
			Completed: inst.ScheduledDate != nil,
			Date:      inst.ScheduledDate,
		},
		{
			Key:        "execucao",
			Label:      "Execução",
			Completed:  inst.Status == StatusConcluido,
			InProgress: inst.Status == StatusEmAndamento,
		},
		{
			Key:       "homologacao",
			Label:     "Homologação",
			Completed: inst.HomologationStatus == HomologationAprovado,
		},
	}
}
