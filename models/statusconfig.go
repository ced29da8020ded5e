package models

import (
	"time"

	"github.com/lib/pq"
)

// StatusConfig holds the three ordered status catalogs. There is a
// single row; administrators edit the lists in place. Renaming or
// deleting an entry does not cascade to installations already holding
// the old value.
type StatusConfig struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	InstallationStatuses pq.StringArray `gorm:"type:text[];not null" json:"installationStatuses"`
	ProjectStatuses      pq.StringArray `gorm:"type:text[];not null" json:"projectStatuses"`
	HomologationStatuses pq.StringArray `gorm:"type:text[];not null" json:"homologationStatuses"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for StatusConfig
func (StatusConfig) TableName() string {
	return "status_config"
}

// Default catalogs. The first entry of each list is the default value
// assigned to new installations.
var (
	DefaultInstallationStatuses = []string{"Pendente", "Agendado", "Em Andamento", "Concluído", "Cancelado"}
	DefaultProjectStatuses      = []string{"Não Enviado", "Enviado para Análise", "Aprovado", "Reprovado"}
	DefaultHomologationStatuses = []string{"Pendente", "Aprovado", "Reprovado"}
)

// DefaultStatusConfig returns a fresh config row with the default lists.
func DefaultStatusConfig() StatusConfig {
	return StatusConfig{
		InstallationStatuses: append(pq.StringArray{}, DefaultInstallationStatuses...),
		ProjectStatuses:      append(pq.StringArray{}, DefaultProjectStatuses...),
		HomologationStatuses: append(pq.StringArray{}, DefaultHomologationStatuses...),
	}
}
