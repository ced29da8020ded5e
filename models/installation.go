package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
	"time"
)

// Installation types
const (
	TypeResidencial = "residencial"
	TypeComercial   = "comercial"
)

// Event type vocabulary. Free-form types are also accepted on manual events.
const (
	EventProtocolo   = "Protocolo"
	EventProjeto     = "Projeto"
	EventHomologacao = "Homologação"
	EventAgendamento = "Agendamento"
	EventProblema    = "Problema"
	EventNota        = "Nota"
	EventVistoria    = "Vistoria"
	EventConclusao   = "Conclusão"
)

// Attachment is a file attached to an event (name + inline content).
type Attachment struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Event is an immutable audit record on an installation's timeline.
// Created once, never updated or deleted.
type Event struct {
	ID          string       `json:"id"`
	Date        time.Time    `json:"date"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Document is a file attached directly to an installation.
type Document struct {
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	MimeType   string    `json:"mimeType"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// EventList is stored as a single jsonb column. Display order is
// strictly newest-first; SortDesc must be called after any append.
type EventList []Event

func (e EventList) Value() (driver.Value, error) {
	if e == nil {
		return "[]", nil
	}
	b, err := json.Marshal(e)
	return string(b), err
}

func (e *EventList) Scan(value interface{}) error {
	if value == nil {
		*e = EventList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("EventList: unsupported scan source")
	}
	return json.Unmarshal(b, e)
}

// SortDesc restores the timeline invariant: non-increasing by date.
// The sort is stable so same-timestamp events keep insertion order.
func (e EventList) SortDesc() {
	sort.SliceStable(e, func(i, j int) bool {
		return e[i].Date.After(e[j].Date)
	})
}

// DocumentList is stored as a single jsonb column.
type DocumentList []Document

func (d DocumentList) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal(d)
	return string(b), err
}

func (d *DocumentList) Scan(value interface{}) error {
	if value == nil {
		*d = DocumentList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("DocumentList: unsupported scan source")
	}
	return json.Unmarshal(b, d)
}

// Installation is the central entity: one physical solar installation
// moving through protocol, project approval, scheduling, execution,
// homologation and the final technical report.
type Installation struct {
	ID             int    `gorm:"primaryKey" json:"id"`
	InstallationID string `gorm:"size:20;uniqueIndex;not null" json:"installationId"` // INST-NNN

	// Client linkage. Address fields are denormalized from the client
	// at creation time and are not re-synced afterwards.
	ClientName string `gorm:"size:255;not null;index" json:"clientName"`
	Address    string `gorm:"size:255" json:"address"`
	City       string `gorm:"size:100" json:"city"`
	State      string `gorm:"size:50" json:"state"`
	ZipCode    string `gorm:"size:20" json:"zipCode"`

	InstallationType string `gorm:"size:20;not null" json:"installationType"` // residencial | comercial
	UtilityCompany   string `gorm:"size:100" json:"utilityCompany"`

	// Protocol with the utility company. Number and date are set together.
	ProtocolNumber string     `gorm:"size:50" json:"protocolNumber"`
	ProtocolDate   *time.Time `json:"protocolDate,omitempty"`

	// The three independent status tracks. Values come from the status
	// catalog but membership is not enforced (see pkg/workflow).
	Status             string `gorm:"size:50;not null;index" json:"status"`
	ProjectStatus      string `gorm:"size:50;not null;index" json:"projectStatus"`
	HomologationStatus string `gorm:"size:50;not null;index" json:"homologationStatus"`

	// Cached: true iff an installer report exists for this client. The
	// report record itself is the authority.
	ReportSubmitted bool `gorm:"default:false" json:"reportSubmitted"`

	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	Archived      bool       `gorm:"default:false;index" json:"archived"`

	Events    EventList    `gorm:"type:jsonb;not null;default:'[]'" json:"events"`
	Documents DocumentList `gorm:"type:jsonb;not null;default:'[]'" json:"documents"`

	// Allocated equipment. Allocation is by reference: an inverter can
	// move between installations without losing its identity.
	Inverters []Inverter `gorm:"foreignKey:InstallationID" json:"inverters,omitempty"`
	Panels    []Panel    `gorm:"foreignKey:InstallationID" json:"panels,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Installation
func (Installation) TableName() string {
	return "installations"
}
