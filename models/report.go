package models

import (
	"time"

	"gorm.io/datatypes"
)

// InstallerReport is the raw field report submitted by the installer
// through the public form, keyed by client name (one report per
// client). It is the authoritative source for the reportSubmitted flag
// on installations and the input to the AI final-report generation.
type InstallerReport struct {
	ID         int            `gorm:"primaryKey" json:"id"`
	ClientName string         `gorm:"size:255;not null;uniqueIndex" json:"clientName"`
	Payload    datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`

	// Generated prose, filled by the AI summarization flow. Empty until
	// the first successful generation; regenerating overwrites it.
	FinalReport string `gorm:"type:text" json:"finalReport,omitempty"`

	SubmittedAt time.Time `json:"submittedAt"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for InstallerReport
func (InstallerReport) TableName() string {
	return "installer_reports"
}

// StringMeasurement is one of the six string voltage/plate readings.
type StringMeasurement struct {
	Voltage string `json:"voltage"`
	Plates  string `json:"plates"`
}

// PhotoUpload is one annotated photo slot of the installer form.
type PhotoUpload struct {
	DataURL    string `json:"dataUrl"`
	Annotation string `json:"annotation"`
}

// InstallerReportPayload is the expected shape of the submitted form.
// It is stored verbatim as jsonb; this struct exists for validation of
// the intake and for building the AI prompt.
type InstallerReportPayload struct {
	ClientName string              `json:"clientName"`
	Inverters  []string            `json:"inverters"`
	Panels     []string            `json:"panels"`
	Strings    []StringMeasurement `json:"strings"` // 6 entries

	Phase1Neutro string `json:"phase1Neutro"`
	Phase2Neutro string `json:"phase2Neutro"`
	Phase3Neutro string `json:"phase3Neutro"`
	Phase1Phase2 string `json:"phase1phase2"`
	Phase1Phase3 string `json:"phase1phase3"`
	Phase2Phase3 string `json:"phase2phase3"`
	PhaseTerra   string `json:"phaseTerra"`
	NeutroTerra  string `json:"neutroTerra"`

	CableMeterToBreaker    string `json:"cableMeterToBreaker"`
	CableBreakerToInverter string `json:"cableBreakerToInverter"`
	GeneralBreaker         string `json:"generalBreaker"`
	InverterBreaker        string `json:"inverterBreaker"`

	DataloggerConnected bool   `json:"dataloggerConnected"`
	Observations        string `json:"observations"`

	PhotoUploads             []PhotoUpload `json:"photo_uploads"` // 12 slots
	InstallationVideoDataURL string        `json:"installationVideoDataUrl"`
}
