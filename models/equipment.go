package models

import "time"

// Inverter is an equipment unit allocated to at most one installation
// at a time. Identity is independent of the installation: transfers
// move the reference, not the record.
type Inverter struct {
	ID             int     `gorm:"primaryKey" json:"id"`
	Brand          string  `gorm:"size:100;not null" json:"brand"`
	Model          string  `gorm:"size:100;not null" json:"model"`
	PowerKw        float64 `gorm:"type:decimal(8,2)" json:"powerKw"`
	SerialNumber   string  `gorm:"size:100;uniqueIndex" json:"serialNumber"`
	InstallationID *int    `gorm:"index" json:"installationId,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Inverter
func (Inverter) TableName() string {
	return "inverters"
}

// Panel is a solar panel model/batch allocated to an installation.
type Panel struct {
	ID             int     `gorm:"primaryKey" json:"id"`
	Brand          string  `gorm:"size:100;not null" json:"brand"`
	Model          string  `gorm:"size:100;not null" json:"model"`
	PowerW         float64 `gorm:"type:decimal(8,2)" json:"powerW"`
	Quantity       int     `gorm:"default:1" json:"quantity"`
	InstallationID *int    `gorm:"index" json:"installationId,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Panel
func (Panel) TableName() string {
	return "panels"
}
