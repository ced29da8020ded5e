package models

import "time"

// Client is a customer that registered through the public form.
// Installations copy the address fields at creation time.
type Client struct {
	ID      int    `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Email   string `gorm:"size:255" json:"email"`
	Phone   string `gorm:"size:50" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:100" json:"city"`
	State   string `gorm:"size:50" json:"state"`
	ZipCode string `gorm:"size:20" json:"zipCode"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}
