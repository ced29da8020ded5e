package config

import (
	"errors"
	"log"

	"gorm.io/gorm"
	"p9e.in/soltrack/models"
)

// SeedStatusConfig creates the single status catalog row with the
// default lists when no configuration exists yet.
func SeedStatusConfig(db *gorm.DB) error {
	var cfg models.StatusConfig
	err := db.First(&cfg).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	cfg = models.DefaultStatusConfig()
	if err := db.Create(&cfg).Error; err != nil {
		return err
	}
	log.Println("Seeded default status catalogs")
	return nil
}

// SeedDemoData loads a small demo dataset for local development. Skips
// silently if clients already exist.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Client{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	clients := []models.Client{
		{Name: "Maria Silva", Email: "maria.silva@example.com", Phone: "(11) 98888-0001",
			Address: "Rua das Acácias, 120", City: "Campinas", State: "SP", ZipCode: "13010-000"},
		{Name: "João Pereira", Email: "joao.pereira@example.com", Phone: "(19) 97777-0002",
			Address: "Av. Brasil, 2450", City: "Piracicaba", State: "SP", ZipCode: "13400-100"},
	}
	if err := db.Create(&clients).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d demo clients", len(clients))
	return nil
}
