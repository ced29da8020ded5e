package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/soltrack/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "10062026_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Client{}, &models.Installation{},
					&models.Inverter{}, &models.Panel{})
			},
		},
		{
			ID: "10062026_create_status_config",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.StatusConfig{})
			},
		},
		{
			ID: "12062026_create_installer_reports",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.InstallerReport{})
			},
		},
		{
			// reportSubmitted was originally recomputed from the report
			// records on every load; cache it on the row so the board
			// projection does not need a join.
			ID: "03072026_backfill_report_submitted",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec(`UPDATE installations SET report_submitted = true
					WHERE client_name IN (SELECT client_name FROM installer_reports)`).Error
			},
		},
	})

	return m.Migrate()
}
