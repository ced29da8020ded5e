// Package store is the installation record store: load-all,
// find-by-id, create, replace, delete. The system has exactly one
// writer (all mutations are serialized through this process), so
// callers follow a plain read-modify-write cycle with no versioning.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"p9e.in/soltrack/models"
)

// ErrNotFound reports an unknown installation id. Handlers map it to
// 404; inside the engine boundary an unknown id is a caller bug.
var ErrNotFound = errors.New("installation not found")

// InstallationStore is the persistence boundary for installations.
type InstallationStore interface {
	// List returns every installation, archived ones included, in id
	// order. Board and table views filter on top of this.
	List() ([]models.Installation, error)
	Get(id int) (*models.Installation, error)
	// Create assigns the next sequential id (max existing + 1) and the
	// formatted INST-NNN identifier before persisting.
	Create(inst *models.Installation) error
	// Save replaces the record. Equipment rows are owned by their own
	// tables and are not written here.
	Save(inst *models.Installation) error
	Delete(id int) error
}

// GormStore is the Postgres-backed store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) List() ([]models.Installation, error) {
	var installations []models.Installation
	if err := s.db.
		Preload("Inverters").
		Preload("Panels").
		Order("id").
		Find(&installations).Error; err != nil {
		return nil, fmt.Errorf("failed to list installations: %w", err)
	}
	return installations, nil
}

func (s *GormStore) Get(id int) (*models.Installation, error) {
	var inst models.Installation
	err := s.db.
		Preload("Inverters").
		Preload("Panels").
		First(&inst, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (s *GormStore) Create(inst *models.Installation) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var maxID int
		if err := tx.Model(&models.Installation{}).
			Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return err
		}
		inst.ID = maxID + 1
		inst.InstallationID = fmt.Sprintf("INST-%03d", inst.ID)
		return tx.Omit(clause.Associations).Create(inst).Error
	})
}

func (s *GormStore) Save(inst *models.Installation) error {
	return s.db.Omit(clause.Associations).Save(inst).Error
}

func (s *GormStore) Delete(id int) error {
	res := s.db.Delete(&models.Installation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
