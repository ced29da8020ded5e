package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"p9e.in/soltrack/config"
	"p9e.in/soltrack/models"
)

func GetAllClients(w http.ResponseWriter, r *http.Request) {
	var clients []models.Client
	if err := config.DB.Order("name").Find(&clients).Error; err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// RegisterClient handles the public registration form. Name must be
// unique: it is the key linking reports to installations.
func RegisterClient(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if client.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	client.ID = 0

	var existing models.Client
	err := config.DB.Where("name = ?", client.Name).First(&existing).Error
	if err == nil {
		http.Error(w, "a client with this name already exists", http.StatusConflict)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, err)
		return
	}

	if err := config.DB.Create(&client).Error; err != nil {
		writeError(w, err)
		return
	}
	log.Printf("Registered client %s", client.Name)
	writeJSON(w, http.StatusCreated, client)
}

func GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	var client models.Client
	if err := config.DB.First(&client, "id = ?", id).Error; err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// UpdateClient edits contact and address data. Installations created
// earlier keep their denormalized copy; there is no re-sync.
func UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	var client models.Client
	if err := config.DB.First(&client, "id = ?", id).Error; err != nil {
		writeError(w, err)
		return
	}

	var update models.Client
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	update.ID = client.ID
	update.CreatedAt = client.CreatedAt
	if update.Name == "" {
		update.Name = client.Name
	}

	if err := config.DB.Save(&update).Error; err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

func DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	res := config.DB.Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		writeError(w, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
