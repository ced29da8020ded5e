package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/soltrack/handlers"
	"p9e.in/soltrack/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no API key)
	// =====================================================
	r.HandleFunc("/report", handlers.SubmitInstallerReport).Methods("POST")
	r.HandleFunc("/register-client", handlers.RegisterClient).Methods("POST")
	r.HandleFunc("/status/{id:[0-9]+}", handlers.GetPublicStatus).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Admin API Routes (require API key)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.APIKeyMiddleware)

	// Installations
	api.HandleFunc("/installations", handlers.GetAllInstallations).Methods("GET")
	api.HandleFunc("/installations", handlers.CreateInstallation).Methods("POST")
	api.HandleFunc("/installations/scheduled", handlers.GetScheduledInstallations).Methods("GET")
	api.HandleFunc("/installations/{id:[0-9]+}", handlers.GetInstallation).Methods("GET")
	api.HandleFunc("/installations/{id:[0-9]+}", handlers.UpdateInstallation).Methods("PUT")
	api.HandleFunc("/installations/{id:[0-9]+}", handlers.DeleteInstallation).Methods("DELETE")

	// Workflow operations
	api.HandleFunc("/installations/{id:[0-9]+}/transition", handlers.TransitionInstallation).Methods("POST")
	api.HandleFunc("/installations/{id:[0-9]+}/schedule", handlers.ScheduleInstallation).Methods("POST")
	api.HandleFunc("/installations/{id:[0-9]+}/events", handlers.AddInstallationEvent).Methods("POST")
	api.HandleFunc("/installations/{id:[0-9]+}/protocol", handlers.UpdateProtocol).Methods("PUT")
	api.HandleFunc("/installations/{id:[0-9]+}/archive", handlers.ArchiveInstallation).Methods("POST")
	api.HandleFunc("/installations/{id:[0-9]+}/final-report", handlers.GenerateFinalReport).Methods("POST")

	// Kanban boards
	api.HandleFunc("/board/{track}", handlers.GetBoard).Methods("GET")

	// Clients
	api.HandleFunc("/clients", handlers.GetAllClients).Methods("GET")
	api.HandleFunc("/clients", handlers.RegisterClient).Methods("POST")
	api.HandleFunc("/clients/{id:[0-9]+}", handlers.GetClient).Methods("GET")
	api.HandleFunc("/clients/{id:[0-9]+}", handlers.UpdateClient).Methods("PUT")
	api.HandleFunc("/clients/{id:[0-9]+}", handlers.DeleteClient).Methods("DELETE")

	// Equipment
	api.HandleFunc("/inverters", handlers.GetAllInverters).Methods("GET")
	api.HandleFunc("/inverters", handlers.CreateInverter).Methods("POST")
	api.HandleFunc("/inverters/{id:[0-9]+}/transfer", handlers.TransferInverter).Methods("POST")
	api.HandleFunc("/panels", handlers.GetAllPanels).Methods("GET")
	api.HandleFunc("/panels", handlers.CreatePanel).Methods("POST")

	// Installer reports
	api.HandleFunc("/reports", handlers.GetInstallerReport).Methods("GET")

	// Exports
	api.HandleFunc("/export/installations.xlsx", handlers.ExportInstallationsToExcel).Methods("GET")
	api.HandleFunc("/export/installations.csv", handlers.ExportInstallationsToCSV).Methods("GET")

	// Files
	api.HandleFunc("/files", handlers.UploadFile).Methods("POST")

	// =====================================================
	// Status catalog administration
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/statuses/{track}", handlers.GetStatuses).Methods("GET")
	admin.HandleFunc("/statuses/{track}", handlers.AddStatus).Methods("POST")
	admin.HandleFunc("/statuses/{track}", handlers.RenameStatus).Methods("PUT")
	admin.HandleFunc("/statuses/{track}", handlers.DeleteStatus).Methods("DELETE")
	admin.HandleFunc("/statuses/{track}/order", handlers.ReorderStatuses).Methods("PUT")

	return r
}
