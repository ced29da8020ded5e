package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"p9e.in/soltrack/config"
	"p9e.in/soltrack/handlers"
	"p9e.in/soltrack/pkg/ai"
	"p9e.in/soltrack/routes"
	"p9e.in/soltrack/store"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {

	versionFlag := flag.Bool("version", false, "Print version info and exit")
	seedFlag := flag.Bool("seed", false, "Seed demo data and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}
	config.Connect()

	if *seedFlag {
		if err := config.SeedDemoData(config.DB); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		os.Exit(0)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Report summarizer is optional: without a key the final-report
	// endpoint answers 503 and everything else works.
	var summarizer ai.Summarizer
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gemini, err := ai.NewGeminiSummarizer(context.Background(), apiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatalf("could not create summarizer: %v", err)
		}
		defer gemini.Close()
		summarizer = gemini
	} else {
		log.Println("GEMINI_API_KEY not set, final report generation disabled")
	}

	handlers.Setup(store.NewGormStore(config.DB), summarizer)

	handler := routes.RegisterRoutes()
	handlerWithCORS := enableCORS(handler)
	log.Println("Server starting at port", port)
	log.Fatal(http.ListenAndServe(":"+port, handlerWithCORS))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Required CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, x-api-key, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		// Handle preflight (OPTIONS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
