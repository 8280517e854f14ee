package main

import (
	_ "embed"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

//go:embed data.json
var jsonData []byte

// fixtures maps entity collection -> id -> payload.
var fixtures map[string]map[string]json.RawMessage

func main() {
	if err := json.Unmarshal(jsonData, &fixtures); err != nil {
		log.Fatalf("[Inventory] Bad fixture data: %v", err)
	}

	for _, collection := range []string{"manufacturers", "models", "variants", "fuel-types", "transmission-types"} {
		http.HandleFunc("/api/v1/"+collection+"/", serveCollection(collection))
	}

	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			log.Printf("[Inventory] Health write error: %v", err)
		}
	})

	log.Println("Mock Inventory Service running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

func serveCollection(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Simulate network latency (50-200ms)
		time.Sleep(time.Duration(50+time.Now().UnixNano()%150) * time.Millisecond)

		id := strings.TrimPrefix(r.URL.Path, "/api/v1/"+collection+"/")
		payload, ok := fixtures[collection][id]

		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			if _, err := w.Write([]byte(`{"error":"not found"}`)); err != nil {
				log.Printf("[Inventory] Write error: %v", err)
			}
			log.Printf("[Inventory] %s %s - 404 Not Found", r.Method, r.URL.Path)

			return
		}

		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(payload); err != nil {
			log.Printf("[Inventory] Write error: %v", err)
		}

		log.Printf("[Inventory] %s %s - 200 OK", r.Method, r.URL.Path)
	}
}
