package handlers

import (
	"encoding/json"
	"net/http"
)

// StatusHandler reports the service banner consumed by the mobile client.
type StatusHandler struct{}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Get returns the service name, version, and endpoint map.
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"name":        "Storefront Backend API",
		"version":     "1.0.0",
		"description": "Catalog and account service for the storefront mobile client",
		"status":      "running",
		"endpoints": map[string]string{
			"auth":     "/api/v1/auth",
			"products": "/api/v1/products",
			"status":   "/api/v1/status",
		},
	})
}
