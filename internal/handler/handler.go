// Package handler provides HTTP request handlers for the book catalog API.
package handler

import "github.com/vyrodovalexey/bookcatalog/internal/model"

// Version is the application version.
const Version = "1.0.0"

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// EventPublisher receives catalog events after successful mutations.
type EventPublisher interface {
	Publish(event model.CatalogEvent)
}
