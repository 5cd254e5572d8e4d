package model

import "time"

// Error kinds reported in the "error" field of failed responses.
const (
	ErrorKindValidation      = "Validation Error"
	ErrorKindNotFound        = "Not Found"
	ErrorKindInternal        = "Internal Server Error"
	ErrorKindTooManyRequests = "Too Many Requests"
)

// APIResponse is a generic wrapper for successful API responses.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// NewSuccessResponse creates a successful API response.
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{
		Success: true,
		Data:    data,
	}
}

// NewMessageResponse creates a successful API response carrying a message.
func NewMessageResponse[T any](message string, data T) APIResponse[T] {
	return APIResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewListResponse creates a successful API response with the item count set.
func NewListResponse[T any](items []T) APIResponse[[]T] {
	count := len(items)
	return APIResponse[[]T]{
		Success: true,
		Count:   &count,
		Data:    items,
	}
}

// ErrorResponse represents an error response structure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error response of the given kind.
func NewErrorResponse(kind, message string) ErrorResponse {
	return ErrorResponse{
		Error:   kind,
		Message: message,
	}
}

// CatalogEvent is pushed to catalog feed subscribers after a mutation.
type CatalogEvent struct {
	Type      string    `json:"type"`
	Book      Book      `json:"book"`
	Timestamp time.Time `json:"timestamp"`
}

// Catalog event types.
const (
	EventBookCreated = "book_created"
	EventBookUpdated = "book_updated"
	EventBookDeleted = "book_deleted"
)

// NewCatalogEvent creates a catalog event for the given book.
func NewCatalogEvent(eventType string, book Book) CatalogEvent {
	return CatalogEvent{
		Type:      eventType,
		Book:      book,
		Timestamp: time.Now().UTC(),
	}
}
