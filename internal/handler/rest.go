package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/bookcatalog/internal/model"
	"github.com/vyrodovalexey/bookcatalog/internal/store"
)

// maxBodyBytes limits the size of create and update request bodies.
const maxBodyBytes = 100 << 10

// Response messages.
const (
	msgBookCreated    = "Book created successfully"
	msgBookUpdated    = "Book updated successfully"
	msgBookDeleted    = "Book deleted successfully"
	msgRouteNotFound  = "Route not found"
	msgRequiredFields = "Title and author are required fields"
	msgNotStrings     = "Title and author must be strings"
	msgInvalidYear    = "Year must be an integer"
	msgInvalidBody    = "Request body must be valid JSON"
)

var errInvalidBody = errors.New("invalid request body")

// RESTHandler handles REST API requests for books.
type RESTHandler struct {
	store  store.Store
	events EventPublisher
	logger *zap.Logger
}

// NewRESTHandler creates a new RESTHandler instance. events may be nil.
func NewRESTHandler(s store.Store, events EventPublisher, logger *zap.Logger) *RESTHandler {
	return &RESTHandler{
		store:  s,
		events: events,
		logger: logger,
	}
}

// RegisterRoutes registers the REST API routes with the router.
func (h *RESTHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/books", h.ListBooks).Methods(http.MethodGet)
	router.HandleFunc("/books", h.CreateBook).Methods(http.MethodPost)
	router.HandleFunc("/books/{id}", h.GetBook).Methods(http.MethodGet)
	router.HandleFunc("/books/{id}", h.UpdateBook).Methods(http.MethodPut)
	router.HandleFunc("/books/{id}", h.DeleteBook).Methods(http.MethodDelete)
}

// HealthCheck handles GET /health requests.
func (h *RESTHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:  "healthy",
		Version: Version,
	}
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(response))
}

// ListBooks handles GET /books requests.
func (h *RESTHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.store.List(r.Context())
	if err != nil {
		h.handleStoreError(w, err, "list books", "")
		return
	}

	h.writeJSON(w, http.StatusOK, model.NewListResponse(books))
}

// GetBook handles GET /books/{id} requests.
func (h *RESTHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		h.writeBookNotFound(w, raw)
		return
	}

	book, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, err, "get book", raw)
		return
	}

	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(book))
}

// CreateBook handles POST /books requests.
func (h *RESTHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeBook(w, r)
	if err != nil {
		h.logger.Warn("validation failed", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, model.ErrorKindValidation, validationMessage(err))
		return
	}

	book, err := h.store.Create(r.Context(), fields)
	if err != nil {
		h.handleStoreError(w, err, "create book", "")
		return
	}

	h.publish(model.EventBookCreated, book)
	h.writeJSON(w, http.StatusCreated, model.NewMessageResponse(msgBookCreated, book))
}

// UpdateBook handles PUT /books/{id} requests.
func (h *RESTHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeBook(w, r)
	if err != nil {
		h.logger.Warn("validation failed", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, model.ErrorKindValidation, validationMessage(err))
		return
	}

	id, raw, ok := parseID(r)
	if !ok {
		h.writeBookNotFound(w, raw)
		return
	}

	book, err := h.store.Update(r.Context(), id, fields)
	if err != nil {
		h.handleStoreError(w, err, "update book", raw)
		return
	}

	h.publish(model.EventBookUpdated, book)
	h.writeJSON(w, http.StatusOK, model.NewMessageResponse(msgBookUpdated, book))
}

// DeleteBook handles DELETE /books/{id} requests.
func (h *RESTHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		h.writeBookNotFound(w, raw)
		return
	}

	book, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, err, "delete book", raw)
		return
	}

	h.publish(model.EventBookDeleted, book)
	h.writeJSON(w, http.StatusOK, model.NewMessageResponse(msgBookDeleted, book))
}

// NotFound handles requests that match no route.
func (h *RESTHandler) NotFound(w http.ResponseWriter, _ *http.Request) {
	h.writeError(w, http.StatusNotFound, model.ErrorKindNotFound, msgRouteNotFound)
}

// publish forwards a catalog event when a publisher is configured.
func (h *RESTHandler) publish(eventType string, book *model.Book) {
	if h.events == nil || book == nil {
		return
	}
	h.events.Publish(model.NewCatalogEvent(eventType, *book))
}

// handleStoreError handles store errors and writes appropriate HTTP responses.
func (h *RESTHandler) handleStoreError(w http.ResponseWriter, err error, operation, rawID string) {
	if errors.Is(err, store.ErrNotFound) {
		h.writeBookNotFound(w, rawID)
		return
	}

	h.logger.Error("store operation failed", zap.String("operation", operation), zap.Error(err))
	h.writeError(w, http.StatusInternalServerError, model.ErrorKindInternal, err.Error())
}

// writeBookNotFound writes the 404 response for an unknown book ID.
func (h *RESTHandler) writeBookNotFound(w http.ResponseWriter, rawID string) {
	h.writeError(w, http.StatusNotFound, model.ErrorKindNotFound, fmt.Sprintf("Book with ID %s not found", rawID))
}

// writeJSON writes a JSON response with the given status code.
func (h *RESTHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data, h.logger)
}

// writeError writes an error response with the given status code, kind and message.
func (h *RESTHandler) writeError(w http.ResponseWriter, status int, kind, message string) {
	h.writeJSON(w, status, model.NewErrorResponse(kind, message))
}

// writeJSON writes data as JSON, logging encoding failures.
func writeJSON(w http.ResponseWriter, status int, data any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// parseID extracts the numeric book ID from the route variables.
func parseID(r *http.Request) (int64, string, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, raw, false
	}
	return id, raw, true
}

// decodeBook reads and validates a create or update request body.
// An empty body is treated as an empty object.
func decodeBook(w http.ResponseWriter, r *http.Request) (model.BookFields, error) {
	var input model.BookInput

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		return model.BookFields{}, fmt.Errorf("%w: %w", errInvalidBody, err)
	}

	return input.Validate()
}

// validationMessage maps a validation error to its client-facing message.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrRequiredFields):
		return msgRequiredFields
	case errors.Is(err, model.ErrFieldsNotStrings):
		return msgNotStrings
	case errors.Is(err, model.ErrInvalidYear):
		return msgInvalidYear
	default:
		return msgInvalidBody
	}
}
