// Package web serves the embedded browser client for the book catalog.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// StaticPrefix is the URL prefix of the script and style sheet.
const StaticPrefix = "/static/"

//go:embed assets
var assets embed.FS

// Handler serves the index document and static assets.
type Handler struct {
	files    fs.FS
	notFound http.Handler
	logger   *zap.Logger
}

// NewHandler creates a Handler backed by the embedded assets. notFound
// answers requests for assets that do not exist.
func NewHandler(notFound http.Handler, logger *zap.Logger) *Handler {
	files, err := fs.Sub(assets, "assets")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}

	return newHandler(files, notFound, logger)
}

func newHandler(files fs.FS, notFound http.Handler, logger *zap.Logger) *Handler {
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}

	return &Handler{
		files:    files,
		notFound: notFound,
		logger:   logger,
	}
}

// RegisterRoutes registers the index and static asset routes with the router.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.ServeIndex).Methods(http.MethodGet)
	router.PathPrefix(StaticPrefix).HandlerFunc(h.ServeStatic).Methods(http.MethodGet)
}

// ServeIndex handles GET / requests.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.files, "index.html")
	if err != nil {
		h.logger.Error("failed to read index document", zap.Error(err))
		h.notFound.ServeHTTP(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Debug("failed to write index document", zap.Error(err))
	}
}

// ServeStatic handles GET /static/* requests.
func (h *Handler) ServeStatic(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, StaticPrefix)
	filePath := "static/" + name

	info, err := fs.Stat(h.files, filePath)
	if name == "" || err != nil || info.IsDir() {
		h.notFound.ServeHTTP(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFileFS(w, r, h.files, filePath)
}
