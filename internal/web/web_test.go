package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	router.NotFoundHandler = h.notFound
	return router
}

func jsonNotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not Found","message":"Route not found"}`))
	})
}

func serve(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_ServeIndex(t *testing.T) {
	router := newTestRouter(NewHandler(jsonNotFound(), zap.NewNop()))

	rr := serve(router, "/")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	for _, id := range []string{"bookForm", "message", "booksGrid", "submitBtn", "cancelBtn", "totalBooks"} {
		assert.Contains(t, body, `id="`+id+`"`)
	}
	assert.Contains(t, body, "/static/app.js")
	assert.Contains(t, body, "/static/style.css")
}

func TestHandler_ServeStatic(t *testing.T) {
	router := newTestRouter(NewHandler(jsonNotFound(), zap.NewNop()))

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/static/app.js", "javascript", "loadBooks"},
		{"/static/style.css", "text/css", ".book-card"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := serve(router, tt.path)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Header().Get("Content-Type"), tt.contentType)
			assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
			assert.Contains(t, rr.Body.String(), tt.contains)
		})
	}
}

func TestHandler_ServeStatic_NotFound(t *testing.T) {
	router := newTestRouter(NewHandler(jsonNotFound(), zap.NewNop()))

	for _, path := range []string{"/static/missing.js", "/static/", "/static/nested/app.js"} {
		t.Run(path, func(t *testing.T) {
			rr := serve(router, path)

			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Contains(t, rr.Body.String(), "Route not found")
		})
	}
}

func TestHandler_ServeStatic_Directory(t *testing.T) {
	files := fstest.MapFS{
		"index.html":          {Data: []byte("<html></html>")},
		"static/img/logo.svg": {Data: []byte("<svg/>")},
	}
	router := newTestRouter(newHandler(files, jsonNotFound(), zap.NewNop()))

	rr := serve(router, "/static/img")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_ServeIndex_Missing(t *testing.T) {
	router := newTestRouter(newHandler(fstest.MapFS{}, jsonNotFound(), zap.NewNop()))

	rr := serve(router, "/")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNewHandler_DefaultNotFound(t *testing.T) {
	h := newHandler(fstest.MapFS{}, nil, zap.NewNop())

	rr := serve(newTestRouter(h), "/static/nothing.css")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
