package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vyrodovalexey/bookcatalog/internal/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"debug level", "debug", false},
		{"info level", "info", false},
		{"warn level", "warn", false},
		{"error level", "error", false},
		{"invalid level defaults to info", "invalid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			logger, err := initLogger(tt.level)

			// Assert
			if tt.wantErr {
				if err == nil {
					t.Error("initLogger() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("initLogger() error = %v", err)
			}
			if logger == nil {
				t.Error("initLogger() returned nil logger")
			}
		})
	}
}

func TestNewSeededStore_Defaults(t *testing.T) {
	// Act
	bookStore, err := newSeededStore(context.Background(), "")

	// Assert
	if err != nil {
		t.Fatalf("newSeededStore() error = %v", err)
	}
	if bookStore.Len() != 3 {
		t.Errorf("Len() = %d, want 3", bookStore.Len())
	}

	book, err := bookStore.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get(1) error = %v", err)
	}
	if book.Title != "The Great Gatsby" {
		t.Errorf("book 1 title = %q, want The Great Gatsby", book.Title)
	}
}

func TestNewSeededStore_File(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := "books:\n  - title: Dune\n    author: Frank Herbert\n    year: 1965\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// Act
	bookStore, err := newSeededStore(context.Background(), path)

	// Assert
	if err != nil {
		t.Fatalf("newSeededStore() error = %v", err)
	}
	if bookStore.Len() != 1 {
		t.Errorf("Len() = %d, want 1", bookStore.Len())
	}
}

func TestNewSeededStore_Errors(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("books:\n  - title: No Author\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml")},
		{"book without author", invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookStore, err := newSeededStore(context.Background(), tt.path)

			if err == nil {
				t.Fatal("newSeededStore() expected error, got nil")
			}
			if bookStore != nil {
				t.Error("newSeededStore() should return nil store on error")
			}
		})
	}
}

func TestLogEndpoints(t *testing.T) {
	tests := []struct {
		name        string
		metrics     bool
		events      bool
		wantMetrics bool
		wantFeed    bool
	}{
		{"all enabled", true, true, true, true},
		{"all disabled", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			core, logs := observer.New(zap.InfoLevel)
			cfg := &config.Config{ServerPort: 3000, MetricsEnabled: tt.metrics, EventsEnabled: tt.events}

			// Act
			logEndpoints(zap.New(core), cfg)

			// Assert
			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("got %d log entries, want 1", len(entries))
			}
			endpoints, ok := entries[0].ContextMap()["endpoints"].([]interface{})
			if !ok {
				t.Fatalf("endpoints field has type %T", entries[0].ContextMap()["endpoints"])
			}

			joined := ""
			for _, e := range endpoints {
				joined += e.(string) + "\n"
			}
			if !strings.Contains(joined, "http://localhost:3000/books") {
				t.Errorf("endpoints should list /books, got %s", joined)
			}
			if got := strings.Contains(joined, "/metrics"); got != tt.wantMetrics {
				t.Errorf("lists /metrics = %v, want %v", got, tt.wantMetrics)
			}
			if got := strings.Contains(joined, "/ws"); got != tt.wantFeed {
				t.Errorf("lists /ws = %v, want %v", got, tt.wantFeed)
			}
		})
	}
}
