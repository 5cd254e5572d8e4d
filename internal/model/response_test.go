package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewListResponse(t *testing.T) {
	tests := []struct {
		name  string
		books []Book
		want  string
	}{
		{
			name:  "empty list keeps count",
			books: []Book{},
			want:  `{"success":true,"count":0,"data":[]}`,
		},
		{
			name:  "single book",
			books: []Book{{ID: 1, Title: "1984", Author: "George Orwell", Year: 1949}},
			want:  `{"success":true,"count":1,"data":[{"id":1,"title":"1984","author":"George Orwell","year":1949}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			data, err := json.Marshal(NewListResponse(tt.books))

			// Assert
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestNewMessageResponse(t *testing.T) {
	// Arrange
	book := Book{ID: 2, Title: "To Kill a Mockingbird", Author: "Harper Lee", Year: 1960}

	// Act
	data, err := json.Marshal(NewMessageResponse("Book deleted successfully", book))

	// Assert
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"success":true,"message":"Book deleted successfully",` +
		`"data":{"id":2,"title":"To Kill a Mockingbird","author":"Harper Lee","year":1960}}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestNewSuccessResponse(t *testing.T) {
	// Act
	resp := NewSuccessResponse(Book{ID: 1})

	// Assert
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if resp.Count != nil {
		t.Error("Count should be nil")
	}
	if resp.Message != "" {
		t.Errorf("Message = %q, want empty", resp.Message)
	}
}

func TestNewErrorResponse(t *testing.T) {
	// Act
	data, err := json.Marshal(NewErrorResponse(ErrorKindNotFound, "Route not found"))

	// Assert
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"error":"Not Found","message":"Route not found"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestNewCatalogEvent(t *testing.T) {
	// Arrange
	before := time.Now().UTC()
	book := Book{ID: 7, Title: "Dune", Author: "Frank Herbert", Year: 1965}

	// Act
	event := NewCatalogEvent(EventBookCreated, book)

	// Assert
	if event.Type != EventBookCreated {
		t.Errorf("Type = %s, want %s", event.Type, EventBookCreated)
	}
	if event.Book != book {
		t.Errorf("Book = %+v, want %+v", event.Book, book)
	}
	if event.Timestamp.Before(before) {
		t.Errorf("Timestamp = %v, should not be before %v", event.Timestamp, before)
	}
}
