// Package model defines data structures used throughout the application.
package model

import (
	"errors"
	"math"
	"strings"
)

// Validation errors for BookInput.
var (
	ErrRequiredFields   = errors.New("title and author are required fields")
	ErrFieldsNotStrings = errors.New("title and author must be strings")
	ErrInvalidYear      = errors.New("year must be an integer")
)

// maxAbsYear bounds the accepted year so it always fits an int.
const maxAbsYear = 1_000_000

// Book represents a single record in the catalog.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// BookFields holds validated, trimmed values for creating or updating a book.
// A zero Year means no year was supplied.
type BookFields struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Year   int    `yaml:"year"`
}

// BookInput is the decoded body of a create or update request. Fields are
// loosely typed so that presence and type can be reported separately.
type BookInput struct {
	Title  any `json:"title"`
	Author any `json:"author"`
	Year   any `json:"year"`
}

// Validate checks the input shape and returns the normalized fields.
func (in *BookInput) Validate() (BookFields, error) {
	if isFalsy(in.Title) || isFalsy(in.Author) {
		return BookFields{}, ErrRequiredFields
	}

	title, titleOK := in.Title.(string)
	author, authorOK := in.Author.(string)
	if !titleOK || !authorOK {
		return BookFields{}, ErrFieldsNotStrings
	}

	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" || author == "" {
		return BookFields{}, ErrRequiredFields
	}

	year, err := parseYear(in.Year)
	if err != nil {
		return BookFields{}, err
	}

	return BookFields{
		Title:  title,
		Author: author,
		Year:   year,
	}, nil
}

// Normalize trims title and author in place.
func (f *BookFields) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
}

// parseYear converts a decoded JSON year into an int. Falsy values map to 0.
func parseYear(v any) (int, error) {
	if isFalsy(v) {
		return 0, nil
	}

	n, ok := v.(float64)
	if !ok || n != math.Trunc(n) || math.Abs(n) > maxAbsYear {
		return 0, ErrInvalidYear
	}

	return int(n), nil
}

// isFalsy reports whether a decoded JSON value is absent, null, false,
// zero or an empty string.
func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case string:
		return val == ""
	case float64:
		return val == 0
	default:
		return false
	}
}
