// Package parsers provides parsers for importing actors from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawActor represents an actor parsed from an external source before
// validation.
type RawActor struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Level       *int   `json:"level,omitempty"` // Pointer to distinguish 0 from unset
	Owner       string `json:"owner,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	LineNum     int    `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing actors from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawActor, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
