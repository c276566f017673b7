package parsers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses actors from JSON format. Documents are validated
// against the actor schema before decoding into records.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed actors.
func (p *JSONParser) Parse(r io.Reader) ([]RawActor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var actors []RawActor
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&actors); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range actors {
		actors[i].LineNum = i + 1
	}

	return actors, nil
}
