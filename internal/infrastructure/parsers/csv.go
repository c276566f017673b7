package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVParser parses actors from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed actors.
// Expected columns: name, level, owner, image, description
func (p *CSVParser) Parse(r io.Reader) ([]RawActor, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[col] = i
	}

	if _, ok := colIndex["name"]; !ok {
		return nil, fmt.Errorf("missing required column: name")
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawActors.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawActor, error) {
	var actors []RawActor
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		actor, err := p.parseRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		actors = append(actors, actor)
	}

	return actors, nil
}

// parseRecord converts a CSV record to a RawActor.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) (RawActor, error) {
	actor := RawActor{
		ID:          getColumn(record, colIndex, "id"),
		Name:        getColumn(record, colIndex, "name"),
		Owner:       getColumn(record, colIndex, "owner"),
		Image:       getColumn(record, colIndex, "image"),
		Description: getColumn(record, colIndex, "description"),
		LineNum:     lineNum,
	}

	levelStr := getColumn(record, colIndex, "level")
	if levelStr != "" {
		level, err := strconv.Atoi(levelStr)
		if err != nil {
			return RawActor{}, fmt.Errorf("line %d: invalid level value %q: %w", lineNum, levelStr, err)
		}
		actor.Level = &level
	}

	return actor, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
