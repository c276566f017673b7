package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

// ExportHandler writes a world's actor roster to an interchange format
// that the import path accepts back.
type ExportHandler struct {
	actorService *services.ActorService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(actorService *services.ActorService) *ExportHandler {
	return &ExportHandler{
		actorService: actorService,
	}
}

// ExportOptions controls export behavior.
type ExportOptions struct {
	Format string // "json", "csv", or "markdown"
	Gzip   bool   // Compress the output stream
	Limit  int    // Maximum actors to export; <=0 means all
}

// exportActor is the interchange record; it mirrors the import schema.
type exportActor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Owner       string `json:"owner,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// Handle exports the world's actors to w in the requested format.
// Returns the number of actors written.
func (h *ExportHandler) Handle(ctx context.Context, worldID string, w io.Writer, opts ExportOptions) (int, error) {
	actors, err := h.actorService.List(ctx, worldID, opts.Limit, 0)
	if err != nil {
		return 0, fmt.Errorf("listing actors: %w", err)
	}
	if len(actors) == 0 {
		return 0, fmt.Errorf("no actors found to export")
	}

	if opts.Gzip {
		gz := gzip.NewWriter(w)
		defer gz.Close()
		w = gz
	}

	records := make([]exportActor, 0, len(actors))
	for _, a := range actors {
		records = append(records, exportActor{
			ID:          a.ID,
			Name:        a.Name,
			Level:       a.Level,
			Owner:       a.OwnerUserID,
			Image:       a.Image,
			Description: a.Description,
		})
	}

	switch opts.Format {
	case "json", "":
		err = formatJSON(w, records)
	case "csv":
		err = formatCSV(w, records)
	case "markdown":
		err = formatMarkdown(w, actors)
	default:
		err = fmt.Errorf("unknown format: %s", opts.Format)
	}
	if err != nil {
		return 0, err
	}

	return len(records), nil
}

func formatJSON(w io.Writer, records []exportActor) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func formatCSV(w io.Writer, records []exportActor) error {
	writer := csv.NewWriter(w)

	header := []string{"id", "name", "level", "owner", "image", "description"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.Name,
			strconv.Itoa(r.Level),
			r.Owner,
			r.Image,
			r.Description,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, actors []*entities.Actor) error {
	if _, err := fmt.Fprintf(w, "# Exported Actors\n\nTotal: %d actors\n\n", len(actors)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| Name | Level | Owner | Description |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|------|-------|-------|-------------|\n"); err != nil {
		return err
	}

	for _, a := range actors {
		if _, err := fmt.Fprintf(w, "| %s | %d | %s | %s |\n",
			escapeMarkdown(a.Name),
			a.Level,
			escapeMarkdown(a.OwnerUserID),
			escapeMarkdown(a.Description),
		); err != nil {
			return err
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
