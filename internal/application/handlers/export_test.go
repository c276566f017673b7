package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

func TestExportHandler_Handle_JSON(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewExportHandler(env.actors)
	env.addActor(t, "Ezra", 5)
	env.addActor(t, "Mira", 3)

	var buf bytes.Buffer
	n, err := handler.Handle(context.Background(), testWorld, &buf, ExportOptions{Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var records []exportActor
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Ezra", records[0].Name)
	assert.Equal(t, 5, records[0].Level)
}

func TestExportHandler_Handle_CSV(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewExportHandler(env.actors)
	env.addActor(t, "Ezra", 5)

	var buf bytes.Buffer
	_, err := handler.Handle(context.Background(), testWorld, &buf, ExportOptions{Format: "csv"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,level,owner,image,description", lines[0])
	assert.Contains(t, lines[1], "Ezra,5")
}

func TestExportHandler_Handle_Markdown(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewExportHandler(env.actors)
	env.addActor(t, "Ezra", 5)

	var buf bytes.Buffer
	_, err := handler.Handle(context.Background(), testWorld, &buf, ExportOptions{Format: "markdown"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "| Ezra | 5 |")
}

func TestExportHandler_Handle_Gzip(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewExportHandler(env.actors)
	env.addActor(t, "Ezra", 5)

	var buf bytes.Buffer
	_, err := handler.Handle(context.Background(), testWorld, &buf, ExportOptions{Format: "json", Gzip: true})
	require.NoError(t, err)

	gz, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	data, err := io.ReadAll(gz)
	require.NoError(t, err)

	var records []exportActor
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Len(t, records, 1)
}

func TestExportHandler_Handle_Empty(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewExportHandler(env.actors)

	var buf bytes.Buffer
	_, err := handler.Handle(context.Background(), testWorld, &buf, ExportOptions{Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no actors found")
}

func TestExportHandler_RoundTrip(t *testing.T) {
	env := newHandlerEnv(t)
	exporter := NewExportHandler(env.actors)
	env.addActor(t, "Ezra", 5)

	var buf bytes.Buffer
	_, err := exporter.Handle(context.Background(), testWorld, &buf, ExportOptions{Format: "json"})
	require.NoError(t, err)

	// The exported document re-imports into a fresh world store.
	dest := newHandlerEnv(t)
	importer := NewImportHandler(services.NewImportService(dest.db))
	path := writeTempFile(t, "actors.json", buf.String())

	result, err := importer.Handle(context.Background(), testWorld, path, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)
}
