package integration

import (
	"context"
	"os"
	"testing"

	embedder "github.com/AzureCamel/Bastion-Manager/internal/infrastructure/embedder/openai"
	"github.com/AzureCamel/Bastion-Manager/internal/infrastructure/vectordb/qdrant"

	"github.com/AzureCamel/Bastion-Manager/internal/infrastructure/config"
)

const (
	testQdrantHost = "localhost"
	testQdrantPort = 6334
	testCollection = "bastion_integration_test"
)

var testRepo *qdrant.Repository

func TestMain(m *testing.M) {
	// Skip if INTEGRATION_TEST is not set
	if os.Getenv("INTEGRATION_TEST") != "1" {
		os.Exit(0)
	}

	// Setup
	cfg := config.QdrantConfig{
		Host:       testQdrantHost,
		Port:       testQdrantPort,
		Collection: testCollection,
	}

	var err error
	testRepo, err = qdrant.NewRepository(cfg)
	if err != nil {
		panic("failed to create repository: " + err.Error())
	}

	// Ensure clean collection
	ctx := context.Background()
	_ = testRepo.DeleteCollection(ctx) // Ignore error if collection doesn't exist
	if err := testRepo.EnsureCollection(ctx, uint64(embedder.VectorSize)); err != nil {
		panic("failed to create collection: " + err.Error())
	}

	// Run tests
	code := m.Run()

	// Cleanup
	_ = testRepo.DeleteCollection(ctx)
	testRepo.Close()

	os.Exit(code)
}

// cleanupEntries resets the collection between tests.
func cleanupEntries(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	if err := testRepo.DeleteCollection(ctx); err != nil {
		t.Fatalf("failed to drop collection: %v", err)
	}
	if err := testRepo.EnsureCollection(ctx, uint64(embedder.VectorSize)); err != nil {
		t.Fatalf("failed to recreate collection: %v", err)
	}
}
