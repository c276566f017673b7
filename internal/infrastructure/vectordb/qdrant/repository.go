// Package qdrant provides a VectorDB implementation using Qdrant.
package qdrant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/infrastructure/config"
)

// Repository implements the VectorDB interface over chronicle entries
// using Qdrant.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	conn       *grpc.ClientConn
}

// NewRepository creates a new Qdrant repository.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		client:     pb.NewCollectionsClient(conn),
		points:     pb.NewPointsClient(conn),
		collection: cfg.Collection,
		conn:       conn,
	}, nil
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// EnsureCollection creates the collection if it doesn't exist.
func (r *Repository) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	_, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err == nil {
		return nil
	}

	_, err = r.client.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     vectorSize,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

// DeleteCollection removes the collection and all its data.
func (r *Repository) DeleteCollection(ctx context.Context) error {
	_, err := r.client.Delete(ctx, &pb.DeleteCollection{
		CollectionName: r.collection,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}

// Save stores a chronicle entry with its embedding.
func (r *Repository) Save(ctx context.Context, entry entities.ChronicleEntry) error {
	return r.SaveBatch(ctx, []entities.ChronicleEntry{entry})
}

// SaveBatch stores multiple chronicle entries.
func (r *Repository) SaveBatch(ctx context.Context, entries []entities.ChronicleEntry) error {
	points := make([]*pb.PointStruct, 0, len(entries))

	for _, entry := range entries {
		pointID := entry.ID
		if pointID == "" {
			pointID = uuid.New().String()
		}

		point := &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{
					Uuid: pointID,
				},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{
						Data: entry.Embedding,
					},
				},
			},
			Payload: map[string]*pb.Value{
				"actor_id":   {Kind: &pb.Value_StringValue{StringValue: entry.ActorID}},
				"kind":       {Kind: &pb.Value_StringValue{StringValue: string(entry.Kind)}},
				"text":       {Kind: &pb.Value_StringValue{StringValue: entry.Text}},
				"created_at": {Kind: &pb.Value_StringValue{StringValue: entry.CreatedAt.Format(time.RFC3339)}},
			},
		}
		points = append(points, point)
	}

	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// FindByID retrieves a chronicle entry by its ID.
func (r *Repository) FindByID(ctx context.Context, id string) (entities.ChronicleEntry, error) {
	resp, err := r.points.Get(ctx, &pb.GetPoints{
		CollectionName: r.collection,
		Ids: []*pb.PointId{
			{PointIdOptions: &pb.PointId_Uuid{Uuid: id}},
		},
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
		WithVectors: &pb.WithVectorsSelector{
			SelectorOptions: &pb.WithVectorsSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return entities.ChronicleEntry{}, fmt.Errorf("getting point: %w", err)
	}

	if len(resp.Result) == 0 {
		return entities.ChronicleEntry{}, fmt.Errorf("chronicle entry not found: %s", id)
	}

	point := resp.Result[0]
	var embedding []float32
	if vec := point.Vectors.GetVector(); vec != nil {
		embedding = vec.Data
	}
	return payloadToEntry(point.Id.GetUuid(), point.Payload, embedding), nil
}

// Search performs a semantic search and returns similar entries.
func (r *Repository) Search(ctx context.Context, embedding []float32, limit int) ([]entities.ChronicleEntry, error) {
	return r.search(ctx, embedding, nil, limit)
}

// SearchByKind performs a semantic search filtered by entry kind.
func (r *Repository) SearchByKind(ctx context.Context, embedding []float32, kind entities.ChronicleKind, limit int) ([]entities.ChronicleEntry, error) {
	return r.search(ctx, embedding, keywordFilter("kind", string(kind)), limit)
}

func (r *Repository) search(ctx context.Context, embedding []float32, filter *pb.Filter, limit int) ([]entities.ChronicleEntry, error) {
	resp, err := r.points.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		Filter:         filter,
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
		WithVectors: &pb.WithVectorsSelector{
			SelectorOptions: &pb.WithVectorsSelector_Enable{Enable: false},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	entries := make([]entities.ChronicleEntry, 0, len(resp.Result))
	for _, point := range resp.Result {
		entries = append(entries, payloadToEntry(point.Id.GetUuid(), point.Payload, nil))
	}
	return entries, nil
}

// Delete removes a chronicle entry by its ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collection,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{
					Ids: []*pb.PointId{
						{PointIdOptions: &pb.PointId_Uuid{Uuid: id}},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting point: %w", err)
	}

	return nil
}

// DeleteByActor removes all chronicle entries for an actor.
func (r *Repository) DeleteByActor(ctx context.Context, actorID string) error {
	_, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collection,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Filter{
				Filter: keywordFilter("actor_id", actorID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting points by actor: %w", err)
	}

	return nil
}

// Count returns the total number of indexed entries.
func (r *Repository) Count(ctx context.Context) (uint64, error) {
	resp, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("getting collection info: %w", err)
	}

	if resp.Result.PointsCount == nil {
		return 0, nil
	}

	return *resp.Result.PointsCount, nil
}

// keywordFilter builds a single-keyword must filter.
func keywordFilter(key, value string) *pb.Filter {
	return &pb.Filter{
		Must: []*pb.Condition{
			{
				ConditionOneOf: &pb.Condition_Field{
					Field: &pb.FieldCondition{
						Key: key,
						Match: &pb.Match{
							MatchValue: &pb.Match_Keyword{
								Keyword: value,
							},
						},
					},
				},
			},
		},
	}
}

// payloadToEntry converts a Qdrant payload back to a chronicle entry.
func payloadToEntry(id string, payload map[string]*pb.Value, embedding []float32) entities.ChronicleEntry {
	entry := entities.ChronicleEntry{
		ID:        id,
		ActorID:   getStringValue(payload, "actor_id"),
		Kind:      entities.ChronicleKind(getStringValue(payload, "kind")),
		Text:      getStringValue(payload, "text"),
		Embedding: embedding,
	}
	if raw := getStringValue(payload, "created_at"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			entry.CreatedAt = ts
		}
	}
	return entry
}

func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
