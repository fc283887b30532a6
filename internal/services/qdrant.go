package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"alfredoptarigan/resume-scorer/internal/models"
)

// RoleIndex keeps one vector per role description so a resume can be matched
// against every role at once.
type RoleIndex interface {
	IndexProfiles(ctx context.Context, profiles []*models.RoleProfile) error
	SearchRoles(ctx context.Context, vector []float32, limit int) ([]models.RoleMatch, error)
	Close() error
}

type qdrantRoleIndex struct {
	client         *qdrant.Client
	embedder       Embedder
	collectionName string

	mu    sync.Mutex // guards ready
	ready bool
}

func NewQdrantRoleIndex(urlStr, apiKey, collectionName string, embedder Embedder) (RoleIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantRoleIndex{
		client:         client,
		embedder:       embedder,
		collectionName: collectionName,
	}, nil
}

func (q *qdrantRoleIndex) ensureCollection(ctx context.Context, vectorSize uint64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.ready {
		return nil
	}

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if !exists {
		err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: q.collectionName,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     vectorSize,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		log.Printf("✅ Qdrant collection '%s' created\n", q.collectionName)
	}

	q.ready = true
	return nil
}

// IndexProfiles embeds every role description and upserts it. Point IDs are
// derived from the role name, so re-indexing overwrites instead of duplicating.
func (q *qdrantRoleIndex) IndexProfiles(ctx context.Context, profiles []*models.RoleProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	texts := make([]string, len(profiles))
	for i, p := range profiles {
		texts[i] = p.ComparisonText()
	}

	vectors, err := q.embedder.Embed(ctx, texts)
	if err != nil {
		return &EmbeddingUnavailableError{Cause: err}
	}

	if err := q.ensureCollection(ctx, uint64(len(vectors[0]))); err != nil {
		return err
	}

	points := make([]*qdrant.PointStruct, len(profiles))
	for i, p := range profiles {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(RolePointID(p.Name)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"role":        p.Name,
				"description": p.Description,
			}),
		}
	}

	_, err = q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert role points: %w", err)
	}

	log.Printf("✅ Indexed %d role profiles in Qdrant\n", len(points))
	return nil
}

// SearchRoles returns the roles closest to the given resume vector.
func (q *qdrantRoleIndex) SearchRoles(ctx context.Context, vector []float32, limit int) ([]models.RoleMatch, error) {
	if limit <= 0 {
		limit = 5
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search roles: %w", err)
	}

	var matches []models.RoleMatch
	for _, point := range points {
		role, ok := point.Payload["role"]
		if !ok {
			continue
		}
		if val, ok := role.GetKind().(*qdrant.Value_StringValue); ok {
			matches = append(matches, models.RoleMatch{Role: val.StringValue, Score: point.Score})
		}
	}

	return matches, nil
}

func (q *qdrantRoleIndex) Close() error {
	return q.client.Close()
}

// RolePointID is the stable Qdrant point ID for a role name.
func RolePointID(role string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("role:"+role)).String()
}
