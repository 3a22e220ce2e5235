package vectordb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jinaops/jinakit"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisVectorDB keeps documents in Redis hashes under an HNSW vector
// index. Document i of a batch is stored with embedding i, which relies
// on the embedder's positional guarantee.
type RedisVectorDB struct {
	index       string
	embedder    jinakit.Embedder
	client      *redis.Client
	indexConfig *IndexConfig
}

func NewRedisVectorDB(index string, embedder jinakit.Embedder, redisClient *redis.Client) *RedisVectorDB {
	return &RedisVectorDB{
		index:    index,
		embedder: embedder,
		client:   redisClient,
	}
}

func (r *RedisVectorDB) EnsureIndex(ctx context.Context, config IndexConfig) error {
	if config.Dimensions <= 0 {
		return errors.Errorf("dimensions must be positive, got %d", config.Dimensions)
	}

	metric := config.DistanceMetric
	if metric == "" {
		metric = "COSINE"
	}

	validMetrics := map[string]bool{"L2": true, "COSINE": true, "IP": true}
	if !validMetrics[metric] {
		return errors.Errorf("invalid distance metric: %s (must be L2, COSINE, or IP)", metric)
	}

	err := r.client.FTCreate(
		ctx,
		r.index,
		&redis.FTCreateOptions{
			OnHash: true,
			Prefix: []interface{}{r.index + ":"},
		},
		&redis.FieldSchema{
			FieldName: "content",
			FieldType: redis.SearchFieldTypeText,
		},
		&redis.FieldSchema{
			FieldName: "embedding",
			FieldType: redis.SearchFieldTypeVector,
			VectorArgs: &redis.FTVectorArgs{
				HNSWOptions: &redis.FTHNSWOptions{
					Dim:            config.Dimensions,
					DistanceMetric: metric,
					Type:           "FLOAT32",
				},
			},
		},
	).Err()

	if err != nil && !strings.Contains(err.Error(), "Index already exists") {
		return errors.Wrap(err, "create index")
	}

	r.indexConfig = &config
	return nil
}

func (r *RedisVectorDB) Upsert(ctx context.Context, doc Document) error {
	return r.UpsertBatch(ctx, []Document{doc})
}

func (r *RedisVectorDB) UpsertBatch(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	if r.indexConfig == nil {
		return errors.New("index not created: call EnsureIndex first")
	}

	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = fmt.Sprintf("#%s\n%s", doc.ID, doc.Content)
	}

	embeddings, err := r.embedder.EmbedTexts(ctx, contents)
	if err != nil {
		return errors.Wrap(err, "embed documents")
	}

	pipe := r.client.Pipeline()

	for i, doc := range docs {
		vec := embeddings[i]

		if len(vec) != r.indexConfig.Dimensions {
			return errors.Errorf("document %s: embedding dimension mismatch: got %d, expected %d",
				doc.ID, len(vec), r.indexConfig.Dimensions)
		}

		meta, _ := json.Marshal(doc.Meta)

		key := fmt.Sprintf("%s:%s", r.index, doc.ID)
		pipe.HSet(ctx, key, map[string]interface{}{
			"id":        doc.ID,
			"content":   doc.Content,
			"metadata":  string(meta),
			"embedding": encodeVector(vec),
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "store batch")
	}

	return nil
}

func (r *RedisVectorDB) Delete(ctx context.Context, id string) error {
	key := fmt.Sprintf("%s:%s", r.index, id)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(err, "delete document")
	}
	return nil
}

func (r *RedisVectorDB) Search(ctx context.Context, query SearchQuery) ([]Match, error) {
	if r.indexConfig == nil {
		return nil, errors.New("index not created: call EnsureIndex first")
	}

	if query.TopK <= 0 {
		return nil, errors.Errorf("TopK must be positive, got %d", query.TopK)
	}

	if query.Text == "" {
		return nil, errors.New("query text cannot be empty")
	}

	embeddings, err := r.embedder.EmbedTexts(ctx, []string{query.Text})
	if err != nil {
		return nil, errors.Wrap(err, "embed query")
	}

	vec := embeddings[0]
	if len(vec) != r.indexConfig.Dimensions {
		return nil, errors.Errorf("query vector dimension mismatch: got %d, expected %d",
			len(vec), r.indexConfig.Dimensions)
	}

	knn := fmt.Sprintf("*=>[KNN %d @embedding $vec AS score]", query.TopK)

	result, err := r.client.FTSearchWithArgs(
		ctx,
		r.index,
		knn,
		&redis.FTSearchOptions{
			DialectVersion: 2,
			Params: map[string]interface{}{
				"vec": encodeVector(vec),
			},
			Return: []redis.FTSearchReturn{
				{FieldName: "id"},
				{FieldName: "content"},
				{FieldName: "metadata"},
				{FieldName: "score"},
			},
		},
	).Result()
	if err != nil {
		return nil, errors.Wrap(err, "search")
	}

	matches := make([]Match, 0, len(result.Docs))

	for _, doc := range result.Docs {
		var meta map[string]any
		if raw, ok := doc.Fields["metadata"]; ok && raw != "" {
			if err := json.Unmarshal([]byte(raw), &meta); err != nil {
				return nil, errors.Wrapf(err, "unmarshal metadata for doc %s", doc.Fields["id"])
			}
		}

		score, _ := strconv.ParseFloat(doc.Fields["score"], 64)

		matches = append(matches, Match{
			Document: Document{
				ID:      doc.Fields["id"],
				Content: doc.Fields["content"],
				Meta:    meta,
			},
			Score: score,
		})
	}

	return matches, nil
}

// encodeVector packs a float64 vector into the FLOAT32 little-endian blob
// format Redis expects.
func encodeVector(vec []float64) []byte {
	buf := make([]byte, len(vec)*4)

	for i, f := range vec {
		u := math.Float32bits(float32(f))
		binary.LittleEndian.PutUint32(buf[i*4:], u)
	}

	return buf
}
