package tracing

import (
	"context"

	"github.com/jinaops/jinakit"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracedEmbedder wraps an Embedder with OTEL tracing.
type TracedEmbedder struct {
	embedder jinakit.Embedder
	tracer   trace.Tracer
	model    string
}

// NewTracedEmbedder creates a traced embedder. With a nil tracer the
// wrapper is a passthrough.
func NewTracedEmbedder(embedder jinakit.Embedder, tracer trace.Tracer, model string) *TracedEmbedder {
	return &TracedEmbedder{
		embedder: embedder,
		tracer:   tracer,
		model:    model,
	}
}

func (t *TracedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if t.tracer == nil {
		return t.embedder.EmbedTexts(ctx, texts)
	}

	ctx, span := t.tracer.Start(ctx, "embed_texts")
	defer span.End()

	span.SetAttributes(
		attribute.String("embedding.model", t.model),
		attribute.Int("embedding.batch_size", len(texts)),
	)

	embeddings, err := t.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if len(embeddings) > 0 {
		span.SetAttributes(attribute.Int("embedding.dimensions", len(embeddings[0])))
	}

	return embeddings, nil
}
