package jinakit

import "context"

// Embedder turns a batch of texts into one embedding vector per text.
// Position i of the result is the embedding for texts[i].
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
}
