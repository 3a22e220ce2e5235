package jinakit

import (
	"context"
	"errors"
	"sort"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type encodeRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type encodeResponseItem struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

type encodeResponse struct {
	Data   []encodeResponseItem `json:"data"`
	Detail string               `json:"detail"`
}

// BatchResult carries the outcome of an EncodeBatchAsync call.
type BatchResult struct {
	Embeddings [][]float64
	Err        error
}

// EncodeBatch embeds texts in a single request and returns one vector per
// text, in input order. Empty strings are allowed; an empty batch is not.
// Connection failures and HTTP error responses are retried with backoff;
// everything else fails immediately.
func (c *Client) EncodeBatch(ctx context.Context, texts []string) ([][]float64, error) {
	return c.encode(ctx, texts)
}

// EncodeBatchAsync runs the same pipeline as EncodeBatch on its own
// goroutine and delivers a single BatchResult on the returned channel.
// Cancelling ctx stops in-flight retries; the result then carries the
// context error and no embeddings.
func (c *Client) EncodeBatchAsync(ctx context.Context, texts []string) <-chan BatchResult {
	out := make(chan BatchResult, 1)

	go func() {
		defer close(out)
		embeddings, err := c.encode(ctx, texts)
		out <- BatchResult{Embeddings: embeddings, Err: err}
	}()

	return out
}

// EmbedTexts implements Embedder.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	return c.EncodeBatch(ctx, texts)
}

func (c *Client) encode(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}

	requestID := uuid.NewString()
	c.logger.Debug("encoding batch",
		"request_id", requestID,
		"model", c.config.Model,
		"batch_size", len(texts),
	)

	var parsed encodeResponse
	err := retry.Do(
		func() error { return c.post(ctx, texts, &parsed) },
		retry.Attempts(c.config.Retries),
		retry.Context(ctx),
		retry.Delay(c.config.Backoff),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying embeddings request",
				"request_id", requestID,
				"attempt", n+1,
				"error", err.Error(),
			)
		}),
	)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return nil, err
		}
		if isTransient(err) {
			return nil, &RetryExhaustedError{Attempts: c.config.Retries, Err: err}
		}
		return nil, err
	}

	if parsed.Data == nil {
		detail := parsed.Detail
		if detail == "" {
			detail = "embeddings response has no data"
		}
		return nil, &ServiceError{Detail: detail}
	}

	if len(parsed.Data) != len(texts) {
		return nil, &ResponseShapeError{Want: len(texts), Got: len(parsed.Data)}
	}

	// The service does not guarantee input order; the index field does.
	// The sort must be stable so a malformed response with duplicate
	// indexes still resolves deterministically.
	sort.SliceStable(parsed.Data, func(i, j int) bool {
		return parsed.Data[i].Index < parsed.Data[j].Index
	})

	embeddings := lo.Map(parsed.Data, func(item encodeResponseItem, _ int) []float64 {
		return item.Embedding
	})

	c.logger.Debug("batch encoded",
		"request_id", requestID,
		"embeddings", len(embeddings),
	)

	return embeddings, nil
}

// post performs one attempt. Connection failures and non-2xx statuses come
// back as *TransportError so the retry policy can recognize them.
func (c *Client) post(ctx context.Context, texts []string, parsed *encodeResponse) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(encodeRequest{Input: texts, Model: c.config.Model}).
		SetResult(parsed).
		ForceContentType("application/json").
		Post("/embeddings")
	if err != nil {
		return &TransportError{Err: err}
	}
	if resp.IsError() {
		return &TransportError{StatusCode: resp.StatusCode()}
	}
	return nil
}

func isTransient(err error) bool {
	var transport *TransportError
	return errors.As(err, &transport)
}
