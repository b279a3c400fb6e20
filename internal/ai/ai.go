// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ai provides text-completion backends for the pipeline stages.
// Every stage talks to the model through the Completer interface so tests
// can supply a mock.
package ai

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pdiddy/article-engine/pkg/types"
)

// Completer is a synchronous LLM text-completion capability. Implementations
// make one blocking network call per invocation and propagate transport or
// provider errors unmodified.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// New builds a Completer for the configured provider, wrapped with bounded
// transport retry.
func New(cfg types.AIConfig) (Completer, error) {
	var backend Completer
	switch cfg.Provider {
	case types.ProviderOpenAI:
		b, err := NewOpenAIBackend(cfg)
		if err != nil {
			return nil, err
		}
		backend = b
	case types.ProviderClaude, "":
		backend = &ClaudeBackend{APIKey: cfg.APIKey, Model: cfg.Model}
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
	return WithRetry(backend, cfg.MaxRetries), nil
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// WithRetry wraps a Completer with bounded retry and exponential backoff on
// transport failures. This is distinct from the Review Controller's
// content-quality revision loop, which reacts to verdicts, not errors.
// When maxRetries is 0 or negative the default (3) is used.
func WithRetry(c Completer, maxRetries int) Completer {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &retrier{backend: c, maxRetries: maxRetries}
}

type retrier struct {
	backend    Completer
	maxRetries int
}

func (r *retrier) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := r.backend.Complete(ctx, prompt, maxTokens)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", r.maxRetries, lastErr)
}
