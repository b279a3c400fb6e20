// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/article-engine/pkg/types"
)

// OpenAIBackend implements Completer using the official openai-go SDK
// (chat completions), for deployments that prefer an OpenAI-compatible
// endpoint over the Claude API.
type OpenAIBackend struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIBackend validates the config and builds an OpenAI-backed Completer.
func NewOpenAIBackend(cfg types.AIConfig) (*OpenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key missing")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai model is required")
	}
	return &OpenAIBackend{
		model: cfg.Model,
		opts:  []option.RequestOption{option.WithAPIKey(cfg.APIKey)},
	}, nil
}

// Complete sends the prompt as a single user message.
func (o *OpenAIBackend) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(o.model),
		MaxCompletionTokens: openai.Int(int64(maxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
