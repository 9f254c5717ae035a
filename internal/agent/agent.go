// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent wraps the OpenAI chat completion API behind role-specific
// helpers. Each pipeline stage supplies its own instruction set; structured
// stages (planning, synthesis) declare a result schema the model is
// contractually obligated to satisfy, and a violation is returned as an
// error rather than repaired locally.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/pdiddy/deep-research/pkg/types"
)

// Client is the language-model collaborator used by the pipeline stages.
// Implementations may fail on quota, timeout, or malformed output; the
// pipeline decides per stage whether that is retried or propagated.
type Client interface {
	// Complete returns free text for the given role instructions and input.
	Complete(ctx context.Context, instructions, input string) (string, error)

	// CompleteJSON requests output conforming to the JSON schema derived
	// from out's type, named name, and unmarshals the response into out.
	CompleteJSON(ctx context.Context, instructions, input, name string, out any) error
}

// OpenAI implements Client on the OpenAI chat completion API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds the client from cfg. Model defaults to gpt-4o-mini;
// BaseURL, when set, redirects the API (tests point it at a local server).
func NewOpenAI(cfg types.AIConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// Model returns the configured model identifier.
func (o *OpenAI) Model() string { return o.model }

// Complete implements Client.
func (o *OpenAI) Complete(ctx context.Context, instructions, input string) (string, error) {
	content, err := o.chat(ctx, instructions, input, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// CompleteJSON implements Client. The schema is generated from out's type,
// sent in strict mode, and the response is validated by unmarshaling.
func (o *OpenAI) CompleteJSON(ctx context.Context, instructions, input, name string, out any) error {
	schema, err := jsonschema.GenerateSchemaForType(out)
	if err != nil {
		return fmt.Errorf("generating %s schema: %w", name, err)
	}

	format := &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   name,
			Schema: schema,
			Strict: true,
		},
	}

	content, err := o.chat(ctx, instructions, input, format)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("model output does not conform to %s schema: %w", name, err)
	}
	return nil
}

func (o *OpenAI) chat(ctx context.Context, instructions, input string, format *openai.ChatCompletionResponseFormat) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instructions},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
		ResponseFormat: format,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
