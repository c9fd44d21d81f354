// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/inflow/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Captioner implements ai.Captioner using OpenAI-compatible chat APIs
// with vision-capable models.
type Captioner struct {
	client llms.Model
	logger *slog.Logger
}

// newCaptioner is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCaptioner(config *ai.Config) (*Captioner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for captioning
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.CaptionHost),
		openai.WithToken("none"),
		openai.WithModel(config.CaptionModel),
	)
	if err != nil {
		return nil, err
	}

	return &Captioner{
		client: client,
		logger: slog.Default().With("component", "openai-captioner"),
	}, nil
}

// NewCaptioner creates a new captioner using the provided configuration.
//
// Returns ai.Captioner interface to enforce abstraction.
func NewCaptioner(config *ai.Config) (ai.Captioner, error) {
	return newCaptioner(config)
}

// CaptionImage produces a textual description of image bytes using a
// vision-capable model.
func (c *Captioner) CaptionImage(ctx context.Context, mimeType string, data []byte) (string, error) {
	c.logger.Debug("captioning image", "mimeType", mimeType, "bytes", len(data))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(imageCaptionPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mimeType, data),
			},
		},
	}

	return c.generate(ctx, content)
}

// SummarizeTable produces a textual summary of table markup.
func (c *Captioner) SummarizeTable(ctx context.Context, markup string) (string, error) {
	c.logger.Debug("summarizing table", "length", len(markup))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(tableSummaryPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(markup),
			},
		},
	}

	return c.generate(ctx, content)
}

func (c *Captioner) generate(ctx context.Context, content []llms.MessageContent) (string, error) {
	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("failed to generate content", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return "", errors.New("caption model returned no choices")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
