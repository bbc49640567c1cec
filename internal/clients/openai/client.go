// Package openai implements the script-writing capability over an
// OpenAI-compatible chat completion API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openaigo "github.com/sashabaranov/go-openai"

	"github.com/claudeloba/talk-over-api/internal/models"
	"github.com/claudeloba/talk-over-api/internal/pipeline"
)

const systemPrompt = `You are a scriptwriter for short educational narrated videos.
Given a topic, write an engaging narration script a single narrator reads aloud.

You MUST respond with ONLY valid JSON, no preamble, no markdown, no explanation:
{
  "content": "the full narration script as plain text",
  "keywords": ["3-5 short search keywords for sourcing stock visuals"],
  "estimated_duration": <estimated narration length in seconds>
}

Aim the script length at the requested duration assuming a natural speaking
rate of about 150 words per minute. Keywords must be concrete, visual nouns.`

// Words per second at a natural narration pace.
const wordsPerSecond = 2.5

// durationTargets maps a duration preference to a target length in
// seconds. Unspecified falls back to medium.
var durationTargets = map[string]int{
	models.DurationShort:  30,
	models.DurationMedium: 60,
	models.DurationLong:   120,
}

type Client struct {
	api   *openaigo.Client
	model string
}

func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openaigo.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:   openaigo.NewClientWithConfig(cfg),
		model: model,
	}
}

type scriptPayload struct {
	Content           string   `json:"content"`
	Keywords          []string `json:"keywords"`
	EstimatedDuration int      `json:"estimated_duration"`
}

func (c *Client) WriteScript(ctx context.Context, topic, durationPreference string) (*pipeline.Script, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, pipeline.ErrInvalidTopic
	}

	target, ok := durationTargets[durationPreference]
	if !ok {
		target = durationTargets[models.DurationMedium]
	}

	userPrompt := fmt.Sprintf("Topic: %s\nTarget duration: %d seconds (about %d words).",
		topic, target, int(float64(target)*wordsPerSecond))

	resp, err := c.api.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model: c.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openaigo.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.7,
		ResponseFormat: &openaigo.ChatCompletionResponseFormat{
			Type: openaigo.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		var apiErr *openaigo.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode >= 400 && apiErr.HTTPStatusCode < 500 {
			return nil, fmt.Errorf("%w: %v", pipeline.ErrInvalidTopic, err)
		}
		return nil, fmt.Errorf("%w: %v", pipeline.ErrUpstreamUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: completion returned no choices", pipeline.ErrUpstreamUnavailable)
	}

	payload, err := parseScriptPayload(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrUpstreamUnavailable, err)
	}

	if strings.TrimSpace(payload.Content) == "" {
		return nil, fmt.Errorf("%w: completion returned an empty script", pipeline.ErrUpstreamUnavailable)
	}

	keywords := payload.Keywords
	if len(keywords) == 0 {
		keywords = ExtractKeywords(topic)
	}

	estimated := payload.EstimatedDuration
	if estimated <= 0 {
		words := len(strings.Fields(payload.Content))
		estimated = int(float64(words)/wordsPerSecond + 0.5)
	}

	return &pipeline.Script{
		Content:           payload.Content,
		Keywords:          keywords,
		EstimatedDuration: estimated,
	}, nil
}

// parseScriptPayload tolerates models that wrap JSON in a markdown fence
// despite the JSON response format.
func parseScriptPayload(raw string) (*scriptPayload, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var payload scriptPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse script completion: %w", err)
	}
	return &payload, nil
}

var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true,
	"on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "a": true, "an": true,
}

// ExtractKeywords derives search keywords directly from the topic; it is
// the fallback when the model omits them.
func ExtractKeywords(topic string) []string {
	words := strings.FieldsFunc(strings.ToLower(topic), func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '-'
	})

	seen := make(map[string]bool)
	var keywords []string
	for _, word := range words {
		if len(word) <= 2 || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == 5 {
			break
		}
	}
	return keywords
}
