// Package ai wraps the chat-completion endpoint behind the two operations
// the service needs: a structured progress estimate for a single task and a
// free-form project summary.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// FallbackSummary is returned whenever summary generation fails for any
// reason. Summaries are best-effort; callers never see an error from them.
const FallbackSummary = "Report generation is temporarily unavailable. Please try again later."

// EvaluationError reports a failed progress estimate. Unlike summaries,
// estimates surface their failures to the caller.
type EvaluationError struct {
	Reason string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ai evaluation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("ai evaluation failed: %s", e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

type ProgressResult struct {
	Percentage int    `json:"percentage"`
	Reasoning  string `json:"reasoning"`
}

type Client struct {
	client *openai.Client
	model  string
}

// NewClient builds a chat-completion client. baseURL is optional and points
// the client at any OpenAI-compatible endpoint.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{client: openai.NewClientWithConfig(cfg), model: model}
}

// EstimateProgress asks the model to judge how far along a task is, given its
// title, description and the titles of related project requirements. The
// response is constrained to a JSON object so parsing failures are rare, but
// any failure, transport or parse, comes back as *EvaluationError.
func (c *Client) EstimateProgress(ctx context.Context, title, deadline, description, requirementContext string) (ProgressResult, error) {
	schema := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"percentage": {Type: jsonschema.Number, Description: "Estimated completion from 0 to 100"},
			"reasoning":  {Type: jsonschema.String, Description: "One or two sentences explaining the estimate"},
		},
		Required:             []string{"percentage", "reasoning"},
		AdditionalProperties: false,
	}

	prompt := fmt.Sprintf(
		"You are a project management assistant. Estimate the completion percentage of the following task.\n\n"+
			"Task title: %s\nDeadline: %s\nTask description: %s\nRelated project requirements: %s\n\n"+
			"Judge how complete the described work appears to be and respond with a percentage from 0 to 100 and a short reasoning.",
		title, deadline, description, requirementContext)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "task_progress",
				Schema: &schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return ProgressResult{}, &EvaluationError{Reason: "completion request failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return ProgressResult{}, &EvaluationError{Reason: "empty completion response"}
	}

	var raw struct {
		Percentage float64 `json:"percentage"`
		Reasoning  string  `json:"reasoning"`
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return ProgressResult{}, &EvaluationError{Reason: "unparsable completion content", Err: err}
	}

	pct := int(math.Round(raw.Percentage))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return ProgressResult{Percentage: pct, Reasoning: raw.Reasoning}, nil
}

// SummarizeProject produces a short status report from a JSON snapshot of the
// project. It never returns an error: any failure yields FallbackSummary so
// report generation degrades instead of breaking.
func (c *Client) SummarizeProject(ctx context.Context, snapshotJSON string) string {
	prompt := fmt.Sprintf(
		"You are a project management assistant. Write a concise status report for the following project data. "+
			"Cover overall progress, completed work, outstanding issues and anything at risk. "+
			"Answer in plain prose, three to five paragraphs at most.\n\nProject data:\n%s",
		snapshotJSON)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		return FallbackSummary
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return FallbackSummary
	}
	return content
}
