package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client proposes tags for a trip summary. Implementations must keep the
// result within the supplied allowlist contract best-effort; the service
// re-filters regardless.
type Client interface {
	ProposeTags(ctx context.Context, req Request, allowlist []string) (Response, error)
}

// CallError carries a stable machine-readable reason for a failed call.
type CallError struct {
	Reason string
	Err    error
}

func (e *CallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *CallError) Unwrap() error { return e.Err }

// OpenAIClient asks the chat-completions API for trip tags in strict JSON.
type OpenAIClient struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		api:     openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

func (c *OpenAIClient) ProposeTags(ctx context.Context, req Request, allowlist []string) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	userPayload, _ := json.Marshal(map[string]any{
		"destinationCountry": req.DestinationCountry,
		"marketplaceCountry": orDefault(req.MarketplaceCountry, req.DestinationCountry),
		"groupAge":           req.GroupAge,
		"dates":              req.Dates,
		"season":             orDefault(req.Season, "any"),
		"tripType":           orDefault(req.TripType, "general"),
		"maxTags":            req.Constraints.MaxTags,
		"promptVersion":      req.Constraints.PromptVersion,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req, allowlist)},
			{Role: openai.ChatMessageRoleUser, Content: strings.Join([]string{
				`Return JSON: { "tags": [ { "id": string, "score": number } ], "exclude": [ { "id": string, "score"?: number } ], "meta": { "promptVersion": string } }.`,
				"Here is the normalized request:",
				string(userPayload),
			}, "\n")},
		},
	})
	if err != nil {
		return Response{}, &CallError{Reason: callReason(err), Err: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Response{}, &CallError{Reason: "OPENAI_NO_CONTENT"}
	}

	var out Response
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &out); err != nil {
		return Response{}, &CallError{Reason: "OPENAI_BAD_JSON", Err: err}
	}
	return out, nil
}

// systemPrompt builds the tagging instructions, including the destination
// and season specific guidance carried over from earlier prompt revisions.
func systemPrompt(req Request, allowlist []string) string {
	lines := []string{
		"You are a travel packing tag assistant. Answer in strict JSON only.",
		"Only propose tags from the following allowlist:",
		strings.Join(allowlist, ", "),
		"Constraints:",
		fmt.Sprintf("- at most %d relevant tags (0..%d)", req.Constraints.MaxTags, req.Constraints.MaxTags),
		"- each tag: { id, score in [0,1] }",
		`- also propose an "exclude" list of tags to discard when irrelevant (allowlist only).`,
		`- if the allowlist contains "core-kit", include "core-kit" with a high score.`,
	}

	season := strings.ToLower(req.Season)
	nordic := map[string]bool{"IS": true, "NO": true, "SE": true, "FI": true}
	switch {
	case nordic[req.DestinationCountry] && season == "summer":
		lines = append(lines,
			"Nordic summer rule (IS/NO/SE/FI + season=summer):",
			"- exclude ONLY: doudoune, parka, puffer, ski, thick thermal base layers",
			"- do NOT exclude: light fleece, thin beanie, windbreaker, rain, waterproof",
			"- favor: core-kit, rain, waterproof, hiking/trekking, grippy shoes, bags",
		)
	case req.DestinationCountry == "BR" && season == "summer":
		lines = append(lines,
			"Brazil summer rule (BR + season=summer):",
			"- strongly favor: core-kit, hiking/trekking, shoes, waterproof/rain, mosquito repellent",
			"- avoid winter items (thermal, doudoune, parka)",
		)
	case req.DestinationCountry == "MA" && season == "summer":
		lines = append(lines,
			"Morocco summer rule (MA + season=summer):",
			"- favor: core-kit, trekking shoes, backpack, travel bottles, waterproof/rain, universal adapter, power bank",
			"- do not limit suggestions to sun care only",
			"- avoid heavy winter items (doudoune/parka)",
		)
	}

	lines = append(lines, "- no text outside JSON.")
	return strings.Join(lines, "\n")
}

func callReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "OPENAI_TIMEOUT"
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return fmt.Sprintf("OPENAI_HTTP_%d", apiErr.HTTPStatusCode)
	}
	return "OPENAI_REQUEST_FAILED"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
