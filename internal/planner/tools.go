package planner

import (
	"context"
	"encoding/json"
	"fmt"

	llmagent "github.com/hoangvvo/llm-sdk/agent-go"
	llmsdk "github.com/hoangvvo/llm-sdk/sdk-go"
)

// The enrichment tools surface soft failures (unknown location, empty feeds)
// as plain text so the agents can react to them; transport errors are
// returned as errors and abort the run.

type weatherTool struct{}

// NewWeatherTool exposes the weather outlook lookup to agents.
func NewWeatherTool() llmagent.AgentTool[*Toolbelt] { return &weatherTool{} }

func (t *weatherTool) Name() string { return "get_weather_outlook" }

func (t *weatherTool) Description() string {
	return "Return a concise weather outlook for a location and date."
}

func (t *weatherTool) Parameters() llmsdk.JSONSchema {
	return llmsdk.JSONSchema{
		"type": "object",
		"properties": map[string]any{
			"location": map[string]any{
				"type":        "string",
				"description": "City or area the user will spend the day in.",
			},
			"target_date": map[string]any{
				"type":        "string",
				"description": "Plan date in YYYY-MM-DD form.",
			},
		},
		"required":             []string{"location"},
		"additionalProperties": false,
	}
}

func (t *weatherTool) Execute(ctx context.Context, params json.RawMessage, tb *Toolbelt, _ *llmagent.RunState) (llmagent.AgentToolResult, error) {
	var args struct {
		Location   string `json:"location"`
		TargetDate string `json:"target_date"`
	}
	if err := json.Unmarshal(params, &args); err != nil {
		return llmagent.AgentToolResult{}, fmt.Errorf("decode get_weather_outlook args: %w", err)
	}

	tb.Logger.Info("tool call", "tool", t.Name(), "location", args.Location, "date", args.TargetDate)
	outlook, err := tb.Weather.OutlookFor(ctx, args.Location, args.TargetDate)
	if err != nil {
		return llmagent.AgentToolResult{}, err
	}
	return textResult(outlook), nil
}

type newsTool struct{}

// NewNewsTool exposes the city news digest to agents.
func NewNewsTool() llmagent.AgentTool[*Toolbelt] { return &newsTool{} }

func (t *newsTool) Name() string { return "get_city_news" }

func (t *newsTool) Description() string {
	return "Fetch city-specific headlines filtered by date and interests."
}

func (t *newsTool) Parameters() llmsdk.JSONSchema {
	return llmsdk.JSONSchema{
		"type": "object",
		"properties": map[string]any{
			"location": map[string]any{
				"type":        "string",
				"description": "City to scan for happenings.",
			},
			"target_date": map[string]any{
				"type":        "string",
				"description": "Plan date in YYYY-MM-DD form.",
			},
			"interests": map[string]any{
				"type":        "string",
				"description": "Comma-separated interest keywords used to filter headlines.",
			},
		},
		"required":             []string{"location"},
		"additionalProperties": false,
	}
}

func (t *newsTool) Execute(ctx context.Context, params json.RawMessage, tb *Toolbelt, _ *llmagent.RunState) (llmagent.AgentToolResult, error) {
	var args struct {
		Location   string `json:"location"`
		TargetDate string `json:"target_date"`
		Interests  string `json:"interests"`
	}
	if err := json.Unmarshal(params, &args); err != nil {
		return llmagent.AgentToolResult{}, fmt.Errorf("decode get_city_news args: %w", err)
	}

	tb.Logger.Info("tool call", "tool", t.Name(), "location", args.Location, "date", args.TargetDate)
	digest, err := tb.News.Digest(ctx, args.Location, args.TargetDate, args.Interests)
	if err != nil {
		return llmagent.AgentToolResult{}, err
	}
	return textResult(digest), nil
}

type spotsTool struct{}

// NewSpotsTool exposes the nearby venue shortlist to agents.
func NewSpotsTool() llmagent.AgentTool[*Toolbelt] { return &spotsTool{} }

func (t *spotsTool) Name() string { return "get_local_spots" }

func (t *spotsTool) Description() string {
	return "Recommend nearby venues (stadiums, cinemas, malls, parks) within ~8km."
}

func (t *spotsTool) Parameters() llmsdk.JSONSchema {
	return llmsdk.JSONSchema{
		"type": "object",
		"properties": map[string]any{
			"location": map[string]any{
				"type":        "string",
				"description": "City or neighborhood to search around.",
			},
			"interest": map[string]any{
				"type":        "string",
				"description": "Free-text interest used to bias the ranking.",
			},
		},
		"required":             []string{"location"},
		"additionalProperties": false,
	}
}

func (t *spotsTool) Execute(ctx context.Context, params json.RawMessage, tb *Toolbelt, _ *llmagent.RunState) (llmagent.AgentToolResult, error) {
	var args struct {
		Location string `json:"location"`
		Interest string `json:"interest"`
	}
	if err := json.Unmarshal(params, &args); err != nil {
		return llmagent.AgentToolResult{}, fmt.Errorf("decode get_local_spots args: %w", err)
	}

	tb.Logger.Info("tool call", "tool", t.Name(), "location", args.Location, "interest", args.Interest)
	spots, err := tb.Venues.Nearby(ctx, args.Location, args.Interest)
	if err != nil {
		return llmagent.AgentToolResult{}, err
	}
	return textResult(spots), nil
}

func textResult(text string) llmagent.AgentToolResult {
	return llmagent.AgentToolResult{
		Content: []llmsdk.Part{llmsdk.NewTextPart(text)},
		IsError: false,
	}
}
