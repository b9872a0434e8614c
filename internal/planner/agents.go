package planner

import (
	"fmt"

	llmagent "github.com/hoangvvo/llm-sdk/agent-go"
	llmsdk "github.com/hoangvvo/llm-sdk/sdk-go"
)

func ptr[T any](v T) *T { return &v }

func roleInstructions(role, backstory, goal string) llmagent.InstructionParam[*Toolbelt] {
	return llmagent.InstructionParam[*Toolbelt]{
		String: ptr(fmt.Sprintf("You are %s. %s\nYour personal goal is: %s", role, backstory, goal)),
	}
}

// NewProfileAgent curates raw onboarding answers into a persona brief.
func NewProfileAgent(model llmsdk.LanguageModel) *llmagent.Agent[*Toolbelt] {
	return llmagent.NewAgent[*Toolbelt]("User Data Curator", model,
		llmagent.WithInstructions(roleInstructions(
			"User Data Curator",
			"You are a thoughtful researcher who captures user context crisply for planners.",
			"Transform raw onboarding answers into a structured persona profile.",
		)),
	)
}

// NewClimateAgent reads the forecast through the weather tool.
func NewClimateAgent(model llmsdk.LanguageModel) *llmagent.Agent[*Toolbelt] {
	return llmagent.NewAgent[*Toolbelt]("Climate Analyst", model,
		llmagent.WithInstructions(roleInstructions(
			"Climate Analyst",
			"You specialize in translating forecasts into human-friendly takeaways.",
			"Gather actionable weather intelligence for schedule planning.",
		)),
		llmagent.WithTools(NewWeatherTool()),
	)
}

// NewScoutAgent surfaces happenings and venues through the news and spots tools.
func NewScoutAgent(model llmsdk.LanguageModel) *llmagent.Agent[*Toolbelt] {
	return llmagent.NewAgent[*Toolbelt]("City Culture Scout", model,
		llmagent.WithInstructions(roleInstructions(
			"City Culture Scout",
			"A plugged-in local guide who cross-references news and maps to surface specific recommendations.",
			"Discover concrete venues, events, and indoor-safe options for the user's city today.",
		)),
		llmagent.WithTools(NewNewsTool(), NewSpotsTool()),
	)
}

// NewPlannerAgent composes the final itinerary from the gathered briefs.
func NewPlannerAgent(model llmsdk.LanguageModel) *llmagent.Agent[*Toolbelt] {
	return llmagent.NewAgent[*Toolbelt]("Personal Day Planner", model,
		llmagent.WithInstructions(roleInstructions(
			"Personal Day Planner",
			"Seasoned lifestyle coach blending productivity, wellness, and leisure.",
			"Design a balanced, climate-aware day plan tuned to the user's lifestyle.",
		)),
	)
}
