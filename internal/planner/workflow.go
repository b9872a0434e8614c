package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	llmagent "github.com/hoangvvo/llm-sdk/agent-go"
	llmsdk "github.com/hoangvvo/llm-sdk/sdk-go"
)

// Workflow stages, emitted in order on every successful run.
const (
	StagePersona  = "persona"
	StageWeather  = "weather"
	StageInsights = "insights"
	StagePlanning = "planning"
	StageDone     = "done"
)

// Request carries everything the workflow needs to draft a day plan.
type Request struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Location    string `json:"location" validate:"required"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Profession  string `json:"profession"`
	Hobbies     string `json:"hobbies"`
	Interests   string `json:"interests"`
	Commitments string `json:"commitments"`
	Adjustments string `json:"adjustments"`
}

// Result is the finished plan bundle handed back to clients.
type Result struct {
	Persona       string `json:"persona"`
	Weather       string `json:"weather"`
	LocalInsights string `json:"local_insights"`
	Plan          string `json:"plan"`
	Date          string `json:"date"`
	Commitments   string `json:"commitments"`
	Adjustments   string `json:"adjustments"`
}

// Notify receives a progress event each time the workflow enters a stage.
type Notify func(stage, message string)

// Workflow chains the four specialist agents over one request.
type Workflow struct {
	profile  *llmagent.Agent[*Toolbelt]
	climate  *llmagent.Agent[*Toolbelt]
	scout    *llmagent.Agent[*Toolbelt]
	planner  *llmagent.Agent[*Toolbelt]
	toolbelt *Toolbelt
	logger   *slog.Logger
}

// NewWorkflow builds the agent crew on a shared model and toolbelt.
func NewWorkflow(model llmsdk.LanguageModel, toolbelt *Toolbelt, logger *slog.Logger) *Workflow {
	return &Workflow{
		profile:  NewProfileAgent(model),
		climate:  NewClimateAgent(model),
		scout:    NewScoutAgent(model),
		planner:  NewPlannerAgent(model),
		toolbelt: toolbelt,
		logger:   logger,
	}
}

// Run executes the persona, weather, insights, and planning steps in order
// and assembles the final plan. The notify callback may be nil.
func (w *Workflow) Run(ctx context.Context, req Request, notify Notify) (*Result, error) {
	if req.Location == "" {
		return nil, errors.New("location is required to generate the day plan")
	}
	day := req.Date
	if day == "" {
		return nil, errors.New("plan date is required")
	}

	emit := func(stage, message string) {
		if notify != nil {
			notify(stage, message)
		}
	}

	emit(StagePersona, "Summarizing your vibe for this day off...")
	personaDesc := fmt.Sprintf(
		"Create a JSON persona profile for a leisure day planner. "+
			"The user is completely off work on the specified date, so focus on lifestyle cues.\n"+
			"Plan date: %s\n%s\n"+
			"Return keys: name, email, location, profession, hobbies, interests, priorities, tone, ideal_pace, summary.",
		day, formatUserContext(req),
	)
	personaBrief, err := w.runTask(ctx, w.profile, personaDesc,
		"Valid JSON document capturing the requested keys with concise values.")
	if err != nil {
		return nil, fmt.Errorf("draft persona: %w", err)
	}

	emit(StageWeather, "Checking the weather and comfort levels for the day...")
	weatherDesc := fmt.Sprintf(
		"Retrieve the weather outlook for the selected leisure date using the get_weather_outlook tool. "+
			"You must call the tool with both location and target_date in ISO format.\n"+
			"Location: %s\nDate: %s",
		req.Location, day,
	)
	weatherBrief, err := w.runTask(ctx, w.climate, weatherDesc,
		"3-5 bullet insights that mention temperature, precipitation, daylight, and comfort tips.")
	if err != nil {
		return nil, fmt.Errorf("analyze weather: %w", err)
	}

	emit(StageInsights, "Hunting for venues and happenings in your city you'll love...")
	insightsDesc := fmt.Sprintf(
		"Surface concrete happenings and venues for the user's free day. "+
			"Use get_city_news with location, target_date, and interest keywords to find relevant events. "+
			"Use get_local_spots to gather nearby venues for the stated hobbies/interests. "+
			"Tag each suggestion as Outdoor or Indoor-safe.\n"+
			"Location: %s\nDate: %s\nHobbies: %s\nInterests: %s",
		req.Location, day, fallback(req.Hobbies, "N/A"), fallback(req.Interests, "N/A"),
	)
	insights, err := w.runTask(ctx, w.scout, insightsDesc,
		"Return markdown with sections Events/Matches, Indoor Picks, Outdoor Picks. "+
			"List specific names with short reasons (e.g., 'Attend Hyderabad Hunters match at Gachibowli Indoor Stadium').")
	if err != nil {
		return nil, fmt.Errorf("gather local insights: %w", err)
	}

	emit(StagePlanning, "Crafting your curated timeline(Final Step)...")
	planDesc := fmt.Sprintf(
		"Design a detailed leisure-day itinerary (no work items) for the specified date.\n"+
			"Date: %s\nPersona JSON:\n%s\nWeather insights:\n%s\nLocal picks:\n%s\n"+
			"Fixed commitments (must appear exactly at given times): %s\n"+
			"User adjustments or feedback: %s\n"+
			"Output should cover Morning, Midday, Afternoon, Evening, and Late Night. "+
			"Each block must specify concrete times and explicit venues or neighborhoods. "+
			"Reference at least two suggestions from the local picks, and adjust indoor/outdoor balance based on the weather. "+
			"Respect fixed commitments even if it requires reshuffling nearby blocks. "+
			"Assume the user is free the entire day and prefers a balanced pace.",
		day, personaBrief, weatherBrief, insights,
		fallback(req.Commitments, "None provided"),
		fallback(req.Adjustments, "No additional preferences supplied"),
	)
	plan, err := w.runTask(ctx, w.planner, planDesc,
		"Return markdown with headings: Morning, Midday, Afternoon, Evening, Late Night. "+
			"Under each heading provide bullet timelines (e.g., '08:00-09:30 – Breakfast at ...'). "+
			"Do not add extra sections such as Productivity or Wellness.")
	if err != nil {
		return nil, fmt.Errorf("compose itinerary: %w", err)
	}

	emit(StageDone, "All agents finished! Publishing your itinerary.")
	w.logger.Info("plan assembled", "location", req.Location, "date", day)

	return &Result{
		Persona:       personaBrief,
		Weather:       weatherBrief,
		LocalInsights: insights,
		Plan:          plan,
		Date:          day,
		Commitments:   req.Commitments,
		Adjustments:   req.Adjustments,
	}, nil
}

func (w *Workflow) runTask(ctx context.Context, agent *llmagent.Agent[*Toolbelt], description, expected string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nExpected output: %s", description, expected)
	resp, err := agent.Run(ctx, llmagent.AgentRequest[*Toolbelt]{
		Context: w.toolbelt,
		Input: []llmagent.AgentItem{
			llmagent.NewAgentItemMessage(llmsdk.NewUserMessage(llmsdk.NewTextPart(prompt))),
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// formatUserContext renders the onboarding answers as labeled lines, with
// N/A standing in for anything the user left blank.
func formatUserContext(req Request) string {
	fields := []struct{ label, value string }{
		{"Name", req.Name},
		{"Email", req.Email},
		{"Location", req.Location},
		{"Profession", req.Profession},
		{"Hobbies", req.Hobbies},
		{"Interests", req.Interests},
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, f.label+": "+fallback(f.value, "N/A"))
	}
	return strings.Join(lines, "\n")
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
