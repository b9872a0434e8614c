package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	llmsdk "github.com/hoangvvo/llm-sdk/sdk-go"
)

// mockModel pops scripted responses in order and records every input so
// tests can inspect the prompts each agent sent.
type mockModel struct {
	responses []*llmsdk.ModelResponse
	errs      []error
	calls     []*llmsdk.LanguageModelInput
}

func (m *mockModel) Provider() string { return "mock" }

func (m *mockModel) ModelID() string { return "mock-model" }

func (m *mockModel) Metadata() *llmsdk.LanguageModelMetadata { return nil }

func (m *mockModel) Generate(_ context.Context, input *llmsdk.LanguageModelInput) (*llmsdk.ModelResponse, error) {
	m.calls = append(m.calls, input)
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return nil, err
	}
	if len(m.responses) == 0 {
		return nil, errors.New("no scripted response left")
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

func (m *mockModel) Stream(context.Context, *llmsdk.LanguageModelInput) (*llmsdk.LanguageModelStream, error) {
	return nil, errors.New("streaming not used in tests")
}

func textResponse(text string) *llmsdk.ModelResponse {
	return &llmsdk.ModelResponse{Content: []llmsdk.Part{llmsdk.NewTextPart(text)}}
}

func testWorkflow(model llmsdk.LanguageModel) *Workflow {
	tb := &Toolbelt{Logger: discardLogger()}
	return NewWorkflow(model, tb, discardLogger())
}

func promptText(t *testing.T, input *llmsdk.LanguageModelInput) string {
	t.Helper()
	if len(input.Messages) == 0 || input.Messages[0].UserMessage == nil {
		t.Fatalf("input has no user message: %+v", input)
	}
	content := input.Messages[0].UserMessage.Content
	if len(content) == 0 || content[0].TextPart == nil {
		t.Fatalf("user message has no text part: %+v", content)
	}
	return content[0].TextPart.Text
}

func TestWorkflowRunsAllStages(t *testing.T) {
	model := &mockModel{responses: []*llmsdk.ModelResponse{
		textResponse(`{"name": "Ada"}`),
		textResponse("- Sunny, 24°C to 31°C"),
		textResponse("## Events/Matches\n- Hunters match"),
		textResponse("## Morning\n- 08:00 breakfast"),
	}}
	w := testWorkflow(model)

	var stages, messages []string
	res, err := w.Run(context.Background(), Request{
		Name:      "Ada",
		Email:     "ada@example.com",
		Location:  "Hyderabad",
		Date:      "2025-06-01",
		Interests: "cricket",
	}, func(stage, message string) {
		stages = append(stages, stage)
		messages = append(messages, message)
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	wantStages := []string{StagePersona, StageWeather, StageInsights, StagePlanning, StageDone}
	if diff := cmp.Diff(wantStages, stages); diff != "" {
		t.Errorf("stage order mismatch (-want +got):\n%s", diff)
	}
	if messages[0] != "Summarizing your vibe for this day off..." {
		t.Errorf("persona message = %q", messages[0])
	}
	if messages[len(messages)-1] != "All agents finished! Publishing your itinerary." {
		t.Errorf("done message = %q", messages[len(messages)-1])
	}

	want := &Result{
		Persona:       `{"name": "Ada"}`,
		Weather:       "- Sunny, 24°C to 31°C",
		LocalInsights: "## Events/Matches\n- Hunters match",
		Plan:          "## Morning\n- 08:00 breakfast",
		Date:          "2025-06-01",
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if len(model.calls) != 4 {
		t.Errorf("model generated %d times, want 4", len(model.calls))
	}
}

func TestWorkflowPromptsCarryContext(t *testing.T) {
	model := &mockModel{responses: []*llmsdk.ModelResponse{
		textResponse("PERSONA"),
		textResponse("WEATHER"),
		textResponse("INSIGHTS"),
		textResponse("PLAN"),
	}}
	w := testWorkflow(model)

	_, err := w.Run(context.Background(), Request{
		Name:     "Ada",
		Email:    "ada@example.com",
		Location: "Hyderabad",
		Date:     "2025-06-01",
	}, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	personaPrompt := promptText(t, model.calls[0])
	for _, want := range []string{"Name: Ada", "Hobbies: N/A", "Plan date: 2025-06-01"} {
		if !strings.Contains(personaPrompt, want) {
			t.Errorf("persona prompt missing %q:\n%s", want, personaPrompt)
		}
	}
	if sp := model.calls[0].SystemPrompt; sp == nil || !strings.Contains(*sp, "User Data Curator") {
		t.Errorf("persona system prompt = %v, want the curator role", sp)
	}

	if tools := model.calls[1].Tools; len(tools) != 1 || tools[0].Name != "get_weather_outlook" {
		t.Errorf("climate agent tools = %+v, want the weather tool only", tools)
	}
	if tools := model.calls[2].Tools; len(tools) != 2 {
		t.Errorf("scout agent got %d tools, want news and spots", len(tools))
	}

	planPrompt := promptText(t, model.calls[3])
	for _, want := range []string{
		"Persona JSON:\nPERSONA",
		"Weather insights:\nWEATHER",
		"Local picks:\nINSIGHTS",
		"Fixed commitments (must appear exactly at given times): None provided",
		"User adjustments or feedback: No additional preferences supplied",
	} {
		if !strings.Contains(planPrompt, want) {
			t.Errorf("planning prompt missing %q", want)
		}
	}
}

func TestWorkflowCarriesCommitmentsAndAdjustments(t *testing.T) {
	model := &mockModel{responses: []*llmsdk.ModelResponse{
		textResponse("PERSONA"),
		textResponse("WEATHER"),
		textResponse("INSIGHTS"),
		textResponse("PLAN"),
	}}
	w := testWorkflow(model)

	res, err := w.Run(context.Background(), Request{
		Name:        "Ada",
		Email:       "ada@example.com",
		Location:    "Hyderabad",
		Date:        "2025-06-01",
		Commitments: "16:00 meet friend at Gachibowli Stadium",
		Adjustments: "swap the afternoon to a movie",
	}, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	planPrompt := promptText(t, model.calls[3])
	if !strings.Contains(planPrompt, "16:00 meet friend at Gachibowli Stadium") {
		t.Error("planning prompt missing the fixed commitment")
	}
	if !strings.Contains(planPrompt, "swap the afternoon to a movie") {
		t.Error("planning prompt missing the adjustment feedback")
	}
	if res.Commitments != "16:00 meet friend at Gachibowli Stadium" {
		t.Errorf("result commitments = %q", res.Commitments)
	}
	if res.Adjustments != "swap the afternoon to a movie" {
		t.Errorf("result adjustments = %q", res.Adjustments)
	}
}

func TestWorkflowRequiresLocationAndDate(t *testing.T) {
	w := testWorkflow(&mockModel{})

	notified := false
	_, err := w.Run(context.Background(), Request{Date: "2025-06-01"}, func(string, string) { notified = true })
	if err == nil || err.Error() != "location is required to generate the day plan" {
		t.Fatalf("Run error = %v, want the location guard", err)
	}
	if notified {
		t.Error("no stages should be emitted when validation fails")
	}

	_, err = w.Run(context.Background(), Request{Location: "Hyderabad"}, nil)
	if err == nil || err.Error() != "plan date is required" {
		t.Fatalf("Run error = %v, want the date guard", err)
	}
}

func TestWorkflowModelFailureAbortsRun(t *testing.T) {
	boom := errors.New("model offline")
	model := &mockModel{errs: []error{boom}}
	w := testWorkflow(model)

	var stages []string
	_, err := w.Run(context.Background(), Request{
		Name:     "Ada",
		Email:    "ada@example.com",
		Location: "Hyderabad",
		Date:     "2025-06-01",
	}, func(stage, _ string) { stages = append(stages, stage) })

	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want the model failure", err)
	}
	if !strings.Contains(err.Error(), "draft persona") {
		t.Errorf("error should name the failed step, got %v", err)
	}
	if diff := cmp.Diff([]string{StagePersona}, stages); diff != "" {
		t.Errorf("stages before failure mismatch (-want +got):\n%s", diff)
	}
}
