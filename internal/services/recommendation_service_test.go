package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"meetspot/internal/models/domain_models"
	"meetspot/pkg/utils"
)

type fakeCompletion struct {
	reply      string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeCompletion) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testGroup() *domain_models.GroupRequest {
	return &domain_models.GroupRequest{
		People: []domain_models.Person{
			{Location: "London Bridge Station", Mode: domain_models.ModeTransit},
			{Location: "Camden Town", Mode: domain_models.ModeAny},
		},
		Activity:    "Restaurant",
		Mood:        "First Date",
		MeetingTime: time.Date(2026, 9, 4, 19, 30, 0, 0, time.UTC),
		Notes:       "vegetarian options",
	}
}

const validReply = `[
  {"name":"Dishoom King's Cross","address":"5 Stable Street, London N1C 4AB","category":"restaurant","rationale":"Lively but intimate, great for a first date."},
  {"name":"The Hoxton Holborn","address":"199-206 High Holborn, London WC1V 7BD","category":"bar","rationale":"Roughly in the middle with good vegetarian plates."}
]`

func TestRequestVenues_ParsesValidReply(t *testing.T) {
	fake := &fakeCompletion{reply: validReply}
	svc := NewRecommendationService(fake)

	venues, err := svc.RequestVenues(context.Background(), testGroup(), "around the point 51.5,-0.1")
	if err != nil {
		t.Fatalf("RequestVenues returned error: %v", err)
	}
	if len(venues) != 2 {
		t.Fatalf("venues = %d, want 2", len(venues))
	}
	if venues[0].Name != "Dishoom King's Cross" || venues[0].Category != "restaurant" {
		t.Errorf("first venue = %+v", venues[0])
	}
	if venues[1].Travel == nil {
		t.Error("travel map not initialized")
	}
}

func TestRequestVenues_PromptEncodesEveryInput(t *testing.T) {
	fake := &fakeCompletion{reply: validReply}
	svc := NewRecommendationService(fake)

	if _, err := svc.RequestVenues(context.Background(), testGroup(), "in Shoreditch"); err != nil {
		t.Fatal(err)
	}

	wants := []string{
		"2 people",
		"London Bridge Station (transit)",
		"Camden Town (any)",
		"Restaurant",
		"First Date",
		"in Shoreditch",
		"Friday, September 4, 2026 at 7:30 PM",
		"vegetarian options",
	}
	for _, want := range wants {
		if !strings.Contains(fake.lastUser, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}
}

func TestRequestVenues_PromptIsDeterministic(t *testing.T) {
	a := buildVenuePrompt(testGroup(), "in Shoreditch")
	b := buildVenuePrompt(testGroup(), "in Shoreditch")
	if a != b {
		t.Error("same input produced different prompts")
	}
}

func TestRequestVenues_MalformedReplies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"not json", "Sure! Here are some venues you could try."},
		{"empty array", `[]`},
		{"missing address", `[{"name":"Somewhere","category":"cafe","rationale":"Nice."}]`},
		{"blank rationale", `[{"name":"Somewhere","address":"1 Road","category":"cafe","rationale":"  "}]`},
		{"wrong shape", `{"venues":[]}`},
		{"too many venues", `[` + strings.Repeat(`{"name":"A","address":"B","category":"C","rationale":"D"},`, 5) +
			`{"name":"A","address":"B","category":"C","rationale":"D"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRecommendationService(&fakeCompletion{reply: tt.reply})
			venues, err := svc.RequestVenues(context.Background(), testGroup(), "anchor")
			if !errors.Is(err, utils.ErrMalformedRecommendation) {
				t.Fatalf("error = %v, want ErrMalformedRecommendation", err)
			}
			if venues != nil {
				t.Errorf("venues = %v, want none on malformed reply", venues)
			}
		})
	}
}

func TestRequestVenues_AcceptsFencedJSON(t *testing.T) {
	fake := &fakeCompletion{reply: "```json\n" + validReply + "\n```"}
	svc := NewRecommendationService(fake)

	venues, err := svc.RequestVenues(context.Background(), testGroup(), "anchor")
	if err != nil {
		t.Fatalf("RequestVenues returned error: %v", err)
	}
	if len(venues) != 2 {
		t.Errorf("venues = %d, want 2", len(venues))
	}
}

func TestRequestVenues_ProviderError(t *testing.T) {
	providerErr := utils.ErrCompletionProvider
	svc := NewRecommendationService(&fakeCompletion{err: providerErr})

	_, err := svc.RequestVenues(context.Background(), testGroup(), "anchor")
	if !errors.Is(err, utils.ErrCompletionProvider) {
		t.Errorf("error = %v, want ErrCompletionProvider", err)
	}
}

func TestAnswerFollowup_BoundsHistory(t *testing.T) {
	turns := make([]domain_models.ConversationTurn, 10)
	for i := range turns {
		turns[i] = domain_models.ConversationTurn{
			Question: "question-" + string(rune('a'+i)),
			Answer:   "answer",
		}
	}
	venues := []domain_models.VenueRecommendation{{Name: "Dishoom", Address: "5 Stable Street", Category: "restaurant", Rationale: "Fits."}}

	prompt := buildFollowupPrompt("which is quietest?", turns, venues)

	if strings.Contains(prompt, "question-a") {
		t.Error("oldest turn should be truncated from the prompt")
	}
	if !strings.Contains(prompt, "question-j") {
		t.Error("latest turn missing from the prompt")
	}
	if !strings.Contains(prompt, "Dishoom") {
		t.Error("current recommendations missing from the prompt")
	}
	if !strings.Contains(prompt, "which is quietest?") {
		t.Error("question missing from the prompt")
	}
}
