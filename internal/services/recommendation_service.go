package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"meetspot/internal/models/domain_models"
	"meetspot/pkg/utils"
)

const (
	// MaxVenues caps how many suggestions one search may return.
	MaxVenues = 5

	// maxHistoryTurns bounds the follow-up context; older turns are dropped.
	maxHistoryTurns = 6
)

type RecommendationServiceInterface interface {
	RequestVenues(ctx context.Context, group *domain_models.GroupRequest, anchor string) ([]domain_models.VenueRecommendation, error)
	AnswerFollowup(ctx context.Context, question string, turns []domain_models.ConversationTurn, venues []domain_models.VenueRecommendation) (string, error)
}

type RecommendationService struct {
	completion utils.CompletionClientInterface
}

func NewRecommendationService(completion utils.CompletionClientInterface) RecommendationServiceInterface {
	return &RecommendationService{completion: completion}
}

const venueSystemPrompt = "You are a local venue expert. You answer with strict JSON only: " +
	"an array of venue objects, no markdown, no commentary. Every venue must be a real place " +
	"with a complete street address."

const followupSystemPrompt = "You are a venue finder assistant answering follow-up questions " +
	"about venues that were already recommended. Always refer to the specific venues by name " +
	"and use the details provided in the context, never generic venue types."

func (s *RecommendationService) RequestVenues(ctx context.Context, group *domain_models.GroupRequest, anchor string) ([]domain_models.VenueRecommendation, error) {
	raw, err := s.completion.Complete(ctx, venueSystemPrompt, buildVenuePrompt(group, anchor))
	if err != nil {
		return nil, err
	}
	return parseVenueResponse(raw)
}

// buildVenuePrompt deterministically encodes every search input so the same
// request always produces the same prompt.
func buildVenuePrompt(group *domain_models.GroupRequest, anchor string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A group of %d people is meeting on %s.\n", len(group.People),
		group.MeetingTime.Format("Monday, January 2, 2006 at 3:04 PM"))

	b.WriteString("Starting locations and transport modes:\n")
	for i, p := range group.People {
		b.WriteString(p.Summary(i) + "\n")
	}

	fmt.Fprintf(&b, "Activity: %s\n", orFlexible(group.Activity))
	fmt.Fprintf(&b, "Mood/objective: %s\n", orFlexible(group.Mood))
	fmt.Fprintf(&b, "Search area: %s\n", anchor)
	if strings.TrimSpace(group.Notes) != "" {
		fmt.Fprintf(&b, "Additional notes: %s\n", strings.TrimSpace(group.Notes))
	}

	fmt.Fprintf(&b, `
Suggest up to %d specific, high-quality venues near the search area that suit this group.

Return a JSON array of 1 to %d objects with exactly these string fields and nothing else:
[{"name":"...","address":"full street address","category":"e.g. restaurant, cafe, bar","rationale":"one sentence on why it fits this group"}]
`, MaxVenues, MaxVenues)

	return b.String()
}

func orFlexible(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "any") {
		return "flexible (no specific preference)"
	}
	return v
}

type venuePayload struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Category  string `json:"category"`
	Rationale string `json:"rationale"`
}

// parseVenueResponse validates the completion against the frozen output
// contract. Any deviation fails the whole list; missing fields are never
// guess-filled.
func parseVenueResponse(raw string) ([]domain_models.VenueRecommendation, error) {
	cleaned := utils.CleanModelJSON(raw)
	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("%w: not valid JSON", utils.ErrMalformedRecommendation)
	}

	var payload []venuePayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedRecommendation, err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty venue list", utils.ErrMalformedRecommendation)
	}
	if len(payload) > MaxVenues {
		return nil, fmt.Errorf("%w: %d venues, at most %d allowed", utils.ErrMalformedRecommendation, len(payload), MaxVenues)
	}

	venues := make([]domain_models.VenueRecommendation, 0, len(payload))
	for i, v := range payload {
		if err := validateVenuePayload(v); err != nil {
			return nil, fmt.Errorf("%w: venue %d: %v", utils.ErrMalformedRecommendation, i+1, err)
		}
		venues = append(venues, domain_models.VenueRecommendation{
			Name:      strings.TrimSpace(v.Name),
			Address:   strings.TrimSpace(v.Address),
			Category:  strings.TrimSpace(v.Category),
			Rationale: strings.TrimSpace(v.Rationale),
			Travel:    make(map[int]domain_models.TravelLeg),
		})
	}
	return venues, nil
}

func validateVenuePayload(v venuePayload) error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(v.Address) == "" {
		return fmt.Errorf("address cannot be empty")
	}
	if strings.TrimSpace(v.Category) == "" {
		return fmt.Errorf("category cannot be empty")
	}
	if strings.TrimSpace(v.Rationale) == "" {
		return fmt.Errorf("rationale cannot be empty")
	}
	return nil
}

func (s *RecommendationService) AnswerFollowup(ctx context.Context, question string, turns []domain_models.ConversationTurn, venues []domain_models.VenueRecommendation) (string, error) {
	return s.completion.Complete(ctx, followupSystemPrompt, buildFollowupPrompt(question, turns, venues))
}

func buildFollowupPrompt(question string, turns []domain_models.ConversationTurn, venues []domain_models.VenueRecommendation) string {
	var b strings.Builder

	b.WriteString("CURRENT VENUE RECOMMENDATIONS:\n")
	for i, v := range venues {
		fmt.Fprintf(&b, "%d. %s - %s (%s): %s\n", i+1, v.Name, v.Address, v.Category, v.Rationale)
		if v.MaxMinutes > 0 {
			fmt.Fprintf(&b, "   Travel: average %d min, longest journey %d min\n", v.AvgMinutes, v.MaxMinutes)
		}
	}

	if len(turns) > maxHistoryTurns {
		turns = turns[len(turns)-maxHistoryTurns:]
	}
	if len(turns) > 0 {
		b.WriteString("\nEARLIER QUESTIONS IN THIS SESSION:\n")
		for _, t := range turns {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", t.Question, t.Answer)
		}
	}

	fmt.Fprintf(&b, "\nAnswer this follow-up question using the specific venues above:\n%s\n", strings.TrimSpace(question))
	return b.String()
}

// turnVenueNames records which recommendations a turn referenced.
func turnVenueNames(venues []domain_models.VenueRecommendation) []string {
	names := make([]string, 0, len(venues))
	for _, v := range venues {
		names = append(names, v.Name)
	}
	return names
}

// newTurn assembles an appended conversation turn.
func newTurn(question, answer string, venues []domain_models.VenueRecommendation) domain_models.ConversationTurn {
	return domain_models.ConversationTurn{
		Question:   strings.TrimSpace(question),
		Answer:     answer,
		VenueNames: turnVenueNames(venues),
		AskedAt:    time.Now(),
	}
}
