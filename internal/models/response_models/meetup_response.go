package response_models

import (
	"time"

	"meetspot/internal/models/domain_models"
)

type TravelLegResponse struct {
	Person          int    `json:"person"`
	Transport       string `json:"transport"`
	Available       bool   `json:"available"`
	Duration        string `json:"duration"`
	Distance        string `json:"distance"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	LeaveBy         string `json:"leave_by,omitempty"`
	NavLink         string `json:"nav_link"`
}

type VenueResponse struct {
	Name       string              `json:"name"`
	Address    string              `json:"address"`
	Category   string              `json:"category"`
	Rationale  string              `json:"rationale"`
	Travel     []TravelLegResponse `json:"travel"`
	AvgMinutes int                 `json:"avg_minutes"`
	MaxMinutes int                 `json:"max_minutes"`
}

type SearchResponse struct {
	SessionID  string          `json:"session_id"`
	Anchor     string          `json:"anchor"`
	Unresolved []string        `json:"unresolved_locations,omitempty"`
	Venues     []VenueResponse `json:"venues"`
}

type TurnResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	AskedAt  string `json:"asked_at"`
}

type FollowupResponse struct {
	SessionID string       `json:"session_id"`
	Turn      TurnResponse `json:"turn"`
}

type SessionResponse struct {
	ID     string          `json:"id"`
	State  string          `json:"state"`
	Anchor string          `json:"anchor,omitempty"`
	Venues []VenueResponse `json:"venues"`
	Turns  []TurnResponse  `json:"turns"`
}

func NewVenueResponse(v domain_models.VenueRecommendation, people []domain_models.Person) VenueResponse {
	legs := make([]TravelLegResponse, 0, len(v.Travel))
	for i := range people {
		leg, ok := v.Travel[i]
		if !ok {
			continue
		}
		legs = append(legs, TravelLegResponse{
			Person:          i + 1,
			Transport:       string(people[i].Mode),
			Available:       leg.Available,
			Duration:        leg.Duration,
			Distance:        leg.Distance,
			DurationSeconds: leg.DurationSeconds,
			LeaveBy:         leg.LeaveBy,
			NavLink:         leg.NavLink,
		})
	}
	return VenueResponse{
		Name:       v.Name,
		Address:    v.Address,
		Category:   v.Category,
		Rationale:  v.Rationale,
		Travel:     legs,
		AvgMinutes: v.AvgMinutes,
		MaxMinutes: v.MaxMinutes,
	}
}

func NewSearchResponse(s *domain_models.Session) SearchResponse {
	return SearchResponse{
		SessionID:  s.ID,
		Anchor:     s.AnchorLabel,
		Unresolved: s.Unresolved,
		Venues:     venueResponses(s),
	}
}

func NewSessionResponse(s *domain_models.Session) SessionResponse {
	turns := make([]TurnResponse, 0, len(s.Turns))
	for _, t := range s.Turns {
		turns = append(turns, newTurnResponse(t))
	}
	return SessionResponse{
		ID:     s.ID,
		State:  string(s.State),
		Anchor: s.AnchorLabel,
		Venues: venueResponses(s),
		Turns:  turns,
	}
}

func NewFollowupResponse(sessionID string, t domain_models.ConversationTurn) FollowupResponse {
	return FollowupResponse{SessionID: sessionID, Turn: newTurnResponse(t)}
}

func newTurnResponse(t domain_models.ConversationTurn) TurnResponse {
	return TurnResponse{
		Question: t.Question,
		Answer:   t.Answer,
		AskedAt:  t.AskedAt.Format(time.RFC3339),
	}
}

func venueResponses(s *domain_models.Session) []VenueResponse {
	var people []domain_models.Person
	if s.Request != nil {
		people = s.Request.People
	}
	venues := make([]VenueResponse, 0, len(s.Recommendations))
	for _, v := range s.Recommendations {
		venues = append(venues, NewVenueResponse(v, people))
	}
	return venues
}
