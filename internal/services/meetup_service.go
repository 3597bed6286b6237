package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"meetspot/internal/models/domain_models"
	mem "meetspot/pkg/memcache"
	"meetspot/pkg/utils"
)

type MeetupServiceInterface interface {
	Search(ctx context.Context, sessionID string, group *domain_models.GroupRequest) (*domain_models.Session, error)
	Followup(ctx context.Context, sessionID, question string) (*domain_models.ConversationTurn, error)
	GetSession(sessionID string) (*domain_models.Session, error)
}

type MeetupService struct {
	geocoder    GeocodingServiceInterface
	recommender RecommendationServiceInterface
	travel      TravelServiceInterface
	sessions    mem.SessionStore
}

func NewMeetupService(
	geocoder GeocodingServiceInterface,
	recommender RecommendationServiceInterface,
	travel TravelServiceInterface,
	sessions mem.SessionStore,
) MeetupServiceInterface {
	return &MeetupService{
		geocoder:    geocoder,
		recommender: recommender,
		travel:      travel,
		sessions:    sessions,
	}
}

// ValidateGroupRequest rejects invalid input before any provider is called.
func ValidateGroupRequest(group *domain_models.GroupRequest) error {
	if group == nil {
		return fmt.Errorf("%w: missing request", utils.ErrInvalidInput)
	}
	if len(group.People) < domain_models.MinGroupSize || len(group.People) > domain_models.MaxGroupSize {
		return fmt.Errorf("%w: group size must be between %d and %d, got %d",
			utils.ErrInvalidInput, domain_models.MinGroupSize, domain_models.MaxGroupSize, len(group.People))
	}
	for i, p := range group.People {
		if strings.TrimSpace(p.Location) == "" {
			return fmt.Errorf("%w: person %d has no starting location", utils.ErrInvalidInput, i+1)
		}
		if !p.Mode.Valid() {
			return fmt.Errorf("%w: person %d has unknown transport mode %q", utils.ErrInvalidInput, i+1, p.Mode)
		}
	}
	return nil
}

func (s *MeetupService) Search(ctx context.Context, sessionID string, group *domain_models.GroupRequest) (*domain_models.Session, error) {
	if err := ValidateGroupRequest(group); err != nil {
		return nil, err
	}
	if group.MeetingTime.IsZero() {
		group.MeetingTime = time.Now()
	}

	session, err := s.sessionFor(sessionID)
	if err != nil {
		return nil, err
	}
	prevState := session.State
	session.State = domain_models.StateSearching
	s.sessions.Save(session)

	result, err := s.runSearch(ctx, group)
	if err != nil {
		// Failed searches leave the previous recommendations untouched.
		session.State = prevState
		s.sessions.Save(session)
		return nil, err
	}

	session.Request = group
	session.AnchorLabel = result.anchorLabel
	session.Unresolved = result.unresolved
	session.Recommendations = result.venues
	session.State = domain_models.StateResults
	s.sessions.Save(session)
	return session, nil
}

type searchResult struct {
	anchorLabel string
	unresolved  []string
	venues      []domain_models.VenueRecommendation
}

func (s *MeetupService) runSearch(ctx context.Context, group *domain_models.GroupRequest) (*searchResult, error) {
	coords, unresolved := s.geocodePeople(ctx, group.People)

	var explicit *domain_models.Coordinate
	anchorLabel := ""
	if strings.TrimSpace(group.ExplicitArea) != "" {
		c, err := s.geocoder.Geocode(ctx, group.ExplicitArea)
		if err != nil {
			// Degrade to the centroid of whatever did resolve.
			log.Printf("Explicit area %q did not geocode, falling back to midpoint: %v", group.ExplicitArea, err)
		} else {
			explicit = &c
			anchorLabel = fmt.Sprintf("in %s", strings.TrimSpace(group.ExplicitArea))
		}
	}

	resolved := make([]domain_models.Coordinate, 0, len(coords))
	for _, c := range coords {
		if c != nil {
			resolved = append(resolved, *c)
		}
	}

	anchor, err := ComputeAnchor(resolved, explicit)
	if err != nil {
		return nil, err
	}
	if anchorLabel == "" {
		anchorLabel = fmt.Sprintf("around the point %s (midpoint of the group)", anchor)
	}

	venues, err := s.recommender.RequestVenues(ctx, group, anchorLabel)
	if err != nil {
		return nil, err
	}

	origins := make([]string, len(group.People))
	for i, p := range group.People {
		if coords[i] != nil {
			origins[i] = coords[i].String()
		} else {
			origins[i] = p.Location
		}
	}
	venues = s.travel.Annotate(ctx, venues, group.People, origins, group.MeetingTime)

	return &searchResult{
		anchorLabel: anchorLabel,
		unresolved:  unresolved,
		venues:      venues,
	}, nil
}

// geocodePeople resolves every starting location concurrently. Failures
// degrade to nil entries; the search only dies later when nothing resolved.
func (s *MeetupService) geocodePeople(ctx context.Context, people []domain_models.Person) ([]*domain_models.Coordinate, []string) {
	coords := make([]*domain_models.Coordinate, len(people))

	var wg sync.WaitGroup
	for i, p := range people {
		wg.Add(1)
		go func(i int, address string) {
			defer wg.Done()
			c, err := s.geocoder.Geocode(ctx, address)
			if err != nil {
				log.Printf("Geocoding failed: %v", err)
				return
			}
			coords[i] = &c
		}(i, p.Location)
	}
	wg.Wait()

	var unresolved []string
	for i, c := range coords {
		if c == nil {
			unresolved = append(unresolved, people[i].Location)
		}
	}
	return coords, unresolved
}

func (s *MeetupService) Followup(ctx context.Context, sessionID, question string) (*domain_models.ConversationTurn, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question cannot be empty", utils.ErrInvalidInput)
	}

	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	if len(session.Recommendations) == 0 {
		return nil, fmt.Errorf("%w: no recommendations to ask about, run a search first", utils.ErrInvalidInput)
	}

	session.State = domain_models.StateAnsweringFollowup
	s.sessions.Save(session)

	answer, err := s.recommender.AnswerFollowup(ctx, question, session.Turns, session.Recommendations)
	if err != nil {
		// History stays untouched when the provider fails.
		session.State = domain_models.StateResults
		s.sessions.Save(session)
		return nil, err
	}

	turn := newTurn(question, answer, session.Recommendations)
	session.Turns = append(session.Turns, turn)
	session.State = domain_models.StateResults
	s.sessions.Save(session)
	return &turn, nil
}

func (s *MeetupService) GetSession(sessionID string) (*domain_models.Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}

func (s *MeetupService) sessionFor(sessionID string) (*domain_models.Session, error) {
	if sessionID == "" {
		return s.sessions.Create(), nil
	}
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}
