package services

import (
	"context"
	"log"
	"net/url"
	"sort"
	"sync"
	"time"

	"meetspot/internal/models/domain_models"
)

type TravelServiceInterface interface {
	// Annotate fills per-person travel data into every venue and returns the
	// venues ranked most convenient first. Origins holds one routing origin
	// per person: the geocoded coordinate when available, otherwise the raw
	// location text.
	Annotate(ctx context.Context, venues []domain_models.VenueRecommendation, people []domain_models.Person, origins []string, meetingTime time.Time) []domain_models.VenueRecommendation
}

type TravelService struct {
	routing RoutingServiceInterface
}

func NewTravelService(routing RoutingServiceInterface) TravelServiceInterface {
	return &TravelService{routing: routing}
}

func (s *TravelService) Annotate(ctx context.Context, venues []domain_models.VenueRecommendation, people []domain_models.Person, origins []string, meetingTime time.Time) []domain_models.VenueRecommendation {
	// One routing call per (venue, person) pair; pairs are independent, so
	// they run concurrently with each goroutine writing its own matrix cell.
	legs := make([][]domain_models.TravelLeg, len(venues))
	for i := range legs {
		legs[i] = make([]domain_models.TravelLeg, len(people))
	}

	var wg sync.WaitGroup
	for i := range venues {
		for j := range people {
			wg.Add(1)
			go func(i, j int) {
				defer wg.Done()
				legs[i][j] = s.routeLeg(ctx, origins[j], venues[i].Address, people[j].Mode, meetingTime)
			}(i, j)
		}
	}
	wg.Wait()

	for i := range venues {
		if venues[i].Travel == nil {
			venues[i].Travel = make(map[int]domain_models.TravelLeg, len(people))
		}
		for j := range people {
			venues[i].Travel[j] = legs[i][j]
		}
		rankVenue(&venues[i], len(people))
	}

	sort.SliceStable(venues, func(a, b int) bool {
		return venues[a].Suitability < venues[b].Suitability
	})
	return venues
}

// routeLeg degrades to an unavailable sentinel on any per-pair failure so one
// broken route never blocks the rest of the batch.
func (s *TravelService) routeLeg(ctx context.Context, origin, destination string, mode domain_models.TransportMode, meetingTime time.Time) domain_models.TravelLeg {
	navLink := BuildNavLink(origin, destination, mode)

	info, err := s.routing.Route(ctx, origin, destination, mode, meetingTime)
	if err != nil {
		log.Printf("Travel lookup failed for %q -> %q (%s): %v", origin, destination, mode, err)
		return domain_models.TravelLeg{
			Available: false,
			Duration:  "unavailable",
			Distance:  "unavailable",
			NavLink:   navLink,
		}
	}

	leg := domain_models.TravelLeg{
		Available:       true,
		Duration:        info.Duration,
		Distance:        info.Distance,
		DurationSeconds: info.DurationSeconds,
		NavLink:         navLink,
	}
	if !meetingTime.IsZero() {
		leg.LeaveBy = meetingTime.Add(-time.Duration(info.DurationSeconds) * time.Second).Format("3:04 PM")
	}
	return leg
}

// unreachablePenalty ranks venues with no routable journey after every venue
// that has at least one.
const unreachablePenalty = float64(1 << 31)

func rankVenue(v *domain_models.VenueRecommendation, peopleCount int) {
	total, max, available := 0, 0, 0
	for _, leg := range v.Travel {
		if !leg.Available {
			continue
		}
		available++
		total += leg.DurationSeconds
		if leg.DurationSeconds > max {
			max = leg.DurationSeconds
		}
	}

	if available == 0 {
		v.AvgMinutes = 0
		v.MaxMinutes = 0
		v.Suitability = unreachablePenalty
		return
	}

	v.AvgMinutes = total / peopleCount / 60
	v.MaxMinutes = max / 60
	// The longest journey is weighted above the aggregate for fairness.
	v.Suitability = float64(max)*1.5 + float64(total)
}

// BuildNavLink builds a directions deep link from origin, destination and
// mode without calling any API.
func BuildNavLink(origin, destination string, mode domain_models.TransportMode) string {
	return "https://www.google.com/maps/dir/" +
		url.QueryEscape(origin) + "/" +
		url.QueryEscape(destination) +
		"/@?hl=en&travelmode=" + string(mode.Effective())
}
