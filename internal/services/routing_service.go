package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"meetspot/internal/models/domain_models"
	"meetspot/pkg/utils"
)

// RouteInfo is one provider answer for a single origin/destination/mode query.
type RouteInfo struct {
	Duration        string
	Distance        string
	DurationSeconds int
}

type RoutingServiceInterface interface {
	Route(ctx context.Context, origin, destination string, mode domain_models.TransportMode, arriveBy time.Time) (*RouteInfo, error)
}

// GoogleDirectionsClient queries the Google Directions API for travel
// duration and distance between two free-text points.
type GoogleDirectionsClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

const defaultDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"

func NewGoogleDirectionsClient(apiKey, baseURL string) *GoogleDirectionsClient {
	if baseURL == "" {
		baseURL = defaultDirectionsURL
	}
	return &GoogleDirectionsClient{
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		APIKey:  apiKey,
		BaseURL: baseURL,
	}
}

type directionsPayload struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Duration struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"duration"`
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

func (c *GoogleDirectionsClient) Route(ctx context.Context, origin, destination string, mode domain_models.TransportMode, arriveBy time.Time) (*RouteInfo, error) {
	effective := mode.Effective()

	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("mode", string(effective))
	q.Set("units", "metric")
	q.Set("key", c.APIKey)
	// Arrival time lets the provider account for timetable and traffic.
	if !arriveBy.IsZero() && (effective == domain_models.ModeTransit || effective == domain_models.ModeDriving) {
		q.Set("arrival_time", strconv.FormatInt(arriveBy.Unix(), 10))
	}

	resp, err := doWithRetry(ctx, c.HTTP, c.BaseURL+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrRouteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: bad status %s", utils.ErrRouteUnavailable, resp.Status)
	}

	var payload directionsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", utils.ErrRouteUnavailable, err)
	}
	if payload.Status != "OK" || len(payload.Routes) == 0 || len(payload.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrRouteUnavailable, payload.Status)
	}

	leg := payload.Routes[0].Legs[0]
	return &RouteInfo{
		Duration:        leg.Duration.Text,
		Distance:        leg.Distance.Text,
		DurationSeconds: leg.Duration.Value,
	}, nil
}
