package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"meetspot/internal/models/domain_models"
	"meetspot/pkg/utils"
)

type GeocodingServiceInterface interface {
	Geocode(ctx context.Context, address string) (domain_models.Coordinate, error)
}

// GoogleGeocodingClient resolves free-text addresses through the Google
// Geocoding API.
type GoogleGeocodingClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

const defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

func NewGoogleGeocodingClient(apiKey, baseURL string) *GoogleGeocodingClient {
	if baseURL == "" {
		baseURL = defaultGeocodeURL
	}
	return &GoogleGeocodingClient{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		APIKey:  apiKey,
		BaseURL: baseURL,
	}
}

type geocodePayload struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *GoogleGeocodingClient) Geocode(ctx context.Context, address string) (domain_models.Coordinate, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain_models.Coordinate{}, fmt.Errorf("%w: empty address", utils.ErrInvalidInput)
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.APIKey)

	resp, err := doWithRetry(ctx, c.HTTP, c.BaseURL+"?"+q.Encode())
	if err != nil {
		return domain_models.Coordinate{}, fmt.Errorf("%w: %q: %v", utils.ErrGeocodeFailed, address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return domain_models.Coordinate{}, fmt.Errorf("%w: %q: bad status %s", utils.ErrGeocodeFailed, address, resp.Status)
	}

	var payload geocodePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain_models.Coordinate{}, fmt.Errorf("%w: %q: decode: %v", utils.ErrGeocodeFailed, address, err)
	}
	if payload.Status != "OK" || len(payload.Results) == 0 {
		return domain_models.Coordinate{}, fmt.Errorf("%w: %q: %s", utils.ErrGeocodeFailed, address, payload.Status)
	}

	loc := payload.Results[0].Geometry.Location
	return domain_models.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// doWithRetry issues a GET and repeats it once when the provider fails at the
// transport level or answers 5xx. Never more than one retry.
func doWithRetry(ctx context.Context, client *http.Client, rawURL string) (*http.Response, error) {
	do := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		return client.Do(req)
	}

	resp, err := do()
	if err == nil && resp.StatusCode < http.StatusInternalServerError {
		return resp, nil
	}
	if ctx.Err() != nil {
		if err == nil {
			resp.Body.Close()
		}
		return nil, ctx.Err()
	}
	if err == nil {
		resp.Body.Close()
	}
	return do()
}
