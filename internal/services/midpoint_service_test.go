package services

import (
	"errors"
	"math"
	"testing"

	"meetspot/internal/models/domain_models"
	"meetspot/pkg/utils"
)

func TestComputeAnchor_Centroid(t *testing.T) {
	tests := []struct {
		name    string
		coords  []domain_models.Coordinate
		wantLat float64
		wantLng float64
	}{
		{
			name: "two people on a meridian",
			coords: []domain_models.Coordinate{
				{Lat: 0, Lng: 0},
				{Lat: 0, Lng: 2},
			},
			wantLat: 0,
			wantLng: 1,
		},
		{
			name: "three people",
			coords: []domain_models.Coordinate{
				{Lat: 0, Lng: 0},
				{Lat: 0, Lng: 3},
				{Lat: 3, Lng: 0},
			},
			wantLat: 1,
			wantLng: 1,
		},
		{
			name: "single resolved coordinate",
			coords: []domain_models.Coordinate{
				{Lat: 51.5, Lng: -0.12},
			},
			wantLat: 51.5,
			wantLng: -0.12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeAnchor(tt.coords, nil)
			if err != nil {
				t.Fatalf("ComputeAnchor returned error: %v", err)
			}
			if math.Abs(got.Lat-tt.wantLat) > 1e-9 || math.Abs(got.Lng-tt.wantLng) > 1e-9 {
				t.Errorf("anchor = %v, want (%v,%v)", got, tt.wantLat, tt.wantLng)
			}
		})
	}
}

func TestComputeAnchor_Commutative(t *testing.T) {
	coords := []domain_models.Coordinate{
		{Lat: 51.5074, Lng: -0.1278},
		{Lat: 51.4545, Lng: -2.5879},
		{Lat: 53.4808, Lng: -2.2426},
	}
	permuted := []domain_models.Coordinate{coords[2], coords[0], coords[1]}

	a, err := ComputeAnchor(coords, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComputeAnchor(permuted, nil)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a.Lat-b.Lat) > 1e-9 || math.Abs(a.Lng-b.Lng) > 1e-9 {
		t.Errorf("anchor depends on coordinate order: %v vs %v", a, b)
	}
}

func TestComputeAnchor_ExplicitAreaWins(t *testing.T) {
	explicit := domain_models.Coordinate{Lat: 40.7128, Lng: -74.006}
	farAway := []domain_models.Coordinate{
		{Lat: 51.5, Lng: -0.12},
		{Lat: 48.85, Lng: 2.35},
	}

	got, err := ComputeAnchor(farAway, &explicit)
	if err != nil {
		t.Fatalf("ComputeAnchor returned error: %v", err)
	}
	if got != explicit {
		t.Errorf("anchor = %v, want explicit area %v", got, explicit)
	}
}

func TestComputeAnchor_NoInput(t *testing.T) {
	_, err := ComputeAnchor(nil, nil)
	if !errors.Is(err, utils.ErrNoAnchor) {
		t.Errorf("error = %v, want ErrNoAnchor", err)
	}
}
