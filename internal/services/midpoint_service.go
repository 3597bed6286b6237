package services

import (
	"meetspot/internal/models/domain_models"
	"meetspot/pkg/utils"
)

// ComputeAnchor picks the coordinate venue search is centered on. An explicit
// meeting area always wins; otherwise the unweighted centroid of the resolved
// coordinates is used. The centroid is not geodesically correct over long
// distances, which is fine for the intra-city trips this serves.
func ComputeAnchor(coords []domain_models.Coordinate, explicitArea *domain_models.Coordinate) (domain_models.Coordinate, error) {
	if explicitArea != nil {
		return *explicitArea, nil
	}
	if len(coords) == 0 {
		return domain_models.Coordinate{}, utils.ErrNoAnchor
	}

	var sumLat, sumLng float64
	for _, c := range coords {
		sumLat += c.Lat
		sumLng += c.Lng
	}
	n := float64(len(coords))
	return domain_models.Coordinate{Lat: sumLat / n, Lng: sumLng / n}, nil
}
