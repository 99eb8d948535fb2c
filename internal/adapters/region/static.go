package region

import (
	"water-distribution-service/internal/domain"
	"water-distribution-service/internal/ports"
)

// StaticClassifier labels a coordinate with the region of the nearest
// configured centroid. It stands in for a real geocoding/region service;
// the core only compares the returned label for equality.
type StaticClassifier struct {
	centroids map[string]domain.Coordinate
}

var _ ports.RegionClassifier = (*StaticClassifier)(nil)

func NewStaticClassifier(centroids map[string]domain.Coordinate) *StaticClassifier {
	return &StaticClassifier{centroids: centroids}
}

func (c *StaticClassifier) ClassifyRegion(coord domain.Coordinate) string {
	best := ""
	bestDist := -1.0
	for label, center := range c.centroids {
		d := domain.Haversine(coord, center)
		if bestDist < 0 || d < bestDist || (d == bestDist && label < best) {
			best = label
			bestDist = d
		}
	}
	return best
}
