package ports

import "water-distribution-service/internal/domain"

// Contract for mapping a coordinate to an operating-region label.
// The core treats the label as an opaque string and only compares it
// for equality against vehicle regions.
type RegionClassifier interface {
	ClassifyRegion(c domain.Coordinate) string
}
