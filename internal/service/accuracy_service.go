package service

import (
	"context"

	"github.com/geodash-org/geodash-backend-go/internal/models"
	"github.com/geodash-org/geodash-backend-go/internal/spatial"
)

// AccuracySource supplies precomputed forecast-accuracy rows and the
// dataset's cell inventory.
type AccuracySource interface {
	FetchAccuracy(ctx context.Context, cellFilter string) ([]models.AccuracyRow, error)
}

// CoordinateSource supplies the dataset's reference coordinate for initial
// map centering.
type CoordinateSource interface {
	ReferenceCoordinate(ctx context.Context) (spatial.Coordinate, bool, error)
	CellTokens(ctx context.Context) ([]string, error)
}

// AccuracyService exposes the SMAPE rows and map-centering support data.
type AccuracyService struct {
	accuracy    AccuracySource
	coordinates CoordinateSource
}

// NewAccuracyService creates a new accuracy service.
func NewAccuracyService(accuracy AccuracySource, coordinates CoordinateSource) *AccuracyService {
	return &AccuracyService{accuracy: accuracy, coordinates: coordinates}
}

// Accuracy returns SMAPE rows, optionally restricted to one cell.
func (s *AccuracyService) Accuracy(ctx context.Context, cellFilter string) ([]models.AccuracyRow, error) {
	return s.accuracy.FetchAccuracy(ctx, cellFilter)
}

// ReferenceCoordinate returns the mean cell center of the dataset. The bool
// is false for an empty dataset.
func (s *AccuracyService) ReferenceCoordinate(ctx context.Context) (spatial.Coordinate, bool, error) {
	return s.coordinates.ReferenceCoordinate(ctx)
}

// Cells returns the distinct native cells, for cell-picker UIs.
func (s *AccuracyService) Cells(ctx context.Context) ([]string, error) {
	return s.coordinates.CellTokens(ctx)
}
