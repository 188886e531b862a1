package receipt

import (
	"context"
	"log/slog"
)

// Service handles receipt operations
type Service struct {
	store Store
}

// NewService creates a new Service backed by store
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Process stores a validated receipt and returns its ID
func (s *Service) Process(receipt Receipt) string {
	id := s.store.Put(receipt)
	slog.Info("Receipt processed",
		"id", id,
		"retailer", receipt.Retailer,
		"items", len(receipt.Items),
	)
	return id
}

// Points returns the points awarded for the receipt with the given ID.
// The bool is false if no such receipt exists.
func (s *Service) Points(id string) (int, bool) {
	receipt, ok := s.store.Get(id)
	if !ok {
		slog.Debug("Receipt not found", "id", id)
		return 0, false
	}

	points := Points(receipt)
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug("Receipt scored", "id", id, "points", points, "breakdown", Breakdown(receipt))
	}
	return points, true
}
