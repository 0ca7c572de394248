package catalog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	cache   *SnapshotCache
	handler *Handler
}

// NewFeature creates the read-only catalog API over repo.
func NewFeature(repo Repository, ttl time.Duration, logger *zap.Logger) *Feature {
	cache := NewSnapshotCache(repo.LoadAll, ttl)
	return &Feature{cache: cache, handler: NewHandler(cache, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
