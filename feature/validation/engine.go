package validation

import (
	"context"
	"fmt"

	"media-catalog/core/tree"

	"go.uber.org/zap"
)

// Engine runs the validator a volume names.
type Engine struct {
	registry *Registry
	deps     Dependencies
	logger   *zap.Logger
}

// NewEngine creates an engine over registry; deps are handed to every validator.
func NewEngine(registry *Registry, deps Dependencies) *Engine {
	deps = deps.withDefaults()
	return &Engine{registry: registry, deps: deps, logger: deps.Logger}
}

// CheckVolumes verifies every volume names a known schema, before anything runs.
func (e *Engine) CheckVolumes(vols []*tree.Volume) error {
	for _, vol := range vols {
		if err := e.registry.Check(vol.Schema); err != nil {
			return fmt.Errorf("volume %s: %w", vol.Path, err)
		}
	}
	return nil
}

// ValidateVolume validates vol with its schema. A volume without a schema yields an
// empty set.
func (e *Engine) ValidateVolume(ctx context.Context, vol *tree.Volume) (*Violations, error) {
	if vol.Schema == "" {
		return NewViolations(), nil
	}
	v, err := e.registry.New(vol.Schema, e.deps)
	if err != nil {
		return nil, fmt.Errorf("volume %s: %w", vol.Path, err)
	}

	violations := v.Validate(ctx, vol)
	for _, f := range violations.Findings() {
		e.logger.Debug("Violation", zap.String("volume", vol.Path), zap.String("kind", string(f.Kind)), zap.String("path", f.Path))
	}
	e.logger.Info("Validation finished",
		zap.String("volume", vol.Path),
		zap.String("schema", vol.Schema),
		zap.Int("findings", len(violations.Findings())),
		zap.Int("kinds", len(violations.Kinds())),
	)
	return violations, nil
}
