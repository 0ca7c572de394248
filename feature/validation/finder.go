package validation

import (
	"context"

	"media-catalog/core/tree"

	"go.uber.org/zap"
)

// Finder resolves structured names to external entity ids. Every method returns an empty
// id or an empty map, not an error, when nothing matches.
type Finder interface {
	FindMovie(ctx context.Context, title string, year int) (string, error)
	FindShow(ctx context.Context, title string, year int) (string, error)
	FindSeasons(ctx context.Context, showID string) (map[int]string, error)
	FindEpisodes(ctx context.Context, seasonID string) (map[int]string, error)
}

// annotator stores lookup results on tree nodes.
type annotator struct {
	finder Finder
	logger *zap.Logger
}

func (a annotator) enabled() bool {
	return a.finder != nil
}

// resolve fills *id through lookup unless it already carries a value or the sentinel.
func (a annotator) resolve(ctx context.Context, id *string, entity string, lookup func(context.Context) (string, error)) {
	if !a.enabled() || *id != "" {
		return
	}
	found, err := lookup(ctx)
	if err != nil {
		a.logger.Warn("Enrichment lookup failed", zap.String("entity", entity), zap.Error(err))
		*id = tree.NotFound
		return
	}
	if found == "" {
		found = tree.NotFound
	}
	*id = found
}

// children fetches a number to id map for a resolved parent id. A parent without an id
// yields an empty map; a failed lookup is logged and also yields an empty map.
func (a annotator) children(ctx context.Context, parentID, entity string, lookup func(context.Context, string) (map[int]string, error)) map[int]string {
	if !a.enabled() || !resolved(parentID) {
		return nil
	}
	ids, err := lookup(ctx, parentID)
	if err != nil {
		a.logger.Warn("Enrichment lookup failed", zap.String("entity", entity), zap.String("parent", parentID), zap.Error(err))
		return map[int]string{}
	}
	if ids == nil {
		ids = map[int]string{}
	}
	return ids
}

// assign stores ids[n] on *id when the node was not looked up yet.
func assign(id *string, ids map[int]string, n int) {
	if ids == nil || *id != "" {
		return
	}
	if found, ok := ids[n]; ok && found != "" {
		*id = found
		return
	}
	*id = tree.NotFound
}

func resolved(id string) bool {
	return id != "" && id != tree.NotFound
}
