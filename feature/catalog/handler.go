package catalog

import (
	"time"

	"media-catalog/core/hashing"
	"media-catalog/core/logger"
	"media-catalog/core/reconcile"
	"media-catalog/core/tree"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	defaultFileLimit  = 1000
	maxFileLimit      = 10000
	defaultStaleLimit = 20
)

// VolumeStatus is one entry of the volume listing.
type VolumeStatus struct {
	Path    string            `json:"path"`
	Schema  string            `json:"schema"`
	Main    bool              `json:"main"`
	Summary reconcile.Summary `json:"summary"`
}

// FileEntry is a catalogued file as served over HTTP.
type FileEntry struct {
	Volume      string     `json:"volume"`
	Path        string     `json:"path"`
	Size        int64      `json:"size"`
	Modified    time.Time  `json:"modified"`
	Type        string     `json:"type,omitempty"`
	State       string     `json:"state"`
	Hash        string     `json:"hash,omitempty"`
	HashCreated *time.Time `json:"hash_created,omitempty"`
	ExternalID  string     `json:"external_id,omitempty"`
}

func newFileEntry(vol *tree.Volume, f *tree.File) FileEntry {
	e := FileEntry{
		Volume:     vol.Path,
		Path:       f.Path(),
		Size:       f.Size,
		Modified:   f.LastModified,
		Type:       f.Type,
		State:      f.State.String(),
		Hash:       f.Hash,
		ExternalID: f.ExternalID,
	}
	if !f.HashCreated.IsZero() {
		t := f.HashCreated
		e.HashCreated = &t
	}
	return e
}

// Handler handles HTTP requests for the catalog.
type Handler struct {
	cache  *SnapshotCache
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(cache *SnapshotCache, logger *zap.Logger) *Handler {
	return &Handler{cache: cache, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/volumes", h.HandleVolumes)
	group.Get("/files", h.HandleFiles)
	group.Get("/stale", h.HandleStale)
}

// snapshot loads the catalog or writes the error response.
func (h *Handler) snapshot(c *fiber.Ctx) (*Snapshot, error) {
	snap, err := h.cache.Get(c.UserContext())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to load catalog", zap.Error(err))
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return snap, nil
}

// HandleVolumes lists the registered volumes with their state counts.
// @Summary List Volumes
// @Description Lists every registered volume with the number of files in each state.
// @Tags catalog
// @Produce json
// @Success 200 {array} catalog.VolumeStatus "Volumes"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /catalog/volumes [get]
func (h *Handler) HandleVolumes(c *fiber.Ctx) error {
	snap, err := h.snapshot(c)
	if snap == nil {
		return err
	}

	out := make([]VolumeStatus, 0, len(snap.Volumes))
	for _, v := range snap.Volumes {
		out = append(out, VolumeStatus{
			Path:    v.Path,
			Schema:  v.Schema,
			Main:    v.Main,
			Summary: reconcile.Summarize(v),
		})
	}
	return c.JSON(out)
}

// HandleFiles lists catalogued files.
// @Summary List Files
// @Description Lists catalogued files, optionally restricted to one volume and one state.
// @Tags catalog
// @Produce json
// @Param volume query string false "Volume path"
// @Param state query string false "File state (unknown, new, identical, modified, missing, corrupted)"
// @Param limit query int false "Maximum number of files (default 1000)"
// @Success 200 {array} catalog.FileEntry "Files"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Volume Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /catalog/files [get]
func (h *Handler) HandleFiles(c *fiber.Ctx) error {
	filterState := false
	var state tree.FileState
	if q := c.Query("state"); q != "" {
		parsed, err := tree.ParseFileState(q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		state, filterState = parsed, true
	}

	limit := c.QueryInt("limit", defaultFileLimit)
	if limit <= 0 || limit > maxFileLimit {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be between 1 and 10000"})
	}

	snap, err := h.snapshot(c)
	if snap == nil {
		return err
	}
	vols, ok := selectVolumes(snap, c.Query("volume"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Volume not found"})
	}

	out := []FileEntry{}
	for _, v := range vols {
		for _, f := range v.Root.AllFiles() {
			if filterState && f.State != state {
				continue
			}
			if len(out) == limit {
				return c.JSON(out)
			}
			out = append(out, newFileEntry(v, f))
		}
	}
	return c.JSON(out)
}

// HandleStale previews the hashing queue.
// @Summary Hash Queue
// @Description Lists the files the next run hashes first: never hashed files, then the stalest hashes.
// @Tags catalog
// @Produce json
// @Param volume query string false "Volume path"
// @Param limit query int false "Maximum number of files (default 20)"
// @Success 200 {array} catalog.FileEntry "Files"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Volume Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /catalog/stale [get]
func (h *Handler) HandleStale(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultStaleLimit)
	if limit <= 0 || limit > maxFileLimit {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be between 1 and 10000"})
	}

	snap, err := h.snapshot(c)
	if snap == nil {
		return err
	}
	vols, ok := selectVolumes(snap, c.Query("volume"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Volume not found"})
	}

	owner := make(map[*tree.File]*tree.Volume)
	var queue []*tree.File
	for _, v := range vols {
		for _, f := range hashing.Candidates(v) {
			owner[f] = v
			queue = append(queue, f)
		}
	}
	hashing.Prioritize(queue)

	if len(queue) > limit {
		queue = queue[:limit]
	}
	out := make([]FileEntry, 0, len(queue))
	for _, f := range queue {
		out = append(out, newFileEntry(owner[f], f))
	}
	return c.JSON(out)
}

// selectVolumes returns every volume, or the one named by path.
func selectVolumes(snap *Snapshot, path string) ([]*tree.Volume, bool) {
	if path == "" {
		return snap.Volumes, true
	}
	v := snap.Volume(tree.NormalizePath(path))
	if v == nil {
		return nil, false
	}
	return []*tree.Volume{v}, true
}
