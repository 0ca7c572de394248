package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"media-catalog/core/tree"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrVolumeExists is returned when registering a path that is already registered.
	ErrVolumeExists = errors.New("volume already registered")
	// ErrVolumeNotFound is returned when a path is not registered.
	ErrVolumeNotFound = errors.New("volume not registered")
)

// insertBatchSize bounds the rows sent in one INSERT.
const insertBatchSize = 500

// Store persists volumes and their trees with gorm.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a store on an open connection.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Migrate creates or updates the catalog tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	return nil
}

// CanonicalPath makes p absolute and slash separated.
func CanonicalPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", p, err)
	}
	return tree.NormalizePath(abs), nil
}

// AddVolume registers a new volume with an empty tree.
func (s *Store) AddVolume(ctx context.Context, path, schema string, main bool) (*VolumeRow, error) {
	canonical, err := CanonicalPath(path)
	if err != nil {
		return nil, err
	}

	row := &VolumeRow{Path: canonical, Schema: schema, Main: main}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&VolumeRow{}).Where("path = ?", canonical).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%s: %w", canonical, ErrVolumeExists)
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return tx.Create(&DirectoryRow{VolumeID: row.ID}).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Volume registered",
		zap.String("path", canonical),
		zap.String("schema", schema),
		zap.Bool("main", main))
	return row, nil
}

// RemoveVolume deletes a volume and everything catalogued below it.
func (s *Store) RemoveVolume(ctx context.Context, path string) error {
	canonical, err := CanonicalPath(path)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row VolumeRow
		err := tx.Where("path = ?", canonical).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%s: %w", canonical, ErrVolumeNotFound)
		}
		if err != nil {
			return err
		}

		dirs := tx.Model(&DirectoryRow{}).Select("id").Where("volume_id = ?", row.ID)
		if err := tx.Where("directory_id IN (?)", dirs).Delete(&FileRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("volume_id = ?", row.ID).Delete(&DirectoryRow{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return err
		}
		s.logger.Info("Volume removed", zap.String("path", canonical))
		return nil
	})
}

// ListVolumes returns the registered volumes ordered by path.
func (s *Store) ListVolumes(ctx context.Context) ([]VolumeRow, error) {
	var rows []VolumeRow
	if err := s.db.WithContext(ctx).Order("path").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list volumes: %w", err)
	}
	return rows, nil
}

// LoadAll rebuilds the tree of every registered volume.
func (s *Store) LoadAll(ctx context.Context) ([]*tree.Volume, error) {
	db := s.db.WithContext(ctx)

	rows, err := s.ListVolumes(ctx)
	if err != nil {
		return nil, err
	}

	vols := make([]*tree.Volume, 0, len(rows))
	for _, row := range rows {
		vol, err := loadVolume(db, row)
		if err != nil {
			return nil, fmt.Errorf("failed to load volume %s: %w", row.Path, err)
		}
		vols = append(vols, vol)
	}
	return vols, nil
}

func loadVolume(db *gorm.DB, row VolumeRow) (*tree.Volume, error) {
	vol := &tree.Volume{Path: row.Path, Root: tree.NewDirectory(""), Schema: row.Schema, Main: row.Main}

	var dirRows []DirectoryRow
	if err := db.Where("volume_id = ?", row.ID).Order("id").Find(&dirRows).Error; err != nil {
		return nil, err
	}

	var fileRows []FileRow
	err := db.Joins("JOIN catalog_directories ON catalog_directories.id = catalog_files.directory_id").
		Where("catalog_directories.volume_id = ?", row.ID).
		Order("catalog_files.id").
		Find(&fileRows).Error
	if err != nil {
		return nil, err
	}

	children := make(map[uint][]DirectoryRow)
	dirs := make(map[uint]*tree.Directory, len(dirRows))
	var rootID uint
	for _, d := range dirRows {
		if d.ParentID == nil {
			rootID = d.ID
			vol.Root.ExternalID = d.ExternalID
			dirs[d.ID] = vol.Root
			continue
		}
		children[*d.ParentID] = append(children[*d.ParentID], d)
	}

	var attach func(parentID uint, parent *tree.Directory) error
	attach = func(parentID uint, parent *tree.Directory) error {
		for _, d := range children[parentID] {
			dir := tree.NewDirectory(d.Name)
			dir.ExternalID = d.ExternalID
			if err := parent.AddDirectory(dir); err != nil {
				return err
			}
			dirs[d.ID] = dir
			if err := attach(d.ID, dir); err != nil {
				return err
			}
		}
		return nil
	}
	if rootID != 0 {
		if err := attach(rootID, vol.Root); err != nil {
			return nil, err
		}
	}

	for _, r := range fileRows {
		parent, ok := dirs[r.DirectoryID]
		if !ok {
			// Orphaned rows belong to a directory chain that no longer reaches the root.
			continue
		}
		state, err := tree.ParseFileState(r.State)
		if err != nil {
			state = tree.Unknown
		}
		f := tree.NewFile(r.Name, r.Size, fromUnixNano(r.ModifiedNs))
		f.Type = r.Type
		f.State = state
		f.Hash = r.Hash
		f.HashCreated = fromUnixNano(r.HashCreatedNs)
		f.ExternalID = r.ExternalID
		if err := parent.AddFile(f); err != nil {
			return nil, err
		}
	}
	return vol, nil
}

// SaveAll writes every volume in one transaction. Rows are matched by their path from
// the volume root: unchanged rows are left alone, changed rows are updated, new nodes are
// inserted and rows without a node are deleted. Saving the same trees twice is a no-op.
func (s *Store) SaveAll(ctx context.Context, vols []*tree.Volume) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, vol := range vols {
			if vol == nil {
				continue
			}
			if err := s.saveVolume(tx, vol); err != nil {
				return fmt.Errorf("failed to save volume %s: %w", vol.Path, err)
			}
		}
		return nil
	})
}

// volumeWriter carries the existing rows of one volume while its tree is written.
type volumeWriter struct {
	tx       *gorm.DB
	volumeID uint
	dirs     map[string]DirectoryRow
	files    map[string]FileRow
	seenDirs map[uint]struct{}
	seenFile map[uint]struct{}
	pending  []*FileRow
	written  int
}

func (s *Store) saveVolume(tx *gorm.DB, vol *tree.Volume) error {
	var row VolumeRow
	err := tx.Where("path = ?", vol.Path).Take(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = VolumeRow{Path: vol.Path, Schema: vol.Schema, Main: vol.Main}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	case row.Schema != vol.Schema || row.Main != vol.Main:
		row.Schema, row.Main = vol.Schema, vol.Main
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
	}

	w := &volumeWriter{
		tx:       tx,
		volumeID: row.ID,
		seenDirs: make(map[uint]struct{}),
		seenFile: make(map[uint]struct{}),
	}
	if err := w.index(); err != nil {
		return err
	}
	if err := w.writeDirectory(vol.Root, nil); err != nil {
		return err
	}
	if err := w.flush(); err != nil {
		return err
	}
	deleted, err := w.prune()
	if err != nil {
		return err
	}

	s.logger.Debug("Volume saved",
		zap.String("volume", vol.Path),
		zap.Int("written", w.written),
		zap.Int("deleted", deleted))
	return nil
}

// index maps the existing rows of the volume by path.
func (w *volumeWriter) index() error {
	var dirRows []DirectoryRow
	if err := w.tx.Where("volume_id = ?", w.volumeID).Find(&dirRows).Error; err != nil {
		return err
	}
	byID := make(map[uint]DirectoryRow, len(dirRows))
	for _, d := range dirRows {
		byID[d.ID] = d
	}

	paths := make(map[uint]string, len(dirRows))
	var pathOf func(d DirectoryRow, hops int) (string, bool)
	pathOf = func(d DirectoryRow, hops int) (string, bool) {
		if p, ok := paths[d.ID]; ok {
			return p, true
		}
		if d.ParentID == nil {
			paths[d.ID] = ""
			return "", true
		}
		parent, ok := byID[*d.ParentID]
		if !ok || hops > len(dirRows) {
			return "", false
		}
		pp, ok := pathOf(parent, hops+1)
		if !ok {
			return "", false
		}
		p := joinPath(pp, d.Name)
		paths[d.ID] = p
		return p, true
	}

	w.dirs = make(map[string]DirectoryRow, len(dirRows))
	for _, d := range dirRows {
		// Unreachable rows get no path and are pruned.
		if p, ok := pathOf(d, 0); ok {
			w.dirs[p] = d
		}
	}

	var fileRows []FileRow
	err := w.tx.Joins("JOIN catalog_directories ON catalog_directories.id = catalog_files.directory_id").
		Where("catalog_directories.volume_id = ?", w.volumeID).
		Find(&fileRows).Error
	if err != nil {
		return err
	}
	w.files = make(map[string]FileRow, len(fileRows))
	for _, f := range fileRows {
		if p, ok := paths[f.DirectoryID]; ok {
			w.files[joinPath(p, f.Name)] = f
		}
	}
	return nil
}

func (w *volumeWriter) writeDirectory(dir *tree.Directory, parentID *uint) error {
	p := dir.Path()
	row, exists := w.dirs[p]
	switch {
	case !exists:
		row = DirectoryRow{VolumeID: w.volumeID, ParentID: parentID, Name: dir.Name, ExternalID: dir.ExternalID}
		if err := w.tx.Create(&row).Error; err != nil {
			return err
		}
		w.written++
	case row.ExternalID != dir.ExternalID:
		row.ExternalID = dir.ExternalID
		if err := w.tx.Save(&row).Error; err != nil {
			return err
		}
		w.written++
	}
	w.seenDirs[row.ID] = struct{}{}

	for _, f := range dir.Files() {
		next := fileRow(row.ID, f)
		old, exists := w.files[f.Path()]
		if !exists {
			w.pending = append(w.pending, &next)
			continue
		}
		w.seenFile[old.ID] = struct{}{}
		next.ID = old.ID
		if next == old {
			continue
		}
		if err := w.tx.Save(&next).Error; err != nil {
			return err
		}
		w.written++
	}
	if len(w.pending) >= insertBatchSize {
		if err := w.flush(); err != nil {
			return err
		}
	}

	id := row.ID
	for _, child := range dir.Directories() {
		if err := w.writeDirectory(child, &id); err != nil {
			return err
		}
	}
	return nil
}

// flush inserts the pending file rows.
func (w *volumeWriter) flush() error {
	if len(w.pending) == 0 {
		return nil
	}
	if err := w.tx.CreateInBatches(w.pending, insertBatchSize).Error; err != nil {
		return err
	}
	for _, r := range w.pending {
		w.seenFile[r.ID] = struct{}{}
	}
	w.written += len(w.pending)
	w.pending = w.pending[:0]
	return nil
}

// prune deletes the rows of nodes that are no longer in the tree.
func (w *volumeWriter) prune() (int, error) {
	var staleFiles, staleDirs []uint
	for _, f := range w.files {
		if _, ok := w.seenFile[f.ID]; !ok {
			staleFiles = append(staleFiles, f.ID)
		}
	}
	var all []DirectoryRow
	if err := w.tx.Select("id").Where("volume_id = ?", w.volumeID).Find(&all).Error; err != nil {
		return 0, err
	}
	for _, d := range all {
		if _, ok := w.seenDirs[d.ID]; !ok {
			staleDirs = append(staleDirs, d.ID)
		}
	}

	if err := deleteIn(w.tx, "directory_id", staleDirs, &FileRow{}); err != nil {
		return 0, err
	}
	if err := deleteIn(w.tx, "id", staleDirs, &DirectoryRow{}); err != nil {
		return 0, err
	}
	if err := deleteIn(w.tx, "id", staleFiles, &FileRow{}); err != nil {
		return 0, err
	}
	return len(staleFiles) + len(staleDirs), nil
}

// deleteIn deletes rows whose column is in ids, in chunks that stay below the
// bind variable limit of the drivers.
func deleteIn(tx *gorm.DB, column string, ids []uint, model any) error {
	for start := 0; start < len(ids); start += insertBatchSize {
		end := min(start+insertBatchSize, len(ids))
		if err := tx.Where(column+" IN ?", ids[start:end]).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func fileRow(directoryID uint, f *tree.File) FileRow {
	return FileRow{
		DirectoryID:   directoryID,
		Name:          f.Name,
		Size:          f.Size,
		ModifiedNs:    toUnixNano(f.LastModified),
		Type:          f.Type,
		State:         f.State.String(),
		Hash:          f.Hash,
		HashCreatedNs: toUnixNano(f.HashCreated),
		ExternalID:    f.ExternalID,
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
