package catalog

import "time"

// VolumeRow represents the 'catalog_volumes' table.
type VolumeRow struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Path      string    `gorm:"column:path;type:varchar(512);uniqueIndex;not null"`
	Schema    string    `gorm:"column:schema_name;type:varchar(64)"`
	Main      bool      `gorm:"column:main"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (VolumeRow) TableName() string {
	return "catalog_volumes"
}

// DirectoryRow represents the 'catalog_directories' table. The root has no parent and
// an empty name.
type DirectoryRow struct {
	ID         uint   `gorm:"column:id;primaryKey"`
	VolumeID   uint   `gorm:"column:volume_id;index;not null"`
	ParentID   *uint  `gorm:"column:parent_id;index"`
	Name       string `gorm:"column:name;type:varchar(1024)"`
	ExternalID string `gorm:"column:external_id;type:varchar(64)"`
}

// TableName overrides the table name.
func (DirectoryRow) TableName() string {
	return "catalog_directories"
}

// FileRow represents the 'catalog_files' table. Times are stored as Unix nanoseconds so
// they compare exactly on the next run; zero means unset.
type FileRow struct {
	ID            uint   `gorm:"column:id;primaryKey"`
	DirectoryID   uint   `gorm:"column:directory_id;index;not null"`
	Name          string `gorm:"column:name;type:varchar(1024)"`
	Size          int64  `gorm:"column:size"`
	ModifiedNs    int64  `gorm:"column:modified_ns"`
	Type          string `gorm:"column:type;type:varchar(128)"`
	State         string `gorm:"column:state;type:varchar(16)"`
	Hash          string `gorm:"column:hash;type:varchar(128)"`
	HashCreatedNs int64  `gorm:"column:hash_created_ns"`
	ExternalID    string `gorm:"column:external_id;type:varchar(64)"`
}

// TableName overrides the table name.
func (FileRow) TableName() string {
	return "catalog_files"
}

// Models lists every catalog model in migration order.
func Models() []any {
	return []any{&VolumeRow{}, &DirectoryRow{}, &FileRow{}}
}

// ExpectedColumns lists the columns each catalog table must have.
var ExpectedColumns = map[string][]string{
	"catalog_volumes":     {"id", "path", "schema_name", "main", "created_at", "updated_at"},
	"catalog_directories": {"id", "volume_id", "parent_id", "name", "external_id"},
	"catalog_files": {
		"id", "directory_id", "name", "size", "modified_ns", "type", "state",
		"hash", "hash_created_ns", "external_id",
	},
}

func toUnixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(ns int64) time.Time {
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns).UTC()
}
