package tree

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// UnknownType is stored in File.Type once detection determined the type cannot be known.
	UnknownType = "?"
	// NotFound is stored in ExternalID once a lookup ran and found no entity.
	NotFound = "-"
)

// ErrDuplicateName is returned when a child with the same name is already attached.
var ErrDuplicateName = errors.New("duplicate name")

// ParsedName is the structured form of a file name decoded by a validator.
type ParsedName struct {
	Title      string
	Year       int
	Season     int
	Episode    int
	Resolution string
}

// File is a single filesystem entry.
type File struct {
	Name         string
	Size         int64
	LastModified time.Time

	// Type is the detected format tag, UnknownType, or empty when not detected yet.
	Type  string
	State FileState

	// Hash is the hex digest of the content; HashCreated is when it was measured.
	Hash        string
	HashCreated time.Time

	ExternalID string
	Parsed     *ParsedName

	parent *Directory
}

// NewFile creates a detached file.
func NewFile(name string, size int64, modified time.Time) *File {
	return &File{Name: name, Size: size, LastModified: modified}
}

// Parent returns the directory holding the file, or nil when detached.
func (f *File) Parent() *Directory {
	return f.parent
}

// HasHash reports whether a hash was ever measured for the file.
func (f *File) HasHash() bool {
	return f.Hash != ""
}

// Extension returns the lowercase extension without the dot.
func (f *File) Extension() string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(f.Name), "."))
}

// Path returns the slash separated path of the file relative to the volume root.
func (f *File) Path() string {
	if f.parent == nil {
		return f.Name
	}
	return joinPath(f.parent.Path(), f.Name)
}

// Directory is a named container of directories and files.
type Directory struct {
	Name       string
	ExternalID string

	parent *Directory
	dirs   map[string]*Directory
	files  map[string]*File
}

// NewDirectory creates a detached, empty directory.
func NewDirectory(name string) *Directory {
	return &Directory{
		Name:  name,
		dirs:  make(map[string]*Directory),
		files: make(map[string]*File),
	}
}

// Parent returns the enclosing directory, or nil for a root or detached directory.
func (d *Directory) Parent() *Directory {
	return d.parent
}

// AddDirectory attaches child under d.
func (d *Directory) AddDirectory(child *Directory) error {
	if _, exists := d.dirs[child.Name]; exists {
		return fmt.Errorf("directory %q in %q: %w", child.Name, d.Path(), ErrDuplicateName)
	}
	child.parent = d
	d.dirs[child.Name] = child
	return nil
}

// AddFile attaches f under d.
func (d *Directory) AddFile(f *File) error {
	if _, exists := d.files[f.Name]; exists {
		return fmt.Errorf("file %q in %q: %w", f.Name, d.Path(), ErrDuplicateName)
	}
	f.parent = d
	d.files[f.Name] = f
	return nil
}

// Directory returns the child directory with the given name, or nil.
func (d *Directory) Directory(name string) *Directory {
	return d.dirs[name]
}

// File returns the child file with the given name, or nil.
func (d *Directory) File(name string) *File {
	return d.files[name]
}

// Directories returns the child directories sorted by name.
func (d *Directory) Directories() []*Directory {
	out := make([]*Directory, 0, len(d.dirs))
	for _, name := range d.DirectoryNames() {
		out = append(out, d.dirs[name])
	}
	return out
}

// Files returns the child files sorted by name.
func (d *Directory) Files() []*File {
	out := make([]*File, 0, len(d.files))
	for _, name := range d.FileNames() {
		out = append(out, d.files[name])
	}
	return out
}

// DirectoryNames returns the names of the child directories, sorted.
func (d *Directory) DirectoryNames() []string {
	return sortedKeys(d.dirs)
}

// FileNames returns the names of the child files, sorted.
func (d *Directory) FileNames() []string {
	return sortedKeys(d.files)
}

// Path returns the slash separated path relative to the volume root ("" for the root).
func (d *Directory) Path() string {
	if d.parent == nil {
		return ""
	}
	return joinPath(d.parent.Path(), d.Name)
}

// Depth returns the number of ancestors between d and its root.
func (d *Directory) Depth() int {
	depth := 0
	for p := d.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// AllFiles returns every file below d in depth-first, name-sorted order.
func (d *Directory) AllFiles() []*File {
	var out []*File
	d.collect(&out)
	return out
}

func (d *Directory) collect(out *[]*File) {
	*out = append(*out, d.Files()...)
	for _, child := range d.Directories() {
		child.collect(out)
	}
}

// Counts returns the number of directories (excluding d) and files below d.
func (d *Directory) Counts() (dirs, files int) {
	files = len(d.files)
	for _, child := range d.dirs {
		cd, cf := child.Counts()
		dirs += cd + 1
		files += cf
	}
	return dirs, files
}

// Check verifies that every child below d points back to its holder.
func (d *Directory) Check() error {
	for name, f := range d.files {
		if f.Name != name {
			return fmt.Errorf("file keyed %q is named %q", name, f.Name)
		}
		if f.parent != d {
			return fmt.Errorf("file %q has a foreign parent", f.Path())
		}
	}
	for name, child := range d.dirs {
		if child.Name != name {
			return fmt.Errorf("directory keyed %q is named %q", name, child.Name)
		}
		if child.parent != d {
			return fmt.Errorf("directory %q has a foreign parent", child.Path())
		}
		if err := child.Check(); err != nil {
			return err
		}
	}
	return nil
}

// Volume is a registered directory tree identified by its canonical path.
type Volume struct {
	// Path is the canonical, slash separated path of the volume.
	Path string
	Root *Directory
	// Schema names the validator applied to the volume; empty disables validation.
	Schema string
	// Main marks the primary copy as opposed to a satellite copy.
	Main bool
}

// NewVolume creates a volume with an empty root.
func NewVolume(p string) *Volume {
	return &Volume{Path: NormalizePath(p), Root: NewDirectory("")}
}

// NormalizePath cleans p and canonicalizes the separator to '/'.
func NormalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// OSPath returns the native path of a path relative to the volume root.
func (v *Volume) OSPath(rel string) string {
	if rel == "" {
		return filepath.FromSlash(v.Path)
	}
	return filepath.FromSlash(v.Path + "/" + rel)
}

// Check verifies the containment invariants of the whole volume.
func (v *Volume) Check() error {
	if v.Root == nil {
		return fmt.Errorf("volume %s has no root", v.Path)
	}
	if v.Root.Name != "" || v.Root.parent != nil {
		return fmt.Errorf("volume %s root must be unnamed and detached", v.Path)
	}
	return v.Root.Check()
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
