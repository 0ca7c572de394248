package reconcile

import (
	"fmt"
	"sort"

	"media-catalog/core/tree"
)

// MergeVolumes merges scanned volumes with loaded volumes, matching them by path.
// The result is the union keyed by path, sorted by path for deterministic output.
func MergeVolumes(scanned, loaded []*tree.Volume) ([]*tree.Volume, error) {
	scannedIndex := indexVolumes(scanned)
	loadedIndex := indexVolumes(loaded)

	union := make(map[string]struct{}, len(scannedIndex)+len(loadedIndex))
	for path := range scannedIndex {
		union[path] = struct{}{}
	}
	for path := range loadedIndex {
		union[path] = struct{}{}
	}

	results := make([]*tree.Volume, 0, len(union))
	for path := range union {
		merged, err := MergeVolume(scannedIndex[path], loadedIndex[path])
		if err != nil {
			return nil, err
		}
		results = append(results, merged)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// MergeVolume merges one scanned volume with its loaded counterpart.
// Registration attributes (schema, main flag) come from the loaded side.
func MergeVolume(scanned, loaded *tree.Volume) (*tree.Volume, error) {
	switch {
	case scanned == nil && loaded == nil:
		return nil, nil
	case loaded == nil:
		root, err := MergeDirectory(scanned.Root, nil)
		if err != nil {
			return nil, err
		}
		scanned.Root = root
		return scanned, nil
	case scanned == nil:
		// Tracked but not found this run: kept exactly as catalogued.
		return loaded, nil
	}

	if scanned.Path != loaded.Path {
		return nil, fmt.Errorf("cannot merge volume %s with %s", scanned.Path, loaded.Path)
	}

	root, err := MergeDirectory(scanned.Root, loaded.Root)
	if err != nil {
		return nil, fmt.Errorf("merge volume %s: %w", scanned.Path, err)
	}
	if root == nil {
		root = tree.NewDirectory("")
	}

	return &tree.Volume{
		Path:   loaded.Path,
		Root:   root,
		Schema: loaded.Schema,
		Main:   loaded.Main,
	}, nil
}

// MergeDirectory merges two same-named directories. A nil side yields the other side
// itself, with its files marked New (scanned only) or Missing (loaded only). Below a
// merged directory, a catalogued child that is gone from disk and holds no files is
// dropped.
func MergeDirectory(scanned, loaded *tree.Directory) (*tree.Directory, error) {
	switch {
	case scanned == nil && loaded == nil:
		return nil, nil
	case loaded == nil:
		markFiles(scanned, tree.New)
		return scanned, nil
	case scanned == nil:
		markFiles(loaded, tree.Missing)
		return loaded, nil
	}

	merged := tree.NewDirectory(scanned.Name)
	merged.ExternalID = loaded.ExternalID

	for _, name := range unionNames(scanned.DirectoryNames(), loaded.DirectoryNames()) {
		scannedChild, loadedChild := scanned.Directory(name), loaded.Directory(name)
		if scannedChild == nil && !holdsFiles(loadedChild) {
			// Nothing below it can be reported missing, so it is dropped.
			continue
		}
		child, err := MergeDirectory(scannedChild, loadedChild)
		if err != nil {
			return nil, err
		}
		if err := merged.AddDirectory(child); err != nil {
			return nil, err
		}
	}

	for _, name := range unionNames(scanned.FileNames(), loaded.FileNames()) {
		file := MergeFile(scanned.File(name), loaded.File(name))
		if err := merged.AddFile(file); err != nil {
			return nil, err
		}
	}

	return merged, nil
}

// MergeFile merges two same-named files. A nil side yields the other side itself.
func MergeFile(scanned, loaded *tree.File) *tree.File {
	switch {
	case scanned == nil && loaded == nil:
		return nil
	case loaded == nil:
		scanned.State = tree.New
		return scanned
	case scanned == nil:
		loaded.State = tree.Missing
		return loaded
	}

	merged := tree.NewFile(scanned.Name, scanned.Size, scanned.LastModified)
	// Detection is expensive; a catalogued tag is kept even when the content changed.
	merged.Type = loaded.Type
	merged.Hash = loaded.Hash
	merged.HashCreated = loaded.HashCreated
	merged.ExternalID = loaded.ExternalID

	if scanned.Size == loaded.Size && scanned.LastModified.Equal(loaded.LastModified) {
		merged.State = tree.Identical
	} else {
		merged.State = tree.Modified
	}
	return merged
}

// markFiles sets the state of every file below dir.
func markFiles(dir *tree.Directory, state tree.FileState) {
	for _, f := range dir.AllFiles() {
		f.State = state
	}
}

// holdsFiles reports whether any file lives in dir or below it.
func holdsFiles(dir *tree.Directory) bool {
	_, files := dir.Counts()
	return files > 0
}

func indexVolumes(volumes []*tree.Volume) map[string]*tree.Volume {
	index := make(map[string]*tree.Volume, len(volumes))
	for _, v := range volumes {
		if v == nil {
			continue
		}
		index[v.Path] = v
	}
	return index
}

// unionNames returns the sorted union of two sorted name lists.
func unionNames(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
