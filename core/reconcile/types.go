package reconcile

import "media-catalog/core/tree"

// Summary provides aggregate state counts for a reconciled volume.
type Summary struct {
	// TotalFiles is the number of files in the merged tree, including missing ones.
	TotalFiles int `json:"total_files"`

	// TotalDirectories is the number of directories below the root.
	TotalDirectories int `json:"total_directories"`

	// New counts files found on disk that the catalog did not know.
	New int `json:"new"`

	// Identical counts files whose size and modification time are unchanged.
	Identical int `json:"identical"`

	// Modified counts files whose size or modification time changed.
	Modified int `json:"modified"`

	// Missing counts catalogued files that were not found on disk.
	Missing int `json:"missing"`

	// Corrupted counts files that failed to read during a previous hash.
	Corrupted int `json:"corrupted"`

	// Unknown counts files that were never reconciled.
	Unknown int `json:"unknown"`
}

// Summarize counts the file states of a volume.
func Summarize(vol *tree.Volume) Summary {
	var s Summary
	if vol == nil || vol.Root == nil {
		return s
	}

	s.TotalDirectories, _ = vol.Root.Counts()
	for _, f := range vol.Root.AllFiles() {
		s.TotalFiles++
		switch f.State {
		case tree.New:
			s.New++
		case tree.Identical:
			s.Identical++
		case tree.Modified:
			s.Modified++
		case tree.Missing:
			s.Missing++
		case tree.Corrupted:
			s.Corrupted++
		default:
			s.Unknown++
		}
	}
	return s
}
