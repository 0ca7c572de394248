package tree

import "fmt"

// FileState is the lifecycle state of a file after reconciliation.
type FileState int

const (
	// Unknown is the state of every file before reconciliation.
	Unknown FileState = iota
	// New marks a file found on disk that the catalog did not know.
	New
	// Identical marks a file whose size and modification time match the catalog.
	Identical
	// Modified marks a file whose size, modification time or content changed.
	Modified
	// Missing marks a catalogued file that was not found on disk.
	Missing
	// Corrupted marks a file that could not be read while hashing.
	Corrupted
)

var stateNames = map[FileState]string{
	Unknown:   "unknown",
	New:       "new",
	Identical: "identical",
	Modified:  "modified",
	Missing:   "missing",
	Corrupted: "corrupted",
}

// String returns the lowercase name of the state.
func (s FileState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ParseFileState converts a name produced by String back into a FileState.
func ParseFileState(name string) (FileState, error) {
	for state, n := range stateNames {
		if n == name {
			return state, nil
		}
	}
	return Unknown, fmt.Errorf("unknown file state %q", name)
}

// AllStates lists every state in declaration order.
func AllStates() []FileState {
	return []FileState{Unknown, New, Identical, Modified, Missing, Corrupted}
}
