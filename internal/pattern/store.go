package pattern

import "strings"

// DefaultStorePath is the default relative location of the pattern file.
// Open() creates the parent dir (.ucp) on first save.
const DefaultStorePath = ".ucp/patterns.json"

// Snapshot is the full persisted state: the wire shape mirrors the flat
// JSON layout with top-level "patterns" and "problem_signatures" maps.
type Snapshot struct {
	Patterns   map[string]SolutionPattern  `json:"patterns"`
	Signatures map[string]ProblemSignature `json:"problem_signatures"`
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Patterns:   map[string]SolutionPattern{},
		Signatures: map[string]ProblemSignature{},
	}
}

// Store is the persistence facade for the pattern library. Load on a
// never-written backend returns an empty snapshot with no error; a corrupt
// backend returns a parse error so the caller can tell the two apart.
type Store interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
	Close() error
}

// Open selects a backend by path suffix: ".db" opens the SQLite store,
// anything else the JSON file store.
func Open(path string) (Store, error) {
	if strings.HasSuffix(path, ".db") {
		return OpenSQL(path)
	}
	return NewFileStore(path), nil
}
