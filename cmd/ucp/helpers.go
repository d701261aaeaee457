package main

import (
	"fmt"
	"os"

	"ucp/internal/pattern"
)

// storePath resolves the pattern store location: --store flag, then the
// UCP_STORE environment variable, then the default path.
func storePath() string {
	if rootFlags.store != "" {
		return rootFlags.store
	}
	if env := os.Getenv("UCP_STORE"); env != "" {
		return env
	}
	return pattern.DefaultStorePath
}

// openLibrary opens the pattern store and loads the library from it.
func openLibrary() (*pattern.Library, error) {
	st, err := pattern.Open(storePath())
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", storePath(), err)
	}
	lib, err := pattern.NewLibrary(st)
	if err != nil {
		return nil, err
	}
	return lib, nil
}
