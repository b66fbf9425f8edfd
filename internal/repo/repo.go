// Package repo provides repository initialisation and discovery for tasklens.
//
// A tasklens repository is a .tasklens directory holding the SQLite database
// and optional local config. Discovery mirrors git's approach: starting from
// the current directory, walk up until a .tasklens directory containing the
// database is found, or the filesystem root is reached.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/tasklens/internal/store"
)

const (
	// Dir is the directory name for the tasklens repository.
	Dir = ".tasklens"
	// DBFile is the database filename.
	DBFile = "tasklens.db"
	// LegacyCacheFile is the pre-database flat-file summary cache, imported
	// once on first open after upgrade.
	LegacyCacheFile = "summaries.json"
)

// ErrNotInitialised is returned when no tasklens repository is found.
var ErrNotInitialised = errors.New("tasklens not initialised (run 'tasklens init')")

// Init initialises a new tasklens repository in dir (current directory when
// empty). force reinitialises an existing repository, dropping its database.
func Init(force bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	repoDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(repoDir, DBFile)

	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFile)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
	}

	if err := os.MkdirAll(repoDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	return nil
}

// Discover walks up the directory tree looking for a .tasklens database.
// Returns the full path to the database if found.
func Discover() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, DBFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DiscoverDir finds the .tasklens directory, walking up the tree.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		repoDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(repoDir); err == nil && info.IsDir() {
			return repoDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// ManifestPath returns the task manifest path next to the repository, or in
// the current directory when no repository exists yet.
func ManifestPath() string {
	repoDir, err := DiscoverDir()
	if err != nil {
		return "tasklens.json"
	}
	return filepath.Join(filepath.Dir(repoDir), "tasklens.json")
}
