package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/recipekeeper/core/internal/domain/entities"
	"github.com/recipekeeper/core/internal/infrastructure/config"
	"github.com/recipekeeper/core/internal/infrastructure/logger"
	"github.com/recipekeeper/core/internal/ports"
)

// FileStore implements the RecipeStore interface on top of a single JSON file
type FileStore struct {
	path         string
	fileMode     fs.FileMode
	atomicWrites bool
	logger       *logger.Logger
}

// NewFileStore creates a new file-backed recipe store
func NewFileStore(cfg config.StoreConfig, appLogger *logger.Logger) ports.RecipeStore {
	mode := fs.FileMode(cfg.FileMode)
	if mode == 0 {
		mode = 0o644
	}

	return &FileStore{
		path:         cfg.Path,
		fileMode:     mode,
		atomicWrites: cfg.AtomicWrites,
		logger:       appLogger.WithComponent("file_store"),
	}
}

// Load reads and parses the whole backing file. A missing file is an empty collection.
func (s *FileStore) Load(ctx context.Context) ([]entities.Recipe, error) {
	start := time.Now()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.LogStoreOperation("load", s.path, 0, time.Since(start), nil)
			return []entities.Recipe{}, nil
		}
		s.logger.LogStoreOperation("load", s.path, 0, time.Since(start), err)
		return nil, fmt.Errorf("read recipes file: %w", err)
	}

	var recipes []entities.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		s.logger.LogStoreOperation("load", s.path, 0, time.Since(start), err)
		return nil, fmt.Errorf("parse recipes file: %w", err)
	}

	if recipes == nil {
		recipes = []entities.Recipe{}
	}
	for i := range recipes {
		recipes[i] = recipes[i].Normalize()
	}

	s.logger.LogStoreOperation("load", s.path, len(recipes), time.Since(start), nil)
	return recipes, nil
}

// Save serializes the whole collection and overwrites the backing file
func (s *FileStore) Save(ctx context.Context, recipes []entities.Recipe) error {
	start := time.Now()

	out := make([]entities.Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = r.Normalize()
	}

	data, err := json.Marshal(out)
	if err != nil {
		s.logger.LogStoreOperation("save", s.path, len(out), time.Since(start), err)
		return fmt.Errorf("encode recipes: %w", err)
	}

	if s.atomicWrites {
		err = s.writeAtomic(data)
	} else {
		err = os.WriteFile(s.path, data, s.fileMode)
	}

	s.logger.LogStoreOperation("save", s.path, len(out), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("write recipes file: %w", err)
	}

	return nil
}

// writeAtomic writes to a sibling temp file and renames it over the target
func (s *FileStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, s.fileMode); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}
