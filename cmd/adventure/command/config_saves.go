package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-adventure/internal/save"
	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-errors"
)

// SavesConfig locates the save slots. Saving is disabled without a path.
type SavesConfig struct {
	Path string `json:"path"`
}

func (c *SavesConfig) validate() error {
	el := errors.NewErrorList()

	if c.Path != "" {
		info, err := os.Stat(c.Path)
		if err == nil && !info.IsDir() {
			el.Add(fmt.Errorf("saves: %q is not a directory", c.Path))
		}
	}

	return el.Err()
}

// BuildManager returns nil when saving is disabled.
func (c *SavesConfig) BuildManager() (*save.Manager, error) {
	if c.Path == "" {
		return nil, nil
	}

	store, err := storage.NewFileStore[*save.Record](c.Path, storage.WithCreateDir(), storage.WithSkipInvalid())
	if err != nil {
		return nil, fmt.Errorf("creating save store: %w", err)
	}
	return save.NewManager(store), nil
}
