package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/pixil98/go-errors"
)

// StorageConfig points at the definition directories. A kind with no path
// or an empty directory falls back to its built-in default.
type StorageConfig struct {
	Rooms   AssetConfig[*game.Room]  `json:"rooms"`
	Items   AssetConfig[*game.Item]  `json:"items"`
	Enemies AssetConfig[*game.Enemy] `json:"enemies"`
	Quests  AssetConfig[*game.Quest] `json:"quests"`
	Mazes   AssetConfig[*game.Maze]  `json:"mazes"`
}

func (c *StorageConfig) BuildDictionary() (*game.Dictionary, error) {
	rooms, err := c.Rooms.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	items, err := c.Items.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}
	enemies, err := c.Enemies.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("creating enemy store: %w", err)
	}
	quests, err := c.Quests.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("creating quest store: %w", err)
	}
	mazes, err := c.Mazes.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("creating maze store: %w", err)
	}

	dict := &game.Dictionary{
		Rooms:   rooms,
		Items:   items,
		Enemies: enemies,
		Quests:  quests,
		Mazes:   mazes,
	}
	dict.CheckReferences()

	return dict, nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Rooms.Validate("rooms"))
	el.Add(c.Items.Validate("items"))
	el.Add(c.Enemies.Validate("enemies"))
	el.Add(c.Quests.Validate("quests"))
	el.Add(c.Mazes.Validate("mazes"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

// Validate accepts an empty or missing path. Anything that does exist at
// the path must be a directory.
func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return nil
	}
	info, err := os.Stat(c.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %q is not a directory", name, c.Path)
	}

	return nil
}

func (c *AssetConfig[T]) BuildStore() (storage.Storer[T], error) {
	if c.Path == "" {
		return storage.NewMemoryStore[T](nil), nil
	}
	return storage.NewFileStore[T](c.Path, storage.WithMissingAsEmpty())
}
