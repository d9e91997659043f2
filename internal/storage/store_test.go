package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

type mockStoreSpec struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func (s *mockStoreSpec) Validate() error {
	return nil
}

func writeAsset(t *testing.T, dir, file, id string, spec *mockStoreSpec) {
	t.Helper()
	data, err := json.Marshal(Asset[*mockStoreSpec]{Version: 1, Identifier: id, Spec: spec})
	if err != nil {
		t.Fatalf("marshalling asset: %v", err)
	}
	err = os.WriteFile(filepath.Join(dir, file), data, 0644)
	if err != nil {
		t.Fatalf("writing asset: %v", err)
	}
}

func TestNewFileStore(t *testing.T) {
	tests := map[string]struct {
		setup    func(t *testing.T, dir string) string
		opts     []FileStoreOpt
		expCount int
		expErr   string
	}{
		"empty directory": {
			setup: func(t *testing.T, dir string) string { return dir },
		},
		"loads json assets and ignores other files": {
			setup: func(t *testing.T, dir string) string {
				writeAsset(t, dir, "a.json", "gate", &mockStoreSpec{Name: "Gate"})
				writeAsset(t, dir, "b.json", "hall", &mockStoreSpec{Name: "Hall"})
				_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644)
				return dir
			},
			expCount: 2,
		},
		"duplicate ids across subdirectories": {
			setup: func(t *testing.T, dir string) string {
				sub := filepath.Join(dir, "east")
				if err := os.Mkdir(sub, 0755); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
				writeAsset(t, dir, "a.json", "gate", &mockStoreSpec{})
				writeAsset(t, sub, "b.json", "gate", &mockStoreSpec{})
				return dir
			},
			expErr: "duplicate key detected: gate",
		},
		"malformed json": {
			setup: func(t *testing.T, dir string) string {
				_ = os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644)
				return dir
			},
			expErr: "loading bad.json",
		},
		"invalid asset": {
			setup: func(t *testing.T, dir string) string {
				_ = os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"id":"x","spec":{}}`), 0644)
				return dir
			},
			expErr: "validating bad.json",
		},
		"malformed json skipped": {
			setup: func(t *testing.T, dir string) string {
				writeAsset(t, dir, "a.json", "gate", &mockStoreSpec{Name: "Gate"})
				_ = os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644)
				return dir
			},
			opts:     []FileStoreOpt{WithSkipInvalid()},
			expCount: 1,
		},
		"invalid asset skipped": {
			setup: func(t *testing.T, dir string) string {
				_ = os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"id":"x","spec":{}}`), 0644)
				return dir
			},
			opts: []FileStoreOpt{WithSkipInvalid()},
		},
		"missing directory": {
			setup:  func(t *testing.T, dir string) string { return filepath.Join(dir, "nope") },
			expErr: "no such file",
		},
		"missing directory as empty": {
			setup: func(t *testing.T, dir string) string { return filepath.Join(dir, "nope") },
			opts:  []FileStoreOpt{WithMissingAsEmpty()},
		},
		"missing directory created": {
			setup: func(t *testing.T, dir string) string { return filepath.Join(dir, "saves", "slots") },
			opts:  []FileStoreOpt{WithCreateDir()},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := tt.setup(t, t.TempDir())

			store, err := NewFileStore[*mockStoreSpec](path, tt.opts...)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "count", len(store.GetAll()), tt.expCount)
		})
	}
}

func TestFileStore_SaveGetDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore[*mockStoreSpec](dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = store.Save("autosave", &mockStoreSpec{Name: "first", Value: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = store.Save("autosave", &mockStoreSpec{Name: "second", Value: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "cached", store.Get("autosave").Name, "second")

	reopened, err := NewFileStore[*mockStoreSpec](dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "persisted", reopened.Get("autosave").Value, 2)

	_, err = os.Stat(store.filePath("autosave") + ".tmp")
	if !os.IsNotExist(err) {
		t.Errorf("temp file left behind")
	}

	err = store.Delete("autosave")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Get("autosave") != nil {
		t.Errorf("record still cached after delete")
	}
	_, err = os.Stat(store.filePath("autosave"))
	if !os.IsNotExist(err) {
		t.Errorf("file still present after delete")
	}

	err = store.Delete("autosave")
	if err != nil {
		t.Errorf("deleting a missing record should not fail: %v", err)
	}
}

func TestFileStore_SaveRejectsBadId(t *testing.T) {
	store, err := NewFileStore[*mockStoreSpec](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = store.Save("../escape", &mockStoreSpec{})
	testutil.AssertErrorContains(t, err, "invalid id")
}

func TestFileStore_GetAllIsCopy(t *testing.T) {
	store, err := NewFileStore[*mockStoreSpec](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = store.Save("one", &mockStoreSpec{})

	all := store.GetAll()
	delete(all, "one")

	testutil.AssertEqual(t, "count", len(store.GetAll()), 1)
}

func TestMemoryStore(t *testing.T) {
	src := map[string]*mockStoreSpec{"a": {Name: "A"}}
	store := NewMemoryStore(src)
	delete(src, "a")

	testutil.AssertEqual(t, "copied", store.Get("a").Name, "A")

	_ = store.Save("b", &mockStoreSpec{Name: "B"})
	testutil.AssertEqual(t, "count", len(store.GetAll()), 2)

	_ = store.Delete("a")
	if store.Get("a") != nil {
		t.Errorf("expected a to be deleted")
	}
}
