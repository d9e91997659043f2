package command

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixil98/go-adventure/internal/display"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/driver"
	"github.com/pixil98/go-testutil"
)

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rooms.json")
	if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	tests := map[string]struct {
		config Config
		expErr string
	}{
		"empty config": {},
		"full config": {
			config: Config{
				Storage: StorageConfig{Rooms: AssetConfig[*game.Room]{Path: dir}},
				Saves:   SavesConfig{Path: filepath.Join(dir, "saves")},
				Session: SessionConfig{StartRoom: "hall", AutosaveInterval: "1m"},
				Nats:    NatsConfig{Enabled: true, Port: -1, StartTimeout: "5s"},
			},
		},
		"asset path is a file": {
			config: Config{Storage: StorageConfig{Rooms: AssetConfig[*game.Room]{Path: file}}},
			expErr: "is not a directory",
		},
		"save path is a file": {
			config: Config{Saves: SavesConfig{Path: file}},
			expErr: "saves:",
		},
		"bad autosave interval": {
			config: Config{Session: SessionConfig{AutosaveInterval: "soon"}},
			expErr: "parsing autosave_interval",
		},
		"negative autosave interval": {
			config: Config{Session: SessionConfig{AutosaveInterval: "-1m"}},
			expErr: "must not be negative",
		},
		"bad start timeout": {
			config: Config{Nats: NatsConfig{StartTimeout: "later"}},
			expErr: "parsing start_timeout",
		},
		"bad port": {
			config: Config{Nats: NatsConfig{Port: 70000}},
			expErr: "port must be between",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestConfigUnmarshal(t *testing.T) {
	tests := map[string]struct {
		data    string
		expMode ConsoleMode
		expErr  string
	}{
		"default mode": {data: `{}`, expMode: ConsoleModeLine},
		"line mode":    {data: `{"console":{"mode":"line"}}`, expMode: ConsoleModeLine},
		"keys mode":    {data: `{"console":{"mode":"keys"}}`, expMode: ConsoleModeKeys},
		"unknown mode": {data: `{"console":{"mode":"gui"}}`, expErr: "unknown console mode"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var cfg Config
			err := json.Unmarshal([]byte(tt.data), &cfg)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "mode", cfg.Console.Mode, tt.expMode)
		})
	}
}

func TestSessionConfigAutosaveInterval(t *testing.T) {
	tests := map[string]struct {
		interval string
		exp      time.Duration
	}{
		"default":  {exp: driver.DefaultAutosaveInterval},
		"set":      {interval: "30s", exp: 30 * time.Second},
		"disabled": {interval: "0", exp: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := SessionConfig{AutosaveInterval: tt.interval}
			d, err := c.autosaveInterval()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "interval", d, tt.exp)
		})
	}
}

func TestConsoleConfigWidth(t *testing.T) {
	testutil.AssertEqual(t, "default", (&ConsoleConfig{}).width(), display.DefaultWidth)
	testutil.AssertEqual(t, "set", (&ConsoleConfig{Width: 40}).width(), 40)
	testutil.AssertEqual(t, "off", (&ConsoleConfig{Width: -1}).width(), -1)
}

func TestNatsConfigPrefix(t *testing.T) {
	testutil.AssertEqual(t, "default", (&NatsConfig{}).prefix(), "adventure")
	testutil.AssertEqual(t, "set", (&NatsConfig{Prefix: "game"}).prefix(), "game")
}
