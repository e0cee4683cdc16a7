package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// WorldsConfig is the registry of story worlds, keyed by world name. Unlike
// the main config it is written back whenever a world is created or removed.
type WorldsConfig struct {
	Worlds map[string]WorldEntry `yaml:"worlds,omitempty"`
}

// WorldEntry maps a world name to its vector collection. The description is
// free text shown by `canon worlds list`.
type WorldEntry struct {
	Collection  string `yaml:"collection"`
	Description string `yaml:"description,omitempty"`
}

// LoadWorlds reads the world registry from the .canon directory. A missing
// file is not an error; it means no worlds have been created yet.
func LoadWorlds(basePath string) (*WorldsConfig, error) {
	worldsFile := filepath.Join(basePath, DefaultConfigDir, DefaultWorldsFile)

	data, err := os.ReadFile(worldsFile)
	if os.IsNotExist(err) {
		return &WorldsConfig{
			Worlds: make(map[string]WorldEntry),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading worlds file: %w", err)
	}

	var cfg WorldsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing worlds file: %w", err)
	}

	if cfg.Worlds == nil {
		cfg.Worlds = make(map[string]WorldEntry)
	}

	return &cfg, nil
}

// Save persists the registry under the .canon directory, creating it if
// needed. File mode is 0600 since descriptions may quote private notes.
func (w *WorldsConfig) Save(basePath string) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)
	worldsFile := filepath.Join(configDir, DefaultWorldsFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshaling worlds config: %w", err)
	}

	if err := os.WriteFile(worldsFile, data, 0600); err != nil {
		return fmt.Errorf("writing worlds file: %w", err)
	}

	return nil
}

// Add registers a world. An existing entry with the same name is replaced.
func (w *WorldsConfig) Add(name string, entry WorldEntry) {
	if w.Worlds == nil {
		w.Worlds = make(map[string]WorldEntry)
	}
	w.Worlds[name] = entry
}

// Remove drops a world from the registry. Removing an unknown name is a no-op.
func (w *WorldsConfig) Remove(name string) {
	if w.Worlds != nil {
		delete(w.Worlds, name)
	}
}

// Get looks up a world by name. The error for an unknown name lists a few
// registered worlds so typos are easy to spot from the CLI.
func (w *WorldsConfig) Get(name string) (*WorldEntry, error) {
	if len(w.Worlds) == 0 {
		return nil, errors.New("no worlds configured")
	}

	entry, ok := w.Worlds[name]
	if !ok {
		var b strings.Builder
		count := 0
		for k := range w.Worlds {
			if count > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			count++
			if count >= 5 {
				b.WriteString(", ...")
				break
			}
		}
		return nil, fmt.Errorf("world %q not found (available: %s)", name, b.String())
	}

	return &entry, nil
}

// GetCollection resolves a world name to its vector collection.
func (w *WorldsConfig) GetCollection(name string) (string, error) {
	entry, err := w.Get(name)
	if err != nil {
		return "", err
	}
	return entry.Collection, nil
}

// Exists reports whether a world is registered.
func (w *WorldsConfig) Exists(name string) bool {
	if w.Worlds == nil {
		return false
	}
	_, ok := w.Worlds[name]
	return ok
}

// WorldsExists reports whether a world registry file exists under basePath.
func WorldsExists(basePath string) bool {
	worldsFile := filepath.Join(basePath, DefaultConfigDir, DefaultWorldsFile)
	_, err := os.Stat(worldsFile)
	return err == nil
}
