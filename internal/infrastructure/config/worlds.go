package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// WorldsConfig is the registry of provisioned worlds, persisted as
// .bastion/worlds.yaml next to the main config.
type WorldsConfig struct {
	Worlds map[string]WorldEntry `yaml:"worlds,omitempty"`
}

// WorldEntry records where a world keeps its indexed chronicle.
type WorldEntry struct {
	Collection  string `yaml:"collection"`
	Description string `yaml:"description,omitempty"`
}

// LoadWorlds reads the world registry under basePath. A missing file
// is not an error: campaigns start with no worlds provisioned.
func LoadWorlds(basePath string) (*WorldsConfig, error) {
	cfg := &WorldsConfig{Worlds: make(map[string]WorldEntry)}

	data, err := os.ReadFile(WorldsFilePath(basePath))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading world registry: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing world registry: %w", err)
	}
	if cfg.Worlds == nil {
		cfg.Worlds = make(map[string]WorldEntry)
	}
	return cfg, nil
}

// Save persists the registry, creating the config directory on first use.
func (w *WorldsConfig) Save(basePath string) error {
	if err := os.MkdirAll(filepath.Join(basePath, DefaultConfigDir), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshaling world registry: %w", err)
	}
	if err := os.WriteFile(WorldsFilePath(basePath), data, 0600); err != nil {
		return fmt.Errorf("writing world registry: %w", err)
	}
	return nil
}

// Add registers a world, replacing any entry under the same name.
func (w *WorldsConfig) Add(name string, entry WorldEntry) {
	if w.Worlds == nil {
		w.Worlds = make(map[string]WorldEntry)
	}
	w.Worlds[name] = entry
}

// Remove drops a world from the registry.
func (w *WorldsConfig) Remove(name string) {
	delete(w.Worlds, name)
}

// Get looks up a world entry. The not-found error lists registered
// worlds so a mistyped name is easy to correct.
func (w *WorldsConfig) Get(name string) (*WorldEntry, error) {
	if len(w.Worlds) == 0 {
		return nil, errors.New("no worlds registered; run 'bastion init' first")
	}

	entry, ok := w.Worlds[name]
	if !ok {
		return nil, fmt.Errorf("world %q not found (registered: %s)", name, w.summary())
	}
	return &entry, nil
}

// GetCollection resolves the collection name backing a world's chronicle index.
func (w *WorldsConfig) GetCollection(name string) (string, error) {
	entry, err := w.Get(name)
	if err != nil {
		return "", err
	}
	return entry.Collection, nil
}

// Exists reports whether a world is registered.
func (w *WorldsConfig) Exists(name string) bool {
	_, ok := w.Worlds[name]
	return ok
}

// summary renders up to five registered world names, sorted for stable output.
func (w *WorldsConfig) summary() string {
	names := make([]string, 0, len(w.Worlds))
	for name := range w.Worlds {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 5 {
		names = append(names[:5], "...")
	}
	return strings.Join(names, ", ")
}

// WorldsExists reports whether a registry file is present under basePath.
func WorldsExists(basePath string) bool {
	_, err := os.Stat(WorldsFilePath(basePath))
	return err == nil
}
