// Package store persists connection profiles to a YAML registry file.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sqltools-dev/connprof/pkg/connprof"
)

// FileName is the registry file name inside the connprof directory.
const FileName = "profiles.yaml"

// registry is the on-disk document shape.
type registry struct {
	Profiles []*connprof.Profile `yaml:"profiles"`
}

// Store is a file-backed profile registry. It is not safe for concurrent
// use from multiple processes; last writer wins.
type Store struct {
	path     string
	profiles []*connprof.Profile
}

// DefaultPath returns the platform path of the registry file, honouring
// the CONNPROF_DIR override.
func DefaultPath() (string, error) {
	if dir := os.Getenv("CONNPROF_DIR"); dir != "" {
		return filepath.Join(dir, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".connprof", FileName), nil
}

// Open loads the registry at path, creating an empty in-memory registry
// when the file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read profile registry: %w", err)
	}

	var reg registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse profile registry: %w", err)
	}
	s.profiles = reg.Profiles
	return s, nil
}

// List returns the stored profiles sorted by display name.
func (s *Store) List() []*connprof.Profile {
	out := make([]*connprof.Profile, len(s.profiles))
	copy(out, s.profiles)
	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayName() < out[j].DisplayName()
	})
	return out
}

// Get returns the profile with the given display name.
func (s *Store) Get(name string) (*connprof.Profile, error) {
	for _, p := range s.profiles {
		if p.DisplayName() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, connprof.ErrProfileNotFound)
}

// Save adds the profile and writes the registry. Duplicate display names
// are rejected so every stored profile stays addressable.
func (s *Store) Save(p *connprof.Profile) error {
	for _, existing := range s.profiles {
		if existing.DisplayName() == p.DisplayName() {
			return fmt.Errorf("%q: %w", p.DisplayName(), connprof.ErrProfileExists)
		}
	}

	stored := *p
	if !stored.SavePassword {
		stored.Password = ""
	}
	s.profiles = append(s.profiles, &stored)
	return s.flush()
}

// Remove deletes the profile with the given display name and writes the
// registry.
func (s *Store) Remove(name string) error {
	for i, p := range s.profiles {
		if p.DisplayName() == name {
			s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
			return s.flush()
		}
	}
	return fmt.Errorf("%q: %w", name, connprof.ErrProfileNotFound)
}

// KnownServers returns the deduplicated server names of stored profiles,
// in first-seen order. Implements connprof.ServerSuggester.
func (s *Store) KnownServers() []string {
	seen := make(map[string]bool)
	var servers []string
	for _, p := range s.profiles {
		if p.Server == "" || seen[p.Server] {
			continue
		}
		seen[p.Server] = true
		servers = append(servers, p.Server)
	}
	return servers
}

func (s *Store) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	data, err := yaml.Marshal(registry{Profiles: s.profiles})
	if err != nil {
		return fmt.Errorf("failed to encode profile registry: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write profile registry: %w", err)
	}
	return nil
}
