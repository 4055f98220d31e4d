package profiles

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/zerocore/aistream/providers/ai"
)

var (
	// ErrNotFound is returned when no profile matches a selection.
	ErrNotFound = errors.New("profile not found")

	// ErrMultipleDefaults is returned when more than one profile is marked default.
	ErrMultipleDefaults = errors.New("more than one default profile")

	// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported profiles file format")
)

// file is the on-disk document.
type file struct {
	Profiles []ai.ProviderProfile `yaml:"profiles" toml:"profiles"`
}

// Set is a validated, immutable list of profiles. It keeps API keys as
// written in the file; profiles handed out by its accessors carry the keys
// expanded from the environment.
type Set struct {
	profiles []ai.ProviderProfile
}

// idNamespace scopes the name-derived ids of profiles that have none.
var idNamespace = uuid.MustParse("5f0c3a8e-7d2b-4c61-9a4e-2b8f6d1e0c37")

// derivedID returns the id a profile without one gets: a SHA-1 UUID of its
// case-folded name, so the same file yields the same ids on every load.
func derivedID(name string) string {
	return uuid.NewSHA1(idNamespace, []byte(strings.ToLower(strings.TrimSpace(name)))).String()
}

// Load reads and validates the profiles file at path. The format follows the
// extension: .yaml/.yml or .toml.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes and validates a profiles document. ext selects the decoder.
func Parse(data []byte, ext string) (*Set, error) {
	var doc file
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML profiles: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML profiles: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return New(doc.Profiles)
}

// New validates profiles and returns them as a Set. Missing IDs are derived
// from the profile name and format types are normalised. Names must be
// unique, ignoring case.
func New(profiles []ai.ProviderProfile) (*Set, error) {
	out := make([]ai.ProviderProfile, 0, len(profiles))
	seenIDs := make(map[string]struct{}, len(profiles))
	seenNames := make(map[string]struct{}, len(profiles))
	defaults := 0

	for index, profile := range profiles {
		name := strings.ToLower(strings.TrimSpace(profile.Name))
		if name == "" {
			return nil, fmt.Errorf("profile %d: name is required", index)
		}
		if _, dup := seenNames[name]; dup {
			return nil, fmt.Errorf("profile %q: duplicate name", profile.Name)
		}
		seenNames[name] = struct{}{}

		if profile.ID == "" {
			profile.ID = derivedID(profile.Name)
		}
		if _, dup := seenIDs[profile.ID]; dup {
			return nil, fmt.Errorf("profile %q: duplicate id %q", profile.Name, profile.ID)
		}
		seenIDs[profile.ID] = struct{}{}

		profile.FormatType = profile.Format()
		if profile.IsDefault {
			defaults++
		}
		out = append(out, profile)
	}

	if defaults > 1 {
		return nil, fmt.Errorf("%w: %d profiles have is_default set", ErrMultipleDefaults, defaults)
	}
	return &Set{profiles: out}, nil
}

// resolve returns profile with its API key expanded from the environment.
func resolve(profile ai.ProviderProfile) ai.ProviderProfile {
	profile.APIKey = os.ExpandEnv(profile.APIKey)
	return profile
}

// All returns a copy of every profile in file order.
func (s *Set) All() []ai.ProviderProfile {
	out := make([]ai.ProviderProfile, len(s.profiles))
	for i, profile := range s.profiles {
		out[i] = resolve(profile)
	}
	return out
}

// Len returns the number of profiles.
func (s *Set) Len() int {
	return len(s.profiles)
}

// Default returns the profile marked default, or the first profile when none
// is. ok is false for an empty set.
func (s *Set) Default() (ai.ProviderProfile, bool) {
	for _, profile := range s.profiles {
		if profile.IsDefault {
			return resolve(profile), true
		}
	}
	if len(s.profiles) == 0 {
		return ai.ProviderProfile{}, false
	}
	return resolve(s.profiles[0]), true
}

// ByName returns the profile whose name matches, ignoring case.
func (s *Set) ByName(name string) (ai.ProviderProfile, bool) {
	for _, profile := range s.profiles {
		if strings.EqualFold(profile.Name, strings.TrimSpace(name)) {
			return resolve(profile), true
		}
	}
	return ai.ProviderProfile{}, false
}

// ByID returns the profile with the given id.
func (s *Set) ByID(id string) (ai.ProviderProfile, bool) {
	for _, profile := range s.profiles {
		if profile.ID == id {
			return resolve(profile), true
		}
	}
	return ai.ProviderProfile{}, false
}

// Select resolves a user selection: empty means the default profile,
// anything else is matched by id, then by name.
func (s *Set) Select(selection string) (ai.ProviderProfile, error) {
	if selection == "" {
		if profile, ok := s.Default(); ok {
			return profile, nil
		}
		return ai.ProviderProfile{}, fmt.Errorf("%w: no profiles configured", ErrNotFound)
	}
	if profile, ok := s.ByID(selection); ok {
		return profile, nil
	}
	if profile, ok := s.ByName(selection); ok {
		return profile, nil
	}
	return ai.ProviderProfile{}, fmt.Errorf("%w: %q", ErrNotFound, selection)
}

// WithDefault returns a copy of the set in which the profile matching
// selection (by id, then name) is the only default.
func (s *Set) WithDefault(selection string) (*Set, error) {
	target, err := s.Select(selection)
	if err != nil {
		return nil, err
	}
	out := make([]ai.ProviderProfile, len(s.profiles))
	for i, profile := range s.profiles {
		profile.IsDefault = profile.ID == target.ID
		out[i] = profile
	}
	return &Set{profiles: out}, nil
}

// Save writes the set to path in the format its extension names. API keys
// are written as loaded, so ${VAR} references stay references, and derived
// ids are written out so they survive a later rename.
func (s *Set) Save(path string) error {
	doc := file{Profiles: s.profiles}

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		encoded, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode YAML profiles: %w", err)
		}
		data = encoded
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return fmt.Errorf("failed to encode TOML profiles: %w", err)
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write profiles file: %w", err)
	}
	return nil
}
