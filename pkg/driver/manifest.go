package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project manifest looked up by the CLI.
const ManifestFileName = "lang.yml"

// Manifest represents the parsed contents of lang.yml.
type Manifest struct {
	Path        string
	Name        string
	Version     string
	Default     string
	Targets     map[string]*Target
	TargetOrder []string
}

// Target names a program-tree file to run.
type Target struct {
	Name         string
	OriginalName string
	Main         string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

var (
	ErrManifestNotFound = errors.New("manifest: lang.yml not found")
	ErrNoTargets        = errors.New("manifest: no targets defined")
)

// FindManifest walks up from start until it finds lang.yml.
func FindManifest(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("manifest: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (searched from %s)", ErrManifestNotFound, start)
		}
		dir = parent
	}
}

// LoadManifest parses lang.yml from disk, returning a validated manifest.
// Target main paths are resolved relative to the manifest directory.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(raw.Targets.items); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate(entries []targetMapEntry) error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		key := sanitizeSegment(entry.name)
		if other, exists := seen[key]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("targets %q and %q collide after sanitization", other, entry.name))
			continue
		}
		seen[key] = entry.name
		if entry.spec == nil || strings.TrimSpace(entry.spec.Main) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("target %q requires a main entrypoint", entry.name))
		}
	}
	if m.Default != "" {
		if _, ok := m.FindTarget(m.Default); !ok {
			errs.Issues = append(errs.Issues, fmt.Sprintf("default target %q is not defined", m.Default))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// DefaultTarget returns the target named by default, else the first one
// in manifest order.
func (m *Manifest) DefaultTarget() (*Target, error) {
	if m == nil || len(m.TargetOrder) == 0 {
		return nil, ErrNoTargets
	}
	if m.Default != "" {
		if target, ok := m.FindTarget(m.Default); ok {
			return target, nil
		}
		return nil, fmt.Errorf("manifest: default target %q is not defined", m.Default)
	}
	return m.Targets[m.TargetOrder[0]], nil
}

// FindTarget looks up a target by sanitized or original name.
func (m *Manifest) FindTarget(name string) (*Target, bool) {
	if m == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if key := sanitizeSegment(name); key != "" {
		if target, ok := m.Targets[key]; ok && target != nil {
			return target, true
		}
	}
	for _, key := range m.TargetOrder {
		if target := m.Targets[key]; target != nil && strings.EqualFold(target.OriginalName, name) {
			return target, true
		}
	}
	return nil, false
}

type manifestFile struct {
	Name    string    `yaml:"name"`
	Version string    `yaml:"version"`
	Default string    `yaml:"default"`
	Targets targetMap `yaml:"targets"`
}

type targetYAML struct {
	Main string `yaml:"main"`
}

type targetMap struct {
	items []targetMapEntry
}

type targetMapEntry struct {
	name string
	spec *targetYAML
}

// UnmarshalYAML keeps targets in document order. A scalar value is
// shorthand for {main: value}.
func (tm *targetMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		tm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: targets must be a mapping")
	}
	items := make([]targetMapEntry, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: targets must not use empty keys")
		}
		entry := new(targetYAML)
		switch valueNode.Kind {
		case yaml.ScalarNode:
			if valueNode.Tag != "!!null" {
				entry.Main = valueNode.Value
			}
		default:
			if err := valueNode.Decode(entry); err != nil {
				return fmt.Errorf("manifest: target %q: %w", key, err)
			}
		}
		items = append(items, targetMapEntry{name: key, spec: entry})
	}
	tm.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	dir := filepath.Dir(path)
	result := &Manifest{
		Path:        path,
		Name:        sanitizeSegment(strings.TrimSpace(mf.Name)),
		Version:     strings.TrimSpace(mf.Version),
		Default:     strings.TrimSpace(mf.Default),
		Targets:     make(map[string]*Target, len(mf.Targets.items)),
		TargetOrder: make([]string, 0, len(mf.Targets.items)),
	}
	for _, item := range mf.Targets.items {
		sanitized := sanitizeSegment(item.name)
		if _, exists := result.Targets[sanitized]; exists {
			continue
		}
		main := ""
		if item.spec != nil {
			main = strings.TrimSpace(item.spec.Main)
		}
		if main != "" && !filepath.IsAbs(main) {
			main = filepath.Join(dir, main)
		}
		result.Targets[sanitized] = &Target{Name: sanitized, OriginalName: item.name, Main: main}
		result.TargetOrder = append(result.TargetOrder, sanitized)
	}
	return result
}

func sanitizeSegment(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "-", "_")
}
