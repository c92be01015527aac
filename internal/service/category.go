package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vector is a point on the five scoring axes, indexed by Axis.
type Vector [AxisCount]float64

func (v Vector) String() string {
	parts := make([]string, AxisCount)
	for i, x := range v {
		parts[i] = fmt.Sprintf("%s=%.1f", Axis(i), x)
	}
	return strings.Join(parts, " ")
}

// CategoryEntry is one totem animal. Only ID and Vector take part in matching;
// the rest is display data.
type CategoryEntry struct {
	ID          string
	Vector      Vector
	Name        string
	Description string
	URL         string
	Image       string
}

// DisplayName falls back to the ID when the entry has no name.
func (e CategoryEntry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// CategoryTable is an ordered, read-only set of entries. Order matters: the
// matcher resolves ties in favour of the earlier entry.
type CategoryTable struct {
	entries []CategoryEntry
	byID    map[string]int
}

// NewCategoryTable copies entries into a table. IDs must be non-empty and unique.
func NewCategoryTable(entries []CategoryEntry) (*CategoryTable, error) {
	t := &CategoryTable{
		entries: make([]CategoryEntry, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	copy(t.entries, entries)
	for i, e := range t.entries {
		if e.ID == "" {
			return nil, fmt.Errorf("category %d: empty id", i)
		}
		if _, dup := t.byID[e.ID]; dup {
			return nil, fmt.Errorf("category %d: duplicate id %q", i, e.ID)
		}
		t.byID[e.ID] = i
	}
	return t, nil
}

func (t *CategoryTable) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in table order.
func (t *CategoryTable) Entries() []CategoryEntry {
	out := make([]CategoryEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *CategoryTable) Lookup(id string) (CategoryEntry, bool) {
	i, ok := t.byID[id]
	if !ok {
		return CategoryEntry{}, false
	}
	return t.entries[i], true
}

type tableFile struct {
	Version int          `yaml:"version"`
	Animals []animalFile `yaml:"animals"`
}

type animalFile struct {
	ID          string    `yaml:"id"`
	Vector      []float64 `yaml:"vector"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	URL         string    `yaml:"url"`
	Image       string    `yaml:"image"`
}

// LoadCategoryTable reads a YAML category table from path.
func LoadCategoryTable(path string) (*CategoryTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("category table %s: %w", path, err)
		}
		return nil, fmt.Errorf("read category table: %w", err)
	}
	return ParseCategoryTable(data)
}

// ParseCategoryTable decodes and validates a YAML category table. Unknown fields
// and multiple documents are rejected.
func ParseCategoryTable(data []byte) (*CategoryTable, error) {
	var file tableFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse category table: %w", err)
	}
	if err := decoder.Decode(new(yaml.Node)); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse category table: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse category table: %w", err)
	}

	entries, err := file.entries()
	if err != nil {
		return nil, err
	}
	return NewCategoryTable(entries)
}

func (f tableFile) entries() ([]CategoryEntry, error) {
	collector := &issueCollector{}
	if f.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", f.Version))
	}
	if len(f.Animals) == 0 {
		collector.add("animals", "must include at least one entry")
	}

	seen := map[string]struct{}{}
	entries := make([]CategoryEntry, 0, len(f.Animals))
	for i, a := range f.Animals {
		prefix := fmt.Sprintf("animals[%d]", i)
		id := strings.TrimSpace(a.ID)
		if id == "" {
			collector.add(prefix+".id", "is required")
		} else if _, dup := seen[id]; dup {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", id))
		} else {
			seen[id] = struct{}{}
		}

		var v Vector
		if len(a.Vector) != AxisCount {
			collector.add(prefix+".vector", fmt.Sprintf("must have %d values, got %d", AxisCount, len(a.Vector)))
		} else {
			copy(v[:], a.Vector)
		}

		entries = append(entries, CategoryEntry{
			ID:          id,
			Vector:      v,
			Name:        strings.TrimSpace(a.Name),
			Description: strings.TrimSpace(a.Description),
			URL:         strings.TrimSpace(a.URL),
			Image:       strings.TrimSpace(a.Image),
		})
	}

	if err := collector.result(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Issue is a single problem found in a category table file.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports every issue found in a category table file.
type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("category table validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}
