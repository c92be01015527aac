package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoluyanbIch/ZooTotemBot/data"
)

func TestEmbeddedCategoryTable(t *testing.T) {
	table, err := ParseCategoryTable(data.Animals)
	require.NoError(t, err)
	assert.Equal(t, 14, table.Len())

	entries := table.Entries()
	assert.Equal(t, "steller_sea_lion", entries[0].ID)
	assert.Equal(t, Vector{3, 2, 1, 2, 2}, entries[0].Vector)
	assert.Equal(t, "musk_ox", entries[len(entries)-1].ID)

	bat, ok := table.Lookup("bat")
	require.True(t, ok)
	assert.Equal(t, Vector{1, 3, 2, 3, 2}, bat.Vector)
	assert.Equal(t, "Bat", bat.DisplayName())
}

func TestNewCategoryTableRejectsDuplicates(t *testing.T) {
	_, err := NewCategoryTable([]CategoryEntry{
		{ID: "otter"},
		{ID: "otter", Vector: Vector{1, 1, 1, 1, 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewCategoryTableRejectsEmptyID(t *testing.T) {
	_, err := NewCategoryTable([]CategoryEntry{{Name: "nameless"}})
	require.Error(t, err)
}

func TestCategoryTableIsolatedFromCaller(t *testing.T) {
	entries := []CategoryEntry{{ID: "otter", Vector: Vector{1, 2, 3, 3, 2}}}
	table, err := NewCategoryTable(entries)
	require.NoError(t, err)

	entries[0].ID = "changed"
	got := table.Entries()
	got[0].Vector[0] = 9

	e, ok := table.Lookup("otter")
	require.True(t, ok)
	assert.Equal(t, 1.0, e.Vector[0])
}

func TestParseCategoryTableValidation(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		fields []string
	}{
		{
			name:   "wrong version and no animals",
			input:  "version: 2\nanimals: []\n",
			fields: []string{"version", "animals"},
		},
		{
			name:   "short vector",
			input:  "version: 1\nanimals:\n  - id: otter\n    vector: [1, 2]\n",
			fields: []string{"animals[0].vector"},
		},
		{
			name:   "duplicate id",
			input:  "version: 1\nanimals:\n  - id: otter\n    vector: [1, 2, 3, 3, 2]\n  - id: otter\n    vector: [1, 2, 3, 3, 2]\n",
			fields: []string{"animals[1].id"},
		},
		{
			name:   "missing id",
			input:  "version: 1\nanimals:\n  - vector: [1, 2, 3, 3, 2]\n",
			fields: []string{"animals[0].id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCategoryTable([]byte(tt.input))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)

			var fields []string
			for _, issue := range verr.Issues {
				fields = append(fields, issue.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestParseCategoryTableRejectsUnknownFields(t *testing.T) {
	_, err := ParseCategoryTable([]byte("version: 1\nanimals:\n  - id: otter\n    vector: [1, 2, 3, 3, 2]\n    colour: brown\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestParseCategoryTableRejectsMultipleDocuments(t *testing.T) {
	doc := "version: 1\nanimals:\n  - id: otter\n    vector: [1, 2, 3, 3, 2]\n"
	_, err := ParseCategoryTable([]byte(doc + "---\n" + doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple documents")
}

func TestLoadCategoryTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "animals.yaml")
	require.NoError(t, os.WriteFile(path, data.Animals, 0o644))

	table, err := LoadCategoryTable(path)
	require.NoError(t, err)
	assert.Equal(t, 14, table.Len())

	_, err = LoadCategoryTable(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVectorString(t *testing.T) {
	assert.Equal(t, "size=2.0 habitat=1.5 speed=3.0 rarity=1.0 diet=2.0", Vector{2, 1.5, 3, 1, 2}.String())
}
