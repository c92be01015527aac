package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoluyanbIch/ZooTotemBot/data"
)

func embeddedTable(t *testing.T) *CategoryTable {
	t.Helper()
	table, err := ParseCategoryTable(data.Animals)
	require.NoError(t, err)
	return table
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0.0, Distance(Vector{1, 2, 3, 2, 1}, Vector{1, 2, 3, 2, 1}))
	assert.Equal(t, 4.5, Distance(Vector{1, 1, 1, 1, 1}, Vector{2, 0, 1.5, 3, 1}))
}

func TestBestMatchExact(t *testing.T) {
	match, err := BestMatch(Vector{3, 2, 1, 2, 2}, embeddedTable(t))
	require.NoError(t, err)
	assert.Equal(t, "steller_sea_lion", match.Entry.ID)
	assert.Equal(t, 0.0, match.Distance)
}

func TestBestMatchEveryEntryMatchesItself(t *testing.T) {
	table := embeddedTable(t)
	for _, e := range table.Entries() {
		match, err := BestMatch(e.Vector, table)
		require.NoError(t, err)
		assert.Equal(t, e.ID, match.Entry.ID)
		assert.Zero(t, match.Distance)
	}
}

func TestBestMatchNearest(t *testing.T) {
	// elephant (3,1,1,2,1) is 0.5 away, steller_sea_lion 1.5.
	match, err := BestMatch(Vector{3, 1, 1, 2, 1.5}, embeddedTable(t))
	require.NoError(t, err)
	assert.Equal(t, "elephant", match.Entry.ID)
	assert.Equal(t, 0.5, match.Distance)
}

func TestBestMatchTieGoesToFirstEntry(t *testing.T) {
	table, err := NewCategoryTable([]CategoryEntry{
		{ID: "first", Vector: Vector{1, 1, 1, 1, 1}},
		{ID: "second", Vector: Vector{3, 3, 3, 3, 3}},
		{ID: "third", Vector: Vector{1, 1, 1, 1, 1}},
	})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		match, err := BestMatch(Vector{2, 2, 2, 2, 2}, table)
		require.NoError(t, err)
		assert.Equal(t, "first", match.Entry.ID)
		assert.Equal(t, 5.0, match.Distance)
	}
}

func TestBestMatchEqualDistanceInTable(t *testing.T) {
	// otter (1,2,3,3,2) and raccoon (1,1,3,3,2) are both 0.5 away; otter is listed first.
	match, err := BestMatch(Vector{1, 1.5, 3, 3, 2}, embeddedTable(t))
	require.NoError(t, err)
	assert.Equal(t, "otter", match.Entry.ID)
	assert.Equal(t, 0.5, match.Distance)
}

func TestBestMatchFarAwayStillResolves(t *testing.T) {
	match, err := BestMatch(Vector{100, -100, 100, -100, 100}, embeddedTable(t))
	require.NoError(t, err)
	assert.NotEmpty(t, match.Entry.ID)
}

func TestBestMatchEmptyTable(t *testing.T) {
	empty, err := NewCategoryTable(nil)
	require.NoError(t, err)

	_, err = BestMatch(Vector{1, 1, 1, 1, 1}, empty)
	assert.ErrorIs(t, err, ErrEmptyCategoryTable)

	_, err = BestMatch(Vector{1, 1, 1, 1, 1}, nil)
	assert.ErrorIs(t, err, ErrEmptyCategoryTable)
}
