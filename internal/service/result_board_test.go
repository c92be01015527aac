package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultFor(id string) Result {
	return Result{Category: CategoryEntry{ID: id}, Vector: Vector{1, 1, 1, 1, 1}}
}

func TestResultBoardLatestWins(t *testing.T) {
	board := NewMemoryResultBoard()
	board.now = func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) }

	_, ok := board.Latest(1)
	assert.False(t, ok)

	board.AddEntry(1, "ann", "Ann", "s1", resultFor("otter"))
	board.AddEntry(1, "ann", "Ann", "s2", resultFor("bat"))

	entry, ok := board.Latest(1)
	require.True(t, ok)
	assert.Equal(t, "bat", entry.CategoryID)
	assert.Equal(t, "s2", entry.SessionID)
	assert.Equal(t, "01.05.2024 10:30", entry.Date)
}

func TestResultBoardGetTop(t *testing.T) {
	board := NewMemoryResultBoard()
	board.AddEntry(1, "", "A", "", resultFor("otter"))
	board.AddEntry(2, "", "B", "", resultFor("bat"))
	board.AddEntry(3, "", "C", "", resultFor("otter"))
	board.AddEntry(4, "", "D", "", resultFor("alpaca"))

	assert.Equal(t, []CategoryCount{
		{CategoryID: "otter", Count: 2},
		{CategoryID: "alpaca", Count: 1},
		{CategoryID: "bat", Count: 1},
	}, board.GetTop(0))
	assert.Equal(t, []CategoryCount{{CategoryID: "otter", Count: 2}}, board.GetTop(1))
	assert.Len(t, board.GetTop(10), 3)
}

func TestResultBoardConcurrentAdds(t *testing.T) {
	board := NewMemoryResultBoard()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			board.AddEntry(id, "", "", "", resultFor("otter"))
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, []CategoryCount{{CategoryID: "otter", Count: 50}}, board.GetTop(0))
}
