package service

import (
	"sort"
	"sync"
	"time"
)

type BoardEntry struct {
	UserID     int64
	Username   string
	FirstName  string
	SessionID  string
	CategoryID string
	Vector     Vector
	Date       string
}

// CategoryCount is how many users currently hold a category.
type CategoryCount struct {
	CategoryID string
	Count      int
}

// ResultBoard keeps each user's latest quiz result for the lifetime of the
// process.
type ResultBoard interface {
	AddEntry(userID int64, username, firstName, sessionID string, result Result)
	Latest(userID int64) (BoardEntry, bool)
	GetTop(limit int) []CategoryCount
}

// MemoryResultBoard is the in-memory ResultBoard. Data is lost on restart.
type MemoryResultBoard struct {
	mu      sync.RWMutex
	entries []BoardEntry
	now     func() time.Time
}

func NewMemoryResultBoard() *MemoryResultBoard {
	return &MemoryResultBoard{
		entries: make([]BoardEntry, 0),
		now:     time.Now,
	}
}

func (mb *MemoryResultBoard) AddEntry(userID int64, username, firstName, sessionID string, result Result) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	newEntry := BoardEntry{
		UserID:     userID,
		Username:   username,
		FirstName:  firstName,
		SessionID:  sessionID,
		CategoryID: result.Category.ID,
		Vector:     result.Vector,
		Date:       mb.now().Format("02.01.2006 15:04"),
	}

	for i, entry := range mb.entries {
		if entry.UserID == userID {
			mb.entries[i] = newEntry
			return
		}
	}
	mb.entries = append(mb.entries, newEntry)
}

func (mb *MemoryResultBoard) Latest(userID int64) (BoardEntry, bool) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	for _, entry := range mb.entries {
		if entry.UserID == userID {
			return entry, true
		}
	}
	return BoardEntry{}, false
}

// GetTop returns categories by number of users holding them, most popular
// first, ties broken by category ID. limit <= 0 returns all.
func (mb *MemoryResultBoard) GetTop(limit int) []CategoryCount {
	mb.mu.RLock()
	counts := make(map[string]int)
	for _, entry := range mb.entries {
		counts[entry.CategoryID]++
	}
	mb.mu.RUnlock()

	sorted := make([]CategoryCount, 0, len(counts))
	for id, n := range counts {
		sorted = append(sorted, CategoryCount{CategoryID: id, Count: n})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count == sorted[j].Count {
			return sorted[i].CategoryID < sorted[j].CategoryID
		}
		return sorted[i].Count > sorted[j].Count
	})

	if limit <= 0 || limit > len(sorted) {
		limit = len(sorted)
	}
	return sorted[:limit]
}
