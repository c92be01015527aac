package service

import "math"

// Match is the outcome of BestMatch.
type Match struct {
	Entry    CategoryEntry
	Distance float64
}

// Distance is the L1 (Manhattan) distance between two vectors.
func Distance(a, b Vector) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// BestMatch returns the entry nearest to target. Ties go to the entry that comes
// first in table order. There is no cutoff: any non-empty table yields a match.
func BestMatch(target Vector, table *CategoryTable) (Match, error) {
	if table == nil || table.Len() == 0 {
		return Match{}, ErrEmptyCategoryTable
	}

	best := 0
	minDistance := Distance(target, table.entries[0].Vector)
	for i := 1; i < len(table.entries); i++ {
		if d := Distance(target, table.entries[i].Vector); d < minDistance {
			minDistance = d
			best = i
		}
	}
	return Match{Entry: table.entries[best], Distance: minDistance}, nil
}
