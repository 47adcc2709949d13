// Retention selection for the two-pass "keep best" mode: rank all reads
// by quality and pick the kept set under a percent cutoff and an optional
// cumulative base budget

package main

import (
	"sort"

	"github.com/maruel/natural"
)

// keepEntry records one read seen during the first pass
type keepEntry struct {
	Ordinal int     // 0-based position in stream order
	ID      string  // read identifier, used for tie-breaking only
	Length  int     // bases
	Quality float64 // mean read quality
}

// keepEntryList sorts entries by descending quality; equal qualities fall
// back to natural order of the read IDs so ranking is deterministic
type keepEntryList []keepEntry

func (list keepEntryList) Len() int { return len(list) }
func (list keepEntryList) Less(i, j int) bool {
	if list[i].Quality > list[j].Quality {
		return true
	}
	if list[i].Quality == list[j].Quality {
		return natural.Less(list[i].ID, list[j].ID)
	}
	return false
}
func (list keepEntryList) Swap(i, j int) { list[i], list[j] = list[j], list[i] }

// selectReads picks the kept read set. Entries are ranked by descending
// quality, truncated to floor(n*keepPercent/100), and, when a base budget
// is set, walked in rank order accumulating lengths; the first entry
// whose inclusion would reach or exceed the budget is excluded and the
// walk stops (reads are atomic, never split).
//
// keepPercent of 0 means keep all (100%); keepBases of 0 means no budget.
// The returned map is keyed by stream ordinal for O(1) membership tests
// during the second pass.
func selectReads(entries []keepEntry, keepPercent float64, keepBases uint64) map[int]float64 {
	kept := make(map[int]float64, len(entries))
	if len(entries) == 0 {
		return kept
	}
	if keepPercent == 0 {
		keepPercent = 100
	}

	ranked := make(keepEntryList, len(entries))
	copy(ranked, entries)
	sort.Sort(ranked)

	nKeep := int(float64(len(ranked)) * keepPercent / 100.0)
	ranked = ranked[:nKeep]

	if keepBases > 0 {
		var cumBases uint64
		for _, e := range ranked {
			if cumBases+uint64(e.Length) >= keepBases {
				break
			}
			cumBases += uint64(e.Length)
			kept[e.Ordinal] = e.Quality
		}
		return kept
	}

	for _, e := range ranked {
		kept[e.Ordinal] = e.Quality
	}
	return kept
}
