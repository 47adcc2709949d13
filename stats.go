// Read set statistics: counts, ranges, N50, medians, threshold tables
// and top rankings over the lengths/qualities collected by a filter pass

package main

import (
	"math"
	"sort"
)

// Fixed reporting cut-points. Counts are of reads strictly exceeding
// each threshold.
var (
	lengthThresholds  = [10]int{200, 500, 1000, 2000, 5000, 10000, 30000, 50000, 100000, 1000000}
	qualityThresholds = [8]float64{5, 7, 10, 12, 15, 20, 25, 30}
)

// ReadSet holds the per-read lengths and qualities of one filter pass.
// Qualities is empty for FASTA input or when quality computation was
// skipped; otherwise it is index-aligned with Lengths until one of the
// statistics methods sorts the vectors in place. A ReadSet feeds exactly
// one summary and is not reused afterwards.
type ReadSet struct {
	Lengths   []int
	Qualities []float64
}

// NewReadSet creates a ReadSet from the vectors returned by a filter pass
func NewReadSet(lengths []int, qualities []float64) *ReadSet {
	return &ReadSet{
		Lengths:   lengths,
		Qualities: qualities,
	}
}

// Reads returns the number of reads in the set
func (rs *ReadSet) Reads() uint64 {
	return uint64(len(rs.Lengths))
}

// Bases returns the total number of bases, accumulated in 64 bits so
// large read sets cannot overflow the sum
func (rs *ReadSet) Bases() uint64 {
	var sum uint64
	for _, l := range rs.Lengths {
		sum += uint64(l)
	}
	return sum
}

// RangeLength returns the shortest and longest read length.
// An empty set yields (0, 0) by convention.
func (rs *ReadSet) RangeLength() (int, int) {
	switch len(rs.Lengths) {
	case 0:
		return 0, 0
	case 1:
		return rs.Lengths[0], rs.Lengths[0]
	}
	shortest, longest := rs.Lengths[0], rs.Lengths[0]
	for _, l := range rs.Lengths[1:] {
		if l < shortest {
			shortest = l
		}
		if l > longest {
			longest = l
		}
	}
	return shortest, longest
}

// MeanLength returns the truncating integer mean read length,
// 0 for an empty set
func (rs *ReadSet) MeanLength() int {
	n := rs.Reads()
	if n == 0 {
		return 0
	}
	return int(rs.Bases() / n)
}

// MedianLength returns the median read length: the central element for an
// odd count, the truncating mean of the two central elements for an even
// count, 0 for an empty set. Sorts Lengths ascending in place.
func (rs *ReadSet) MedianLength() int {
	n := len(rs.Lengths)
	if n == 0 {
		return 0
	}
	sort.Ints(rs.Lengths)
	mid := n / 2
	if n%2 == 0 {
		return (rs.Lengths[mid-1] + rs.Lengths[mid]) / 2
	}
	return rs.Lengths[mid]
}

// N50 returns the length of the read at which the cumulative sum of
// length-descending reads first reaches half the total bases.
// Sorts Lengths descending in place.
func (rs *ReadSet) N50() int {
	if len(rs.Lengths) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rs.Lengths)))
	stop := rs.Bases() / 2
	var cumSum uint64
	for _, l := range rs.Lengths {
		cumSum += uint64(l)
		if cumSum >= stop {
			return l
		}
	}
	return 0
}

// MeanQuality returns the mean read quality, or NaN when the set carries
// no quality values (FASTA input or fast mode)
func (rs *ReadSet) MeanQuality() float64 {
	if len(rs.Qualities) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, q := range rs.Qualities {
		sum += q
	}
	return sum / float64(len(rs.Qualities))
}

// MedianQuality returns the median read quality, or NaN when the set
// carries no quality values. Sorts Qualities ascending in place.
func (rs *ReadSet) MedianQuality() float64 {
	n := len(rs.Qualities)
	if n == 0 {
		return math.NaN()
	}
	sort.Float64s(rs.Qualities)
	mid := n / 2
	if n%2 == 0 {
		return (rs.Qualities[mid-1] + rs.Qualities[mid]) / 2
	}
	return rs.Qualities[mid]
}

// LengthThresholdCounts returns, for each fixed length cut-point, the
// number of reads strictly longer than it. Counts are monotonically
// non-increasing as the cut-point grows.
func (rs *ReadSet) LengthThresholdCounts() [10]uint64 {
	var counts [10]uint64
	for _, l := range rs.Lengths {
		for i, t := range lengthThresholds {
			if l > t {
				counts[i]++
			}
		}
	}
	return counts
}

// QualityThresholdCounts returns, for each fixed quality cut-point, the
// number of reads with mean quality strictly above it
func (rs *ReadSet) QualityThresholdCounts() [8]uint64 {
	var counts [8]uint64
	for _, q := range rs.Qualities {
		for i, t := range qualityThresholds {
			if q > t {
				counts[i]++
			}
		}
	}
	return counts
}

// TopLengths returns the min(top, reads) largest read lengths in
// descending order. Sorts Lengths descending in place.
func (rs *ReadSet) TopLengths(top int) []int {
	if top < 0 {
		top = 0
	}
	if top > len(rs.Lengths) {
		top = len(rs.Lengths)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rs.Lengths)))
	ranked := make([]int, top)
	copy(ranked, rs.Lengths[:top])
	return ranked
}

// TopQualities returns the min(top, reads-with-quality) largest read
// qualities in descending order, independent of TopLengths (the i-th top
// quality does not belong to the read with the i-th top length).
// Sorts Qualities descending in place.
func (rs *ReadSet) TopQualities(top int) []float64 {
	if top < 0 {
		top = 0
	}
	if top > len(rs.Qualities) {
		top = len(rs.Qualities)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(rs.Qualities)))
	ranked := make([]float64, top)
	copy(ranked, rs.Qualities[:top])
	return ranked
}

// thresholdPercent converts a threshold count to a percentage of reads
func thresholdPercent(count, reads uint64) float64 {
	return (float64(count) / float64(reads)) * 100.0
}
