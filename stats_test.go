package main

import (
	"math"
	"reflect"
	"testing"
)

func TestReadSetCountsAndRange(t *testing.T) {
	rs := NewReadSet([]int{10, 100, 1000}, []float64{10.0, 11.0, 12.0})

	if got := rs.Reads(); got != 3 {
		t.Errorf("Reads() = %d, want 3", got)
	}
	if got := rs.Bases(); got != 1110 {
		t.Errorf("Bases() = %d, want 1110", got)
	}
	shortest, longest := rs.RangeLength()
	if shortest != 10 || longest != 1000 {
		t.Errorf("RangeLength() = (%d, %d), want (10, 1000)", shortest, longest)
	}
	if got := rs.MeanLength(); got != 370 {
		t.Errorf("MeanLength() = %d, want 370", got)
	}
	if got := rs.MedianLength(); got != 100 {
		t.Errorf("MedianLength() = %d, want 100", got)
	}
	if got := rs.N50(); got != 1000 {
		t.Errorf("N50() = %d, want 1000", got)
	}
	if got := rs.MeanQuality(); math.Abs(got-11.0) > 1e-9 {
		t.Errorf("MeanQuality() = %v, want 11.0", got)
	}
	if got := rs.MedianQuality(); math.Abs(got-11.0) > 1e-9 {
		t.Errorf("MedianQuality() = %v, want 11.0", got)
	}
}

func TestMedianLength(t *testing.T) {
	tests := []struct {
		name    string
		lengths []int
		want    int
	}{
		{"Even count averages central pair", []int{10, 10, 20, 30}, 15},
		{"Odd count takes central element", []int{10, 10, 20, 30, 40}, 20},
		{"Truncating average", []int{10, 1000}, 505},
		{"Empty", []int{}, 0},
		{"Single", []int{42}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := NewReadSet(tt.lengths, nil)
			if got := rs.MedianLength(); got != tt.want {
				t.Errorf("MedianLength() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestN50(t *testing.T) {
	tests := []struct {
		name    string
		lengths []int
		want    int
	}{
		// 70 total bases, first descending cumulative sum >= 35 lands on 20
		{"Half of bases in shorter reads", []int{10, 10, 20, 30}, 20},
		{"Dominant longest read", []int{10, 100, 1000}, 1000},
		{"Single read", []int{10}, 10},
		{"Empty", []int{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := NewReadSet(tt.lengths, nil)
			if got := rs.N50(); got != tt.want {
				t.Errorf("N50() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRangeLengthConventions(t *testing.T) {
	shortest, longest := NewReadSet([]int{}, nil).RangeLength()
	if shortest != 0 || longest != 0 {
		t.Errorf("RangeLength(empty) = (%d, %d), want (0, 0)", shortest, longest)
	}

	shortest, longest = NewReadSet([]int{10}, nil).RangeLength()
	if shortest != 10 || longest != 10 {
		t.Errorf("RangeLength([10]) = (%d, %d), want (10, 10)", shortest, longest)
	}
}

func TestEmptyReadSetConventions(t *testing.T) {
	rs := NewReadSet([]int{}, []float64{})

	if got := rs.MeanLength(); got != 0 {
		t.Errorf("MeanLength() = %d, want 0", got)
	}
	if got := rs.MedianLength(); got != 0 {
		t.Errorf("MedianLength() = %d, want 0", got)
	}
	if got := rs.N50(); got != 0 {
		t.Errorf("N50() = %d, want 0", got)
	}
	if got := rs.MeanQuality(); !math.IsNaN(got) {
		t.Errorf("MeanQuality() = %v, want NaN", got)
	}
	if got := rs.MedianQuality(); !math.IsNaN(got) {
		t.Errorf("MedianQuality() = %v, want NaN", got)
	}
}

// FASTA input: lengths but no qualities
func TestNoQualityReadSet(t *testing.T) {
	rs := NewReadSet([]int{10, 1000}, nil)

	if got := rs.MeanQuality(); !math.IsNaN(got) {
		t.Errorf("MeanQuality() = %v, want NaN", got)
	}
	if got := rs.MedianQuality(); !math.IsNaN(got) {
		t.Errorf("MedianQuality() = %v, want NaN", got)
	}
	if got := rs.TopQualities(5); len(got) != 0 {
		t.Errorf("TopQualities() = %v, want empty", got)
	}
}

func TestThresholdCounts(t *testing.T) {
	rs := NewReadSet(
		[]int{200, 500, 1000, 2000, 5000, 10000, 30000, 50000, 100000, 1000000, 1000001},
		[]float64{5.0, 7.0, 10.0, 12.0, 15.0, 20.0, 25.0, 30.0, 30.1},
	)

	wantLen := [10]uint64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	if got := rs.LengthThresholdCounts(); got != wantLen {
		t.Errorf("LengthThresholdCounts() = %v, want %v", got, wantLen)
	}

	wantQual := [8]uint64{8, 7, 6, 5, 4, 3, 2, 1}
	if got := rs.QualityThresholdCounts(); got != wantQual {
		t.Errorf("QualityThresholdCounts() = %v, want %v", got, wantQual)
	}
}

// Threshold counts never increase as the cut-point grows
func TestThresholdCountsMonotonic(t *testing.T) {
	rs := NewReadSet(
		[]int{150, 300, 800, 2500, 7000, 12000, 45000, 90000, 2000000},
		[]float64{4.5, 6.2, 9.9, 11.1, 14.8, 19.3, 26.0, 31.7},
	)

	lengthCounts := rs.LengthThresholdCounts()
	for i := 1; i < len(lengthCounts); i++ {
		if lengthCounts[i] > lengthCounts[i-1] {
			t.Errorf("length threshold counts not monotonic at %d: %v", i, lengthCounts)
		}
	}

	qualityCounts := rs.QualityThresholdCounts()
	for i := 1; i < len(qualityCounts); i++ {
		if qualityCounts[i] > qualityCounts[i-1] {
			t.Errorf("quality threshold counts not monotonic at %d: %v", i, qualityCounts)
		}
	}
}

func TestTopRankings(t *testing.T) {
	rs := NewReadSet([]int{10, 1000, 100, 500}, []float64{12.0, 8.0, 15.0, 9.5})

	if got, want := rs.TopLengths(2), []int{1000, 500}; !reflect.DeepEqual(got, want) {
		t.Errorf("TopLengths(2) = %v, want %v", got, want)
	}
	if got, want := rs.TopQualities(2), []float64{15.0, 12.0}; !reflect.DeepEqual(got, want) {
		t.Errorf("TopQualities(2) = %v, want %v", got, want)
	}

	// Requesting more than available truncates to the set size
	if got := rs.TopLengths(10); len(got) != 4 {
		t.Errorf("TopLengths(10) returned %d entries, want 4", len(got))
	}
	if got := rs.TopQualities(10); len(got) != 4 {
		t.Errorf("TopQualities(10) returned %d entries, want 4", len(got))
	}

	// A negative request yields an empty ranking, not a panic
	if got := rs.TopLengths(-1); len(got) != 0 {
		t.Errorf("TopLengths(-1) = %v, want empty", got)
	}
	if got := rs.TopQualities(-1); len(got) != 0 {
		t.Errorf("TopQualities(-1) = %v, want empty", got)
	}
}

func TestThresholdPercent(t *testing.T) {
	if got := thresholdPercent(3, 4); math.Abs(got-75.0) > 1e-12 {
		t.Errorf("thresholdPercent(3, 4) = %v, want 75.0", got)
	}
}
