// Per-read quality score computation (Phred+33)

package main

import (
	"math"
)

var errorProbs [256]float64

func init() {
	// Pre-compute error probabilities for Phred scores
	for i := range errorProbs {
		errorProbs[i] = math.Pow(10, float64(i-PHRED_OFFSET)/-10)
	}
}

// Sum of error probabilities for quality scores
func sumErrorProbs(qual []byte) float64 {
	var sum float64
	for _, q := range qual {
		sum += errorProbs[q]
	}
	return sum
}

// meanErrorProbability returns the arithmetic mean of the per-base error
// probabilities encoded in qual (Sanger Phred+33, ASCII 33-126, Q 0-93).
//
// Averaging the error probabilities, rather than the Q values directly, is
// the standard way to combine basecall accuracies for nanopore reads:
// https://community.nanoporetech.com/technical_documents/data-analysis/
//
// An empty slice yields NaN (0/0); callers must not score records without
// quality bytes.
func meanErrorProbability(qual []byte) float64 {
	return sumErrorProbs(qual) / float64(len(qual))
}

// meanQuality returns the mean read quality, -10*log10 of the mean
// per-base error probability.
func meanQuality(qual []byte) float64 {
	return -10 * math.Log10(meanErrorProbability(qual))
}
