// Summary report construction and rendering (plain text and JSON)

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/shenwei356/xopen"
)

// ThresholdCount is one row of a threshold table: the number and share of
// reads strictly exceeding the cut-point
type ThresholdCount struct {
	Threshold float64 `json:"threshold"`
	Count     uint64  `json:"count"`
	Percent   float64 `json:"percent"`
}

// Summary is the plain data form of one read set report. Field names and
// order are shared between the single-line text rendering and the JSON
// rendering.
type Summary struct {
	Reads             uint64           `json:"reads"`
	Bases             uint64           `json:"bases"`
	N50               int              `json:"n50"`
	Longest           int              `json:"longest"`
	Shortest          int              `json:"shortest"`
	MeanLength        int              `json:"mean_length"`
	MedianLength      int              `json:"median_length"`
	MeanQuality       *float64         `json:"mean_quality"`
	MedianQuality     *float64         `json:"median_quality"`
	Filtered          uint64           `json:"filtered"`
	LengthThresholds  []ThresholdCount `json:"length_thresholds"`
	QualityThresholds []ThresholdCount `json:"quality_thresholds"`
	TopLengths        []int            `json:"top_lengths"`
	TopQualities      []float64        `json:"top_qualities"`
}

// buildSummary computes all statistics of a read set. The read set is
// consumed: its vectors are re-sorted in place by the individual
// statistics and must not be relied on afterwards.
func buildSummary(rs *ReadSet, top int, filtered uint64) Summary {
	shortest, longest := rs.RangeLength()

	s := Summary{
		Reads:        rs.Reads(),
		Bases:        rs.Bases(),
		Longest:      longest,
		Shortest:     shortest,
		MeanLength:   rs.MeanLength(),
		MedianLength: rs.MedianLength(),
		N50:          rs.N50(),
		Filtered:     filtered,
		TopLengths:   rs.TopLengths(top),
	}

	// Quality statistics carry NaN sentinels on FASTA input; JSON cannot
	// express NaN, so the struct holds nil instead
	if len(rs.Qualities) > 0 {
		meanQual := rs.MeanQuality()
		medianQual := rs.MedianQuality()
		s.MeanQuality = &meanQual
		s.MedianQuality = &medianQual
		s.TopQualities = rs.TopQualities(top)
	}

	lengthCounts := rs.LengthThresholdCounts()
	s.LengthThresholds = make([]ThresholdCount, len(lengthCounts))
	for i, c := range lengthCounts {
		s.LengthThresholds[i] = ThresholdCount{
			Threshold: float64(lengthThresholds[i]),
			Count:     c,
			Percent:   thresholdPercent(c, s.Reads),
		}
	}

	if len(rs.Qualities) > 0 {
		qualityCounts := rs.QualityThresholdCounts()
		s.QualityThresholds = make([]ThresholdCount, len(qualityCounts))
		for i, c := range qualityCounts {
			s.QualityThresholds[i] = ThresholdCount{
				Threshold: qualityThresholds[i],
				Count:     c,
				Percent:   thresholdPercent(c, s.Reads),
			}
		}
	}

	return s
}

// summarize writes the optional per-read dump files, then renders the
// summary of the read set to the report target. An empty read set is a
// legitimate outcome, reported as a message rather than an error.
func summarize(opt *appOptions, rs *ReadSet, filtered uint64) error {
	// Dump files preserve acceptance order, so they are written before
	// the statistics re-sort the vectors
	if opt.lengthsFile != "" {
		if err := writeLengthsFile(opt.lengthsFile, rs.Lengths); err != nil {
			return err
		}
	}
	if opt.qualsFile != "" && len(rs.Qualities) > 0 {
		if err := writeQualitiesFile(opt.qualsFile, rs.Qualities); err != nil {
			return err
		}
	}

	if rs.Reads() == 0 {
		fmt.Fprintln(os.Stderr, "no reads survived filtering")
		return nil
	}

	summary := buildSummary(rs, opt.top, filtered)

	var w io.Writer = os.Stderr
	if opt.report != "" {
		outfh, err := xopen.Wopen(opt.report)
		if err != nil {
			return fmt.Errorf("error creating report file: %v", err)
		}
		defer outfh.Close()
		w = outfh
	}

	if opt.json {
		return renderJSON(w, summary)
	}
	return renderText(w, summary, opt.verbosity, opt.header)
}

// renderJSON writes the summary as indented JSON
func renderJSON(w io.Writer, s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding report: %v", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// quality value for text rendering; the nil sentinel prints as NaN
func textQuality(q *float64) float64 {
	if q == nil {
		return math.NaN()
	}
	return *q
}

// renderText writes the summary at the requested verbosity:
//
//	0: single whitespace-delimited line, optionally preceded by a header line
//	1: pretty block
//	2: adds the length and quality threshold tables
//	3: adds the top ranked read lengths and qualities
func renderText(w io.Writer, s Summary, verbosity int, header bool) error {
	switch verbosity {
	case 0:
		if header {
			fmt.Fprintln(w, "reads bases n50 longest shortest mean_length median_length mean_quality median_quality filtered")
		}
		fmt.Fprintf(w, "%d %d %d %d %d %d %d %.1f %.1f %d\n",
			s.Reads, s.Bases, s.N50, s.Longest, s.Shortest,
			s.MeanLength, s.MedianLength,
			textQuality(s.MeanQuality), textQuality(s.MedianQuality),
			s.Filtered)
		return nil
	case 1, 2, 3:
		fmt.Fprintf(w, `
Read Summary
====================

Number of reads:      %d
Number of bases:      %d
N50 read length:      %d
Longest read:         %d
Shortest read:        %d
Mean read length:     %d
Median read length:   %d
Mean read quality:    %.2f
Median read quality:  %.2f
Filtered reads:       %d
`,
			s.Reads, s.Bases, s.N50, s.Longest, s.Shortest,
			s.MeanLength, s.MedianLength,
			textQuality(s.MeanQuality), textQuality(s.MedianQuality),
			s.Filtered)
		if verbosity > 1 {
			renderThresholds(w, s)
		}
		if verbosity > 2 {
			renderRanking(w, s)
		}
		return nil
	default:
		return fmt.Errorf("%d is not a valid level of verbosity", verbosity)
	}
}

// renderThresholds prints the threshold tables. The quality table is
// omitted when the read set carried no quality values.
func renderThresholds(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\nRead length thresholds (bp)\n\n")
	for _, t := range s.LengthThresholds {
		fmt.Fprintf(w, "> %-9.0f %-12d %04.1f%%\n", t.Threshold, t.Count, t.Percent)
	}

	if len(s.QualityThresholds) > 0 {
		fmt.Fprintf(w, "\nRead quality thresholds (Q)\n\n")
		for _, t := range s.QualityThresholds {
			fmt.Fprintf(w, "> %-3.0f %-12d %04.1f%%\n", t.Threshold, t.Count, t.Percent)
		}
	}
}

// renderRanking prints the top ranked read lengths and qualities
func renderRanking(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\nTop ranking read lengths (bp)\n\n")
	for i, l := range s.TopLengths {
		fmt.Fprintf(w, "%d. %-12d\n", i+1, l)
	}

	if len(s.TopQualities) > 0 {
		fmt.Fprintf(w, "\nTop ranking read qualities (Q)\n\n")
		for i, q := range s.TopQualities {
			fmt.Fprintf(w, "%d. %04.1f\n", i+1, q)
		}
	}
}
