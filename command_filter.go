// Single-pass filter mode: apply length/quality bounds and optional
// trimming to each record, stream survivors to the output, and summarize
// the surviving read set

package main

import (
	"fmt"
	"io"
	"math"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// filterBounds are the normalized per-record acceptance bounds.
// All bounds are inclusive.
type filterBounds struct {
	minLen    int
	maxLen    int
	minQual   float64
	maxQual   float64
	trimStart int
	trimEnd   int
}

// normalizeBounds maps the "unbounded" zero values of the command line
// flags onto the maximum representable length and the maximum meaningful
// Phred value
func normalizeBounds(opt *appOptions) filterBounds {
	b := filterBounds{
		minLen:    opt.minLen,
		maxLen:    opt.maxLen,
		minQual:   opt.minQual,
		maxQual:   opt.maxQual,
		trimStart: opt.trimStart,
		trimEnd:   opt.trimEnd,
	}
	if b.maxLen == 0 {
		b.maxLen = math.MaxInt
	}
	if b.maxQual == 0 {
		b.maxQual = MAX_PHRED
	}
	return b
}

// runFilter executes the single-pass filter mode and prints the summary
// of the surviving read set
func runFilter(opt *appOptions) error {
	reader, err := fastx.NewReader(seq.DNAredundant, opt.inFile, fastx.DefaultIDRegexp)
	if err != nil {
		return fmt.Errorf("error creating reader: %v", err)
	}
	defer reader.Close()

	outfh, err := openOutput(opt)
	if err != nil {
		return err
	}
	defer outfh.Close()

	bounds := normalizeBounds(opt)

	var (
		lengths   []int
		qualities []float64
		filtered  uint64
	)
	if opt.fast {
		lengths, filtered, err = lengthOnlyFilter(reader, outfh, bounds)
	} else {
		lengths, qualities, filtered, err = streamFilter(reader, outfh, bounds)
	}
	if err != nil {
		return err
	}

	return summarize(opt, NewReadSet(lengths, qualities), filtered)
}

// streamFilter iterates the input once, accepting records that satisfy
// the length bounds and, for FASTQ records, the quality bounds. Quality
// is scored on the trim window that will be written, so trimming and
// scoring always agree. Records whose trim allowance meets or exceeds
// their length are rejected outright.
func streamFilter(reader *fastx.Reader, outfh io.Writer, b filterBounds) ([]int, []float64, uint64, error) {
	lengths := []int{}
	qualities := []float64{}
	var filtered uint64

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, 0, fmt.Errorf("failed to parse sequence record: %v", err)
		}

		// Readers are pooled, and the FASTA parse path never assigns
		// Qual, so a record from a FASTA stream can carry stale quality
		// bytes. The reader's stream format is authoritative.
		if !reader.IsFastq {
			record.Seq.Qual = nil
		}

		readLen := len(record.Seq.Seq)
		if b.trimStart+b.trimEnd >= readLen && b.trimStart+b.trimEnd > 0 {
			filtered++
			continue
		}

		seqWindow := record.Seq.Seq
		qualWindow := record.Seq.Qual
		if b.trimStart > 0 || b.trimEnd > 0 {
			seqWindow, qualWindow = trimWindow(record, b.trimStart, b.trimEnd)
		}
		effLen := len(seqWindow)

		if reader.IsFastq {
			quality := meanQuality(qualWindow)
			if effLen >= b.minLen && effLen <= b.maxLen &&
				quality >= b.minQual && quality <= b.maxQual {
				lengths = append(lengths, effLen)
				qualities = append(qualities, quality)
				if err := writeRecord(outfh, record, b.trimStart, b.trimEnd); err != nil {
					return nil, nil, 0, fmt.Errorf("failed to write record: %v", err)
				}
			} else {
				filtered++
			}
		} else {
			// FASTA filter
			if effLen >= b.minLen && effLen <= b.maxLen {
				lengths = append(lengths, effLen)
				if err := writeRecord(outfh, record, b.trimStart, b.trimEnd); err != nil {
					return nil, nil, 0, fmt.Errorf("failed to write record: %v", err)
				}
			} else {
				filtered++
			}
		}
	}

	return lengths, qualities, filtered, nil
}

// lengthOnlyFilter is the fast path: it never scores quality bytes, so
// iteration is cheaper when no quality bound is requested. The qualities
// vector of the resulting read set stays empty.
func lengthOnlyFilter(reader *fastx.Reader, outfh io.Writer, b filterBounds) ([]int, uint64, error) {
	lengths := []int{}
	var filtered uint64

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse sequence record: %v", err)
		}

		if !reader.IsFastq {
			record.Seq.Qual = nil
		}

		readLen := len(record.Seq.Seq)
		if b.trimStart+b.trimEnd >= readLen && b.trimStart+b.trimEnd > 0 {
			filtered++
			continue
		}

		effLen := readLen - b.trimStart - b.trimEnd
		if effLen >= b.minLen && effLen <= b.maxLen {
			lengths = append(lengths, effLen)
			if err := writeRecord(outfh, record, b.trimStart, b.trimEnd); err != nil {
				return nil, 0, fmt.Errorf("failed to write record: %v", err)
			}
		} else {
			filtered++
		}
	}

	return lengths, filtered, nil
}
