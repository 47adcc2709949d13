// Two-pass "keep best" mode: a stats-only first pass measures every
// read, the retention selector ranks the full set, and a second pass
// writes only the selected reads.
//
// File input is re-read from the start for the second pass. Stdin cannot
// be rewound, so stdin input is buffered in memory instead, with records
// ZSTD-compressed to keep the footprint down.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

var errFastaInput = errors.New("keep-percent/keep-bases mode requires FASTQ input with quality values")

// runKeep executes the two-pass retention mode
func runKeep(opt *appOptions) error {
	if opt.inFile == "-" {
		return keepStdin(opt)
	}
	return keepFile(opt)
}

// keepFile runs the retention mode over a seekable file source:
// pass one collects lengths and qualities without writing anything,
// pass two re-opens the file and forwards the selected reads
func keepFile(opt *appOptions) error {
	reader, err := fastx.NewReader(seq.DNAredundant, opt.inFile, fastx.DefaultIDRegexp)
	if err != nil {
		return fmt.Errorf("error creating reader: %v", err)
	}
	defer reader.Close()

	// First pass: measure every read in stream order
	var entries []keepEntry
	ordinal := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to parse sequence record: %v", err)
		}
		// The reader's stream format is authoritative: pooled readers
		// can hand out FASTA records carrying stale quality bytes
		if !reader.IsFastq {
			return errFastaInput
		}
		entries = append(entries, keepEntry{
			Ordinal: ordinal,
			ID:      string(record.ID),
			Length:  len(record.Seq.Seq),
			Quality: meanQuality(record.Seq.Qual),
		})
		ordinal++
	}

	kept := selectReads(entries, opt.keepPercent, opt.keepBases)
	if len(kept) == 0 {
		fmt.Fprintln(os.Stderr, "no reads survived the retention selection")
		return nil
	}

	outfh, err := openOutput(opt)
	if err != nil {
		return err
	}
	defer outfh.Close()

	// Second pass: forward reads whose ordinal was selected
	reader2, err := fastx.NewReader(seq.DNAredundant, opt.inFile, fastx.DefaultIDRegexp)
	if err != nil {
		return fmt.Errorf("error creating second reader: %v", err)
	}
	defer reader2.Close()

	ordinal = 0
	for {
		record, err := reader2.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to parse sequence record: %v", err)
		}
		if _, ok := kept[ordinal]; ok {
			if err := writeRecord(outfh, record, 0, 0); err != nil {
				return fmt.Errorf("failed to write record: %v", err)
			}
		}
		ordinal++
	}

	return summarizeKeep(opt, entries, uint64(len(entries)-len(kept)))
}

// bufferedRead is one stdin record held in memory between the measuring
// pass and the writing pass, sequence and quality compressed together
type bufferedRead struct {
	Name []byte
	Data []byte
}

// keepStdin runs the retention mode over stdin. Records are measured and
// buffered compressed in one pass, then the selected reads are emitted in
// their original stream order.
func keepStdin(opt *appOptions) error {
	reader, err := fastx.NewReader(seq.DNAredundant, "-", fastx.DefaultIDRegexp)
	if err != nil {
		return fmt.Errorf("error creating reader: %v", err)
	}
	defer reader.Close()

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("error creating ZSTD encoder: %v", err)
	}
	defer encoder.Close()

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return fmt.Errorf("error creating ZSTD decoder: %v", err)
	}
	defer decoder.Close()

	var entries []keepEntry
	var buffered []bufferedRead
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to parse sequence record: %v", err)
		}
		if !reader.IsFastq {
			return errFastaInput
		}

		entries = append(entries, keepEntry{
			Ordinal: len(entries),
			ID:      string(record.ID),
			Length:  len(record.Seq.Seq),
			Quality: meanQuality(record.Seq.Qual),
		})

		nameCopy := make([]byte, len(record.Name))
		copy(nameCopy, record.Name)

		// Compress sequence and quality scores together
		data := make([]byte, 0, len(record.Seq.Seq)+len(record.Seq.Qual))
		data = append(data, record.Seq.Seq...)
		data = append(data, record.Seq.Qual...)
		buffered = append(buffered, bufferedRead{
			Name: nameCopy,
			Data: encoder.EncodeAll(data, make([]byte, 0, len(data))),
		})
	}

	kept := selectReads(entries, opt.keepPercent, opt.keepBases)
	if len(kept) == 0 {
		fmt.Fprintln(os.Stderr, "no reads survived the retention selection")
		return nil
	}

	outfh, err := openOutput(opt)
	if err != nil {
		return err
	}
	defer outfh.Close()

	// Emit selected reads in original stream order
	for ordinal, br := range buffered {
		if _, ok := kept[ordinal]; !ok {
			continue
		}
		decompressed, err := decoder.DecodeAll(br.Data, nil)
		if err != nil {
			return fmt.Errorf("error decompressing record: %v", err)
		}
		seqLen := len(decompressed) / 2
		record := &fastx.Record{
			Name: br.Name,
			Seq: &seq.Seq{
				Seq:  decompressed[:seqLen],
				Qual: decompressed[seqLen:],
			},
		}
		if err := writeRecord(outfh, record, 0, 0); err != nil {
			return fmt.Errorf("failed to write record: %v", err)
		}
	}

	return summarizeKeep(opt, entries, uint64(len(entries)-len(kept)))
}

// summarizeKeep reports statistics from the measuring pass. The selector
// already holds everything it needs, so nothing is recomputed during the
// writing pass; the summary covers the whole input set with the dropped
// reads counted as filtered.
func summarizeKeep(opt *appOptions, entries []keepEntry, filtered uint64) error {
	lengths := make([]int, len(entries))
	qualities := make([]float64, len(entries))
	for i, e := range entries {
		lengths[i] = e.Length
		qualities[i] = e.Quality
	}
	return summarize(opt, NewReadSet(lengths, qualities), filtered)
}
