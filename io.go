// Output stream handling: compression selection, record writing with
// optional trim windows, and per-read length/quality dump files

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/pgzip"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/xopen"
	"github.com/ulikunitz/xz"
)

// outputFormat is an explicit output compression choice, overriding the
// extension-based inference done by xopen
type outputFormat int

const (
	formatPlain outputFormat = iota
	formatGzip
	formatBzip2
	formatXz
)

// parseOutputType parses the -O flag value (u, g, b, x; case-insensitive)
func parseOutputType(s string) (outputFormat, error) {
	switch strings.ToLower(s) {
	case "u":
		return formatPlain, nil
	case "g":
		return formatGzip, nil
	case "b":
		return formatBzip2, nil
	case "x":
		return formatXz, nil
	default:
		return formatPlain, fmt.Errorf("%s is not a valid output format", s)
	}
}

// stackedWriter is a writer wrapped in one or more compression layers.
// Close flushes and closes the layers innermost-first.
type stackedWriter struct {
	io.Writer
	closers []io.Closer
}

func (w *stackedWriter) Close() error {
	var firstErr error
	for _, c := range w.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// openOutput opens the record sink. With --stats the filtered records are
// discarded. Without an explicit output type, xopen picks the compression
// from the file extension ("-" means plain stdout). An explicit output
// type wraps the raw stream in the requested compressor, which also makes
// compressed stdout possible.
func openOutput(opt *appOptions) (io.WriteCloser, error) {
	if opt.stats {
		return nopWriteCloser{io.Discard}, nil
	}

	if opt.outputType == "" {
		outfh, err := xopen.Wopen(opt.outFile)
		if err != nil {
			return nil, fmt.Errorf("error creating output file: %v", err)
		}
		return outfh, nil
	}

	format, err := parseOutputType(opt.outputType)
	if err != nil {
		return nil, err
	}

	var raw io.Writer
	var closers []io.Closer
	if opt.outFile == "-" {
		raw = os.Stdout
	} else {
		fh, err := os.Create(opt.outFile)
		if err != nil {
			return nil, fmt.Errorf("error creating output file: %v", err)
		}
		bw := bufio.NewWriter(fh)
		raw = bw
		closers = append(closers, flushCloser{bw}, fh)
	}

	switch format {
	case formatGzip:
		gz, err := pgzip.NewWriterLevel(raw, opt.compressLevel)
		if err != nil {
			return nil, fmt.Errorf("error creating gzip writer: %v", err)
		}
		return &stackedWriter{Writer: gz, closers: append([]io.Closer{gz}, closers...)}, nil
	case formatBzip2:
		bz, err := bzip2.NewWriter(raw, &bzip2.WriterConfig{Level: opt.compressLevel})
		if err != nil {
			return nil, fmt.Errorf("error creating bzip2 writer: %v", err)
		}
		return &stackedWriter{Writer: bz, closers: append([]io.Closer{bz}, closers...)}, nil
	case formatXz:
		xzw, err := xz.NewWriter(raw)
		if err != nil {
			return nil, fmt.Errorf("error creating xz writer: %v", err)
		}
		return &stackedWriter{Writer: xzw, closers: append([]io.Closer{xzw}, closers...)}, nil
	default:
		return &stackedWriter{Writer: raw, closers: closers}, nil
	}
}

// flushCloser flushes a bufio.Writer on Close
type flushCloser struct {
	bw *bufio.Writer
}

func (f flushCloser) Close() error { return f.bw.Flush() }

// trimWindow returns the trimmed sequence and quality slices of a record.
// The caller must have verified trimStart+trimEnd < read length.
func trimWindow(record *fastx.Record, trimStart, trimEnd int) ([]byte, []byte) {
	end := len(record.Seq.Seq) - trimEnd
	sw := record.Seq.Seq[trimStart:end]
	var qw []byte
	if len(record.Seq.Qual) > 0 {
		qw = record.Seq.Qual[trimStart:end]
	}
	return sw, qw
}

// writeRecord writes a record to the output, restricted to the trim
// window when trimming is active; otherwise the record is written
// unmodified. Write errors are returned so a failing sink cannot pass
// for a successful run.
func writeRecord(outfh io.Writer, record *fastx.Record, trimStart, trimEnd int) error {
	if trimStart == 0 && trimEnd == 0 {
		_, err := outfh.Write(record.Format(0))
		return err
	}
	sw, qw := trimWindow(record, trimStart, trimEnd)
	trimmed := &fastx.Record{
		ID:   record.ID,
		Name: record.Name,
		Seq: &seq.Seq{
			Alphabet: record.Seq.Alphabet,
			Seq:      sw,
			Qual:     qw,
		},
	}
	_, err := outfh.Write(trimmed.Format(0))
	return err
}

// writeLengthsFile dumps the accepted read lengths, one per line
func writeLengthsFile(path string, lengths []int) error {
	outfh, err := xopen.Wopen(path)
	if err != nil {
		return fmt.Errorf("error creating read lengths file: %v", err)
	}
	defer outfh.Close()

	for _, l := range lengths {
		fmt.Fprintf(outfh, "%d\n", l)
	}
	return nil
}

// writeQualitiesFile dumps the accepted read qualities, one per line
func writeQualitiesFile(path string, qualities []float64) error {
	outfh, err := xopen.Wopen(path)
	if err != nil {
		return fmt.Errorf("error creating read qualities file: %v", err)
	}
	defer outfh.Close()

	for _, q := range qualities {
		fmt.Fprintf(outfh, "%.2f\n", q)
	}
	return nil
}
