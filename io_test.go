package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/pgzip"
)

func TestParseOutputType(t *testing.T) {
	tests := []struct {
		input   string
		want    outputFormat
		wantErr bool
	}{
		{"u", formatPlain, false},
		{"U", formatPlain, false},
		{"g", formatGzip, false},
		{"G", formatGzip, false},
		{"b", formatBzip2, false},
		{"x", formatXz, false},
		{"X", formatXz, false},
		{"t", formatPlain, true},
		{"", formatPlain, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseOutputType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseOutputType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if err == nil && got != tt.want {
				t.Errorf("parseOutputType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Without trimming the record passes through byte for byte
func TestWriteRecordUnmodified(t *testing.T) {
	record := createTestRecord("read1", "ACGT", "IIII")

	var out bytes.Buffer
	if err := writeRecord(&out, record, 0, 0); err != nil {
		t.Fatalf("writeRecord() error: %v", err)
	}

	want := "@read1\nACGT\n+\nIIII\n"
	if out.String() != want {
		t.Errorf("writeRecord() = %q, want %q", out.String(), want)
	}
}

// Trimming restricts sequence and quality to the same window
func TestWriteRecordTrimmed(t *testing.T) {
	record := createTestRecord("read1", "AACCGGTT", "$$IIII$$")

	var out bytes.Buffer
	if err := writeRecord(&out, record, 2, 2); err != nil {
		t.Fatalf("writeRecord() error: %v", err)
	}

	want := "@read1\nCCGG\n+\nIIII\n"
	if out.String() != want {
		t.Errorf("writeRecord() = %q, want %q", out.String(), want)
	}
}

// FASTA records trim the sequence only
func TestWriteRecordTrimmedFasta(t *testing.T) {
	record := createTestRecord("read1", "AACCGGTT", "")

	var out bytes.Buffer
	if err := writeRecord(&out, record, 2, 2); err != nil {
		t.Fatalf("writeRecord() error: %v", err)
	}

	want := ">read1\nCCGG\n"
	if out.String() != want {
		t.Errorf("writeRecord() = %q, want %q", out.String(), want)
	}
}

// brokenWriter refuses every write
type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errors.New("sink unavailable")
}

// A failing sink surfaces as an error instead of being swallowed
func TestWriteRecordWriteError(t *testing.T) {
	record := createTestRecord("read1", "ACGT", "IIII")

	if err := writeRecord(brokenWriter{}, record, 0, 0); err == nil {
		t.Error("writeRecord() to a failing sink returned nil error")
	}
	if err := writeRecord(brokenWriter{}, record, 1, 1); err == nil {
		t.Error("writeRecord() trimmed to a failing sink returned nil error")
	}
}

func TestTrimWindow(t *testing.T) {
	record := createTestRecord("read1", "AACCGGTT", "12345678")

	sw, qw := trimWindow(record, 1, 3)
	if string(sw) != "ACCG" {
		t.Errorf("trimWindow() sequence = %q, want %q", sw, "ACCG")
	}
	if string(qw) != "2345" {
		t.Errorf("trimWindow() quality = %q, want %q", qw, "2345")
	}
}

// The stats sink accepts and discards everything
func TestOpenOutputStats(t *testing.T) {
	opt := &appOptions{stats: true, outFile: "-"}
	outfh, err := openOutput(opt)
	if err != nil {
		t.Fatalf("openOutput() error: %v", err)
	}
	defer outfh.Close()

	if _, err := outfh.Write([]byte("@read1\nACGT\n+\nIIII\n")); err != nil {
		t.Errorf("Write() to stats sink: %v", err)
	}
}

// An explicit gzip output type compresses regardless of file extension
func TestOpenOutputGzipOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.fq")
	opt := &appOptions{outFile: path, outputType: "g", compressLevel: 6}

	outfh, err := openOutput(opt)
	if err != nil {
		t.Fatalf("openOutput() error: %v", err)
	}
	want := "@read1\nACGT\n+\nIIII\n"
	if _, err := io.WriteString(outfh, want); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := outfh.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	fh, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer fh.Close()
	gz, err := pgzip.NewReader(fh)
	if err != nil {
		t.Fatalf("output is not valid gzip: %v", err)
	}
	defer gz.Close()
	data, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("decompressing output: %v", err)
	}
	if string(data) != want {
		t.Errorf("decompressed output = %q, want %q", data, want)
	}
}

func TestWriteLengthsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lengths.txt")
	if err := writeLengthsFile(path, []int{10, 100, 1000}); err != nil {
		t.Fatalf("writeLengthsFile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading lengths file: %v", err)
	}
	want := "10\n100\n1000\n"
	if string(data) != want {
		t.Errorf("lengths file = %q, want %q", data, want)
	}
}

func TestWriteQualitiesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qualities.txt")
	if err := writeQualitiesFile(path, []float64{10.5, 20.25}); err != nil {
		t.Fatalf("writeQualitiesFile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading qualities file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || lines[0] != "10.50" || lines[1] != "20.25" {
		t.Errorf("qualities file = %q, want lines [10.50 20.25]", data)
	}
}
