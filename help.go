package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Custom help function with a colorized flag overview
func helpFunc(cmd *cobra.Command, args []string) {
	fmt.Printf(`
%s

%s
  Filter nanopore reads by length and mean quality, keep the best reads
  under a quality budget, and report read set statistics. Reads
  fast{a,q}.{gz,bz2,xz} from a file or stdin and writes filtered records
  to a file or stdout; the summary report goes to stderr.

%s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s

%s
  %s
  %s

%s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s

%s
  # Filter by read length and quality
  %s

  # Trim 50 bp from both ends of each read before filtering
  %s

  # Keep the best half of the reads, up to 500 Mbp
  %s

  # Summary report only, as JSON
  %s

`,
		bold(cyan("readfilt")+" v."+VERSION+" - Read filters and summary reports for nanopore data"),
		bold(yellow("Description:")),
		bold(yellow("Filters:")),
		cyan("-i, --input")+" <string>        : Input fast{a,q}.{gz,bz2,xz} file (default, stdin)",
		cyan("-o, --output")+" <string>       : Output file (default, stdout)",
		cyan("-l, --min-len")+" <int>         : Minimum read length filter (bp)",
		cyan("-m, --max-len")+" <int>         : Maximum read length filter (bp, 0 = unbounded)",
		cyan("-q, --min-qual")+" <float>      : Minimum average read quality filter (Q)",
		cyan("-w, --max-qual")+" <float>      : Maximum average read quality filter (Q, 0 = unbounded)",
		cyan("-S, --trim-start")+" <int>      : Trim bases from the start of each read",
		cyan("-E, --trim-end")+" <int>        : Trim bases from the end of each read",
		bold(yellow("Retention (two-pass, FASTQ only):")),
		cyan("-p, --keep-percent")+" <float>  : Keep the best reads by quality (percent of reads)",
		cyan("-b, --keep-bases")+" <int>      : Keep the best reads by quality up to this many bases",
		bold(yellow("Reports and output:")),
		cyan("-s, --stats")+"                 : Summary report only, discard filtered output",
		cyan("-j, --json")+"                  : Summary report in JSON format",
		cyan("-r, --report")+" <string>       : Summary report output file (default, stderr)",
		cyan("-v, --verbose")+"               : Verbose output statistics (multiple, up to -vvv; extra repeats count as -vvv)",
		cyan("-H, --header")+"                : Header for summary output",
		cyan("-t, --top")+" <int>             : Number of top reads in verbose summary (default, 5)",
		cyan("-L, --read-lengths")+" <string> : Read lengths output file",
		cyan("-Q, --read-qualities")+" <string> : Read qualities output file",
		cyan("-f, --fast")+"                  : Ignore quality values if present",
		cyan("-O, --output-type")+" <u|g|b|x> : Output compression (plain, gzip, bzip2, xz)",
		cyan("-c, --compress-level")+" <1-9>  : Compression level for compressed output (default, 6)",
		bold(yellow("Usage examples:")),
		cyan("readfilt -i reads.fq.gz -o filtered.fq.gz --min-len 1000 --min-qual 10"),
		cyan("readfilt -i reads.fq.gz -S 50 -E 50 -o trimmed.fq.gz"),
		cyan("readfilt -i reads.fq.gz --keep-percent 50 --keep-bases 500000000 -o best.fq.gz"),
		cyan("cat reads.fq | readfilt --stats --json -vv"),
	)
}
