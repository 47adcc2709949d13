// readfilt - read filters and summary reports for nanopore data

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	VERSION      = "0.3.1"
	PHRED_OFFSET = 33
	// Highest Phred value representable in Sanger encoding (ASCII 126)
	MAX_PHRED = 93
	// Number of top ranked reads shown in verbose summaries
	DEFAULT_TOP = 5
)

// Define color functions
var (
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// exitFunc allows tests to intercept os.Exit
var exitFunc = os.Exit

var (
	errConflictingModes = errors.New("the keep-percent/keep-bases mode cannot be combined with length/quality filters or trimming")
	errFastMode         = errors.New("quality filters cannot be combined with fast mode")
	errKeepPercent      = errors.New("keep-percent must be between 0 and 100")
)

// appOptions carries the validated command line configuration
type appOptions struct {
	inFile  string
	outFile string

	minLen    int
	maxLen    int
	minQual   float64
	maxQual   float64
	trimStart int
	trimEnd   int
	fast      bool

	keepPercent float64
	keepBases   uint64

	stats       bool
	json        bool
	report      string
	lengthsFile string
	qualsFile   string
	verbosity   int
	header      bool
	top         int

	outputType    string
	compressLevel int
}

// keepMode reports whether the two-pass retention mode was requested
func (opt *appOptions) keepMode() bool {
	return opt.keepPercent > 0 || opt.keepBases > 0
}

// filterActive reports whether any single-pass filter or trim bound is set
func (opt *appOptions) filterActive() bool {
	return opt.minLen > 0 || opt.maxLen > 0 || opt.minQual > 0 || opt.maxQual > 0 ||
		opt.trimStart > 0 || opt.trimEnd > 0
}

// validate rejects invalid flag combinations before any I/O happens
func (opt *appOptions) validate() error {
	if opt.keepPercent < 0 || opt.keepPercent > 100 {
		return errKeepPercent
	}
	if opt.keepMode() && (opt.filterActive() || opt.fast) {
		return errConflictingModes
	}
	if opt.fast && (opt.minQual > 0 || opt.maxQual > 0) {
		return errFastMode
	}
	if opt.verbosity > 3 {
		opt.verbosity = 3
	}
	if opt.top < 0 {
		return fmt.Errorf("%d is not a valid ranking size", opt.top)
	}
	if opt.compressLevel < 1 || opt.compressLevel > 9 {
		return fmt.Errorf("%d is not a valid compression level [1-9]", opt.compressLevel)
	}
	if opt.outputType != "" {
		if _, err := parseOutputType(opt.outputType); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	var opt appOptions
	var version bool

	rootCmd := &cobra.Command{
		Use:           "readfilt",
		Short:         bold("Read filters and summary reports for nanopore data"),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if version {
				fmt.Printf("readfilt %s\n", VERSION)
				return nil
			}
			if err := opt.validate(); err != nil {
				return err
			}
			if opt.keepMode() {
				return runKeep(&opt)
			}
			return runFilter(&opt)
		},
	}

	rootCmd.SetHelpFunc(helpFunc)

	flags := rootCmd.Flags()
	flags.StringVarP(&opt.inFile, "input", "i", "-", "Input fast{a,q}.{gz,bz2,xz} file (default: stdin)")
	flags.StringVarP(&opt.outFile, "output", "o", "-", "Output file (default: stdout)")
	flags.IntVarP(&opt.minLen, "min-len", "l", 0, "Minimum read length filter (bp)")
	flags.IntVarP(&opt.maxLen, "max-len", "m", 0, "Maximum read length filter (bp, 0 = unbounded)")
	flags.Float64VarP(&opt.minQual, "min-qual", "q", 0, "Minimum average read quality filter (Q)")
	flags.Float64VarP(&opt.maxQual, "max-qual", "w", 0, "Maximum average read quality filter (Q, 0 = unbounded)")
	flags.IntVarP(&opt.trimStart, "trim-start", "S", 0, "Trim bases from the start of each read (bp)")
	flags.IntVarP(&opt.trimEnd, "trim-end", "E", 0, "Trim bases from the end of each read (bp)")
	flags.Float64VarP(&opt.keepPercent, "keep-percent", "p", 0, "Keep the best reads by quality (percent of reads, 0 = off)")
	flags.Uint64VarP(&opt.keepBases, "keep-bases", "b", 0, "Keep the best reads by quality up to this many bases (0 = off)")
	flags.BoolVarP(&opt.fast, "fast", "f", false, "Ignore quality values if present")
	flags.BoolVarP(&opt.stats, "stats", "s", false, "Summary report only, discard filtered output")
	flags.BoolVarP(&opt.json, "json", "j", false, "Summary report in JSON format")
	flags.StringVarP(&opt.report, "report", "r", "", "Summary report output file (default: stderr)")
	flags.StringVarP(&opt.lengthsFile, "read-lengths", "L", "", "Read lengths output file")
	flags.StringVarP(&opt.qualsFile, "read-qualities", "Q", "", "Read qualities output file")
	flags.CountVarP(&opt.verbosity, "verbose", "v", "Verbose output statistics (multiple, up to -vvv; extra repeats count as -vvv)")
	flags.BoolVarP(&opt.header, "header", "H", false, "Header for summary output")
	flags.IntVarP(&opt.top, "top", "t", DEFAULT_TOP, "Number of top reads in verbose summary")
	flags.StringVarP(&opt.outputType, "output-type", "O", "", "Output compression: u (plain), g (gzip), b (bzip2), x (xz)")
	flags.IntVarP(&opt.compressLevel, "compress-level", "c", 6, "Compression level for compressed output [1-9]")
	flags.BoolVar(&version, "version", false, "Show version information")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
		fmt.Fprintln(os.Stderr, red("Try 'readfilt --help' for more information"))
		exitFunc(1)
	}
}
