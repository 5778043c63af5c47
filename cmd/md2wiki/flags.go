package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	workers   int
	tag       string
	highlight bool
}

// doctorFlags holds all flags for the doctor command.
type doctorFlags struct {
	config       string
	jsonOutput   bool
	mathFormat   string
	mathDPI      int
	mathFontSize int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "out", "o", "", "output directory (empty = next to source)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.tag, "tag", "", "fence language routed to passthrough (default: csf)")
	fs.BoolVar(&f.highlight, "highlight", false, "emit highlighted markup for code blocks")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	f := &doctorFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.jsonOutput, "json", false, "machine-readable output")
	fs.StringVar(&f.mathFormat, "math-format", "", "math image format to check: png, svg")
	fs.IntVar(&f.mathDPI, "math-dpi", 0, "math raster DPI (0 = default)")
	fs.IntVar(&f.mathFontSize, "math-font-size", 0, "math font size in points (0 = default)")

	fs.Usage = func() { printDoctorUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return f, nil
}
