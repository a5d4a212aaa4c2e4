package cli

import (
	"flag"
)

type Options struct {
	Algorithm      string
	AllowInsecure  bool
	Check          bool
	IgnoreMissing  bool
	ListAlgorithms bool
	Output         string
	PrintHelp      bool
	Quiet          bool
	Status         bool
	Strict         bool
	Style          string
	Warn           bool
	Workers        int
}

var opts = Options{}

var EnvMessage = `The following environment vars are read when set:

CHECKSUM_STYLE   - Default manifest style (sfv, bsd or json).
CHECKSUM_WORKERS - Default worker count. 0 means one per CPU.
LOG_LEVEL        - CRITICAL, ERROR, WARNING, NOTICE, INFO or DEBUG.
`

func Init() {
	flag.StringVar(&opts.Algorithm, "algorithm", "", "Hash algorithm to use (see -list-algorithms)")
	flag.BoolVar(&opts.AllowInsecure, "allow-insecure", false, "Allow generating checksums with deprecated or obsolete algorithms")
	flag.BoolVar(&opts.Check, "check", false, "Read checksums from the input files and verify them")
	flag.BoolVar(&opts.IgnoreMissing, "ignore-missing", false, "Don't fail verification for files that don't exist")
	flag.BoolVar(&opts.ListAlgorithms, "list-algorithms", false, "List supported hash algorithms and exit")
	flag.StringVar(&opts.Output, "o", "", "Write manifest output to this file instead of stdout")
	flag.BoolVar(&opts.PrintHelp, "help", false, "Print help message")
	flag.BoolVar(&opts.Quiet, "quiet", false, "Don't print OK for each successfully verified file")
	flag.BoolVar(&opts.Status, "status", false, "Print nothing; the exit status carries the verdict")
	flag.BoolVar(&opts.Strict, "strict", false, "Fail verification if any manifest line is malformed")
	flag.StringVar(&opts.Style, "style", "", "Manifest style: sfv, bsd or json")
	flag.BoolVar(&opts.Warn, "warn", false, "Report malformed manifest lines and fail the exit status")
	flag.IntVar(&opts.Workers, "workers", 0, "Number of digest workers. 0 means one per CPU")
}

func ParseOpts() Options {
	flag.Parse()
	return opts
}

func PrintDefaults() {
	flag.PrintDefaults()
}
