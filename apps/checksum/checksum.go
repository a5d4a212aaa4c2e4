package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fixitylab/checksum-services/constants"
	"github.com/fixitylab/checksum-services/manifest"
	"github.com/fixitylab/checksum-services/models/common"
	"github.com/fixitylab/checksum-services/pipeline"
	"github.com/fixitylab/checksum-services/registry"
	"github.com/fixitylab/checksum-services/report"
	"github.com/fixitylab/checksum-services/util"
	"github.com/fixitylab/checksum-services/util/cli"
	"github.com/fixitylab/checksum-services/verify"
)

func main() {
	cli.Init()
	opts := cli.ParseOpts()
	if opts.PrintHelp {
		printHelp()
		cli.PrintDefaults()
		os.Exit(0)
	}
	if opts.ListAlgorithms {
		for _, alg := range registry.List() {
			fmt.Println(alg.Name)
		}
		os.Exit(0)
	}

	context := common.NewContext()
	inputs, dirs := partitionInputs(flag.Args())
	for _, dir := range dirs {
		fmt.Fprintf(os.Stderr, "checksum: %s: Is a directory\n", dir)
	}
	if len(inputs) == 0 {
		inputs = []string{constants.StdinLabel}
	}

	if opts.Check {
		os.Exit(runCheck(context, opts, inputs))
	}
	os.Exit(runGenerate(context, opts, inputs))
}

// partitionInputs splits command-line args into hashable inputs and
// directories, which are reported and skipped.
func partitionInputs(args []string) (inputs, dirs []string) {
	for _, arg := range args {
		if arg != constants.StdinLabel && util.IsDirectory(arg) {
			dirs = append(dirs, arg)
		} else {
			inputs = append(inputs, arg)
		}
	}
	return inputs, dirs
}

func runGenerate(context *common.Context, opts cli.Options, inputs []string) int {
	if opts.Algorithm == "" {
		return fatal("Unable to determine hash algorithm; pass -algorithm")
	}
	alg, err := registry.Resolve(opts.Algorithm)
	if err != nil {
		return fatal("%v", err)
	}
	if !alg.Supported() {
		return fatal("%s has no implementation in this build", alg.Name)
	}
	if alg.Insecure() && !opts.AllowInsecure {
		return fatal("%s is %s; pass -allow-insecure to use it", alg.Name, alg.Classification)
	}

	style := manifestStyle(context, opts)
	jobs := make([]pipeline.Job, len(inputs))
	for i, input := range inputs {
		jobs[i] = pipeline.Job{Path: input, Algorithm: alg}
	}
	p := pipeline.New(context, workerCount(context, opts))
	results := p.Run(jobs)
	context.Logger.Infof("%s", report.SummaryLine(results))

	exitCode := 0
	for _, r := range results {
		if r.Error != nil {
			fmt.Fprintf(os.Stderr, "checksum: %s: %v\n", r.Job.Path, r.Error)
			exitCode = 1
		}
	}

	formatter := report.NewFormatter(style, constants.VerbosityNormal)
	out, err := formatter.RenderDigests(results)
	if err != nil {
		return fatal("%v", err)
	}
	if opts.Output != "" {
		path, err := util.ExpandTilde(opts.Output)
		if err != nil {
			return fatal("%v", err)
		}
		if err := os.WriteFile(path, out, 0644); err != nil {
			return fatal("Failed to write to %s: %v", path, err)
		}
	} else {
		os.Stdout.Write(out)
	}
	return exitCode
}

func runCheck(context *common.Context, opts cli.Options, inputs []string) int {
	var declared *registry.Algorithm
	if opts.Algorithm != "" {
		alg, err := registry.Resolve(opts.Algorithm)
		if err != nil {
			return fatal("%v", err)
		}
		declared = alg
	}

	exitCode := 0
	for _, input := range inputs {
		data, err := readInput(input)
		if err != nil {
			return fatal("Failed to read manifest %s: %v", input, err)
		}
		style := opts.Style
		if style == "" {
			style = manifest.DetectStyle(data)
		}
		doc, err := manifest.Parse(style, data, declared)
		if err != nil {
			return fatal("%s: %v", input, err)
		}
		if !checkDocument(context, opts, style, doc) {
			exitCode = 1
		}
	}
	return exitCode
}

// checkDocument verifies one parsed manifest and renders the
// outcomes. Returns the overall verdict.
func checkDocument(context *common.Context, opts cli.Options, style string, doc *manifest.Document) bool {
	records := doc.Records()
	jobs := make([]pipeline.Job, len(records))
	for i, rec := range records {
		jobs[i] = pipeline.Job{Path: rec.FileLabel, Algorithm: rec.Algorithm}
	}
	p := pipeline.New(context, workerCount(context, opts))
	results := p.Run(jobs)

	// The engine consumes valid records in document order, which is
	// the order the jobs were built in.
	next := 0
	recompute := func(alg *registry.Algorithm, fileLabel string) ([]byte, error) {
		r := results[next]
		next++
		if r.Error != nil {
			return nil, r.Error
		}
		return r.Digest, nil
	}

	engine := verify.NewEngine(context, verify.Policy{
		IgnoreMissing: opts.IgnoreMissing,
		Strict:        opts.Strict,
		Warn:          opts.Warn,
	})
	summary, outcomes := engine.Verify(doc, recompute)

	formatter := report.NewFormatter(style, verbosity(opts))
	out, err := formatter.RenderOutcomes(outcomes)
	if err == nil && out != "" {
		fmt.Print(out)
	}
	if !opts.Status {
		if line := report.VerdictLine(summary); line != "" {
			fmt.Fprintf(os.Stderr, "checksum: %s\n", line)
		}
	}
	return summary.Succeeded
}

func readInput(input string) ([]byte, error) {
	if input == constants.StdinLabel {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(input)
}

func manifestStyle(context *common.Context, opts cli.Options) string {
	if opts.Style != "" {
		return opts.Style
	}
	return context.Config.DefaultStyle
}

func workerCount(context *common.Context, opts cli.Options) int {
	if opts.Workers > 0 {
		return opts.Workers
	}
	return context.Config.WorkerCount
}

func verbosity(opts cli.Options) string {
	switch {
	case opts.Status:
		return constants.VerbosityStatusOnly
	case opts.Quiet:
		return constants.VerbosityQuiet
	default:
		return constants.VerbosityNormal
	}
}

func fatal(format string, a ...interface{}) int {
	fmt.Fprintf(os.Stderr, "checksum: "+format+"\n", a...)
	return 1
}

func printHelp() {
	message := `
checksum computes and verifies message digests for files or standard
input, reading and writing checksum manifests in SFV, BSD and JSON
styles. With -check, each input is treated as a manifest to verify;
otherwise digests are computed for the inputs and printed as a
manifest. The exit status is 0 only when every file verified clean.
`
	fmt.Println(message)
	fmt.Println(cli.EnvMessage)
}
