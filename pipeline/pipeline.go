package pipeline

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/fixitylab/checksum-services/constants"
	"github.com/fixitylab/checksum-services/models/common"
	"github.com/fixitylab/checksum-services/registry"
)

// Job is one digest-computation request: a file path (or the stdin
// label "-") and the algorithm to hash it with.
type Job struct {
	Path      string
	Algorithm *registry.Algorithm
}

// Result is the outcome of one Job. When Error is set the other
// fields besides Job are meaningless; the failure occupies the job's
// original position so callers can report it against the right file.
type Result struct {
	Job       Job
	Digest    []byte
	BytesRead int64
	Elapsed   time.Duration
	Error     error
}

// Pipeline computes digests for many files across a bounded worker
// pool, returning results in submission order regardless of
// completion order.
type Pipeline struct {
	Context *common.Context

	// Workers is the pool size. Zero means one worker per
	// available CPU.
	Workers int

	// RunID identifies this pipeline in log output.
	RunID string

	// Stdin is the reader behind the "-" label. Defaults to
	// os.Stdin; tests substitute their own.
	Stdin io.Reader

	bytesProcessed *atomic.Int64
}

func New(context *common.Context, workers int) *Pipeline {
	return &Pipeline{
		Context:        context,
		Workers:        workers,
		RunID:          uuid.New().String(),
		Stdin:          os.Stdin,
		bytesProcessed: atomic.NewInt64(0),
	}
}

// BytesProcessed returns the total bytes hashed so far across all
// in-flight and completed jobs. It's safe to read while the pipeline
// runs; it exists for display only and never influences scheduling.
func (p *Pipeline) BytesProcessed() int64 {
	return p.bytesProcessed.Load()
}

// Run executes the jobs and returns one Result per job, where the
// i-th result always corresponds to the i-th job. A job that fails
// to read its input fails alone; the others keep going.
func (p *Pipeline) Run(jobs []Job) []Result {
	workers := p.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	p.Context.Logger.Infof("Pipeline run %s: %d jobs on %d workers", p.RunID, len(jobs), workers)

	results := make([]Result, len(jobs))
	var group errgroup.Group
	group.SetLimit(workers)
	for i := range jobs {
		i := i
		group.Go(func() error {
			results[i] = p.runJob(jobs[i])
			return nil
		})
	}
	_ = group.Wait()
	return results
}

func (p *Pipeline) runJob(job Job) Result {
	start := time.Now()
	result := Result{Job: job}

	reader, closer, err := p.openInput(job.Path)
	if err != nil {
		result.Error = err
		return result
	}
	if closer != nil {
		defer closer.Close()
	}

	h, err := job.Algorithm.NewHash()
	if err != nil {
		result.Error = err
		return result
	}
	n, err := io.Copy(io.MultiWriter(h, &countingWriter{p.bytesProcessed}), reader)
	result.BytesRead = n
	if err != nil {
		result.Error = fmt.Errorf("Error streaming %s through %s: %v", job.Path, job.Algorithm.Name, err)
		return result
	}
	result.Digest = h.Sum(nil)
	result.Elapsed = time.Since(start)
	p.Context.Logger.Debugf("Pipeline run %s: %s %s (%d bytes)", p.RunID, job.Algorithm.Name, job.Path, n)
	return result
}

func (p *Pipeline) openInput(path string) (io.Reader, io.Closer, error) {
	if path == constants.StdinLabel {
		return p.Stdin, nil, nil
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%s: Is a directory", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

// countingWriter feeds the shared progress counter. Atomic
// increments only; readers never block writers.
type countingWriter struct {
	n *atomic.Int64
}

func (w *countingWriter) Write(b []byte) (int, error) {
	w.n.Add(int64(len(b)))
	return len(b), nil
}
