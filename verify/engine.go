package verify

import (
	"crypto/subtle"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fixitylab/checksum-services/constants"
	"github.com/fixitylab/checksum-services/manifest"
	"github.com/fixitylab/checksum-services/models/common"
	"github.com/fixitylab/checksum-services/registry"
)

// Policy holds the caller-supplied knobs that decide how negative
// outcomes roll up into the overall verdict. The engine itself has
// no mode state; everything comes in here.
type Policy struct {
	// IgnoreMissing keeps records for nonexistent files from
	// counting against the verdict.
	IgnoreMissing bool

	// Strict makes any malformed manifest line force overall
	// failure.
	Strict bool

	// Warn escalates malformed lines the same way Strict does;
	// callers use it when they want lenient parsing but a failing
	// exit status.
	Warn bool
}

// RecomputeFunc produces a fresh digest for a manifest record's
// file. The engine never touches the filesystem itself; this
// indirection is what it's given.
type RecomputeFunc func(alg *registry.Algorithm, fileLabel string) ([]byte, error)

// Outcome classifies one document entry after verification.
type Outcome struct {
	// Record is the parsed record, nil when Status is malformed.
	Record *manifest.Record

	// Diagnostic is the parse diagnostic, set only for malformed
	// entries.
	Diagnostic *manifest.Diagnostic

	// Status is one of the constants.Outcome* values.
	Status string

	// ComputedDigest is the freshly computed digest, set when the
	// comparison ran and failed.
	ComputedDigest []byte

	// Err carries the I/O failure detail for unreadable files.
	Err error
}

// Summary aggregates one verification run. It is computed once and
// never mutated afterwards; the counts always sum to the record
// count of the document it was computed against.
type Summary struct {
	OkCount        int
	FailedCount    int
	MissingCount   int
	MalformedCount int
	Succeeded      bool
}

// Total returns the number of entries the summary covers.
func (s *Summary) Total() int {
	return s.OkCount + s.FailedCount + s.MissingCount + s.MalformedCount
}

// Engine cross-references a parsed manifest document against freshly
// computed digests.
type Engine struct {
	Context *common.Context
	Policy  Policy
}

func NewEngine(context *common.Context, policy Policy) *Engine {
	return &Engine{
		Context: context,
		Policy:  policy,
	}
}

// Verify walks the document's entries in order and classifies each
// one. Outcome order always matches entry order. The returned
// summary's Succeeded is true iff there were no failures, no missing
// files (unless ignored), and no malformed lines (unless tolerated
// by a non-strict, non-warn policy).
func (e *Engine) Verify(doc *manifest.Document, recompute RecomputeFunc) (*Summary, []Outcome) {
	outcomes := make([]Outcome, 0, len(doc.Entries))
	summary := &Summary{}

	for _, entry := range doc.Entries {
		if !entry.IsValid() {
			summary.MalformedCount++
			outcomes = append(outcomes, Outcome{
				Diagnostic: entry.Diagnostic,
				Status:     constants.OutcomeMalformed,
			})
			continue
		}
		outcomes = append(outcomes, e.verifyRecord(entry.Record, recompute, summary))
	}

	summary.Succeeded = summary.FailedCount == 0 &&
		(summary.MissingCount == 0 || e.Policy.IgnoreMissing) &&
		(summary.MalformedCount == 0 || !(e.Policy.Strict || e.Policy.Warn))
	return summary, outcomes
}

func (e *Engine) verifyRecord(rec *manifest.Record, recompute RecomputeFunc, summary *Summary) Outcome {
	computed, err := recompute(rec.Algorithm, rec.FileLabel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			summary.MissingCount++
			return Outcome{Record: rec, Status: constants.OutcomeMissingFile, Err: err}
		}
		summary.FailedCount++
		e.Context.Logger.Errorf("Cannot read %s: %v", rec.FileLabel, err)
		return Outcome{Record: rec, Status: constants.OutcomeFailed, Err: err}
	}
	if digestsMatch(rec.Digest, computed) {
		summary.OkCount++
		return Outcome{Record: rec, Status: constants.OutcomeOk}
	}
	summary.FailedCount++
	return Outcome{Record: rec, Status: constants.OutcomeFailed, ComputedDigest: computed}
}

// digestsMatch compares the full length of both digests regardless
// of where they diverge, so the comparison shape never depends on
// the position of a mismatch.
func digestsMatch(expected, computed []byte) bool {
	if len(expected) != len(computed) {
		return false
	}
	return subtle.ConstantTimeCompare(expected, computed) == 1
}

// LocalRecompute returns a RecomputeFunc that reads files from the
// local filesystem, with the reserved label "-" served from stdin.
func LocalRecompute(stdin io.Reader) RecomputeFunc {
	return func(alg *registry.Algorithm, fileLabel string) ([]byte, error) {
		var reader io.Reader
		if fileLabel == constants.StdinLabel {
			reader = stdin
		} else {
			f, err := os.Open(fileLabel)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			reader = f
		}
		digest, _, err := alg.Compute(reader)
		return digest, err
	}
}
