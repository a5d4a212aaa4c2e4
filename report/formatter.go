package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/fixitylab/checksum-services/constants"
	"github.com/fixitylab/checksum-services/manifest"
	"github.com/fixitylab/checksum-services/pipeline"
	"github.com/fixitylab/checksum-services/verify"
)

// Formatter renders pipeline and verification results. Verbosity is
// one of the constants.Verbosity* values; Pretty toggles indented
// JSON and has no semantic effect.
type Formatter struct {
	Style     string
	Verbosity string
	Pretty    bool
}

func NewFormatter(style, verbosity string) *Formatter {
	return &Formatter{
		Style:     style,
		Verbosity: verbosity,
	}
}

// RenderDigests serializes freshly computed digests as manifest text
// in the formatter's style. Failed results are skipped; the caller
// reports those separately.
func (f *Formatter) RenderDigests(results []pipeline.Result) ([]byte, error) {
	doc := &manifest.Document{Style: f.Style}
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		doc.Entries = append(doc.Entries, manifest.Entry{Record: &manifest.Record{
			Algorithm: r.Job.Algorithm,
			Digest:    r.Digest,
			FileLabel: r.Job.Path,
		}})
	}
	return manifest.Serialize(doc)
}

// RenderOutcomes renders verification outcomes. Status-only
// verbosity produces no output at all; quiet suppresses Ok lines.
// Outcome order is preserved.
func (f *Formatter) RenderOutcomes(outcomes []verify.Outcome) (string, error) {
	if f.Verbosity == constants.VerbosityStatusOnly {
		return "", nil
	}
	filtered := outcomes
	if f.Verbosity == constants.VerbosityQuiet {
		filtered = make([]verify.Outcome, 0, len(outcomes))
		for _, o := range outcomes {
			if o.Status != constants.OutcomeOk {
				filtered = append(filtered, o)
			}
		}
	}
	if f.Style == constants.StyleJSON {
		return f.renderOutcomesJSON(filtered)
	}
	var buf bytes.Buffer
	for _, o := range filtered {
		buf.WriteString(outcomeLine(o))
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}

func outcomeLine(o verify.Outcome) string {
	switch o.Status {
	case constants.OutcomeOk:
		return fmt.Sprintf("%s: OK", o.Record.FileLabel)
	case constants.OutcomeMissingFile:
		return fmt.Sprintf("%s: No such file or directory", o.Record.FileLabel)
	case constants.OutcomeMalformed:
		return fmt.Sprintf("line %d: improperly formatted checksum line (%s)",
			o.Diagnostic.LineNumber, o.Diagnostic.Reason)
	default:
		if o.Err != nil {
			return fmt.Sprintf("%s: FAILED (%v)", o.Record.FileLabel, o.Err)
		}
		return fmt.Sprintf("%s: FAILED", o.Record.FileLabel)
	}
}

type jsonOutcome struct {
	File     string `json:"file,omitempty"`
	Status   string `json:"status"`
	Line     int    `json:"line,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Expected string `json:"expected,omitempty"`
	Computed string `json:"computed,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (f *Formatter) renderOutcomesJSON(outcomes []verify.Outcome) (string, error) {
	payload := make([]jsonOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		jo := jsonOutcome{Status: o.Status}
		if o.Record != nil {
			jo.File = o.Record.FileLabel
			jo.Expected = o.Record.HexDigest()
		}
		if len(o.ComputedDigest) > 0 {
			jo.Computed = fmt.Sprintf("%x", o.ComputedDigest)
		}
		if o.Diagnostic != nil {
			jo.Line = o.Diagnostic.LineNumber
			jo.Reason = o.Diagnostic.Reason
		}
		if o.Err != nil {
			jo.Error = o.Err.Error()
		}
		payload = append(payload, jo)
	}
	var out []byte
	var err error
	if f.Pretty {
		out, err = json.MarshalIndent(payload, "", "  ")
	} else {
		out, err = json.Marshal(payload)
	}
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}

// SummaryLine describes a completed pipeline run in human terms,
// e.g. "3 files, 1.2 MB hashed".
func SummaryLine(results []pipeline.Result) string {
	var total int64
	count := 0
	for _, r := range results {
		if r.Error == nil {
			total += r.BytesRead
			count++
		}
	}
	return fmt.Sprintf("%d files, %s hashed", count, humanize.Bytes(uint64(total)))
}

// VerdictLine describes a verification summary, or returns "" when
// everything was Ok.
func VerdictLine(summary *verify.Summary) string {
	if summary.Succeeded && summary.FailedCount == 0 &&
		summary.MissingCount == 0 && summary.MalformedCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d OK, %d failed, %d missing, %d malformed",
		summary.OkCount, summary.FailedCount, summary.MissingCount, summary.MalformedCount)
}
