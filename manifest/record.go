package manifest

import (
	"bytes"
	"encoding/hex"

	"github.com/fixitylab/checksum-services/registry"
)

// Record is the normalized checksum record shared by all three
// manifest styles.
type Record struct {
	// Algorithm that produced the digest.
	Algorithm *registry.Algorithm

	// Digest is the raw digest bytes. Length always equals
	// Algorithm.Size; the codecs reject anything else.
	Digest []byte

	// FileLabel is the path or logical name of the hashed input.
	// The reserved label "-" means standard input.
	FileLabel string

	// Binary carries the SFV text-vs-binary marker. It changes only
	// how the record serializes, never how anything is hashed.
	Binary bool
}

// HexDigest returns the digest as lowercase hex.
func (r *Record) HexDigest() string {
	return hex.EncodeToString(r.Digest)
}

// Equal reports record equality: same algorithm, same digest bytes
// (hex case is irrelevant since digests are stored as bytes), exact
// file label, same binary marker.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Algorithm == other.Algorithm &&
		bytes.Equal(r.Digest, other.Digest) &&
		r.FileLabel == other.FileLabel &&
		r.Binary == other.Binary
}

// Diagnostic describes one manifest line (or JSON array element)
// that could not be turned into a Record. Diagnostics are never
// discarded; they ride through the document to the verification
// engine, which decides what they mean under the active policy.
type Diagnostic struct {
	// LineNumber is 1-based. For JSON manifests it is the 1-based
	// position in the checksums array.
	LineNumber int

	// RawText is the offending line or element, verbatim.
	RawText string

	// Reason is one of the constants.Reason* values.
	Reason string
}

// Entry is one slot in a document: either a parsed Record or the
// Diagnostic explaining why there isn't one.
type Entry struct {
	Record     *Record
	Diagnostic *Diagnostic
}

// IsValid reports whether the entry holds a parsed record.
func (e Entry) IsValid() bool {
	return e.Diagnostic == nil
}

// Document is an ordered collection of entries parsed from one
// manifest. Entry order always matches source order; nothing ever
// reorders it. Documents are built once by parsing and read-only
// afterwards.
type Document struct {
	// Style is one of the constants.Style* values.
	Style string

	// Entries in source order.
	Entries []Entry

	// DeclaredAlgorithm is the out-of-band algorithm for SFV
	// manifests, where lines don't encode one. Nil for BSD and
	// JSON, which carry the algorithm per record.
	DeclaredAlgorithm *registry.Algorithm
}

// Records returns the valid records in document order.
func (d *Document) Records() []*Record {
	records := make([]*Record, 0, len(d.Entries))
	for _, e := range d.Entries {
		if e.IsValid() {
			records = append(records, e.Record)
		}
	}
	return records
}

// Diagnostics returns the parse diagnostics in document order.
func (d *Document) Diagnostics() []*Diagnostic {
	diags := make([]*Diagnostic, 0)
	for _, e := range d.Entries {
		if !e.IsValid() {
			diags = append(diags, e.Diagnostic)
		}
	}
	return diags
}

// Equal reports whether two documents have the same style, the same
// declared algorithm, and pairwise-equal entries in the same order.
func (d *Document) Equal(other *Document) bool {
	if d.Style != other.Style || d.DeclaredAlgorithm != other.DeclaredAlgorithm {
		return false
	}
	if len(d.Entries) != len(other.Entries) {
		return false
	}
	for i, e := range d.Entries {
		o := other.Entries[i]
		if e.IsValid() != o.IsValid() {
			return false
		}
		if e.IsValid() {
			if !e.Record.Equal(o.Record) {
				return false
			}
		} else if *e.Diagnostic != *o.Diagnostic {
			return false
		}
	}
	return true
}
