package manifest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fixitylab/checksum-services/constants"
	"github.com/fixitylab/checksum-services/registry"
)

// SFV style: one "hex_digest  filename" line per file. A leading ';'
// marks a comment. The separator after the digest is a space followed
// by either a space (text mode) or '*' (binary mode). The algorithm
// is not encoded; it comes from the caller or, failing that, is
// inferred from the digest length when that length is unambiguous.
//
// Filenames with leading whitespace (or a leading '?') are written
// with a '?' sentinel directly after the separator; the parser strips
// exactly one sentinel. Unescorted leading whitespace makes the split
// ambiguous and is flagged as trailing garbage.

func parseSFV(data []byte, declared *registry.Algorithm) *Document {
	doc := &Document{Style: constants.StyleSFV, DeclaredAlgorithm: declared}
	for i, line := range splitLines(data) {
		lineNumber := i + 1
		if strings.HasPrefix(line, ";") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			doc.Entries = append(doc.Entries, diagnostic(lineNumber, line, constants.ReasonEmptyLine))
			continue
		}
		doc.Entries = append(doc.Entries, parseSFVLine(lineNumber, line, declared))
	}
	return doc
}

func parseSFVLine(lineNumber int, line string, declared *registry.Algorithm) Entry {
	sep := strings.IndexByte(line, ' ')
	if sep <= 0 {
		return diagnostic(lineNumber, line, constants.ReasonMissingDelimiter)
	}
	token := line[:sep]
	if len(token)%2 != 0 || !isHex(token) {
		return diagnostic(lineNumber, line, constants.ReasonInvalidHexDigest)
	}
	alg := declared
	if alg == nil {
		inferred, err := registry.InferFromLength(len(token) / 2)
		if err != nil {
			return diagnostic(lineNumber, line, constants.ReasonUnknownAlgorithm)
		}
		alg = inferred
	}
	digest, ok := decodeDigest(token, alg)
	if !ok {
		return diagnostic(lineNumber, line, constants.ReasonInvalidHexDigest)
	}

	rest := line[sep+1:]
	if rest == "" {
		return diagnostic(lineNumber, line, constants.ReasonMissingDelimiter)
	}
	binary := false
	switch rest[0] {
	case '*':
		binary = true
		rest = rest[1:]
	case ' ':
		rest = rest[1:]
	}
	name := rest
	if strings.HasPrefix(name, "?") {
		name = name[1:]
	} else {
		if name == "" {
			return diagnostic(lineNumber, line, constants.ReasonMissingDelimiter)
		}
		if name[0] == ' ' || name[0] == '\t' {
			return diagnostic(lineNumber, line, constants.ReasonTrailingGarbage)
		}
	}
	if name == "" {
		return diagnostic(lineNumber, line, constants.ReasonMissingDelimiter)
	}
	return Entry{Record: &Record{
		Algorithm: alg,
		Digest:    digest,
		FileLabel: name,
		Binary:    binary,
	}}
}

func serializeSFV(doc *Document) []byte {
	var buf bytes.Buffer
	for _, rec := range doc.Records() {
		sep := "  "
		if rec.Binary {
			sep = " *"
		}
		label := rec.FileLabel
		if sfvNeedsSentinel(label) {
			label = "?" + label
		}
		fmt.Fprintf(&buf, "%s%s%s\n", rec.HexDigest(), sep, label)
	}
	return buf.Bytes()
}

func sfvNeedsSentinel(label string) bool {
	if label == "" {
		return false
	}
	return label[0] == ' ' || label[0] == '\t' || label[0] == '?'
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
