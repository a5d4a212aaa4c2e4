package manifest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fixitylab/checksum-services/constants"
	"github.com/fixitylab/checksum-services/registry"
)

// BSD style: one "ALGNAME (filename) = hex_digest" line per file.
// The algorithm name must resolve through the registry. The filename
// may contain parentheses; the parser splits on the last ") = " so
// only a filename ending in that exact token is ambiguous.

func parseBSD(data []byte) *Document {
	doc := &Document{Style: constants.StyleBSD}
	for i, line := range splitLines(data) {
		lineNumber := i + 1
		if strings.TrimSpace(line) == "" {
			doc.Entries = append(doc.Entries, diagnostic(lineNumber, line, constants.ReasonEmptyLine))
			continue
		}
		doc.Entries = append(doc.Entries, parseBSDLine(lineNumber, line))
	}
	return doc
}

func parseBSDLine(lineNumber int, line string) Entry {
	open := strings.Index(line, " (")
	if open <= 0 {
		return diagnostic(lineNumber, line, constants.ReasonMissingDelimiter)
	}
	closeEq := strings.LastIndex(line, ") = ")
	if closeEq < open {
		return diagnostic(lineNumber, line, constants.ReasonMissingDelimiter)
	}
	alg, err := registry.Resolve(line[:open])
	if err != nil {
		return diagnostic(lineNumber, line, constants.ReasonUnknownAlgorithm)
	}
	name := line[open+2 : closeEq]
	if name == "" {
		return diagnostic(lineNumber, line, constants.ReasonMissingDelimiter)
	}
	token := line[closeEq+4:]
	if strings.ContainsAny(token, " \t") {
		return diagnostic(lineNumber, line, constants.ReasonTrailingGarbage)
	}
	digest, ok := decodeDigest(token, alg)
	if !ok {
		return diagnostic(lineNumber, line, constants.ReasonInvalidHexDigest)
	}
	return Entry{Record: &Record{
		Algorithm: alg,
		Digest:    digest,
		FileLabel: name,
	}}
}

func serializeBSD(doc *Document) []byte {
	var buf bytes.Buffer
	for _, rec := range doc.Records() {
		fmt.Fprintf(&buf, "%s (%s) = %s\n", rec.Algorithm.Name, rec.FileLabel, rec.HexDigest())
	}
	return buf.Bytes()
}
