package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fixitylab/checksum-services/constants"
	"github.com/fixitylab/checksum-services/registry"
)

// JSON style: a single document holding an ordered array of
// {algorithm, digest, file} objects, normally wrapped in
// {"version": 1, "checksums": [...]}. A bare top-level array is also
// accepted. Unlike the line-oriented styles, a structurally broken
// document is a single fatal error; per-element problems still
// degrade to positional diagnostics.

const jsonManifestVersion = 1

type jsonDocument struct {
	Version   int               `json:"version"`
	Checksums []json.RawMessage `json:"checksums"`
}

type jsonChecksum struct {
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
	File      string `json:"file"`
	Binary    bool   `json:"binary,omitempty"`
}

func parseJSON(data []byte) (*Document, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	var elements []json.RawMessage
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(data, &elements); err != nil {
			return nil, fmt.Errorf("Unable to parse JSON manifest: %v", err)
		}
	} else {
		var top jsonDocument
		if err := json.Unmarshal(data, &top); err != nil {
			return nil, fmt.Errorf("Unable to parse JSON manifest: %v", err)
		}
		elements = top.Checksums
	}

	doc := &Document{Style: constants.StyleJSON}
	for i, raw := range elements {
		doc.Entries = append(doc.Entries, parseJSONElement(i+1, raw))
	}
	return doc, nil
}

func parseJSONElement(position int, raw json.RawMessage) Entry {
	rawText := compactJSON(raw)
	var cs jsonChecksum
	if err := json.Unmarshal(raw, &cs); err != nil {
		return diagnostic(position, rawText, constants.ReasonMissingDelimiter)
	}
	if cs.Algorithm == "" || cs.File == "" {
		return diagnostic(position, rawText, constants.ReasonMissingDelimiter)
	}
	alg, err := registry.Resolve(cs.Algorithm)
	if err != nil {
		return diagnostic(position, rawText, constants.ReasonUnknownAlgorithm)
	}
	digest, ok := decodeDigest(cs.Digest, alg)
	if !ok {
		return diagnostic(position, rawText, constants.ReasonInvalidHexDigest)
	}
	return Entry{Record: &Record{
		Algorithm: alg,
		Digest:    digest,
		FileLabel: cs.File,
		Binary:    cs.Binary,
	}}
}

func serializeJSON(doc *Document) ([]byte, error) {
	records := doc.Records()
	checksums := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		raw, err := json.Marshal(jsonChecksum{
			Algorithm: rec.Algorithm.ID,
			Digest:    rec.HexDigest(),
			File:      rec.FileLabel,
			Binary:    rec.Binary,
		})
		if err != nil {
			return nil, err
		}
		checksums = append(checksums, raw)
	}
	out, err := json.MarshalIndent(jsonDocument{
		Version:   jsonManifestVersion,
		Checksums: checksums,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
