package manifest

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/fixitylab/checksum-services/constants"
	"github.com/fixitylab/checksum-services/registry"
)

// ErrUnknownStyle means the style tag isn't one of sfv, bsd or json.
var ErrUnknownStyle = errors.New("unknown manifest style")

// Parse decodes manifest text in the given style. declared supplies
// the out-of-band algorithm for SFV manifests and is ignored by the
// other styles. A malformed line never aborts the parse; it becomes
// a Diagnostic entry at its position. The only fatal condition is a
// structurally unparseable JSON document.
func Parse(style string, data []byte, declared *registry.Algorithm) (*Document, error) {
	switch style {
	case constants.StyleSFV:
		return parseSFV(data, declared), nil
	case constants.StyleBSD:
		return parseBSD(data), nil
	case constants.StyleJSON:
		return parseJSON(data)
	default:
		return nil, fmt.Errorf("'%s': %w", style, ErrUnknownStyle)
	}
}

// Serialize is the inverse of Parse. For any document that parsed
// without diagnostics, Parse(Serialize(doc)) reproduces the document
// exactly. Diagnostic entries have no serialized form and are
// skipped. SFV comment lines are not represented in the model and
// are therefore dropped on round trips.
func Serialize(doc *Document) ([]byte, error) {
	switch doc.Style {
	case constants.StyleSFV:
		return serializeSFV(doc), nil
	case constants.StyleBSD:
		return serializeBSD(doc), nil
	case constants.StyleJSON:
		return serializeJSON(doc)
	default:
		return nil, fmt.Errorf("'%s': %w", doc.Style, ErrUnknownStyle)
	}
}

// DetectStyle guesses the manifest style from its content: a JSON
// document starts with '{' or '[', a BSD line carries the " (" and
// ") = " tokens, everything else is SFV.
func DetectStyle(data []byte) string {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return constants.StyleJSON
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.Contains(line, " (") && strings.Contains(line, ") = ") {
			return constants.StyleBSD
		}
		break
	}
	return constants.StyleSFV
}

// splitLines splits manifest text into lines, tolerating CRLF and a
// trailing newline on the final line.
func splitLines(data []byte) []string {
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func diagnostic(lineNumber int, raw, reason string) Entry {
	return Entry{Diagnostic: &Diagnostic{
		LineNumber: lineNumber,
		RawText:    raw,
		Reason:     reason,
	}}
}

// decodeDigest decodes a hex digest token and validates its length
// against the algorithm. Odd-length, non-hex, or wrong-size tokens
// all fail.
func decodeDigest(token string, alg *registry.Algorithm) ([]byte, bool) {
	if len(token) != alg.Size*2 {
		return nil, false
	}
	digest := make([]byte, alg.Size)
	if _, err := hex.Decode(digest, []byte(token)); err != nil {
		return nil, false
	}
	return digest, true
}
