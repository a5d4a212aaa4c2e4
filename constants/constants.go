package constants

const (
	// Manifest styles. SFV is the GNU coreutils line format, BSD is
	// the tagged "ALG (file) = digest" format, JSON is our own
	// structured document.
	StyleSFV  = "sfv"
	StyleBSD  = "bsd"
	StyleJSON = "json"

	// StdinLabel is the reserved file label that means "read from
	// standard input".
	StdinLabel = "-"

	// Parse diagnostic reasons. A manifest line that can't be turned
	// into a checksum record gets exactly one of these.
	ReasonEmptyLine        = "empty_line"
	ReasonMissingDelimiter = "missing_delimiter"
	ReasonUnknownAlgorithm = "unknown_algorithm"
	ReasonInvalidHexDigest = "invalid_hex_digest"
	ReasonTrailingGarbage  = "trailing_garbage"

	// Per-record verification outcomes.
	OutcomeOk          = "ok"
	OutcomeFailed      = "failed"
	OutcomeMissingFile = "missing_file"
	OutcomeMalformed   = "malformed"

	// Security classifications for hash algorithms. These are
	// informational only and never change how an algorithm behaves.
	// Deprecated means broken in theory, Obsolete means broken in
	// practice.
	ClassDeprecated = "deprecated"
	ClassObsolete   = "obsolete"

	// Report verbosity levels.
	VerbosityNormal     = "normal"
	VerbosityQuiet      = "quiet"
	VerbosityStatusOnly = "status"
)

var ManifestStyles = []string{
	StyleBSD,
	StyleJSON,
	StyleSFV,
}

var DiagnosticReasons = []string{
	ReasonEmptyLine,
	ReasonInvalidHexDigest,
	ReasonMissingDelimiter,
	ReasonTrailingGarbage,
	ReasonUnknownAlgorithm,
}

var VerificationOutcomes = []string{
	OutcomeFailed,
	OutcomeMalformed,
	OutcomeMissingFile,
	OutcomeOk,
}
