package slogobs

import "strings"

// Format selects how the bundled handler renders log records.
type Format string

const (
	// FormatCompact renders one line per record with the attributes as a
	// trailing JSON object. The default; suited to development terminals.
	FormatCompact Format = "compact"

	// FormatPretty renders a header line plus one tree-drawn line per
	// attribute. Multi-line values such as Mermaid diagrams stay readable.
	FormatPretty Format = "pretty"

	// FormatJSON renders each record as a single JSON document, for log
	// aggregation pipelines.
	FormatJSON Format = "json"
)

// ParseFormat maps a format name to its Format, ignoring case and
// surrounding whitespace. Anything unrecognized, including the empty
// string, selects FormatCompact so a bad environment value never breaks
// logging.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(FormatPretty):
		return FormatPretty
	case string(FormatJSON):
		return FormatJSON
	default:
		return FormatCompact
	}
}

// GetFormatFromEnv reads the output format from ANALYZER_LOG_FORMAT,
// falling back to LOG_FORMAT. Unset or unrecognized values select compact
// output.
func GetFormatFromEnv() Format {
	return ParseFormat(envFirst("ANALYZER_LOG_FORMAT", "LOG_FORMAT"))
}

// String returns the format's name.
func (f Format) String() string {
	return string(f)
}
