package transform

import "strings"

const (
	looseSeparator  = "-"
	strictSeparator = " - "
)

// ParseHeader splits a store header such as "TTFROS004 - TikTok Electric"
// into platform "TikTok" and store code "TTFROS004". The split happens at the
// first separator; the platform is the first word of the segment up to the
// next dash, taken verbatim. ok is false when the header is not a store header.
func ParseHeader(header string, strict bool) (platform, storeCode string, ok bool) {
	sep := looseSeparator
	if strict {
		sep = strictSeparator
	}

	left, right, found := strings.Cut(header, sep)
	if !found {
		return "", "", false
	}

	// The platform never spans a dash: "A1 - Blibli-Official Mall" is Blibli.
	right, _, _ = strings.Cut(right, looseSeparator)

	storeCode = strings.TrimSpace(left)
	words := strings.Fields(right)
	if storeCode == "" || len(words) == 0 {
		return "", "", false
	}

	return words[0], storeCode, true
}
