// Package mimetype normalizes content-type values so the rest of the module can
// key registries and comparisons on a single canonical spelling.
package mimetype

import (
	"strings"
)

/*
MimeType is the normalized content-type value the negotiation layers trade in.
The package declares constants for the formats with builtin codec support; any
other media type can participate by wrapping its string:

	MimeType("text/csv")
*/
type MimeType string

const (
	JSON = MimeType("application/json")
	BSON = MimeType("application/bson")
	YAML = MimeType("application/yaml")
	TEXT = MimeType("text/plain")
	// UNKNOWN is used when the incoming string is blank
	UNKNOWN = MimeType("")
)

// Canonical types whose spelling variants (x- prefixes, text/ vs application/)
// collapse during normalization. TEXT is excluded: raw text has no variant forms
// worth matching by suffix.
var objectMimeTypes = []MimeType{JSON, BSON, YAML}

// Anything Content-Type can be read from with a Get method, such as
// http.Request.Header or http.Response.Header.
type headerFetcher interface {
	Get(string) string
}

// FromHeader normalizes the Content-Type header of a request or response. Any
// media-type parameters (charset, etc.) are dropped.
func FromHeader(headers headerFetcher) MimeType {
	return FromString(headers.Get("Content-Type"))
}

/*
FromString normalizes a content-type string: case is ignored, media-type
parameters are stripped, and the spelling variants of the builtin formats
collapse onto their canonical constant. Every one of these yields
"mimetype.YAML":

• "application/yaml"

• "application/YAML"

• "text/x-yaml"

• "yaml"

• "x-yaml"

Unrecognized strings are returned lowercased as-is, so any lookup keyed on the result
behaves as a case-insensitive exact match.
*/
func FromString(incoming string) MimeType {
	// "application/json; charset=utf-8" carries the media type before ';'.
	incoming = strings.SplitN(incoming, ";", 2)[0]
	incoming = strings.ToLower(strings.TrimSpace(incoming))

	if incoming == "" {
		return UNKNOWN
	}
	if incoming == "text/plain" || incoming == "text" {
		return TEXT
	}

	for _, mimeType := range objectMimeTypes {
		mimeTypeLower := strings.ToLower(string(mimeType))
		mimeTypeLower = strings.Split(mimeTypeLower, "/")[1]
		if strings.HasSuffix(incoming, mimeTypeLower) {
			return mimeType
		}
	}

	return MimeType(incoming)
}
