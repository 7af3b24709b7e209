package mimetype

import (
	"sort"
	"strconv"
	"strings"
)

// Wildcard matches any media type in an Accept header. It is never a registerable
// type itself; negotiation treats it as "no preference".
const Wildcard = MimeType("*/*")

// AcceptEntry is one media-range from an Accept header with its quality weight.
type AcceptEntry struct {
	// The media type, normalized through FromString.
	Type MimeType

	// The q-value for the range. Missing or malformed q parameters count as 1.0.
	Quality float64
}

/*
ParseAccept parses an Accept header value into entries ordered by descending
quality. Entries with equal quality keep their original header order, so

	ParseAccept("application/json;q=0.5, text/x-yaml;q=0.9")

yields YAML before JSON, while

	ParseAccept("application/json, application/bson")

keeps JSON first. An empty header yields no entries.
*/
func ParseAccept(header string) []AcceptEntry {
	var entries []AcceptEntry

	for _, field := range strings.Split(header, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		sections := strings.Split(field, ";")
		mediaRange := strings.TrimSpace(sections[0])
		if mediaRange == "" {
			continue
		}

		quality := 1.0
		for _, param := range sections[1:] {
			param = strings.TrimSpace(param)
			if !strings.HasPrefix(param, "q=") {
				continue
			}

			parsed, err := strconv.ParseFloat(param[len("q="):], 64)
			// Malformed and out-of-range q values count as a full-weight
			// preference rather than poisoning the whole header.
			if err != nil || parsed < 0 || parsed > 1 {
				parsed = 1.0
			}
			quality = parsed
		}

		entries = append(
			entries, AcceptEntry{Type: FromString(mediaRange), Quality: quality},
		)
	}

	// Stable so equal-quality entries preserve header order.
	sort.SliceStable(entries, func(i int, j int) bool {
		return entries[i].Quality > entries[j].Quality
	})

	return entries
}
