// Package codec packs richer content into flat text columns and unpacks it
// again. Three formats exist:
//
//   - separator pair: two strings joined by Separator (profile bio and about)
//   - string list: a JSON array of strings (project tags)
//   - lines: strings joined by "\n" (experience descriptions)
//
// Storage format version 1. No escaping is performed: a string that itself
// contains Separator (or, for lines, a newline) does not round-trip, and the
// pair boundary lands on the first occurrence. Lines decode "" to an empty
// list, so a list holding a single empty string comes back empty. Decoding
// never returns an error; malformed input decodes to empty values.
package codec

import (
	"encoding/json"
	"strings"
)

// Version identifies the storage format produced by this package.
// Backends record it next to the data they write.
const Version = 1

// Separator joins the two halves of a separator-pair column.
const Separator = "<!--SEPARATOR-->"

// EncodePair returns a + Separator + b.
func EncodePair(a, b string) string {
	return a + Separator + b
}

// DecodePair splits s on the first Separator. Without a separator the whole
// string is the first part and the second is empty.
func DecodePair(s string) (string, string) {
	first, second, _ := strings.Cut(s, Separator)
	return first, second
}

// EncodeStringList returns items as a JSON array. A nil list encodes as "[]".
func EncodeStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		// []string always marshals.
		return "[]"
	}
	return string(data)
}

// DecodeStringList parses a JSON array of strings. Empty or malformed input
// yields an empty, non-nil list.
func DecodeStringList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil || items == nil {
		return []string{}
	}
	return items
}

// EncodeLines joins items with "\n".
func EncodeLines(items []string) string {
	return strings.Join(items, "\n")
}

// DecodeLines splits s on "\n". Empty input yields an empty, non-nil list.
func DecodeLines(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
