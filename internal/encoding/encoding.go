// Package encoding resolves user-facing character encoding names and wraps
// readers so that chunk bytes are decoded into UTF-8 before any line-level
// processing happens.
//
// The decode step doubles as byte-sequence validation: invalid sequences in
// the source encoding are replaced rather than propagated verbatim into the
// generated CSV and SQL artifacts.
package encoding

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Lookup resolves a user-facing encoding name to an x/text encoding.
// Matching is case-insensitive and tolerant of common spelling variants.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
}

// Names lists the canonical encoding names accepted by Lookup.
func Names() []string {
	return []string{"latin1", "iso-8859-1", "windows-1252", "utf-8"}
}

// NewReader wraps r so that bytes encoded in the named source encoding are
// decoded into UTF-8 as they are read.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
