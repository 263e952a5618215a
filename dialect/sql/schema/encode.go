package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is a serialization format of a Schema.
type Format string

// Formats.
const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat returns the format spelled by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatMsgpack:
		return f, nil
	case "mp", "msgp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("schema: unknown format %q (available: json, msgpack)", s)
}

// Encode writes s to w in format f.
func Encode(w io.Writer, s *Schema, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(s)
	}
	return fmt.Errorf("schema: unknown format %q", f)
}

// Decode reads a schema written by Encode in format f.
func Decode(r io.Reader, f Format) (*Schema, error) {
	s := &Schema{}
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(s)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(s)
	default:
		return nil, fmt.Errorf("schema: unknown format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("schema: decode %s: %w", f, err)
	}
	return s, nil
}
