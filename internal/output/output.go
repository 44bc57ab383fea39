// Package output handles CLI result encoding for the screenplay commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format selects how command results are rendered.
type Format string

const (
	FormatText       Format = "text"
	FormatJSON       Format = "json"
	FormatJSONPretty Format = "json-pretty"
	FormatStructured Format = "structured" // YAML
)

// DefaultFormat is used when no --output flag is given.
var DefaultFormat Format = FormatText

var globalFormat Format = FormatText

// SetFormat sets the global output format, falling back to DefaultFormat
// for anything it doesn't recognize.
func SetFormat(format string) {
	switch Format(format) {
	case FormatJSON:
		globalFormat = FormatJSON
	case FormatJSONPretty:
		globalFormat = FormatJSONPretty
	case FormatStructured:
		globalFormat = FormatStructured
	case FormatText:
		globalFormat = FormatText
	default:
		globalFormat = DefaultFormat
	}
}

// GetFormat returns the current global output format.
func GetFormat() Format {
	return globalFormat
}

// Write writes data to stdout in the configured format. text writers should
// pass a pre-rendered string; json/json-pretty/structured encode data as-is.
func Write(data any) error {
	return WriteTo(os.Stdout, globalFormat, data)
}

// WriteAs writes data to stdout in the specified format.
func WriteAs(format Format, data any) error {
	return WriteTo(os.Stdout, format, data)
}

// WriteTo writes data to w in the given format.
func WriteTo(w io.Writer, format Format, data any) error {
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(data)
	case FormatJSONPretty:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatStructured:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	case FormatText:
		if s, ok := data.(string); ok {
			_, err := fmt.Fprintln(w, s)
			return err
		}
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// IsStructured reports whether the current format is machine-oriented
// (json, json-pretty, structured) as opposed to text.
func IsStructured() bool {
	return globalFormat != FormatText
}
