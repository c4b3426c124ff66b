// Package export reads and writes restaurant lists as JSON, YAML or XLSX.
package export

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/clawfood/clawfood/internal/model"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", eris.Errorf("export: unknown format %q", s)
	}
}

// FormatForPath infers the format from a file extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Write encodes restaurants to w.
func Write(w io.Writer, format Format, restaurants []model.Restaurant) error {
	if restaurants == nil {
		restaurants = []model.Restaurant{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(restaurants); err != nil {
			return eris.Wrap(err, "export: encode json")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(restaurants); err != nil {
			return eris.Wrap(err, "export: encode yaml")
		}
		return eris.Wrap(enc.Close(), "export: close yaml encoder")
	case FormatXLSX:
		return writeXLSX(w, restaurants)
	default:
		return eris.Errorf("export: unknown format %q", format)
	}
}

// WriteFile writes restaurants to path in the format its extension names.
func WriteFile(path string, restaurants []model.Restaurant) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	if format == FormatXLSX {
		return saveXLSX(path, restaurants)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	return writeAndClose(f, format, restaurants)
}

// writeAndClose reports a failed close, since that is where a buffered
// write to a full disk surfaces.
func writeAndClose(wc io.WriteCloser, format Format, restaurants []model.Restaurant) error {
	if err := Write(wc, format, restaurants); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return eris.Wrap(err, "export: close file")
	}
	return nil
}

// ReadFile loads restaurants from a JSON, YAML or XLSX file.
func ReadFile(path string) ([]model.Restaurant, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	if format == FormatXLSX {
		return readXLSX(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "export: read file")
	}
	return Decode(data, format)
}

// Decode parses an encoded restaurant list.
func Decode(data []byte, format Format) ([]model.Restaurant, error) {
	var out []model.Restaurant
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, eris.Wrap(err, "export: decode json")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, eris.Wrap(err, "export: decode yaml")
		}
	default:
		return nil, eris.Errorf("export: cannot decode %q", format)
	}
	return out, nil
}
