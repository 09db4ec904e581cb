// Package sink provides the default value and plot sinks: an encoding
// writer selected by format hint or file extension, and a terminal plotter
// for quick inspection of numeric results.
package sink

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Writer persists values as JSON, YAML, CSV or plain text.
type Writer struct{}

// NewWriter creates the default value writer.
func NewWriter() *Writer { return &Writer{} }

// Write encodes value to destPath. The format hint wins; with an empty hint
// the destination extension decides, defaulting to JSON.
func (w *Writer) Write(value any, destPath, formatName string) error {
	if destPath == "" {
		return fmt.Errorf("write: destination path is required")
	}

	format := strings.ToLower(formatName)
	if format == "" {
		switch strings.ToLower(filepath.Ext(destPath)) {
		case ".yaml", ".yml":
			format = "yaml"
		case ".csv":
			format = "csv"
		case ".txt":
			format = "text"
		default:
			format = "json"
		}
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(value, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case "yaml":
		data, err = yaml.Marshal(value)
	case "csv":
		data, err = encodeCSV(value)
	case "text":
		data = []byte(fmt.Sprintf("%v\n", value))
	default:
		return fmt.Errorf("write: unknown format %q", formatName)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}

	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return nil
}

func encodeCSV(value any) ([]byte, error) {
	var sb strings.Builder
	cw := csv.NewWriter(&sb)

	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if err := cw.Write([]string{fmt.Sprintf("%v", item)}); err != nil {
				return nil, err
			}
		}
	case map[string]any:
		for _, key := range sortedKeys(v) {
			if err := cw.Write([]string{key, fmt.Sprintf("%v", v[key])}); err != nil {
				return nil, err
			}
		}
	default:
		if err := cw.Write([]string{fmt.Sprintf("%v", v)}); err != nil {
			return nil, err
		}
	}

	cw.Flush()
	return []byte(sb.String()), cw.Error()
}
