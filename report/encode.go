package report

import (
	"encoding/json"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v2"
)

// Supported output formats
const (
	JSON = "json"
	YAML = "yaml"
)

/*
Encode takes a writer, a format (JSON or YAML) and a report or slice of
reports and writes the report on the writer in the given format.
*/
func Encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case JSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("serializing report as JSON: %v", err)
		}
		return nil
	case YAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("serializing report as YAML: %v", err)
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown report format %q", format)
}
