// Package display renders command results in the output formats the CLI
// supports.
package display

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/inhabit/errors"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatTOML}

// Write renders v to w in format. The text form is produced by text.
func Write(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case FormatText:
		text(w)
	case FormatJSON:
		data, err := MarshalJSON(v)
		if err != nil {
			return errors.Wrap(err, "failed to marshal JSON")
		}
		fmt.Fprintln(w, string(data))
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "failed to marshal YAML")
		}
		fmt.Fprint(w, string(data))
	case FormatTOML:
		data, err := toml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "failed to marshal TOML")
		}
		fmt.Fprint(w, string(data))
	default:
		return errors.NewConfigurationError("unsupported format: %s (supported: %v)", format, Formats)
	}
	return nil
}
