package cmd

import (
	"fmt"
	"strings"

	"classdoc.dev/pkg/classdoc/internal/adapter"
	m "classdoc.dev/pkg/classdoc/internal/model"
)

// parseFormat maps a --format value to a codec. An empty value keeps each input's format.
func parseFormat(value string) (m.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return "", nil
	case "json":
		return m.FormatJSON, nil
	case "yaml", "yml":
		return m.FormatYAML, nil
	case "msgpack", "mp":
		return m.FormatMsgpack, nil
	}

	return "", fmt.Errorf("%w: %q", adapter.ErrUnsupportedFormat, value)
}
