// Package adapter contains storage, filesystem and host adapters for the classdoc CLI.
package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	m "classdoc.dev/pkg/classdoc/internal/model"
)

// ErrUnsupportedFormat is returned for files whose extension maps to no known codec.
var ErrUnsupportedFormat = errors.New("unsupported doclet format")

type docletDocument struct {
	Doclets []docletWire `json:"doclets" yaml:"doclets" msgpack:"doclets"`
}

type docletWire struct {
	ID           string      `json:"id,omitempty" yaml:"id,omitempty" msgpack:"id,omitempty"`
	Name         string      `json:"name" yaml:"name" msgpack:"name"`
	Longname     string      `json:"longname" yaml:"longname" msgpack:"longname"`
	Memberof     string      `json:"memberof,omitempty" yaml:"memberof,omitempty" msgpack:"memberof,omitempty"`
	Kind         string      `json:"kind" yaml:"kind" msgpack:"kind"`
	Scope        string      `json:"scope,omitempty" yaml:"scope,omitempty" msgpack:"scope,omitempty"`
	Access       string      `json:"access,omitempty" yaml:"access,omitempty" msgpack:"access,omitempty"`
	Undocumented bool        `json:"undocumented,omitempty" yaml:"undocumented,omitempty" msgpack:"undocumented,omitempty"`
	Comment      string      `json:"comment,omitempty" yaml:"comment,omitempty" msgpack:"comment,omitempty"`
	Mixes        []string    `json:"mixes,omitempty" yaml:"mixes,omitempty" msgpack:"mixes,omitempty"`
	Meta         *m.NodeWire `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
}

func toWire(d m.Doclet) docletWire {
	return docletWire{
		ID:           d.ID,
		Name:         d.Name,
		Longname:     d.Longname,
		Memberof:     d.Memberof,
		Kind:         string(d.Kind),
		Scope:        string(d.Scope),
		Access:       string(d.Access),
		Undocumented: d.Undocumented,
		Comment:      d.Comment,
		Mixes:        d.Mixes,
		Meta:         m.WireNode(d.Meta),
	}
}

func fromWire(w docletWire) m.Doclet {
	return m.Doclet{
		ID:           w.ID,
		Name:         w.Name,
		Longname:     w.Longname,
		Memberof:     w.Memberof,
		Kind:         m.Kind(w.Kind),
		Scope:        m.Scope(w.Scope),
		Access:       m.Access(w.Access),
		Undocumented: w.Undocumented,
		Comment:      w.Comment,
		Mixes:        w.Mixes,
		Meta:         w.Meta.Node(),
	}
}

// FormatFromPath picks the codec for path from its extension.
func FormatFromPath(path m.Path) (m.Format, error) {
	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".json":
		return m.FormatJSON, nil
	case ".yaml", ".yml":
		return m.FormatYAML, nil
	case ".msgpack", ".mp":
		return m.FormatMsgpack, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Extension returns the canonical file extension for format.
func Extension(format m.Format) string {
	switch format {
	case m.FormatYAML:
		return ".yaml"
	case m.FormatMsgpack:
		return ".msgpack"
	default:
		return ".json"
	}
}

// EncodeDoclets serializes records in the given format.
func EncodeDoclets(format m.Format, records []m.Doclet) ([]byte, error) {
	doc := docletDocument{Doclets: make([]docletWire, len(records))}
	for i, d := range records {
		doc.Doclets[i] = toWire(d)
	}

	return encode(format, doc)
}

// DecodeDoclets parses a document in the given format, keeping discovery order.
func DecodeDoclets(format m.Format, data []byte) ([]m.Doclet, error) {
	var doc docletDocument
	if err := decode(format, data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s doclets: %w", format, err)
	}

	records := make([]m.Doclet, len(doc.Doclets))
	for i, w := range doc.Doclets {
		records[i] = fromWire(w)
	}

	return records, nil
}

func encode(format m.Format, v any) ([]byte, error) {
	switch format {
	case m.FormatJSON:
		return json.MarshalIndent(v, "", "  ")
	case m.FormatYAML:
		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return nil, err
		}

		if err := enc.Close(); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	case m.FormatMsgpack:
		return msgpack.Marshal(v)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func decode(format m.Format, data []byte, v any) error {
	switch format {
	case m.FormatJSON:
		return json.Unmarshal(data, v)
	case m.FormatYAML:
		return yaml.Unmarshal(data, v)
	case m.FormatMsgpack:
		return msgpack.Unmarshal(data, v)
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// RenderDoclet renders a single record as YAML, the form used for record diffs.
func RenderDoclet(d m.Doclet) string {
	out, err := yaml.Marshal(toWire(d))
	if err != nil {
		return fmt.Sprintf("# render failed: %v\n", err)
	}

	return string(out)
}
