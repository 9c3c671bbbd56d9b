package model

// Path represents a file system path.
type Path string

// Format is the encoding of a doclet file.
type Format string

const (
	// FormatJSON is the extractor's native JSON dump.
	FormatJSON Format = "json"
	// FormatYAML is a YAML rendering of the same document.
	FormatYAML Format = "yaml"
	// FormatMsgpack is a compact binary encoding of the same document.
	FormatMsgpack Format = "msgpack"
)

// Source is one doclet file discovered for a documentation run.
type Source struct {
	Path   Path
	Format Format
}
