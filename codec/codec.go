// Package codec converts tree documents to and from their textual encodings:
// JSON, YAML and XML.
//
// Decoding keeps the key order of the input, rejects duplicate keys unless
// told otherwise, and bounds nesting depth. Leaves come back as strings,
// bools, int64, float64 or nil (XML yields strings only); record Values
// coerce them on load.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reoring/recmodel/tree"
)

// Format names a textual encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	XML  Format = "xml"
)

// Formats lists the supported formats.
func Formats() []Format { return []Format{JSON, YAML, XML} }

var (
	ErrUnsupportedFormat = errors.New("codec: unsupported format")
	ErrDuplicateKey      = errors.New("codec: duplicate key")
	ErrMaxDepth          = errors.New("codec: maximum nesting depth exceeded")
	ErrSyntax            = errors.New("codec: malformed input")
	ErrNotDocument       = errors.New("codec: document root must be a mapping")
	ErrUnsupportedValue  = errors.New("codec: unsupported value")
)

// DuplicateStrictness controls how a repeated mapping key is handled when
// decoding JSON or YAML. XML repeats become lists and are not affected.
type DuplicateStrictness int

const (
	DupError    DuplicateStrictness = iota // reject the document
	DupLastWins                            // keep the last occurrence at the first position
)

// DefaultMaxDepth bounds nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 64

// Options tunes Marshal and Unmarshal. The zero value is ready to use.
type Options struct {
	// Indent is the per-level indentation for Marshal. Empty means compact
	// JSON; YAML always indents (two spaces when empty).
	Indent string
	// MaxDepth limits nesting on Unmarshal. Zero selects DefaultMaxDepth; a
	// negative value disables the check.
	MaxDepth       int
	OnDuplicateKey DuplicateStrictness
}

func (o Options) maxDepth() int {
	if o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) depthExceeded(depth int) bool {
	max := o.maxDepth()
	return max > 0 && depth > max
}

// ParseFormat resolves a format name such as "json" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "xml":
		return XML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromExt infers the format from a file name extension.
func FormatFromExt(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Marshal encodes doc in format f.
func Marshal(doc *tree.Dict, f Format, opts Options) ([]byte, error) {
	if doc == nil {
		return nil, ErrNotDocument
	}
	switch f {
	case JSON:
		return marshalJSON(doc, opts)
	case YAML:
		return marshalYAML(doc, opts)
	case XML:
		return marshalXML(doc, opts)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// Unmarshal decodes data in format f into a tree document.
func Unmarshal(data []byte, f Format, opts Options) (*tree.Dict, error) {
	switch f {
	case JSON:
		return unmarshalJSON(data, opts)
	case YAML:
		return unmarshalYAML(data, opts)
	case XML:
		return unmarshalXML(data, opts)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// DuplicateKeyError reports a repeated key together with the location of
// both occurrences when the input format provides positions.
type DuplicateKeyError struct {
	Path      string // dotted path of the mapping holding the key
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	where := e.Key
	if e.Path != "" {
		where = e.Path + "." + e.Key
	}
	if e.Line > 0 {
		return fmt.Sprintf("duplicate key %q at %d:%d (first at %d:%d)", where, e.Line, e.Col, e.FirstLine, e.FirstCol)
	}
	return fmt.Sprintf("duplicate key %q", where)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
