package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/recmodel/tree"
)

// ---- decoding: go-json token stream to tree ----

type jsonDecoder struct {
	dec  *j.Decoder
	opts Options
}

func unmarshalJSON(data []byte, opts Options) (*tree.Dict, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	d := &jsonDecoder{dec: dec, opts: opts}

	tok, err := d.token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrSyntax)
		}
		return nil, err
	}
	if delim, ok := tok.(j.Delim); !ok || delim != '{' {
		return nil, ErrNotDocument
	}
	doc, err := d.object("", 1)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data at offset %d", ErrSyntax, dec.InputOffset())
	}
	return doc, nil
}

func (d *jsonDecoder) token() (j.Token, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return tok, nil
}

// object reads the members of an object whose '{' was already consumed.
func (d *jsonDecoder) object(path string, depth int) (*tree.Dict, error) {
	if d.opts.depthExceeded(depth) {
		return nil, fmt.Errorf("%w: at %q", ErrMaxDepth, path)
	}
	out := tree.New()
	for d.dec.More() {
		tok, err := d.token()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected key at offset %d", ErrSyntax, d.dec.InputOffset())
		}
		if out.Has(key) && d.opts.OnDuplicateKey == DupError {
			return nil, &DuplicateKeyError{Path: path, Key: key}
		}
		v, err := d.value(childPath(path, key), depth)
		if err != nil {
			return nil, err
		}
		out.Set(key, v)
	}
	if err := d.closing('}'); err != nil {
		return nil, err
	}
	return out, nil
}

// array reads the elements of an array whose '[' was already consumed.
func (d *jsonDecoder) array(path string, depth int) ([]any, error) {
	if d.opts.depthExceeded(depth) {
		return nil, fmt.Errorf("%w: at %q", ErrMaxDepth, path)
	}
	out := []any{}
	for i := 0; d.dec.More(); i++ {
		v, err := d.value(path+"["+strconv.Itoa(i)+"]", depth)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := d.closing(']'); err != nil {
		return nil, err
	}
	return out, nil
}

// value reads one value found at depth (the depth of its container).
func (d *jsonDecoder) value(path string, depth int) (any, error) {
	tok, err := d.token()
	if err != nil {
		return nil, unexpectedEOF(err)
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return d.object(path, depth+1)
		case '[':
			return d.array(path, depth+1)
		}
		return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, v, d.dec.InputOffset())
	case string, bool, nil:
		return v, nil
	case j.Number:
		return number(string(v))
	case float64:
		return v, nil
	}
	return nil, fmt.Errorf("%w: unexpected token %T", ErrSyntax, tok)
}

func (d *jsonDecoder) closing(want j.Delim) error {
	tok, err := d.token()
	if err != nil {
		return unexpectedEOF(err)
	}
	if got, ok := tok.(j.Delim); !ok || got != want {
		return fmt.Errorf("%w: expected %q at offset %d", ErrSyntax, want, d.dec.InputOffset())
	}
	return nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	return err
}

// ---- encoding: ordered writer ----

type jsonEncoder struct {
	buf    bytes.Buffer
	indent string
}

func marshalJSON(doc *tree.Dict, opts Options) ([]byte, error) {
	e := &jsonEncoder{indent: opts.Indent}
	if err := e.dict(doc, 0); err != nil {
		return nil, err
	}
	if e.indent != "" {
		e.buf.WriteByte('\n')
	}
	return e.buf.Bytes(), nil
}

func (e *jsonEncoder) newline(level int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < level; i++ {
		e.buf.WriteString(e.indent)
	}
}

func (e *jsonEncoder) dict(d *tree.Dict, level int) error {
	keys := d.Keys()
	if len(keys) == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(level + 1)
		if err := e.scalar(k); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		if e.indent != "" {
			e.buf.WriteByte(' ')
		}
		v, _ := d.Get(k)
		if err := e.value(v, level+1); err != nil {
			return err
		}
	}
	e.newline(level)
	e.buf.WriteByte('}')
	return nil
}

func (e *jsonEncoder) list(l []any, level int) error {
	if len(l) == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	e.buf.WriteByte('[')
	for i, v := range l {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(level + 1)
		if err := e.value(v, level+1); err != nil {
			return err
		}
	}
	e.newline(level)
	e.buf.WriteByte(']')
	return nil
}

func (e *jsonEncoder) value(v any, level int) error {
	switch t := v.(type) {
	case *tree.Dict:
		return e.dict(t, level)
	case []any:
		return e.list(t, level)
	case float64:
		s, err := formatFloat(t)
		if err != nil {
			return err
		}
		e.buf.WriteString(s)
		return nil
	case float32:
		s, err := formatFloat(float64(t))
		if err != nil {
			return err
		}
		e.buf.WriteString(s)
		return nil
	}
	return e.scalar(v)
}

func (e *jsonEncoder) scalar(v any) error {
	b, err := j.MarshalNoEscape(v)
	if err != nil {
		return fmt.Errorf("%w: %T: %v", ErrUnsupportedValue, v, err)
	}
	e.buf.Write(b)
	return nil
}
