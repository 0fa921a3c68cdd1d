package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/reoring/recmodel/tree"
)

// XML documents map onto trees the way record databases lay them out:
// elements become keys, repeated sibling elements become lists, attributes
// become "@name" keys and leaf text becomes a string. A leaf element with
// attributes keeps its text under tree.TextKey.

const attrPrefix = tree.AttrPrefix

// ---- decoding ----

type xmlFrame struct {
	name     string
	path     string
	children *tree.Dict
	elements bool
	text     strings.Builder
}

func unmarshalXML(data []byte, opts Options) (*tree.Dict, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	doc := tree.New()
	var stack []*xmlFrame
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && doc.Len() > 0 {
				return nil, fmt.Errorf("%w: more than one root element", ErrSyntax)
			}
			path := t.Name.Local
			if len(stack) > 0 {
				path = childPath(stack[len(stack)-1].path, t.Name.Local)
			}
			if opts.depthExceeded(len(stack) + 1) {
				return nil, fmt.Errorf("%w: at %q", ErrMaxDepth, path)
			}
			f := &xmlFrame{name: t.Name.Local, path: path}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				if f.children == nil {
					f.children = tree.New()
				}
				f.children.Set(attrPrefix+a.Name.Local, a.Value)
			}
			stack = append(stack, f)
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			var v any
			if f.children != nil {
				if text := f.text.String(); !f.elements && strings.TrimSpace(text) != "" {
					f.children.Set(tree.TextKey, text)
				}
				v = f.children
			} else {
				v = f.text.String()
			}
			if len(stack) == 0 {
				doc.Set(f.name, v)
				continue
			}
			parent := stack[len(stack)-1]
			if parent.children == nil {
				parent.children = tree.New()
			}
			parent.elements = true
			appendXMLChild(parent.children, f.name, v)
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	if doc.Len() == 0 {
		return nil, ErrNotDocument
	}
	return doc, nil
}

func appendXMLChild(d *tree.Dict, name string, v any) {
	prev, ok := d.Get(name)
	if !ok {
		d.Set(name, v)
		return
	}
	if l, isList := prev.([]any); isList {
		d.Set(name, append(l, v))
		return
	}
	d.Set(name, []any{prev, v})
}

// ---- encoding ----

func marshalXML(doc *tree.Dict, opts Options) ([]byte, error) {
	if doc.Len() != 1 {
		return nil, fmt.Errorf("%w: XML needs exactly one root, found %d", ErrNotDocument, doc.Len())
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", opts.Indent)
	root := doc.Keys()[0]
	v, _ := doc.Get(root)
	if err := xmlElement(enc, root, v); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	if opts.Indent != "" {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func xmlElement(enc *xml.Encoder, name string, v any) error {
	if strings.HasPrefix(name, attrPrefix) {
		return fmt.Errorf("%w: attribute %q outside a mapping", ErrUnsupportedValue, name)
	}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if err := xmlElement(enc, name, item); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return nil
	}
	start := xml.StartElement{Name: xml.Name{Local: name}}
	d, isDict := v.(*tree.Dict)
	if isDict {
		for _, k := range d.Keys() {
			if !strings.HasPrefix(k, attrPrefix) {
				continue
			}
			av, _ := d.Get(k)
			s, err := scalarText(av)
			if err != nil {
				return err
			}
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: strings.TrimPrefix(k, attrPrefix)}, Value: s})
		}
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if isDict {
		for _, k := range d.Keys() {
			if strings.HasPrefix(k, attrPrefix) {
				continue
			}
			child, _ := d.Get(k)
			if k == tree.TextKey {
				s, err := scalarText(child)
				if err != nil {
					return err
				}
				if err := enc.EncodeToken(xml.CharData(s)); err != nil {
					return err
				}
				continue
			}
			if err := xmlElement(enc, k, child); err != nil {
				return err
			}
		}
	} else {
		s, err := scalarText(v)
		if err != nil {
			return err
		}
		if err := enc.EncodeToken(xml.CharData(s)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
