// Package tree implements the ordered tree document used as the intermediate
// form between records and their textual encodings.
//
// A document is a *Dict whose children are *Dict, []any or scalars (string,
// bool, integers, floats, json.Number, nil). Keys keep insertion order so that
// encoders reproduce the declaration order of record fields.
//
// Locations inside a document are dot-separated paths such as
// "settings.intval". Paths only descend through *Dict nodes.
package tree

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidPath reports an empty path or a path with an empty segment.
	ErrInvalidPath = errors.New("tree: invalid path")
	// ErrNotBranch reports a path that crosses a leaf node.
	ErrNotBranch = errors.New("tree: path crosses a leaf")
)

// Markup keys carry what XML holds besides child elements: "@name" for an
// attribute and TextKey for the character data of an element that also has
// attributes.
const (
	AttrPrefix = "@"
	TextKey    = "#text"
)

// IsMarkupKey reports whether key names an attribute or element text.
func IsMarkupKey(key string) bool {
	return key == TextKey || strings.HasPrefix(key, AttrPrefix)
}

// Dict is an ordered key to node mapping. The zero value is not usable; use New.
type Dict struct {
	keys []string
	vals map[string]any
}

// New returns an empty Dict.
func New() *Dict {
	return &Dict{vals: map[string]any{}}
}

// Len returns the number of keys.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.keys...)
}

// Has reports whether key is present.
func (d *Dict) Has(key string) bool {
	if d == nil {
		return false
	}
	_, ok := d.vals[key]
	return ok
}

// Get returns the child stored under key.
func (d *Dict) Get(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.vals[key]
	return v, ok
}

// Set stores v under key. An existing key keeps its position.
func (d *Dict) Set(key string, v any) {
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = v
}

// Delete removes key and reports whether it was present.
func (d *Dict) Delete(key string) bool {
	if _, ok := d.vals[key]; !ok {
		return false
	}
	delete(d.vals, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return true
}

// Root returns the single top-level key and its child. ok is false unless the
// Dict holds exactly one key.
func (d *Dict) Root() (key string, child any, ok bool) {
	if d.Len() != 1 {
		return "", nil, false
	}
	key = d.keys[0]
	return key, d.vals[key], true
}

// Find resolves a dotted path. It returns false when any segment is missing or
// when the path crosses a leaf.
func (d *Dict) Find(path string) (any, bool) {
	parts, err := SplitPath(path)
	if err != nil {
		return nil, false
	}
	var cur any = d
	for _, p := range parts {
		sub, ok := cur.(*Dict)
		if !ok {
			return nil, false
		}
		if cur, ok = sub.Get(p); !ok {
			return nil, false
		}
	}
	return cur, true
}

// SetPath stores v at a dotted path, creating intermediate Dicts as needed.
func (d *Dict) SetPath(path string, v any) error {
	parts, err := SplitPath(path)
	if err != nil {
		return err
	}
	cur := d
	for i, p := range parts[:len(parts)-1] {
		next, ok := cur.Get(p)
		if !ok {
			nd := New()
			cur.Set(p, nd)
			cur = nd
			continue
		}
		nd, ok := next.(*Dict)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotBranch, Join(parts[:i+1]...))
		}
		cur = nd
	}
	cur.Set(parts[len(parts)-1], v)
	return nil
}

// DeletePath removes the node at a dotted path.
func (d *Dict) DeletePath(path string) bool {
	parts, err := SplitPath(path)
	if err != nil {
		return false
	}
	parent := d
	if len(parts) > 1 {
		n, ok := d.Find(Join(parts[:len(parts)-1]...))
		if !ok {
			return false
		}
		if parent, ok = n.(*Dict); !ok {
			return false
		}
	}
	return parent.Delete(parts[len(parts)-1])
}

// Clone returns a deep copy of d. Lists are copied; scalars are shared.
func (d *Dict) Clone() *Dict {
	if d == nil {
		return nil
	}
	out := &Dict{keys: append([]string(nil), d.keys...), vals: make(map[string]any, len(d.vals))}
	for k, v := range d.vals {
		out.vals[k] = cloneNode(v)
	}
	return out
}

func cloneNode(v any) any {
	switch t := v.(type) {
	case *Dict:
		return t.Clone()
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = cloneNode(t[i])
		}
		return arr
	default:
		return v
	}
}

// Text returns the TextKey child of a Dict that holds nothing but attributes
// and text, i.e. a leaf element decorated with attributes.
func (d *Dict) Text() (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.vals[TextKey]
	if !ok {
		return nil, false
	}
	for _, k := range d.keys {
		if !IsMarkupKey(k) {
			return nil, false
		}
	}
	return v, true
}

// Walk calls fn for every non-Dict node in depth-first key order. Lists are
// reported as a single node at their own path.
func (d *Dict) Walk(fn func(path string, v any) error) error {
	return d.walk("", fn)
}

func (d *Dict) walk(prefix string, fn func(string, any) error) error {
	for _, k := range d.keys {
		p := k
		if prefix != "" {
			p = prefix + "." + k
		}
		if sub, ok := d.vals[k].(*Dict); ok {
			if err := sub.walk(p, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(p, d.vals[k]); err != nil {
			return err
		}
	}
	return nil
}

// ToMap converts d into plain maps and slices. Key order is lost.
func (d *Dict) ToMap() map[string]any {
	if d == nil {
		return nil
	}
	out := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		out[k] = toPlain(d.vals[k])
	}
	return out
}

func toPlain(v any) any {
	switch t := v.(type) {
	case *Dict:
		return t.ToMap()
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = toPlain(t[i])
		}
		return arr
	default:
		return v
	}
}

// FromMap converts plain maps into a Dict. Keys are sorted since maps carry no
// order.
func FromMap(m map[string]any) *Dict {
	d := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		d.Set(k, fromPlain(m[k]))
	}
	return d
}

func fromPlain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return FromMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = fromPlain(t[i])
		}
		return arr
	default:
		return v
	}
}

// SplitPath splits a dotted path into segments.
func SplitPath(path string) ([]string, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return parts, nil
}

// Join joins segments into a dotted path.
func Join(parts ...string) string { return strings.Join(parts, ".") }

// Overlaps reports whether one path equals the other or is a prefix of it at a
// segment boundary. Two overlapping paths cannot both hold leaves.
func Overlaps(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	return strings.HasPrefix(b, a) && b[len(a)] == '.'
}
