package recmodel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/recmodel/tree"
)

// Record is the capability set shared by every record style. Concrete styles
// embed Base, which supplies everything except the style metadata.
type Record interface {
	// Style is the schema identifier used by the registry.
	Style() string
	// ModelRoot is the root key of the record's tree document.
	ModelRoot() string
	// XSDFilename locates the validation schema of the style.
	XSDFilename() Resource
	// XSLFilename locates the presentation transform of the style.
	XSLFilename() Resource

	Name() string
	SetName(name string)
	Ready() bool

	Values() []Value
	Value(name string) (Value, bool)
	Get(name string) (any, error)
	Set(name string, v any) error

	BuildModel() (*tree.Dict, error)
	LoadModel(doc *tree.Dict) error
	LoadModelOpt(doc *tree.Dict, opt LoadOpt) error
}

// DeclareFunc appends Values to a record under construction. A record type
// that composes another passes the inner type's DeclareFunc first.
type DeclareFunc func(b *Builder)

// Builder collects Value declarations during Init. Errors are recorded and
// reported by Init, so declaration code reads as a flat list.
type Builder struct {
	owner  Record
	values []Value
	byName map[string]Value
	issues Issues
}

func newBuilder(owner Record) *Builder {
	return &Builder{owner: owner, byName: map[string]Value{}}
}

// Add declares a Value of a registered kind.
func (b *Builder) Add(kind, name string, opts ...ValueOpt) Value {
	v, err := LoadValue(kind, name, b.owner, opts...)
	if err != nil {
		b.fail(err)
		return nil
	}
	if !b.append(v) {
		return nil
	}
	return v
}

// Declare adds a Field of kind k to b and returns it typed. It returns nil when
// the declaration fails; Init then reports the failure.
func Declare[T comparable](b *Builder, k Kind[T], name string, opts ...ValueOpt) *Field[T] {
	f, err := NewField(k, name, b.owner, opts...)
	if err != nil {
		b.fail(err)
		return nil
	}
	if !b.append(f) {
		return nil
	}
	return f
}

// Int declares an int Value.
func (b *Builder) Int(name string, opts ...ValueOpt) *IntValue {
	return Declare(b, IntKind, name, opts...)
}

// Float declares a float Value.
func (b *Builder) Float(name string, opts ...ValueOpt) *FloatValue {
	return Declare(b, FloatKind, name, opts...)
}

// Str declares a short string Value.
func (b *Builder) Str(name string, opts ...ValueOpt) *StrValue {
	return Declare(b, StrKind, name, opts...)
}

// LongStr declares a long (multi-line) string Value.
func (b *Builder) LongStr(name string, opts ...ValueOpt) *StrValue {
	return Declare(b, LongStrKind, name, opts...)
}

// Bool declares a bool Value.
func (b *Builder) Bool(name string, opts ...ValueOpt) *BoolValue {
	return Declare(b, BoolKind, name, opts...)
}

func (b *Builder) append(v Value) bool {
	if _, dup := b.byName[v.Name()]; dup {
		b.fail(singleIssue(v.Name(), CodeConfiguration, fmt.Errorf("duplicate value name %q", v.Name()), nil))
		return false
	}
	for _, o := range b.values {
		if tree.Overlaps(o.ModelPath(), v.ModelPath()) {
			b.fail(singleIssue(v.Name(), CodeConfiguration,
				fmt.Errorf("modelpath %q of %s collides with %q of %s", v.ModelPath(), v.Name(), o.ModelPath(), o.Name()), nil))
			return false
		}
	}
	b.values = append(b.values, v)
	b.byName[v.Name()] = v
	return true
}

func (b *Builder) fail(err error) {
	if iss, ok := AsIssues(err); ok {
		b.issues = AppendIssues(b.issues, iss...)
		return
	}
	b.issues = AppendIssues(b.issues, newIssue("", CodeConfiguration, err, nil))
}

// Base carries the Values and identity of a record. Embed it in a concrete
// style and call Init from the style's constructor.
type Base struct {
	self   Record
	name   string
	values []Value
	byName map[string]Value
	ready  bool
}

// Init attaches the Values declared by steps, in order, and moves the record
// to the ready state. It fails with configuration_error on any declaration
// problem, leaving the record unusable.
func (r *Base) Init(self Record, steps ...DeclareFunc) error {
	if r.ready {
		return singleIssue("", CodeConfiguration, errors.New("record already initialized"), nil)
	}
	if self.Style() == "" || self.ModelRoot() == "" {
		return singleIssue("", CodeConfiguration, errors.New("record needs a style and a model root"), nil)
	}
	b := newBuilder(self)
	for _, step := range steps {
		step(b)
	}
	if len(b.issues) > 0 {
		return b.issues
	}
	r.self = self
	r.values = b.values
	r.byName = b.byName
	r.ready = true
	return nil
}

// Ready reports whether Init completed.
func (r *Base) Ready() bool { return r.ready }

// Name is the record's identity within a database. It is not serialized.
func (r *Base) Name() string { return r.name }

func (r *Base) SetName(name string) { r.name = name }

// Values lists the record's Values in declaration order.
func (r *Base) Values() []Value { return append([]Value(nil), r.values...) }

func (r *Base) Value(name string) (Value, bool) {
	v, ok := r.byName[name]
	return v, ok
}

func (r *Base) lookup(name string) (Value, error) {
	v, ok := r.byName[name]
	if !ok {
		return nil, singleIssue(name, CodeSchemaMismatch, fmt.Errorf("no value named %q", name), nil)
	}
	return v, nil
}

// Get returns the named Value's payload or default.
func (r *Base) Get(name string) (any, error) {
	v, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return v.Get(), nil
}

// Set assigns the named Value.
func (r *Base) Set(name string, val any) error {
	v, err := r.lookup(name)
	if err != nil {
		return err
	}
	return v.Set(val)
}

var errNotReady = errors.New("record is not initialized")

func (r *Base) notReady() error {
	return singleIssue("", CodeConfiguration, errNotReady, nil)
}

// BuildModel assembles the record's tree document.
func (r *Base) BuildModel() (*tree.Dict, error) {
	if !r.ready {
		return nil, r.notReady()
	}
	body := tree.New()
	for _, v := range r.values {
		if err := v.BuildModel(body); err != nil {
			return nil, err
		}
	}
	doc := tree.New()
	doc.Set(r.self.ModelRoot(), body)
	return doc, nil
}

// LoadModel populates the record from doc using default options.
func (r *Base) LoadModel(doc *tree.Dict) error {
	return r.LoadModelOpt(doc, LoadOpt{})
}

// LoadModelOpt populates the record from doc. The load is all-or-nothing: on
// failure every Value keeps the state it had before the call.
func (r *Base) LoadModelOpt(doc *tree.Dict, opt LoadOpt) error {
	if !r.ready {
		return r.notReady()
	}
	root := r.self.ModelRoot()
	key, child, ok := doc.Root()
	if !ok || key != root {
		return singleIssue(root, CodeSchemaMismatch,
			fmt.Errorf("expected a single root %q, found %v", root, doc.Keys()), nil)
	}
	var body *tree.Dict
	switch t := child.(type) {
	case *tree.Dict:
		body = t
	case nil:
		body = tree.New()
	case string:
		if t != "" {
			return singleIssue(root, CodeSchemaMismatch, fmt.Errorf("root %q holds a leaf", root), nil)
		}
		body = tree.New()
	default:
		return singleIssue(root, CodeSchemaMismatch, fmt.Errorf("root %q holds a leaf", root), nil)
	}

	states := make([]any, len(r.values))
	for i, v := range r.values {
		states[i] = v.snapshot()
	}
	var iss Issues
	for _, v := range r.values {
		if err := v.LoadModel(body); err != nil {
			iss = appendErr(iss, err)
			if opt.FailFast {
				break
			}
		}
	}
	if opt.Unknown == UnknownStrict && (len(iss) == 0 || !opt.FailFast) {
		iss = append(iss, r.unclaimed(body)...)
	}
	if len(iss) > 0 {
		for i, v := range r.values {
			v.restore(states[i])
		}
		return iss
	}
	return nil
}

// unclaimed reports leaves of body that no Value reads.
func (r *Base) unclaimed(body *tree.Dict) Issues {
	var iss Issues
	_ = body.Walk(func(p string, _ any) error {
		for _, v := range r.values {
			if v.ModelPath() == p {
				return nil
			}
			if parent, key, ok := cutLast(p); ok && parent == v.ModelPath() && tree.IsMarkupKey(key) {
				return nil
			}
		}
		iss = append(iss, Root().Field(r.self.ModelRoot()).At(p).Issue(CodeSchemaMismatch,
			fmt.Errorf("unknown element %q", p), "unknown", p))
		return nil
	})
	return iss
}

func cutLast(p string) (parent, key string, ok bool) {
	i := strings.LastIndexByte(p, '.')
	if i < 0 {
		return "", "", false
	}
	return p[:i], p[i+1:], true
}

func appendErr(iss Issues, err error) Issues {
	if more, ok := AsIssues(err); ok {
		return append(iss, more...)
	}
	return append(iss, newIssue("", CodeSchemaMismatch, err, nil))
}
