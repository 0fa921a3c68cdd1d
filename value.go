package recmodel

import (
	"errors"
	"fmt"

	js "github.com/reoring/recmodel/jsonschema"
	"github.com/reoring/recmodel/tree"
	"github.com/reoring/recmodel/units"
)

// Value is one named, typed field owned by a Record. The only implementation is
// Field; new payload types are added through Kind.
type Value interface {
	Name() string
	Kind() string
	// ModelPath is the dotted location below the record's model root.
	ModelPath() string
	ModelUnit() string
	Unit() string
	// DefaultValue returns the default in Unit, or nil.
	DefaultValue() any
	AllowedValues() []any
	Description() string

	// IsSet reports whether a payload was assigned.
	IsSet() bool
	// Get returns the payload, the default when unset, or nil.
	Get() any
	// Set coerces and assigns v. A nil v unsets the Value.
	Set(v any) error
	Unset()

	// BuildModel writes the Value into the record subtree doc.
	BuildModel(doc *tree.Dict) error
	// LoadModel reads the Value from the record subtree doc.
	LoadModel(doc *tree.Dict) error

	JSONSchema() *js.Schema

	snapshot() any
	restore(state any)
}

// Field is a Value whose payload has Go type T.
type Field[T comparable] struct {
	kind        Kind[T]
	scaler      Scaler[T]
	name        string
	owner       Record
	modelpath   string
	modelunit   string
	unit        string
	description string
	def         *T
	allowed     []T
	val         *T
}

// Typed aliases for the built-in kinds.
type (
	IntValue   = Field[int64]
	FloatValue = Field[float64]
	StrValue   = Field[string]
	BoolValue  = Field[bool]
)

// NewField constructs a Field of kind k bound to owner. owner may be nil for
// free-standing Values.
func NewField[T comparable](k Kind[T], name string, owner Record, opts ...ValueOpt) (*Field[T], error) {
	var cfg valueConfig
	for _, o := range opts {
		o(&cfg)
	}
	if name == "" {
		return nil, singleIssue("", CodeConfiguration, errors.New("value without a name"), nil)
	}
	f := &Field[T]{kind: k, name: name, owner: owner, modelpath: cfg.modelpath, description: cfg.description}
	if f.modelpath == "" {
		f.modelpath = name
	}
	if _, err := tree.SplitPath(f.modelpath); err != nil {
		return nil, singleIssue(name, CodeConfiguration, err, nil)
	}
	f.scaler, _ = any(k).(Scaler[T])
	if err := f.configureUnits(cfg); err != nil {
		return nil, err
	}
	for _, a := range cfg.allowed {
		v, err := f.coerce(a)
		if err != nil {
			return nil, singleIssue(name, CodeConfiguration, fmt.Errorf("allowed value: %w", err), nil)
		}
		f.allowed = append(f.allowed, v)
	}
	if cfg.hasDef && cfg.def != nil {
		v, err := f.coerce(cfg.def)
		if err != nil {
			return nil, singleIssue(name, CodeConfiguration, fmt.Errorf("default value: %w", err), nil)
		}
		if !f.isAllowed(v) {
			return nil, singleIssue(name, CodeConfiguration, fmt.Errorf("default value %v is not allowed", v), nil)
		}
		f.def = &v
	}
	return f, nil
}

func (f *Field[T]) configureUnits(cfg valueConfig) error {
	if cfg.modelunit == "" {
		if cfg.unit != "" {
			return singleIssue(f.name, CodeConfiguration, errors.New("unit requires a model unit"), nil)
		}
		return nil
	}
	if f.scaler == nil {
		return singleIssue(f.name, CodeConfiguration, fmt.Errorf("kind %s does not support units", f.kind.Name()), nil)
	}
	f.modelunit = cfg.modelunit
	f.unit = cfg.unit
	if f.unit == "" {
		f.unit = f.modelunit
	}
	if _, err := units.Factor(f.modelunit, f.unit); err != nil {
		return f.unitIssue(err)
	}
	return nil
}

func (f *Field[T]) unitIssue(err error) error {
	if errors.Is(err, units.ErrUnknownUnit) {
		return singleIssue(f.name, CodeUnknownUnit, err, nil)
	}
	return singleIssue(f.name, CodeConfiguration, err, nil)
}

// coerce converts v to T. Quantity literals ("5 angstrom") are accepted by
// unit-bearing Fields and expressed in f.unit.
func (f *Field[T]) coerce(v any) (T, error) {
	if s, ok := v.(string); ok && f.scaler != nil && f.unit != "" {
		if q, err := units.ParseQuantity(s); err == nil && q.Unit != "" {
			fac, err := units.Factor(q.Unit, f.unit)
			if err != nil {
				var zero T
				return zero, err
			}
			n, err := f.kind.Coerce(q.Value)
			if err != nil {
				return n, err
			}
			return f.scaler.Scale(n, fac), nil
		} else if errors.Is(err, units.ErrUnknownUnit) {
			var zero T
			return zero, err
		}
	}
	return f.kind.Coerce(v)
}

func (f *Field[T]) isAllowed(v T) bool {
	if len(f.allowed) == 0 {
		return true
	}
	for _, a := range f.allowed {
		if a == v {
			return true
		}
	}
	return false
}

func (f *Field[T]) path() PathRef {
	p := Root()
	if f.owner != nil {
		p = p.Field(f.owner.ModelRoot())
	}
	return p.At(f.modelpath)
}

func (f *Field[T]) Name() string        { return f.name }
func (f *Field[T]) Kind() string        { return f.kind.Name() }
func (f *Field[T]) ModelPath() string   { return f.modelpath }
func (f *Field[T]) ModelUnit() string   { return f.modelunit }
func (f *Field[T]) Unit() string        { return f.unit }
func (f *Field[T]) Description() string { return f.description }
func (f *Field[T]) IsSet() bool         { return f.val != nil }
func (f *Field[T]) Unset()              { f.val = nil }

// Owner returns the Record the Field belongs to.
func (f *Field[T]) Owner() Record { return f.owner }

func (f *Field[T]) DefaultValue() any {
	if f.def == nil {
		return nil
	}
	return *f.def
}

func (f *Field[T]) AllowedValues() []any {
	if len(f.allowed) == 0 {
		return nil
	}
	out := make([]any, len(f.allowed))
	for i, a := range f.allowed {
		out[i] = a
	}
	return out
}

var errUndeclared = errors.New("value is not declared; the record was not initialized")

// Lookup returns the payload or the default, and whether either exists. A nil
// Field, as found in a record that skipped Init, reports neither.
func (f *Field[T]) Lookup() (T, bool) {
	switch {
	case f == nil:
	case f.val != nil:
		return *f.val, true
	case f.def != nil:
		return *f.def, true
	}
	var zero T
	return zero, false
}

// Value returns the payload, the default, or the zero value of T.
func (f *Field[T]) Value() T {
	v, _ := f.Lookup()
	return v
}

func (f *Field[T]) Get() any {
	v, ok := f.Lookup()
	if !ok {
		return nil
	}
	return v
}

// SetValue assigns an already typed payload.
func (f *Field[T]) SetValue(v T) error {
	if f == nil {
		return singleIssue("", CodeConfiguration, errUndeclared, nil)
	}
	if !f.isAllowed(v) {
		return Issues{f.path().Issue(CodeConstraintViolation, nil,
			"detail", fmt.Sprintf("%v not in %v", v, f.allowed), "got", v, "allowed", f.AllowedValues())}
	}
	f.val = &v
	return nil
}

func (f *Field[T]) Set(v any) error {
	if v == nil {
		f.Unset()
		return nil
	}
	t, err := f.coerce(v)
	if err != nil {
		if errors.Is(err, units.ErrUnknownUnit) {
			return Issues{f.path().Issue(CodeUnknownUnit, err)}
		}
		return Issues{f.path().Issue(CodeTypeMismatch, err, "kind", f.kind.Name())}
	}
	return f.SetValue(t)
}

// In returns the payload expressed in unit.
// Unknown or incompatible units fail even when there is no payload.
func (f *Field[T]) In(unit string) (T, error) {
	var zero T
	if f == nil {
		return zero, singleIssue("", CodeConfiguration, errUndeclared, nil)
	}
	fac, err := f.factor(f.unit, unit)
	if err != nil {
		return zero, err
	}
	v, ok := f.Lookup()
	if !ok || unit == f.unit {
		return v, nil
	}
	return f.scaler.Scale(v, fac), nil
}

// SetIn assigns v given in unit.
func (f *Field[T]) SetIn(v T, unit string) error {
	if f == nil {
		return singleIssue("", CodeConfiguration, errUndeclared, nil)
	}
	if unit == f.unit {
		return f.SetValue(v)
	}
	fac, err := f.factor(unit, f.unit)
	if err != nil {
		return err
	}
	return f.SetValue(f.scaler.Scale(v, fac))
}

func (f *Field[T]) factor(from, to string) (float64, error) {
	if f.scaler == nil || f.unit == "" {
		return 0, singleIssue(f.path().String(), CodeConfiguration, fmt.Errorf("%s has no unit", f.name), nil)
	}
	fac, err := units.Factor(from, to)
	if err != nil {
		if errors.Is(err, units.ErrUnknownUnit) {
			return 0, Issues{f.path().Issue(CodeUnknownUnit, err)}
		}
		return 0, Issues{f.path().Issue(CodeTypeMismatch, err)}
	}
	return fac, nil
}

func (f *Field[T]) BuildModel(doc *tree.Dict) error {
	v, ok := f.Lookup()
	if !ok {
		return nil
	}
	if f.modelunit != "" && f.unit != f.modelunit {
		fac, err := f.factor(f.unit, f.modelunit)
		if err != nil {
			return err
		}
		v = f.scaler.Scale(v, fac)
	}
	if err := doc.SetPath(f.modelpath, f.kind.ToModel(v)); err != nil {
		return Issues{f.path().Issue(CodeSchemaMismatch, err)}
	}
	return nil
}

func (f *Field[T]) LoadModel(doc *tree.Dict) error {
	node, ok := doc.Find(f.modelpath)
	if !ok || node == nil {
		f.Unset()
		return nil
	}
	if d, isDict := node.(*tree.Dict); isDict {
		if text, ok := d.Text(); ok {
			node = text
		}
	}
	switch node.(type) {
	case *tree.Dict, []any:
		return Issues{f.path().Issue(CodeSchemaMismatch, fmt.Errorf("expected %s leaf, found %T", f.kind.Name(), node))}
	}
	v, err := f.kind.Coerce(node)
	if err != nil {
		return Issues{f.path().Issue(CodeSchemaMismatch, err, "kind", f.kind.Name())}
	}
	if f.modelunit != "" && f.unit != f.modelunit {
		fac, err := f.factor(f.modelunit, f.unit)
		if err != nil {
			return err
		}
		v = f.scaler.Scale(v, fac)
	}
	return f.SetValue(v)
}

// JSONSchema describes the Field as a JSON Schema leaf.
func (f *Field[T]) JSONSchema() *js.Schema {
	s := f.kind.JSONSchema()
	s.Description = f.description
	if f.def != nil {
		d := *f.def
		if f.modelunit != "" && f.unit != f.modelunit {
			if fac, err := units.Factor(f.unit, f.modelunit); err == nil {
				d = f.scaler.Scale(d, fac)
			}
		}
		s.Default = f.kind.ToModel(d)
	}
	for _, a := range f.allowed {
		s.Enum = append(s.Enum, f.kind.ToModel(a))
	}
	s.Unit = f.modelunit
	return s
}

func (f *Field[T]) snapshot() any { return f.val }

func (f *Field[T]) restore(state any) {
	f.val, _ = state.(*T)
}
