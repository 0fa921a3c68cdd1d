package recmodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	js "github.com/reoring/recmodel/jsonschema"
)

// Kind describes how a Value of payload type T coerces assignments and how the
// payload appears as a tree leaf.
type Kind[T comparable] interface {
	// Name is the identifier used by LoadValue ("int", "float", ...).
	Name() string
	// Coerce converts an assignment or a loaded leaf into T.
	Coerce(v any) (T, error)
	// ToModel returns the leaf written into the tree document.
	ToModel(v T) any
	// JSONSchema describes the leaf in JSON Schema terms.
	JSONSchema() *js.Schema
}

// Scaler is implemented by kinds whose payload supports linear unit
// conversion. Only such kinds accept ModelUnit.
type Scaler[T comparable] interface {
	Scale(v T, factor float64) T
}

// errCoerce is the cause attached to type_mismatch issues.
var errCoerce = errors.New("cannot coerce")

func coerceErr(v any, kind string) error {
	return fmt.Errorf("%w %T(%v) to %s", errCoerce, v, v, kind)
}

// Built-in kinds.
var (
	IntKind     Kind[int64]   = intKind{}
	FloatKind   Kind[float64] = floatKind{}
	StrKind     Kind[string]  = strKind{name: "str"}
	LongStrKind Kind[string]  = strKind{name: "longstr", long: true}
	BoolKind    Kind[bool]    = boolKind{}
)

type intKind struct{}

func (intKind) Name() string { return "int" }

func (k intKind) Coerce(v any) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint:
		return uintToInt(uint64(t), v)
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		return uintToInt(t, v)
	case float32:
		return floatToInt(float64(t), v)
	case float64:
		return floatToInt(t, v)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return 0, coerceErr(v, "int")
		}
		return floatToInt(f, v)
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, coerceErr(v, "int")
		}
		return floatToInt(f, v)
	}
	return 0, coerceErr(v, "int")
}

func uintToInt(u uint64, orig any) (int64, error) {
	if u > math.MaxInt64 {
		return 0, coerceErr(orig, "int")
	}
	return int64(u), nil
}

func floatToInt(f float64, orig any) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, coerceErr(orig, "int")
	}
	return int64(f), nil
}

func (intKind) ToModel(v int64) any { return v }

func (intKind) JSONSchema() *js.Schema { return &js.Schema{Type: "integer"} }

type floatKind struct{}

func (floatKind) Name() string { return "float" }

func (floatKind) Coerce(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint:
		return float64(t), nil
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, coerceErr(v, "float")
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, coerceErr(v, "float")
		}
		return f, nil
	}
	return 0, coerceErr(v, "float")
}

func (floatKind) ToModel(v float64) any { return v }

func (floatKind) Scale(v float64, factor float64) float64 { return v * factor }

func (floatKind) JSONSchema() *js.Schema { return &js.Schema{Type: "number"} }

type strKind struct {
	name string
	long bool
}

func (k strKind) Name() string { return k.name }

func (k strKind) Coerce(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	// named string types; json.Number is a number, not text
	if _, isNum := v.(json.Number); !isNum && v != nil {
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
			return rv.String(), nil
		}
	}
	return "", coerceErr(v, k.name)
}

func (strKind) ToModel(v string) any { return v }

func (k strKind) JSONSchema() *js.Schema {
	if k.long {
		return &js.Schema{Type: "string", Format: "multiline"}
	}
	return &js.Schema{Type: "string"}
}

type boolKind struct{}

func (boolKind) Name() string { return "bool" }

func (boolKind) Coerce(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, coerceErr(v, "bool")
		}
		return b, nil
	}
	return false, coerceErr(v, "bool")
}

func (boolKind) ToModel(v bool) any { return v }

func (boolKind) JSONSchema() *js.Schema { return &js.Schema{Type: "boolean"} }

// ---- kind registry (LoadValue) ----

type valueFactory func(name string, owner Record, opts []ValueOpt) (Value, error)

var (
	kindsMu sync.RWMutex
	kinds   = map[string]valueFactory{}
)

func init() {
	mustRegisterKind(IntKind)
	mustRegisterKind(FloatKind)
	mustRegisterKind(StrKind)
	mustRegisterKind(LongStrKind)
	mustRegisterKind(BoolKind)
}

func mustRegisterKind[T comparable](k Kind[T]) {
	if err := RegisterKind(k); err != nil {
		panic(err)
	}
}

// RegisterKind makes k available to LoadValue and Builder.Add under k.Name().
func RegisterKind[T comparable](k Kind[T]) error {
	name := k.Name()
	if name == "" {
		return singleIssue("", CodeConfiguration, errors.New("kind without a name"), nil)
	}
	kindsMu.Lock()
	defer kindsMu.Unlock()
	if _, ok := kinds[name]; ok {
		return singleIssue("", CodeConfiguration, fmt.Errorf("kind %q already registered", name), nil)
	}
	kinds[name] = func(vname string, owner Record, opts []ValueOpt) (Value, error) {
		f, err := NewField(k, vname, owner, opts...)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil
}

// Kinds lists the registered kind names.
func Kinds() []string {
	kindsMu.RLock()
	out := make([]string, 0, len(kinds))
	for n := range kinds {
		out = append(out, n)
	}
	kindsMu.RUnlock()
	sort.Strings(out)
	return out
}

// LoadValue constructs a Value of the named kind bound to owner.
func LoadValue(kind, name string, owner Record, opts ...ValueOpt) (Value, error) {
	kindsMu.RLock()
	f, ok := kinds[kind]
	kindsMu.RUnlock()
	if !ok {
		return nil, singleIssue(name, CodeConfiguration, fmt.Errorf("unknown value kind %q", kind), nil)
	}
	return f(name, owner, opts)
}
