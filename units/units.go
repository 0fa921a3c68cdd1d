// Package units holds the table of physical units known to numeric record
// fields and performs linear conversions between units of one dimension.
//
// Every unit is stored as a factor relative to the SI base unit of its
// dimension, so the factor between two units is the ratio of their factors.
// The table is populated at init and may be extended with Register during
// program start; lookups are safe for concurrent use.
package units

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Dimension names a physical dimension.
type Dimension string

const (
	Length   Dimension = "length"
	Mass     Dimension = "mass"
	Time     Dimension = "time"
	Energy   Dimension = "energy"
	Pressure Dimension = "pressure"
)

var (
	// ErrUnknownUnit reports a unit name missing from the table.
	ErrUnknownUnit = errors.New("units: unknown unit")
	// ErrIncompatible reports a conversion between different dimensions.
	ErrIncompatible = errors.New("units: incompatible dimensions")
	// ErrInvalidQuantity reports a quantity literal that cannot be parsed.
	ErrInvalidQuantity = errors.New("units: invalid quantity")
)

type unit struct {
	dim    Dimension
	factor float64 // value of one unit in the SI base unit
}

const (
	avogadro = 6.02214076e23
	electron = 1.602176634e-19
	hartree  = 4.3597447222071e-18
)

var (
	tableMu sync.RWMutex
	table   = map[string]unit{
		"m":        {Length, 1},
		"cm":       {Length, 1e-2},
		"mm":       {Length, 1e-3},
		"um":       {Length, 1e-6},
		"µm":       {Length, 1e-6},
		"nm":       {Length, 1e-9},
		"angstrom": {Length, 1e-10},
		"Å":        {Length, 1e-10},
		"pm":       {Length, 1e-12},
		"bohr":     {Length, 5.29177210903e-11},

		"kg":  {Mass, 1},
		"g":   {Mass, 1e-3},
		"mg":  {Mass, 1e-6},
		"amu": {Mass, 1.66053906660e-27},
		"Da":  {Mass, 1.66053906660e-27},

		"s":  {Time, 1},
		"ms": {Time, 1e-3},
		"us": {Time, 1e-6},
		"ns": {Time, 1e-9},
		"ps": {Time, 1e-12},
		"fs": {Time, 1e-15},

		"J":        {Energy, 1},
		"kJ":       {Energy, 1e3},
		"eV":       {Energy, electron},
		"meV":      {Energy, electron * 1e-3},
		"keV":      {Energy, electron * 1e3},
		"hartree":  {Energy, hartree},
		"Ry":       {Energy, hartree / 2},
		"kJ/mol":   {Energy, 1e3 / avogadro},
		"kcal/mol": {Energy, 4184 / avogadro},

		"Pa":  {Pressure, 1},
		"kPa": {Pressure, 1e3},
		"MPa": {Pressure, 1e6},
		"GPa": {Pressure, 1e9},
		"bar": {Pressure, 1e5},
		"atm": {Pressure, 101325},
	}
)

// Register adds a unit to the table. factor is the value of one unit expressed
// in the SI base unit of dim. Registering an existing name fails.
func Register(name string, dim Dimension, factor float64) error {
	name = strings.TrimSpace(name)
	if name == "" || factor <= 0 {
		return fmt.Errorf("units: invalid registration %q (factor %g)", name, factor)
	}
	tableMu.Lock()
	defer tableMu.Unlock()
	if _, ok := table[name]; ok {
		return fmt.Errorf("units: unit %q already registered", name)
	}
	table[name] = unit{dim: dim, factor: factor}
	return nil
}

func lookup(name string) (unit, bool) {
	tableMu.RLock()
	u, ok := table[name]
	tableMu.RUnlock()
	return u, ok
}

// DimensionOf returns the dimension of a registered unit.
func DimensionOf(name string) (Dimension, error) {
	u, ok := lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	return u.dim, nil
}

// Known reports whether name is registered.
func Known(name string) bool {
	_, ok := lookup(name)
	return ok
}

// Names lists registered units of dim, or all units when dim is empty.
func Names(dim Dimension) []string {
	tableMu.RLock()
	out := make([]string, 0, len(table))
	for n, u := range table {
		if dim == "" || u.dim == dim {
			out = append(out, n)
		}
	}
	tableMu.RUnlock()
	sort.Strings(out)
	return out
}

// Factor returns f such that a value in from multiplied by f is the same
// quantity expressed in to.
func Factor(from, to string) (float64, error) {
	if from == to {
		if _, ok := lookup(from); !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
		}
		return 1, nil
	}
	uf, ok := lookup(from)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	ut, ok := lookup(to)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	if uf.dim != ut.dim {
		return 0, fmt.Errorf("%w: %s (%s) to %s (%s)", ErrIncompatible, from, uf.dim, to, ut.dim)
	}
	return round15(uf.factor / ut.factor), nil
}

// round15 drops the binary noise a quotient of two decimal factors picks up,
// so that angstrom to nm is exactly 0.1.
func round15(f float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'g', 15, 64), 64)
	if err != nil {
		return f
	}
	return r
}

// Convert expresses v, given in from, in to.
func Convert(v float64, from, to string) (float64, error) {
	f, err := Factor(from, to)
	if err != nil {
		return 0, err
	}
	return v * f, nil
}

// Quantity is a number paired with the unit it is expressed in. An empty Unit
// means the number carries no unit.
type Quantity struct {
	Value float64
	Unit  string
}

// ParseQuantity parses literals such as "1.0 nm", "3e-2 angstrom" or "4".
func ParseQuantity(s string) (Quantity, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return Quantity{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	q := Quantity{Value: v}
	if len(fields) == 2 {
		if !Known(fields[1]) {
			return Quantity{}, fmt.Errorf("%w: %q", ErrUnknownUnit, fields[1])
		}
		q.Unit = fields[1]
	}
	return q, nil
}

// In expresses q in unit. A unitless quantity is returned as is.
func (q Quantity) In(unit string) (float64, error) {
	if q.Unit == "" || unit == "" {
		return q.Value, nil
	}
	return Convert(q.Value, q.Unit, unit)
}

func (q Quantity) String() string {
	s := strconv.FormatFloat(q.Value, 'g', -1, 64)
	if q.Unit == "" {
		return s
	}
	return s + " " + q.Unit
}
