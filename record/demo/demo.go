// Package demo implements the "demo" record style, a showcase of the
// built-in Value kinds: an int, a float, a constrained string, a length
// carrying units and a free-form notes field.
package demo

import (
	"embed"

	recmodel "github.com/reoring/recmodel"
)

// Style is the registered style name; it doubles as the model root.
const Style = "demo"

// Namespace identifies the package's embedded resources.
const Namespace = "github.com/reoring/recmodel/record/demo"

//go:embed demo.xsd demo.xsl
var resources embed.FS

func init() { recmodel.RegisterResources(Namespace, resources) }

// Demo is a record of style "demo". Construct it with New; the zero Demo
// has no Values, so its getters return zero values and its setters fail.
type Demo struct {
	recmodel.Base

	intval   *recmodel.IntValue
	floatval *recmodel.FloatValue
	option   *recmodel.StrValue
	length   *recmodel.FloatValue
	notes    *recmodel.StrValue
}

// New returns a ready Demo with every Value unset.
func New() (*Demo, error) {
	d := &Demo{}
	if err := d.Init(d, d.DeclareValues); err != nil {
		return nil, err
	}
	return d, nil
}

// Factory adapts New to recmodel.Factory.
func Factory() (recmodel.Record, error) {
	d, err := New()
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (*Demo) Style() string     { return Style }
func (*Demo) ModelRoot() string { return Style }

func (*Demo) XSDFilename() recmodel.Resource {
	return recmodel.Resource{Namespace: Namespace, Filename: "demo.xsd"}
}

func (*Demo) XSLFilename() recmodel.Resource {
	return recmodel.Resource{Namespace: Namespace, Filename: "demo.xsl"}
}

// DeclareValues declares the Demo Values on b. Styles composing Demo pass it
// to Init ahead of their own declarations.
func (d *Demo) DeclareValues(b *recmodel.Builder) {
	d.intval = b.Int("intval",
		recmodel.Default(6),
		recmodel.ModelPath("settings.intval"),
		recmodel.Description("An int value."))
	d.floatval = b.Float("floatval",
		recmodel.Default(0.0),
		recmodel.ModelPath("settings.floatval"),
		recmodel.Description("A float value."))
	d.option = b.Str("option",
		recmodel.Default("a"),
		recmodel.Allowed("a", "b", "c"),
		recmodel.ModelPath("settings.option"),
		recmodel.Description("A simple str option value."))
	d.length = b.Float("length",
		recmodel.Default("1.0 nm"),
		recmodel.ModelUnit("nm"),
		recmodel.Description("A length value demonstrating unit conversions."))
	d.notes = b.LongStr("notes",
		recmodel.Description("A long/complex notes str."))
}

func (d *Demo) IntVal() int64               { return d.intval.Value() }
func (d *Demo) SetIntVal(v int64) error     { return d.intval.SetValue(v) }
func (d *Demo) FloatVal() float64           { return d.floatval.Value() }
func (d *Demo) SetFloatVal(v float64) error { return d.floatval.SetValue(v) }

// Option is one of "a", "b" or "c".
func (d *Demo) Option() string { return d.option.Value() }

func (d *Demo) SetOption(v string) error { return d.option.SetValue(v) }

// Length is held in nanometers.
func (d *Demo) Length() float64 { return d.length.Value() }

func (d *Demo) SetLength(v float64) error { return d.length.SetValue(v) }

// LengthIn returns the length expressed in unit.
func (d *Demo) LengthIn(unit string) (float64, error) { return d.length.In(unit) }

// SetLengthIn assigns a length given in unit.
func (d *Demo) SetLengthIn(v float64, unit string) error { return d.length.SetIn(v, unit) }

// Notes returns the notes and whether they were set.
func (d *Demo) Notes() (string, bool) { return d.notes.Lookup() }

func (d *Demo) SetNotes(v string) error { return d.notes.SetValue(v) }
