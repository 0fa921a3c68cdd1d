package recmodel_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	recmodel "github.com/reoring/recmodel"
	"github.com/reoring/recmodel/tree"
)

func TestIntValue_CoercionAndDefault(t *testing.T) {
	f, err := recmodel.NewField(recmodel.IntKind, "intval", nil,
		recmodel.Default(6), recmodel.ModelPath("settings.intval"))
	require.NoError(t, err)
	require.False(t, f.IsSet())
	require.Equal(t, int64(6), f.Value())
	require.Equal(t, int64(6), f.Get())

	for _, in := range []any{7, int32(7), uint8(7), 7.0, json.Number("7"), " 7 "} {
		require.NoError(t, f.Set(in), "%T", in)
		require.Equal(t, int64(7), f.Value())
	}

	for _, bad := range []any{7.5, "seven", true, []int{1}} {
		err := f.Set(bad)
		require.ErrorIs(t, err, recmodel.ErrTypeMismatch, "%T(%v)", bad, bad)
	}
	require.Equal(t, int64(7), f.Value(), "failed set must not change the payload")

	require.NoError(t, f.Set(nil))
	require.False(t, f.IsSet())
	require.Equal(t, int64(6), f.Value())
}

func TestStrValue_AllowedValues(t *testing.T) {
	f, err := recmodel.NewField(recmodel.StrKind, "option", nil,
		recmodel.Default("a"), recmodel.Allowed("a", "b", "c"))
	require.NoError(t, err)
	require.Equal(t, []any{"a", "b", "c"}, f.AllowedValues())

	err = f.Set("z")
	require.ErrorIs(t, err, recmodel.ErrConstraintViolation)
	iss, ok := recmodel.AsIssues(err)
	require.True(t, ok)
	require.Equal(t, "option", iss[0].Path)
	require.Equal(t, "z", iss[0].Params["got"])

	require.NoError(t, f.Set("b"))
	require.Equal(t, "b", f.Value())

	type opt string
	require.NoError(t, f.Set(opt("c")))
	require.Equal(t, "c", f.Value())

	require.ErrorIs(t, f.Set(json.Number("1")), recmodel.ErrTypeMismatch)
}

func TestNewField_ConfigurationErrors(t *testing.T) {
	cases := map[string][]recmodel.ValueOpt{
		"default not allowed":    {recmodel.Default("x"), recmodel.Allowed("a")},
		"uncoercible default":    {recmodel.Default([]string{"x"})},
		"bad modelpath":          {recmodel.ModelPath("a..b")},
		"unit without modelunit": {recmodel.Unit("nm")},
	}
	for name, opts := range cases {
		_, err := recmodel.NewField(recmodel.StrKind, "v", nil, opts...)
		require.ErrorIs(t, err, recmodel.ErrConfiguration, name)
	}

	_, err := recmodel.NewField(recmodel.StrKind, "", nil)
	require.ErrorIs(t, err, recmodel.ErrConfiguration)

	_, err = recmodel.NewField(recmodel.StrKind, "s", nil, recmodel.ModelUnit("nm"))
	require.ErrorIs(t, err, recmodel.ErrConfiguration, "strings carry no units")

	_, err = recmodel.NewField(recmodel.FloatKind, "f", nil, recmodel.ModelUnit("furlong"))
	require.ErrorIs(t, err, recmodel.ErrUnknownUnit)

	_, err = recmodel.NewField(recmodel.FloatKind, "f", nil, recmodel.ModelUnit("nm"), recmodel.Unit("eV"))
	require.ErrorIs(t, err, recmodel.ErrConfiguration)
}

func TestFloatValue_Units(t *testing.T) {
	f, err := recmodel.NewField(recmodel.FloatKind, "length", nil,
		recmodel.Default("1.0 nm"), recmodel.ModelUnit("nm"), recmodel.Unit("angstrom"))
	require.NoError(t, err)
	require.Equal(t, "angstrom", f.Unit())
	require.InDelta(t, 10.0, f.Value(), 1e-9, "default literal is converted into the working unit")

	require.NoError(t, f.Set("5 angstrom"))
	require.InDelta(t, 5.0, f.Value(), 1e-12)
	nm, err := f.In("nm")
	require.NoError(t, err)
	require.InDelta(t, 0.5, nm, 1e-12)

	require.NoError(t, f.SetIn(2, "nm"))
	require.InDelta(t, 20.0, f.Value(), 1e-9)

	doc := tree.New()
	require.NoError(t, f.BuildModel(doc))
	leaf, ok := doc.Get("length")
	require.True(t, ok)
	require.InDelta(t, 2.0, leaf.(float64), 1e-12, "model is written in the model unit")

	f.Unset()
	require.NoError(t, f.LoadModel(doc))
	require.InDelta(t, 20.0, f.Value(), 1e-9)

	require.ErrorIs(t, f.Set("5 furlong"), recmodel.ErrUnknownUnit)
	require.ErrorIs(t, f.Set("5 eV"), recmodel.ErrTypeMismatch)
	_, err = f.In("furlong")
	require.ErrorIs(t, err, recmodel.ErrUnknownUnit)

	bare, err := recmodel.NewField(recmodel.FloatKind, "x", nil, recmodel.ModelUnit("nm"))
	require.NoError(t, err)
	_, err = bare.In("parsec")
	require.ErrorIs(t, err, recmodel.ErrUnknownUnit, "unit is checked without a payload")
	_, err = bare.In("eV")
	require.ErrorIs(t, err, recmodel.ErrTypeMismatch)
	v, err := bare.In("angstrom")
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestField_Nil(t *testing.T) {
	var f *recmodel.FloatValue
	v, ok := f.Lookup()
	require.False(t, ok)
	require.Zero(t, v)
	require.Zero(t, f.Value())
	require.ErrorIs(t, f.SetValue(1), recmodel.ErrConfiguration)
	require.ErrorIs(t, f.SetIn(1, "nm"), recmodel.ErrConfiguration)
	_, err := f.In("nm")
	require.ErrorIs(t, err, recmodel.ErrConfiguration)
}

func TestIntValue_InWithoutUnit(t *testing.T) {
	f, err := recmodel.NewField(recmodel.IntKind, "n", nil, recmodel.Default(1))
	require.NoError(t, err)
	_, err = f.In("nm")
	require.ErrorIs(t, err, recmodel.ErrConfiguration)
}

func TestValue_LoadModel(t *testing.T) {
	f, err := recmodel.NewField(recmodel.IntKind, "intval", nil, recmodel.ModelPath("settings.intval"))
	require.NoError(t, err)

	doc := tree.New()
	require.NoError(t, doc.SetPath("settings.intval", "12"))
	require.NoError(t, f.LoadModel(doc))
	require.Equal(t, int64(12), f.Value())

	require.NoError(t, f.LoadModel(tree.New()))
	require.False(t, f.IsSet(), "a missing node unsets the value")

	bad := tree.New()
	require.NoError(t, bad.SetPath("settings.intval.deeper", 1))
	err = f.LoadModel(bad)
	require.ErrorIs(t, err, recmodel.ErrSchemaMismatch)

	bad = tree.New()
	require.NoError(t, bad.SetPath("settings.intval", "twelve"))
	err = f.LoadModel(bad)
	require.ErrorIs(t, err, recmodel.ErrSchemaMismatch)
	require.False(t, errors.Is(err, recmodel.ErrTypeMismatch))
}

func TestValue_BuildModelOmitsUnset(t *testing.T) {
	f, err := recmodel.NewField(recmodel.LongStrKind, "notes", nil)
	require.NoError(t, err)
	doc := tree.New()
	require.NoError(t, f.BuildModel(doc))
	require.Equal(t, 0, doc.Len())
	require.Nil(t, f.Get())
}

func TestLoadValue(t *testing.T) {
	require.Subset(t, recmodel.Kinds(), []string{"bool", "float", "int", "longstr", "str"})

	v, err := recmodel.LoadValue("bool", "flag", nil, recmodel.Default(false))
	require.NoError(t, err)
	require.Equal(t, "bool", v.Kind())
	require.NoError(t, v.Set("true"))
	require.Equal(t, true, v.Get())

	_, err = recmodel.LoadValue("complex", "c", nil)
	require.ErrorIs(t, err, recmodel.ErrConfiguration)
}

func TestValue_JSONSchema(t *testing.T) {
	f, err := recmodel.NewField(recmodel.FloatKind, "length", nil,
		recmodel.Default("1 nm"), recmodel.ModelUnit("nm"), recmodel.Unit("angstrom"),
		recmodel.Description("a length"))
	require.NoError(t, err)
	s := f.JSONSchema()
	require.Equal(t, "number", s.Type)
	require.Equal(t, "nm", s.Unit)
	require.Equal(t, "a length", s.Description)
	require.InDelta(t, 1.0, s.Default.(float64), 1e-12)
}
