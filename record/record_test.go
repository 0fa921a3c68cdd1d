package record_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	recmodel "github.com/reoring/recmodel"
	"github.com/reoring/recmodel/codec"
	"github.com/reoring/recmodel/record"
	"github.com/reoring/recmodel/record/badrecord"
	"github.com/reoring/recmodel/record/demo"
	"github.com/reoring/recmodel/record/faq"
)

func TestDefaultRegistry_HasBundledStyles(t *testing.T) {
	require.Subset(t, recmodel.DefaultRegistry.Styles(), []string{"bad_record", "demo", "faq"})

	rec, err := recmodel.New("faq")
	require.NoError(t, err)
	f, ok := rec.(*faq.FAQ)
	require.True(t, ok)
	_, set := f.Question()
	require.False(t, set)
	_, set = f.Answer()
	require.False(t, set)
	for _, v := range f.Values() {
		require.Equal(t, "longstr", v.Kind())
	}

	_, err = recmodel.New("bad_record")
	require.ErrorIs(t, err, recmodel.ErrConfiguration)

	_, err = recmodel.New("no_such_style")
	require.ErrorIs(t, err, recmodel.ErrUnknownStyle)
}

func TestNewFromModel_BadRecordRoot(t *testing.T) {
	reg, ok := recmodel.DefaultRegistry.Lookup(badrecord.Style)
	require.True(t, ok)
	require.Equal(t, badrecord.ModelRoot, reg.ModelRoot)

	doc, err := codec.Unmarshal([]byte(`{"bad-record":{"content":{"value":"x"}}}`), codec.JSON, codec.Options{})
	require.NoError(t, err)
	_, err = recmodel.DefaultRegistry.NewFromModel(doc, recmodel.LoadOpt{})
	require.ErrorIs(t, err, recmodel.ErrConfiguration)
	require.NotErrorIs(t, err, recmodel.ErrUnknownStyle)
}

func TestRegisterAll_Twice(t *testing.T) {
	reg := recmodel.NewRegistry()
	require.NoError(t, record.RegisterAll(reg))
	err := record.RegisterAll(reg)
	require.ErrorIs(t, err, recmodel.ErrConfiguration)
	iss, _ := recmodel.AsIssues(err)
	require.Len(t, iss, 3)
}

func TestStyleResolutionThroughCodecs(t *testing.T) {
	d, err := demo.New()
	require.NoError(t, err)
	require.NoError(t, d.SetOption("c"))
	require.NoError(t, d.SetLengthIn(7, "Å"))

	q, err := faq.New()
	require.NoError(t, err)
	require.NoError(t, q.SetQuestion("Why?"))

	for _, rec := range []recmodel.Record{d, q} {
		doc, err := rec.BuildModel()
		require.NoError(t, err)
		for _, f := range codec.Formats() {
			b, err := codec.Marshal(doc, f, codec.Options{Indent: "  "})
			require.NoError(t, err)
			parsed, err := codec.Unmarshal(b, f, codec.Options{})
			require.NoError(t, err)

			got, err := recmodel.DefaultRegistry.NewFromModel(parsed, recmodel.LoadOpt{Unknown: recmodel.UnknownStrict})
			require.NoError(t, err, "%s via %s", rec.Style(), f)
			require.Equal(t, rec.Style(), got.Style())
			for _, v := range rec.Values() {
				g, err := got.Get(v.Name())
				require.NoError(t, err)
				if fv, isFloat := v.Get().(float64); isFloat {
					require.InDelta(t, fv, g.(float64), 1e-12, v.Name())
					continue
				}
				require.Equal(t, v.Get(), g, "%s.%s via %s", rec.Style(), v.Name(), f)
			}
		}
	}
}
