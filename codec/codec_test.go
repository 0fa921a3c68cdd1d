package codec_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/recmodel/codec"
	"github.com/reoring/recmodel/tree"
)

func sampleDoc(t *testing.T) *tree.Dict {
	t.Helper()
	doc := tree.New()
	require.NoError(t, doc.SetPath("demo.settings.intval", int64(7)))
	require.NoError(t, doc.SetPath("demo.settings.floatval", 2.5))
	require.NoError(t, doc.SetPath("demo.settings.option", "b"))
	require.NoError(t, doc.SetPath("demo.length", 1.0))
	require.NoError(t, doc.SetPath("demo.notes", "line one\nline <two> & more"))
	return doc
}

func TestFormatFromExt(t *testing.T) {
	for path, want := range map[string]codec.Format{
		"a.json":          codec.JSON,
		"dir/b.YAML":      codec.YAML,
		"c.yml":           codec.YAML,
		"/tmp/record.xml": codec.XML,
	} {
		got, err := codec.FormatFromExt(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}
	_, err := codec.FormatFromExt("notes.txt")
	require.ErrorIs(t, err, codec.ErrUnsupportedFormat)
	_, err = codec.FormatFromExt("noext")
	require.ErrorIs(t, err, codec.ErrUnsupportedFormat)
}

func TestRoundTrip_JSONAndYAML(t *testing.T) {
	for _, f := range []codec.Format{codec.JSON, codec.YAML} {
		t.Run(string(f), func(t *testing.T) {
			doc := sampleDoc(t)
			for _, indent := range []string{"", "  "} {
				b, err := codec.Marshal(doc, f, codec.Options{Indent: indent})
				require.NoError(t, err)
				back, err := codec.Unmarshal(b, f, codec.Options{})
				require.NoError(t, err)
				require.True(t, tree.Equal(doc, back), "%s", b)
			}
		})
	}
}

func TestRoundTrip_XMLYieldsStrings(t *testing.T) {
	doc := sampleDoc(t)
	b, err := codec.Marshal(doc, codec.XML, codec.Options{Indent: "  "})
	require.NoError(t, err)
	s := string(b)
	require.True(t, strings.HasPrefix(s, "<?xml"))
	require.Contains(t, s, "&lt;two&gt; &amp; more")

	back, err := codec.Unmarshal(b, codec.XML, codec.Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"demo"}, back.Keys())

	v, ok := back.Find("demo.settings.intval")
	require.True(t, ok)
	require.Equal(t, "7", v)
	v, _ = back.Find("demo.length")
	require.Equal(t, "1.0", v)
	v, _ = back.Find("demo.notes")
	require.Equal(t, "line one\nline <two> & more", v)
	settings, _ := back.Find("demo.settings")
	require.Equal(t, []string{"intval", "floatval", "option"}, settings.(*tree.Dict).Keys())
}

func TestJSON_KeepsOrderAndFormatsFloats(t *testing.T) {
	doc := tree.New()
	body := tree.New()
	body.Set("z", 1.0)
	body.Set("a", int64(2))
	body.Set("m", "<x>")
	doc.Set("r", body)

	b, err := codec.Marshal(doc, codec.JSON, codec.Options{})
	require.NoError(t, err)
	require.Equal(t, `{"r":{"z":1.0,"a":2,"m":"<x>"}}`, string(b))

	back, err := codec.Unmarshal(b, codec.JSON, codec.Options{})
	require.NoError(t, err)
	z, _ := back.Find("r.z")
	require.Equal(t, 1.0, z)
	a, _ := back.Find("r.a")
	require.Equal(t, int64(2), a)
}

func TestYAML_QuotesNumericStrings(t *testing.T) {
	doc := tree.New()
	require.NoError(t, doc.SetPath("r.code", "007"))
	require.NoError(t, doc.SetPath("r.flag", "true"))

	b, err := codec.Marshal(doc, codec.YAML, codec.Options{})
	require.NoError(t, err)
	back, err := codec.Unmarshal(b, codec.YAML, codec.Options{})
	require.NoError(t, err)
	v, _ := back.Find("r.code")
	require.Equal(t, "007", v)
	v, _ = back.Find("r.flag")
	require.Equal(t, "true", v)
}

func TestDuplicateKeys(t *testing.T) {
	cases := map[codec.Format]string{
		codec.JSON: `{"r":{"a":1,"a":2}}`,
		codec.YAML: "r:\n  a: 1\n  a: 2\n",
	}
	for f, in := range cases {
		t.Run(string(f), func(t *testing.T) {
			_, err := codec.Unmarshal([]byte(in), f, codec.Options{})
			require.ErrorIs(t, err, codec.ErrDuplicateKey)
			var dk *codec.DuplicateKeyError
			require.True(t, errors.As(err, &dk))
			require.Equal(t, "a", dk.Key)
			require.Equal(t, "r", dk.Path)

			doc, err := codec.Unmarshal([]byte(in), f, codec.Options{OnDuplicateKey: codec.DupLastWins})
			require.NoError(t, err)
			v, _ := doc.Find("r.a")
			require.Equal(t, int64(2), v)
		})
	}

	_, err := codec.Unmarshal([]byte("r:\n  a: 1\n  a: 2\n"), codec.YAML, codec.Options{})
	var dk *codec.DuplicateKeyError
	require.True(t, errors.As(err, &dk))
	require.Equal(t, 3, dk.Line)
	require.Equal(t, 2, dk.FirstLine)
}

func TestXML_RepeatedElementsAndAttributes(t *testing.T) {
	in := `<r kind="x"><item>1</item><item>2</item><one>a</one></r>`
	doc, err := codec.Unmarshal([]byte(in), codec.XML, codec.Options{})
	require.NoError(t, err)
	items, _ := doc.Find("r.item")
	require.Equal(t, []any{"1", "2"}, items)
	kind, _ := doc.Find("r.@kind")
	require.Equal(t, "x", kind)

	b, err := codec.Marshal(doc, codec.XML, codec.Options{})
	require.NoError(t, err)
	require.Contains(t, string(b), `<r kind="x"><item>1</item><item>2</item><one>a</one></r>`)
}

func TestXML_TextBesideAttributes(t *testing.T) {
	in := `<faq><question lang="en">What is it?</question><answer lang="en">  </answer><tags kind="t"><tag>a</tag></tags></faq>`
	doc, err := codec.Unmarshal([]byte(in), codec.XML, codec.Options{})
	require.NoError(t, err)

	text, _ := doc.Find("faq.question.#text")
	require.Equal(t, "What is it?", text)
	lang, _ := doc.Find("faq.question.@lang")
	require.Equal(t, "en", lang)
	_, found := doc.Find("faq.answer.#text")
	require.False(t, found, "whitespace-only text is dropped")
	_, found = doc.Find("faq.tags.#text")
	require.False(t, found)

	b, err := codec.Marshal(doc, codec.XML, codec.Options{})
	require.NoError(t, err)
	require.Contains(t, string(b), `<question lang="en">What is it?</question>`)

	j, err := codec.Marshal(doc, codec.JSON, codec.Options{})
	require.NoError(t, err)
	require.Contains(t, string(j), `"question":{"@lang":"en","#text":"What is it?"}`)
}

func TestMaxDepth(t *testing.T) {
	deep := map[codec.Format]string{
		codec.JSON: `{"a":{"b":{"c":{"d":1}}}}`,
		codec.YAML: "a:\n  b:\n    c:\n      d: 1\n",
		codec.XML:  `<a><b><c><d>1</d></c></b></a>`,
	}
	for f, in := range deep {
		t.Run(string(f), func(t *testing.T) {
			_, err := codec.Unmarshal([]byte(in), f, codec.Options{MaxDepth: 3})
			require.ErrorIs(t, err, codec.ErrMaxDepth)
			_, err = codec.Unmarshal([]byte(in), f, codec.Options{MaxDepth: 4})
			require.NoError(t, err)
			_, err = codec.Unmarshal([]byte(in), f, codec.Options{MaxDepth: -1})
			require.NoError(t, err)
		})
	}
}

func TestUnmarshal_Rejects(t *testing.T) {
	_, err := codec.Unmarshal([]byte(`[1,2]`), codec.JSON, codec.Options{})
	require.ErrorIs(t, err, codec.ErrNotDocument)
	_, err = codec.Unmarshal([]byte(`{"a":1} {"b":2}`), codec.JSON, codec.Options{})
	require.ErrorIs(t, err, codec.ErrSyntax)
	_, err = codec.Unmarshal([]byte(`{"a":`), codec.JSON, codec.Options{})
	require.ErrorIs(t, err, codec.ErrSyntax)
	_, err = codec.Unmarshal([]byte(`{"a":1]`), codec.JSON, codec.Options{})
	require.ErrorIs(t, err, codec.ErrSyntax)
	_, err = codec.Unmarshal([]byte("- 1\n- 2\n"), codec.YAML, codec.Options{})
	require.ErrorIs(t, err, codec.ErrNotDocument)
	_, err = codec.Unmarshal([]byte(`<a>`), codec.XML, codec.Options{})
	require.ErrorIs(t, err, codec.ErrSyntax)
	_, err = codec.Unmarshal([]byte(`{}`), codec.Format("toml"), codec.Options{})
	require.ErrorIs(t, err, codec.ErrUnsupportedFormat)

	empty, err := codec.Unmarshal(nil, codec.YAML, codec.Options{})
	require.NoError(t, err)
	require.Equal(t, 0, empty.Len())
}

func TestMarshal_Rejects(t *testing.T) {
	two := tree.New()
	two.Set("a", "1")
	two.Set("b", "2")
	_, err := codec.Marshal(two, codec.XML, codec.Options{})
	require.ErrorIs(t, err, codec.ErrNotDocument)

	nan := tree.New()
	require.NoError(t, nan.SetPath("r.x", math.NaN()))
	_, err = codec.Marshal(nan, codec.JSON, codec.Options{})
	require.ErrorIs(t, err, codec.ErrUnsupportedValue)
}
