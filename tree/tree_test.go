package tree_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/recmodel/tree"
)

func TestDict_KeepsInsertionOrder(t *testing.T) {
	d := tree.New()
	d.Set("b", 1)
	d.Set("a", 2)
	d.Set("b", 3)
	require.Equal(t, []string{"b", "a"}, d.Keys())
	v, ok := d.Get("b")
	require.True(t, ok)
	require.Equal(t, 3, v)

	require.True(t, d.Delete("b"))
	require.False(t, d.Delete("b"))
	require.Equal(t, []string{"a"}, d.Keys())
}

func TestDict_SetPathCreatesBranches(t *testing.T) {
	d := tree.New()
	require.NoError(t, d.SetPath("demo.settings.intval", 6))
	require.NoError(t, d.SetPath("demo.settings.option", "a"))
	require.NoError(t, d.SetPath("demo.length", 1.0))

	v, ok := d.Find("demo.settings.intval")
	require.True(t, ok)
	require.Equal(t, 6, v)

	demo, ok := d.Find("demo")
	require.True(t, ok)
	require.Equal(t, []string{"settings", "length"}, demo.(*tree.Dict).Keys())

	_, ok = d.Find("demo.settings.missing")
	require.False(t, ok)
	_, ok = d.Find("demo.length.x")
	require.False(t, ok, "path through a leaf must not resolve")
}

func TestDict_SetPathThroughLeafFails(t *testing.T) {
	d := tree.New()
	require.NoError(t, d.SetPath("a.b", 1))
	err := d.SetPath("a.b.c", 2)
	require.Error(t, err)
	require.True(t, errors.Is(err, tree.ErrNotBranch))
}

func TestSplitPath_Invalid(t *testing.T) {
	for _, p := range []string{"", ".", "a..b", "a."} {
		_, err := tree.SplitPath(p)
		require.ErrorIs(t, err, tree.ErrInvalidPath, p)
	}
}

func TestDict_RootAndWalk(t *testing.T) {
	d := tree.New()
	require.NoError(t, d.SetPath("faq.question", "why?"))
	require.NoError(t, d.SetPath("faq.answer", "because"))
	require.NoError(t, d.SetPath("faq.tags", []any{"x", "y"}))

	root, child, ok := d.Root()
	require.True(t, ok)
	require.Equal(t, "faq", root)
	require.IsType(t, &tree.Dict{}, child)

	var paths []string
	require.NoError(t, d.Walk(func(p string, _ any) error {
		paths = append(paths, p)
		return nil
	}))
	require.Equal(t, []string{"faq.question", "faq.answer", "faq.tags"}, paths)

	d.Set("other", 1)
	_, _, ok = d.Root()
	require.False(t, ok)
}

func TestDict_CloneIsDeep(t *testing.T) {
	d := tree.New()
	require.NoError(t, d.SetPath("a.b", []any{1, 2}))
	c := d.Clone()
	require.True(t, tree.Equal(d, c))

	require.NoError(t, c.SetPath("a.c", "x"))
	require.False(t, d.Has("c"))
	_, ok := d.Find("a.c")
	require.False(t, ok)
	require.False(t, tree.Equal(d, c))
}

func TestDict_DeletePath(t *testing.T) {
	d := tree.New()
	require.NoError(t, d.SetPath("a.b.c", 1))
	require.True(t, d.DeletePath("a.b.c"))
	require.False(t, d.DeletePath("a.b.c"))
	_, ok := d.Find("a.b")
	require.True(t, ok)
}

func TestFromMapToMap(t *testing.T) {
	m := map[string]any{"z": 1, "a": map[string]any{"y": "s", "b": []any{map[string]any{"k": true}}}}
	d := tree.FromMap(m)
	require.Equal(t, []string{"a", "z"}, d.Keys())
	require.Equal(t, m, d.ToMap())
}

func TestDict_Text(t *testing.T) {
	d := tree.New()
	d.Set("@lang", "en")
	d.Set(tree.TextKey, "hello")
	v, ok := d.Text()
	require.True(t, ok)
	require.Equal(t, "hello", v)

	d.Set("child", "x")
	_, ok = d.Text()
	require.False(t, ok, "element children make it a branch")

	_, ok = tree.New().Text()
	require.False(t, ok)
	require.True(t, tree.IsMarkupKey("@id"))
	require.False(t, tree.IsMarkupKey("id"))
}

func TestOverlaps(t *testing.T) {
	require.True(t, tree.Overlaps("a.b", "a.b"))
	require.True(t, tree.Overlaps("a", "a.b"))
	require.True(t, tree.Overlaps("a.b.c", "a.b"))
	require.False(t, tree.Overlaps("a.b", "a.bc"))
	require.False(t, tree.Overlaps("x", "y"))
}
