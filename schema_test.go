package recmodel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	recmodel "github.com/reoring/recmodel"
	js "github.com/reoring/recmodel/jsonschema"
)

func TestJSONSchema_NestsByModelPath(t *testing.T) {
	w := newWidget(t)
	s, err := recmodel.JSONSchema(w)
	require.NoError(t, err)

	require.Equal(t, js.Draft, s.Schema)
	require.Equal(t, "widget", s.Title)
	require.Equal(t, []string{"widget"}, s.Required)
	require.Equal(t, false, s.AdditionalProperties)

	body := s.Properties["widget"]
	require.NotNil(t, body)
	require.Equal(t, "object", body.Type)

	dims := body.Properties["dims"]
	require.NotNil(t, dims)
	size := dims.Properties["size"]
	require.Equal(t, "integer", size.Type)
	require.Equal(t, int64(3), size.Default)

	color := body.Properties["color"]
	require.Equal(t, "string", color.Type)
	require.Equal(t, []any{"red", "blue"}, color.Enum)
}
