package recmodel

import (
	"strings"

	js "github.com/reoring/recmodel/jsonschema"
)

// JSONSchema projects a ready record's Values into a JSON Schema describing
// its tree document. Nested model paths become nested objects.
func JSONSchema(rec Record) (*js.Schema, error) {
	if !rec.Ready() {
		return nil, singleIssue("", CodeConfiguration, errNotReady, nil)
	}
	body := js.Object()
	for _, v := range rec.Values() {
		parts := strings.Split(v.ModelPath(), ".")
		cur := body
		for _, p := range parts[:len(parts)-1] {
			next, ok := cur.Properties[p]
			if !ok {
				next = js.Object()
				cur.Properties[p] = next
			}
			cur = next
		}
		cur.Properties[parts[len(parts)-1]] = v.JSONSchema()
	}
	root := js.Object()
	root.Schema = js.Draft
	root.Title = rec.Style()
	root.Properties[rec.ModelRoot()] = body
	root.Required = []string{rec.ModelRoot()}
	root.AdditionalProperties = false
	return root, nil
}
