// Package recmodel provides a typed, self-describing record model:
//
// - Records made of ordered, declaratively defined Values (int, float, str,
// longstr, bool and kinds registered through RegisterKind)
// - Defaults, allowed-value constraints and unit-aware numeric Values
// - Conversion of whole records to and from ordered tree documents (package
// tree), which the codec package encodes as JSON, YAML or XML
// - A style registry for constructing records by schema name
// - A stable error model via Issues (dotted model path, code, message)
//
// Design policy:
// - Keep the record/value core in the root package; put encodings under codec/,
// concrete record styles under record/ and persistence under store/.
// - Records are not safe for concurrent mutation; callers serialize access.
// The registry, kind table and unit table are filled at start and read-mostly.
//
// Typical usage:
//
//	rec, err := recmodel.New("demo")
//	doc, err := rec.BuildModel()
//	data, err := codec.Marshal(doc, codec.JSON, codec.Options{Indent: "  "})
//
//	doc2, err := codec.Unmarshal(data, codec.JSON, codec.Options{})
//	err = rec.LoadModel(doc2)
package recmodel
