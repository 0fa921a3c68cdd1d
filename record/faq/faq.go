// Package faq implements the "faq" record style: one frequently asked
// question and its answer.
package faq

import (
	"embed"

	recmodel "github.com/reoring/recmodel"
)

// Style is the registered style name; it doubles as the model root.
const Style = "faq"

// Namespace identifies the package's embedded resources.
const Namespace = "github.com/reoring/recmodel/record/faq"

//go:embed FAQ.xsd FAQ.xsl
var resources embed.FS

func init() { recmodel.RegisterResources(Namespace, resources) }

// FAQ is a record of style "faq". Construct it with New; the zero FAQ has
// no Values, so its getters report unset and its setters fail.
type FAQ struct {
	recmodel.Base

	question *recmodel.StrValue
	answer   *recmodel.StrValue
}

// New returns a ready FAQ with question and answer unset.
func New() (*FAQ, error) {
	f := &FAQ{}
	if err := f.Init(f, f.DeclareValues); err != nil {
		return nil, err
	}
	return f, nil
}

// Factory adapts New to recmodel.Factory.
func Factory() (recmodel.Record, error) {
	f, err := New()
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (*FAQ) Style() string     { return Style }
func (*FAQ) ModelRoot() string { return Style }

func (*FAQ) XSDFilename() recmodel.Resource {
	return recmodel.Resource{Namespace: Namespace, Filename: "FAQ.xsd"}
}

func (*FAQ) XSLFilename() recmodel.Resource {
	return recmodel.Resource{Namespace: Namespace, Filename: "FAQ.xsl"}
}

func (f *FAQ) DeclareValues(b *recmodel.Builder) {
	f.question = b.LongStr("question", recmodel.Description("The frequently asked question."))
	f.answer = b.LongStr("answer", recmodel.Description("The answer to the question."))
}

func (f *FAQ) Question() (string, bool) { return f.question.Lookup() }

func (f *FAQ) SetQuestion(v string) error { return f.question.SetValue(v) }

func (f *FAQ) Answer() (string, bool) { return f.answer.Lookup() }

func (f *FAQ) SetAnswer(v string) error { return f.answer.SetValue(v) }
