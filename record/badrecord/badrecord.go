// Package badrecord provides the "bad_record" style, a record whose
// declarations are invalid. Constructing it always fails with a
// configuration error, which lets tools and tests exercise the failure path
// of style resolution.
package badrecord

import (
	recmodel "github.com/reoring/recmodel"
)

// Style is the registered style name.
const Style = "bad_record"

// ModelRoot is the root key of bad_record documents.
const ModelRoot = "bad-record"

// BadRecord declares two Values on one model path and so never becomes ready.
type BadRecord struct {
	recmodel.Base
}

// New always fails: both Values claim the same model path.
func New() (*BadRecord, error) {
	r := &BadRecord{}
	if err := r.Init(r, r.declare); err != nil {
		return nil, err
	}
	return r, nil
}

// Factory adapts New to recmodel.Factory.
func Factory() (recmodel.Record, error) {
	r, err := New()
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (*BadRecord) Style() string                  { return Style }
func (*BadRecord) ModelRoot() string              { return ModelRoot }
func (*BadRecord) XSDFilename() recmodel.Resource { return recmodel.Resource{} }
func (*BadRecord) XSLFilename() recmodel.Resource { return recmodel.Resource{} }

func (r *BadRecord) declare(b *recmodel.Builder) {
	b.Str("first", recmodel.ModelPath("content.value"))
	b.Str("second", recmodel.ModelPath("content.value"))
}
