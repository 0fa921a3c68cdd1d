// Package record installs the bundled record styles into
// recmodel.DefaultRegistry. Import it for its side effect:
//
//	import _ "github.com/reoring/recmodel/record"
package record

import (
	recmodel "github.com/reoring/recmodel"
	"github.com/reoring/recmodel/record/badrecord"
	"github.com/reoring/recmodel/record/demo"
	"github.com/reoring/recmodel/record/faq"
)

type style struct {
	name    string
	root    string
	pkg     string
	factory recmodel.Factory
}

var bundled = []style{
	{faq.Style, faq.Style, "github.com/reoring/recmodel/record/faq", faq.Factory},
	{demo.Style, demo.Style, "github.com/reoring/recmodel/record/demo", demo.Factory},
	{badrecord.Style, badrecord.ModelRoot, "github.com/reoring/recmodel/record/badrecord", badrecord.Factory},
}

// RegisterAll adds the bundled styles to reg.
func RegisterAll(reg *recmodel.Registry) error {
	var iss recmodel.Issues
	for _, s := range bundled {
		if err := reg.RegisterRoot(s.name, s.root, s.pkg, s.factory); err != nil {
			if more, ok := recmodel.AsIssues(err); ok {
				iss = append(iss, more...)
				continue
			}
			return err
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func init() {
	if err := RegisterAll(recmodel.DefaultRegistry); err != nil {
		panic(err)
	}
}
