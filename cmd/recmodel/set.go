package main

import (
	"fmt"
	"strings"

	recmodel "github.com/reoring/recmodel"
)

// applySets assigns name=value pairs. Values are text and go through the
// Values' coercion, so "length=5 angstrom" works for unit-bearing floats.
func applySets(rec recmodel.Record, sets []string) error {
	var iss recmodel.Issues
	for _, s := range sets {
		name, val, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return fmt.Errorf("--set %q: expected name=value", s)
		}
		if err := rec.Set(strings.TrimSpace(name), val); err != nil {
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
