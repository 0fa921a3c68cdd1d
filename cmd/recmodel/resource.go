package main

import (
	"fmt"

	"github.com/spf13/cobra"

	recmodel "github.com/reoring/recmodel"
)

func newResourceCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:       "resource <style> xsd|xsl",
		Short:     "Print the XSD schema or XSL transform of a record style",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"xsd", "xsl"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := recmodel.New(args[0])
			if err != nil {
				return err
			}
			var r recmodel.Resource
			switch args[1] {
			case "xsd":
				r = rec.XSDFilename()
			case "xsl":
				r = rec.XSLFilename()
			default:
				return fmt.Errorf("unknown resource kind %q, want xsd or xsl", args[1])
			}
			if r.IsZero() {
				return fmt.Errorf("style %s has no %s resource", rec.Style(), args[1])
			}
			data, err := recmodel.ReadResource(r)
			if err != nil {
				return err
			}
			return writeOutput(out, data)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
