package main

import (
	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	recmodel "github.com/reoring/recmodel"
)

func newSchemaCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "schema <style>",
		Short: "Print the JSON Schema of a record style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := recmodel.New(args[0])
			if err != nil {
				return err
			}
			s, err := recmodel.JSONSchema(rec)
			if err != nil {
				return err
			}
			data, err := j.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(out, append(data, '\n'))
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
