package main

import (
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var (
		from, to string
		out      string
		strict   bool
		sets     []string
	)
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a record between JSON, YAML and XML",
		Long: "Convert a record between JSON, YAML and XML. The record is loaded into its style, " +
			"so the output is validated and normalized (units are written in model units).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := readRecord(args[0], from, strict)
			if err != nil {
				return err
			}
			if err := applySets(rec, sets); err != nil {
				return err
			}
			return writeRecord(rec, out, to)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Input format (default from the file extension)")
	cmd.Flags().StringVar(&to, "to", "", "Output format (default from --out, else json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject elements no value reads")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Assign a value as name=value before writing; may be repeated")
	return cmd
}
