package main

import (
	"github.com/spf13/cobra"

	recmodel "github.com/reoring/recmodel"
)

func newNewCmd() *cobra.Command {
	var (
		format   string
		out      string
		defaults bool
		sets     []string
	)
	cmd := &cobra.Command{
		Use:   "new <style>",
		Short: "Write a new record of a style",
		Long:  "Write a new record of a style. Values stay unset unless --defaults or --set is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := recmodel.New(args[0])
			if err != nil {
				return err
			}
			if defaults {
				for _, v := range rec.Values() {
					if d := v.DefaultValue(); d != nil {
						if err := v.Set(d); err != nil {
							return err
						}
					}
				}
			}
			if err := applySets(rec, sets); err != nil {
				return err
			}
			return writeRecord(rec, out, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Output format: json, yaml or xml (default from --out, else json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "Write default values explicitly")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Assign a value as name=value; may be repeated")
	return cmd
}
