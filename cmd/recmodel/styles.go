package main

import (
	"sort"

	"github.com/spf13/cobra"

	recmodel "github.com/reoring/recmodel"
)

func newStylesCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the registered record styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range recmodel.DefaultRegistry.Styles() {
				reg, _ := recmodel.DefaultRegistry.Lookup(s)
				printf("%s\t%s\n", s, reg.Package)
			}
			if !all {
				return nil
			}
			failed := recmodel.DefaultRegistry.Failed()
			names := make([]string, 0, len(failed))
			for s := range failed {
				names = append(names, s)
			}
			sort.Strings(names)
			for _, s := range names {
				printf("%s\tunavailable: %v\n", s, failed[s])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Also list styles whose registration failed")
	return cmd
}
