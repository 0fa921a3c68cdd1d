package main

import (
	"github.com/spf13/cobra"

	recmodel "github.com/reoring/recmodel"
)

func newCheckCmd() *cobra.Command {
	var (
		from   string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate record files against their styles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				rec, err := readRecord(path, from, strict)
				if err != nil {
					failed++
					if iss, ok := recmodel.AsIssues(err); ok {
						for _, is := range iss {
							printf("%s: %s: %s: %s\n", path, is.Code, is.Path, is.Message)
						}
						continue
					}
					printf("%s: %v\n", path, err)
					continue
				}
				printf("%s: ok (%s)\n", path, rec.Style())
			}
			if failed > 0 {
				return errCheckFailed(failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Input format (default from the file extension)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject elements no value reads")
	return cmd
}
