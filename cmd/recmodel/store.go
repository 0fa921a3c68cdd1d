package main

import (
	"os"

	"github.com/spf13/cobra"

	recmodel "github.com/reoring/recmodel"
	"github.com/reoring/recmodel/store"
)

const (
	envDB     = "RECMODEL_DB"
	defaultDB = "recmodel.db"
)

func newStoreCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the local record database",
	}
	def := os.Getenv(envDB)
	if def == "" {
		def = defaultDB
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", def, "Database file (env "+envDB+")")

	open := func(readOnly bool) (*store.Store, error) {
		return store.Open(dbPath, recmodel.DefaultRegistry, store.Options{ReadOnly: readOnly})
	}
	cmd.AddCommand(
		newStoreAddCmd(open),
		newStoreGetCmd(open),
		newStoreListCmd(open),
		newStoreRmCmd(open),
	)
	return cmd
}

type opener func(readOnly bool) (*store.Store, error)

func newStoreAddCmd(open opener) *cobra.Command {
	var (
		name, from string
		strict     bool
		update     bool
	)
	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Add a record file to the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := readRecord(args[0], from, strict)
			if err != nil {
				return err
			}
			rec.SetName(name)
			s, err := open(false)
			if err != nil {
				return err
			}
			defer s.Close()
			if update {
				if err := s.Update(rec); err != nil {
					return err
				}
				printf("%s/%s\n", rec.Style(), rec.Name())
				return nil
			}
			added, err := s.Add(rec)
			if err != nil {
				return err
			}
			printf("%s/%s\n", rec.Style(), added)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Record name (default: a random UUID)")
	cmd.Flags().StringVar(&from, "from", "", "Input format (default from the file extension)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject elements no value reads")
	cmd.Flags().BoolVar(&update, "update", false, "Replace an existing record of the same name")
	return cmd
}

func newStoreGetCmd(open opener) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "get <style> <name>",
		Short: "Print a stored record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(true)
			if err != nil {
				return err
			}
			defer s.Close()
			rec, err := s.Get(args[0], args[1])
			if err != nil {
				return err
			}
			return writeRecord(rec, out, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Output format: json, yaml or xml (default from --out, else json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newStoreListCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "list [style]",
		Short: "List stored records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(true)
			if err != nil {
				return err
			}
			defer s.Close()
			styles := args
			if len(styles) == 0 {
				if styles, err = s.Styles(); err != nil {
					return err
				}
			}
			for _, style := range styles {
				names, err := s.Names(style)
				if err != nil {
					return err
				}
				for _, n := range names {
					printf("%s/%s\n", style, n)
				}
			}
			return nil
		},
	}
}

func newStoreRmCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <style> <name>",
		Aliases: []string{"delete"},
		Short:   "Remove a stored record",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(false)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Delete(args[0], args[1])
		},
	}
}
