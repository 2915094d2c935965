package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/javagen/dialect/inspect"
)

func newTablesCmd(flags *rootFlags) *cobra.Command {
	var schemaName string
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables visible through a connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			drv, err := flags.openDriver(cfg)
			if err != nil {
				return err
			}
			defer drv.Close()

			tables, err := inspect.New(drv).Tables(cmd.Context(), schemaName)
			if err != nil {
				return err
			}
			for _, t := range tables {
				if t.Comment != "" {
					fmt.Printf("%s\t%s\n", t.Name, t.Comment)
					continue
				}
				fmt.Println(t.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaName, "schema", "", "schema/database name (defaults to the connection's current schema)")
	return cmd
}
