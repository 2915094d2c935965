package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/javagen/config"
	sqldialect "github.com/syssam/javagen/dialect/sql"
)

// rootFlags are the persistent flags shared by every sub-command.
type rootFlags struct {
	configPath string
	debug      bool

	conn    string // named connection from the config file
	dialect string
	dsn     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "javagen",
		Short:         "Generate layered Java MyBatis code from database schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to the YAML configuration file")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.conn, "conn", "", "named connection from the configuration file")
	cmd.PersistentFlags().StringVar(&flags.dialect, "dialect", "", "database dialect: mysql, postgres or sqlite")
	cmd.PersistentFlags().StringVar(&flags.dsn, "dsn", "", "driver-specific data source name")

	cmd.AddCommand(
		newTablesCmd(flags),
		newGenerateCmd(flags),
		newDepsCmd(flags),
		newServeCmd(flags),
	)
	return cmd
}

// loadConfig reads the configured file, falling back to defaults when no
// path is given.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	if f.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(f.configPath)
}

// openDriver resolves the connection flags against the configuration and
// dials the database. --dialect/--dsn win over --conn.
func (f *rootFlags) openDriver(cfg *config.Config) (*sqldialect.Driver, error) {
	dialectName, dsn := f.dialect, f.dsn
	if f.conn != "" {
		named, ok := cfg.Connections[f.conn]
		if !ok {
			return nil, fmt.Errorf("javagen: connection %q not found in config", f.conn)
		}
		if dialectName == "" {
			dialectName = named.Dialect
		}
		if dsn == "" {
			dsn = named.DSN
		}
	}
	if dialectName == "" || dsn == "" {
		return nil, fmt.Errorf("javagen: a connection is required; pass --conn or --dialect with --dsn")
	}
	return sqldialect.Open(dialectName, dsn)
}

func printErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
