// Command javagen generates layered Java MyBatis source skeletons from live
// database schemas and serves the same functionality over MCP.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	// Database drivers.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. Debug mode switches to the
// development encoder with human-readable output.
func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var (
		log *zap.Logger
		err error
	)
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stderr"}
		log, err = cfg.Build()
	}
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}
