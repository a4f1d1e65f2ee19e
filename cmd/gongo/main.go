// Command gongo is the CLI entry point: a "gtp" subcommand that speaks
// the text protocol over stdin/stdout, and a "bench" subcommand that
// self-plays a batch of games for throughput measurement, replacing the
// teacher's hand-rolled os.Args parsing in main.go/benchmark.go with
// cobra subcommands (§ AMBIENT STACK).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skybrian/gongo/internal/config"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "gongo",
		Short: "A parallel MC-RAVE Go-playing engine",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a gongo.toml configuration file")
	root.AddCommand(newGTPCommand())
	root.AddCommand(newBenchCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}
