package main

import (
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"github.com/skybrian/gongo/internal/gtp"
)

var gtpLog = logging.MustGetLogger("gongo.cmd")

func newGTPCommand() *cobra.Command {
	var boardSize int
	var komi float64
	var workers int
	var seed int64
	var think time.Duration
	var verbose bool

	cmd := &cobra.Command{
		Use:   "gtp",
		Short: "Run the Go Text Protocol engine over stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logging.SetLevel(logging.DEBUG, "")
			} else {
				logging.SetLevel(logging.WARNING, "")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("boardsize") {
				cfg.BoardSize = boardSize
			}
			if cmd.Flags().Changed("komi") {
				cfg.Komi = komi
			}
			if cmd.Flags().Changed("workers") {
				cfg.NumWorkers = workers
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}

			engine, err := gtp.NewEngine(cfg)
			if err != nil {
				return err
			}
			engine.SetSearchBudget(think)

			gtpLog.Infof("starting gtp engine: boardsize=%d komi=%.1f think=%s", cfg.BoardSize, cfg.Komi, think)
			return gtp.Run(engine, os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().IntVar(&boardSize, "boardsize", 9, "initial board size")
	cmd.Flags().Float64Var(&komi, "komi", 7.5, "initial komi")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of search workers (0 = hardware concurrency)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "driver PRNG seed")
	cmd.Flags().DurationVar(&think, "think", time.Second, "thinking time per genmove")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	return cmd
}
