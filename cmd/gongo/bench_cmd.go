package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/skybrian/gongo/internal/board"
	"github.com/skybrian/gongo/internal/mcts"
)

func newBenchCommand() *cobra.Command {
	var games int
	var movesPerGame int
	var boardSize int
	var think time.Duration
	var cpuprofile bool

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Self-play a batch of games and report throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cpuprofile {
				defer profile.Start(profile.CPUProfile).Stop()
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.BoardSize = boardSize

			start := time.Now()
			var totalMoves int
			for game := 0; game < games; game++ {
				pos, err := board.NewPosition(cfg.BoardSize)
				if err != nil {
					return err
				}
				pos.Komi = cfg.Komi

				seeder := rand.New(rand.NewSource(cfg.Seed + int64(game)))
				for i := 0; i < movesPerGame && !pos.Terminal(); i++ {
					driver := &mcts.Driver{
						NumWorkers: cfg.NumWorkers,
						Selection:  func() mcts.SelectionPolicy { return mcts.MCRAVEWithPriors{K: cfg.RaveK, Priors: mcts.DefaultPriors()} },
						Playout:    func() mcts.PlayoutPolicy { return mcts.BiasedBestOfN{K: cfg.PlayoutSamples} },
						Seed:       seeder.Int63(),
					}
					driver.Start(pos)
					time.Sleep(think)
					best := driver.Stop()
					if err := pos.MakeMove(pos.SideToMove(), best.Move.Coord); err != nil {
						return fmt.Errorf("bench: search returned an unplayable move: %w", err)
					}
					totalMoves++
				}
				fmt.Printf("game %d:\n%s\nscore=%.1f\n", game, pos.String(), pos.Score())
			}

			elapsed := time.Since(start)
			fmt.Printf("%d games, %d moves in %s (%.1f moves/sec)\n",
				games, totalMoves, elapsed, float64(totalMoves)/elapsed.Seconds())
			return nil
		},
	}

	cmd.Flags().IntVar(&games, "games", 1, "number of self-play games")
	cmd.Flags().IntVar(&movesPerGame, "moves", 20, "maximum moves per game")
	cmd.Flags().IntVar(&boardSize, "boardsize", 9, "board size")
	cmd.Flags().DurationVar(&think, "think", 200*time.Millisecond, "thinking time per move")
	cmd.Flags().BoolVar(&cpuprofile, "cpuprofile", false, "write a CPU profile (cpu.pprof) for the run")
	return cmd
}
