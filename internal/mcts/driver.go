package mcts

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/skybrian/gongo/internal/board"
)

// BestMove is the result of a completed search: the chosen move, its
// estimated winrate, and the total number of simulations across the
// root's children (the "tree size").
type BestMove struct {
	Move     board.Move
	Winrate  float64
	TreeSize int
}

// Driver owns the shared root and a pool of workers, spawned and joined
// via an errgroup (§4.8, §5). A worker that returns an error cancels the
// shared context and so stops the others; a panic inside a worker is not
// recovered and ends the process.
type Driver struct {
	NumWorkers int
	Selection  func() SelectionPolicy
	Playout    func() PlayoutPolicy
	Seed       int64

	root   *Node
	cancel context.CancelFunc
	group  *errgroup.Group
}

// DefaultNumWorkers mirrors the CLI-override-or-hardware-concurrency
// default of 2 minimum workers described in §4.8.
func DefaultNumWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 2 {
		return 2
	}
	return n
}

// Start builds a root node over position and launches NumWorkers workers,
// each independently seeded by drawing from the driver's seeder PRNG so
// worker streams are independent but deterministic given Seed (§4.8).
func (d *Driver) Start(position *board.Position) {
	d.root = NewRoot()
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	group, gctx := errgroup.WithContext(ctx)
	d.group = group

	numWorkers := d.NumWorkers
	if numWorkers <= 0 {
		numWorkers = DefaultNumWorkers()
	}
	seeder := rand.New(rand.NewSource(d.Seed))
	for i := 0; i < numWorkers; i++ {
		workerSeed := seeder.Int63()
		w := NewWorker(d.root, position, d.Selection(), d.Playout(), workerSeed)
		group.Go(func() error { return w.Run(gctx) })
	}
}

// Stop signals every worker to stop, waits for them to settle, then
// returns the child with the greatest visit count as the best move.
func (d *Driver) Stop() BestMove {
	d.cancel()
	_ = d.group.Wait()

	children := d.root.Children()
	if len(children) == 0 {
		return BestMove{Move: board.Move{Coord: board.PASS}}
	}

	best := children[0]
	bestVisits := best.Visits()
	total := bestVisits
	for _, child := range children[1:] {
		v := child.Visits()
		total += v
		if v > bestVisits {
			bestVisits = v
			best = child
		}
	}

	stats := best.Snapshot()
	winrate := 0.0
	if stats.Visits > 0 {
		winrate = stats.Wins / float64(stats.Visits)
	}
	return BestMove{Move: best.Move, Winrate: winrate, TreeSize: total}
}

// Root exposes the search tree's root, for diagnostics and tests.
func (d *Driver) Root() *Node { return d.root }
