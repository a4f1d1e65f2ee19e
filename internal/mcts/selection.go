package mcts

import (
	"math"

	"github.com/skybrian/gongo/internal/board"
)

// SelectionPolicy picks one child of an already-expanded node (§4.6). All
// implementations use arg-max with ties broken by first index, and assume
// children is non-empty; selection on an empty slice is an invariant
// violation the caller must never trigger.
type SelectionPolicy interface {
	Select(children []*Node, parentVisits int) *Node
}

// PriorSeeder is implemented by selection policies that bias a freshly
// expanded node's children with move-type priors before scoring, exactly
// once per parent (§4.6).
type PriorSeeder interface {
	SeedPriors(children []*Node)
}

// UCB is the classic upper-confidence-bound policy, unbiased by RAVE.
type UCB struct {
	C float64
}

func (p UCB) Select(children []*Node, parentVisits int) *Node {
	lnParent := math.Log(float64(parentVisits))
	best := children[0]
	bestScore := -1.0
	for _, child := range children {
		stats := child.Snapshot()
		var score float64
		if stats.Visits > 0 {
			score = stats.Wins/float64(stats.Visits) +
				math.Sqrt(p.C*lnParent/(100*float64(stats.Visits)))
		}
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// raveBeta is the Silver-style blend weight between the real win rate and
// the AMAF (RAVE) win rate: close to 1 for small visit counts, close to 0
// as a node accumulates real playouts (§4.6).
func raveBeta(visits int, k float64) float64 {
	return math.Sqrt(k / (3*float64(visits) + k))
}

func mcRaveScore(n *Node, k float64) float64 {
	stats := n.Snapshot()
	mc := 0.0
	if stats.Visits > 0 {
		mc = stats.Wins / float64(stats.Visits)
	}
	rave := 0.0
	if stats.RaveVisits > 0 {
		rave = stats.RaveWins / float64(stats.RaveVisits)
	}
	beta := raveBeta(stats.Visits, k)
	return (1-beta)*mc + beta*rave
}

func bestByScore(children []*Node, score func(*Node) float64) *Node {
	best := children[0]
	bestScore := score(best)
	for _, child := range children[1:] {
		if s := score(child); s > bestScore {
			bestScore = s
			best = child
		}
	}
	return best
}

// MCRAVE blends the real win rate with the RAVE (AMAF) win rate.
type MCRAVE struct {
	K float64 // default 1000, per §4.6
}

func (p MCRAVE) Select(children []*Node, parentVisits int) *Node {
	return bestByScore(children, func(n *Node) float64 { return mcRaveScore(n, p.K) })
}

// PriorBias adds synthetic RAVE visits/wins to a freshly-expanded child so
// it is biased towards or away from selection before any real playout has
// reached it (§4.6).
type PriorBias struct {
	Visits int
	Wins   float64
}

// DefaultPriors is the move-type prior table from §4.6.
func DefaultPriors() map[board.MoveInfo]PriorBias {
	return map[board.MoveInfo]PriorBias{
		board.Capture:   {Visits: 30, Wins: 30},
		board.Save:      {Visits: 20, Wins: 20},
		board.SelfAtari: {Visits: 20, Wins: 0},
		board.Local:     {Visits: 30, Wins: 30},
	}
}

// PriorSource supplies an additional additive score term for a candidate
// move, e.g. from an externally trained policy network (the reference
// implementation's NeuralNet plug-in point, Source/NeuralNet.h). It is
// consulted once for every child on each Select call and must be cheap; the core never
// depends on any ML library to provide one.
type PriorSource interface {
	Prior(move board.Move, info board.MoveInfo) float64
}

// NoPriorSource is the default PriorSource: it never biases selection.
type NoPriorSource struct{}

// Prior always returns 0.
func (NoPriorSource) Prior(board.Move, board.MoveInfo) float64 { return 0 }

// MCRAVEWithPriors seeds each parent's children with move-type priors
// exactly once (guarded by the parent's prioritised flag, enforced by the
// caller) before falling back to plain MC-RAVE scoring, additively biased
// by Source if one is set.
type MCRAVEWithPriors struct {
	K      float64
	Priors map[board.MoveInfo]PriorBias
	Source PriorSource // nil means NoPriorSource
}

func (p MCRAVEWithPriors) source() PriorSource {
	if p.Source == nil {
		return NoPriorSource{}
	}
	return p.Source
}

func (p MCRAVEWithPriors) SeedPriors(children []*Node) {
	for _, child := range children {
		for flag, bias := range p.Priors {
			if child.Info.Has(flag) {
				child.addRaveN(bias.Visits, bias.Wins)
			}
		}
	}
}

func (p MCRAVEWithPriors) Select(children []*Node, parentVisits int) *Node {
	source := p.source()
	return bestByScore(children, func(n *Node) float64 {
		return mcRaveScore(n, p.K) + source.Prior(n.Move, n.Info)
	})
}
