package minimax

import (
	"context"

	"github.com/alphacheckers/game"
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

/*
Alpha-beta over cloned game states. Scores are always from the point of
view of the side the root is choosing for: that side maximizes, its
opponent minimizes, and leaves are scored with Evaluate(opponent, side).

Nothing here is shared between calls. Every Search builds its own
searchState, so a Searcher may be used from several goroutines at once.
*/

// ErrNoMoves is returned when the side to search for cannot move. It is a
// lost game for that side rather than an engine failure.
var ErrNoMoves = errors.New("no legal moves")

// how many nodes pass between two looks at the context
const checkEvery = 1024

// Result is the move chosen by a root search.
type Result struct {
	Piece game.Square // location of the piece to move
	Move  game.Move   // captured pieces belong to the searched state
	Score float32
	Depth int // deepest depth fully searched
	Nodes int // nodes visited over all depths
	Trace *Trace
}

// Searcher runs minimax with alpha-beta pruning.
type Searcher struct {
	Config
}

func New(conf Config) *Searcher {
	return &Searcher{Config: conf}
}

type searchState struct {
	ctx   context.Context
	nodes int
	trace *Trace
}

// Search picks the best move for side in st. st is read but never modified.
//
// With no timeout and a context that cannot be cancelled, a single search
// of Config.Depth plies is run. Otherwise the search deepens from one ply
// and, when time runs out, answers with the best move of the deepest depth
// that completed. If not even one ply completed, the first legal move is
// returned with Depth 0.
func (s *Searcher) Search(ctx context.Context, st *game.State, side game.Side) (Result, error) {
	if !st.HasMoves(side) {
		return Result{}, errors.Wrapf(ErrNoMoves, "side %v", side)
	}
	parent := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	if ctx.Done() == nil {
		return s.root(ctx, st, side, s.Depth)
	}

	var best Result
	var nodes int
	found := false
	for depth := 1; depth <= s.Depth; depth++ {
		r, err := s.root(ctx, st, side, depth)
		nodes += r.Nodes
		if err != nil {
			break
		}
		best, found = r, true
	}
	if err := parent.Err(); err != nil {
		return Result{}, errors.WithStack(err)
	}
	if !found {
		pm := st.AllMoves(side)[0]
		best = Result{Piece: pm.Piece.Location, Move: pm.Move}
	}
	best.Nodes = nodes
	return best, nil
}

// Value scores the position at st without choosing a move. opp is the
// maximizing side and self the minimizing one; maximizing tells which of
// the two moves first. A depth of zero is just Evaluate.
func (s *Searcher) Value(st *game.State, self, opp game.Side, depth int, maximizing bool, alpha, beta float32) float32 {
	ss := &searchState{ctx: context.Background()}
	v, _ := ss.alphaBeta(st, self, opp, depth, maximizing, alpha, beta, 0, "")
	return v
}

// root is the top ply. It is the only place that remembers which move
// produced the best score.
func (s *Searcher) root(ctx context.Context, st *game.State, side game.Side, depth int) (Result, error) {
	ss := &searchState{ctx: ctx}
	if s.TraceDepth > 0 {
		ss.trace = newTrace(s.TraceDepth, side)
	}
	self, opp := side.Opponent(), side
	alpha, beta := math32.Inf(-1), math32.Inf(1)

	var best Result
	found := false
	for _, p := range st.Roster(side) {
		for _, m := range st.LegalMoves(p) {
			id := ss.trace.child(0)
			score, err := ss.alphaBeta(st.Successor(p, m), self, opp, depth-1, false, alpha, beta, 1, id)
			if err != nil {
				return Result{Nodes: ss.nodes}, err
			}
			ss.trace.record(rootNode, id, p, m, score)
			if !found || score > best.Score {
				best = Result{Piece: p.Location, Move: m, Score: score}
				found = true
			}
			alpha = math32.Max(alpha, score)
		}
	}
	if !found {
		return Result{Nodes: ss.nodes}, errors.Wrapf(ErrNoMoves, "side %v", side)
	}
	best.Depth, best.Nodes, best.Trace = depth, ss.nodes, ss.trace
	return best, nil
}

// alphaBeta returns the score of node. id names the node in the trace, ""
// when it is not traced.
func (ss *searchState) alphaBeta(node *game.State, self, opp game.Side, depth int, maximizing bool, alpha, beta float32, ply int, id string) (float32, error) {
	ss.nodes++
	if ss.nodes%checkEvery == 0 {
		if err := ss.ctx.Err(); err != nil {
			return 0, err
		}
	}

	selfRoster, oppRoster := node.Roster(self), node.Roster(opp)
	if depth <= 0 || len(selfRoster) == 0 || len(oppRoster) == 0 {
		return Evaluate(selfRoster, oppRoster), nil
	}

	// a mover without moves keeps the worst possible score
	mover, best := self, math32.Inf(1)
	if maximizing {
		mover, best = opp, math32.Inf(-1)
	}
	for _, p := range node.Roster(mover) {
		for _, m := range node.LegalMoves(p) {
			child := ss.trace.child(ply)
			score, err := ss.alphaBeta(node.Successor(p, m), self, opp, depth-1, !maximizing, alpha, beta, ply+1, child)
			if err != nil {
				return 0, err
			}
			ss.trace.record(id, child, p, m, score)

			if maximizing {
				best = math32.Max(best, score)
				alpha = math32.Max(alpha, best)
			} else {
				best = math32.Min(best, score)
				beta = math32.Min(beta, best)
			}
			if beta <= alpha {
				ss.trace.prune(id)
				return best, nil
			}
		}
	}
	return best, nil
}
