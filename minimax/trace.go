package minimax

import (
	"fmt"
	"strconv"

	"github.com/alphacheckers/game"
	"github.com/awalterschulze/gographviz"
	"github.com/hashicorp/go-multierror"
)

const (
	graphName = "search"
	rootNode  = "root"
)

// Trace is the top of a search tree, kept for debugging. Each explored move
// is a node labelled with the move and the score it backed up; nodes where
// the search cut off the remaining siblings are drawn red.
//
// A nil *Trace records nothing, which is how tracing is switched off.
type Trace struct {
	graph  *gographviz.Graph
	depth  int
	nodes  int
	pruned map[string]bool
	err    error
}

func newTrace(depth int, side game.Side) *Trace {
	t := &Trace{
		graph:  gographviz.NewGraph(),
		depth:  depth,
		pruned: make(map[string]bool),
	}
	t.check(t.graph.SetName(graphName))
	t.check(t.graph.SetDir(true))
	t.check(t.graph.AddNode(graphName, rootNode, map[string]string{
		"label": strconv.Quote(fmt.Sprintf("%v to move", side)),
		"shape": "box",
	}))
	return t
}

func (t *Trace) check(err error) {
	if err != nil {
		t.err = multierror.Append(t.err, err)
	}
}

// child allocates a name for a node about to be searched below ply, or ""
// when that deep is not traced.
func (t *Trace) child(ply int) string {
	if t == nil || ply >= t.depth {
		return ""
	}
	t.nodes++
	return "n" + strconv.Itoa(t.nodes)
}

func (t *Trace) prune(id string) {
	if t == nil || id == "" {
		return
	}
	t.pruned[id] = true
}

func (t *Trace) record(parent, id string, p *game.Piece, m game.Move, score float32) {
	if t == nil || id == "" {
		return
	}
	attrs := map[string]string{
		"label": strconv.Quote(fmt.Sprintf("%v %v%v\n%v", p.Side, p.Location, m, score)),
	}
	if t.pruned[id] {
		attrs["color"] = "red"
	}
	t.check(t.graph.AddNode(graphName, id, attrs))
	t.check(t.graph.AddEdge(parent, id, true, nil))
}

// Nodes is the number of traced moves, the root excluded.
func (t *Trace) Nodes() int {
	if t == nil {
		return 0
	}
	return t.nodes
}

// Err reports attribute errors hit while building the graph.
func (t *Trace) Err() error {
	if t == nil {
		return nil
	}
	return t.err
}

// String renders the trace in DOT.
func (t *Trace) String() string {
	if t == nil {
		return ""
	}
	return t.graph.String()
}
