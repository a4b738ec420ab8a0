// Command bestmove searches one position and prints the engine's move.
//
// The position is read from a file in the diagram format of game.ParseBoard,
// or the initial layout is used.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/alphacheckers/game"
	"github.com/alphacheckers/minimax"
)

var (
	boardPath     = flag.String("board", "", "file containing a board diagram; the initial layout when empty")
	sideFlag      = flag.String("side", "A", "side to move and search for, A or B")
	depth         = flag.Int("depth", minimax.DefaultDepth, "search depth in plies")
	timeout       = flag.Duration("timeout", 0, "time limit, 0 for none")
	forcedCapture = flag.Bool("forced_capture", false, "captures are mandatory")
	mergeChains   = flag.Bool("merge_chains", false, "keep one capture chain per destination")
	dotPath       = flag.String("dot", "", "write the top of the search tree as graphviz to this file")
	traceDepth    = flag.Int("trace_depth", 2, "plies recorded in the -dot output")
)

func main() {
	flag.Parse()

	var side game.Side
	if err := side.UnmarshalText([]byte(*sideFlag)); err != nil || !side.IsValid() {
		log.Fatalf("bad side %q", *sideFlag)
	}
	rules := game.Rules{ForcedCapture: *forcedCapture, MergeChains: *mergeChains}

	st := game.New(rules)
	if *boardPath != "" {
		data, err := os.ReadFile(*boardPath)
		if err != nil {
			log.Fatal(err)
		}
		if st, err = game.ParseBoard(string(data), side, rules); err != nil {
			log.Fatalf("error parsing board: %v", err)
		}
	}

	conf := minimax.Config{Depth: *depth, Timeout: *timeout}
	if *dotPath != "" {
		conf.TraceDepth = *traceDepth
	}
	if !conf.IsValid() {
		log.Fatalf("invalid search config %+v", conf)
	}

	res, err := minimax.New(conf).Search(context.Background(), st, side)
	if err != nil {
		log.Fatalf("%v has no move: %v", side, err)
	}
	fmt.Print(st)
	fmt.Printf("%v: %v%v score %v (depth %d, %d nodes)\n", side, res.Piece, res.Move, res.Score, res.Depth, res.Nodes)

	if *dotPath != "" {
		if err := res.Trace.Err(); err != nil {
			log.Fatalf("error building trace: %v", err)
		}
		if err := os.WriteFile(*dotPath, []byte(res.Trace.String()), 0644); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %d traced nodes to %s", res.Trace.Nodes(), *dotPath)
	}
}
