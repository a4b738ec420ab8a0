// This package counts the move sequences of a given length from the initial
// layout, for checking move generation.

package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/alphacheckers/game"
)

var (
	depthFlag     = flag.Int("depth", 6, "number of plies")
	forcedCapture = flag.Bool("forced_capture", false, "captures are mandatory")
	mergeChains   = flag.Bool("merge_chains", false, "keep one capture chain per destination")
)

func main() {
	flag.Parse()

	st := game.New(game.Rules{ForcedCapture: *forcedCapture, MergeChains: *mergeChains})
	for d := 1; d <= *depthFlag; d++ {
		start := time.Now()
		n := game.Perft(st, d)
		fmt.Printf("depth %d: %d (%v)\n", d, n, time.Since(start))
	}
}
