package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	checkers "github.com/alphacheckers"
	"github.com/alphacheckers/game"
	"github.com/alphacheckers/minimax"
)

var (
	configPath = flag.String("config", "", "JSON config file; defaults are used when empty")
	numGame    = flag.Int("num_game", 10, "number of games to play")
	depthA     = flag.Int("depth_a", 4, "search depth of the side A engine")
	depthB     = flag.Int("depth_b", 4, "search depth of the side B engine")
	maxPlies   = flag.Int("max_plies", 0, "draw games after this many plies; 0 keeps the config value")
	timeout    = flag.Duration("timeout", 0, "time limit per move, 0 for none")
)

func main() {
	flag.Parse()

	conf := checkers.DefaultConfig()
	if *configPath != "" {
		var err error
		if conf, err = checkers.LoadConfig(*configPath); err != nil {
			log.Fatalf("error loading config: %+v", err)
		}
	}
	if *maxPlies > 0 {
		conf.MaxPlies = *maxPlies
	}

	searchConf := func(depth int) minimax.Config {
		c := conf.Search
		c.Depth = depth
		if *timeout > 0 {
			c.Timeout = *timeout
		}
		return c
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)
	a := checkers.NewAgent("A", game.SideA, searchConf(*depthA), logger)
	b := checkers.NewAgent("B", game.SideB, searchConf(*depthB), logger)
	for _, ag := range []*checkers.Agent{a, b} {
		if !ag.Searcher.IsValid() {
			log.Fatalf("invalid search config for %s: %+v", ag.Name(), ag.Searcher.Config)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	arena := checkers.MakeArena(conf, a, b)
	start := time.Now()
	err := arena.Run(ctx, *numGame)
	arena.Log(os.Stdout)
	log.Printf("%d games in %v", arena.GameNumber(), time.Since(start))
	if err != nil {
		log.Fatalf("error during self play: %v", err)
	}
}
