package minimax

import "time"

// DefaultDepth is the search depth the engine plays at by default.
const DefaultDepth = 8

// Config configures the alpha-beta search.
type Config struct {
	// Depth is the number of plies searched below the root.
	Depth int `json:"depth"`
	// Timeout bounds a single Search. Zero means no limit. With a limit
	// the search deepens one ply at a time and answers with the deepest
	// depth it finished.
	Timeout time.Duration `json:"timeout"`
	// TraceDepth records the top plies of the tree for inspection.
	// Zero disables tracing.
	TraceDepth int `json:"trace_depth"`
}

func DefaultConfig() Config {
	return Config{
		Depth: DefaultDepth,
	}
}

func (c Config) IsValid() bool {
	return c.Depth >= 1 && c.Timeout >= 0 && c.TraceDepth >= 0
}
