package game

// Rules holds the optional rule switches. The zero value permits plain
// steps alongside captures, and every capture chain is its own move even
// when two chains land on the same square.
type Rules struct {
	// ForcedCapture restricts a side to capture moves whenever any of its
	// pieces has one.
	ForcedCapture bool `json:"forced_capture"`
	// MergeChains keeps a single chain per destination, the one jumping the
	// most pieces.
	MergeChains bool `json:"merge_chains"`
}

func DefaultRules() Rules { return Rules{} }
