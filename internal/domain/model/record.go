package model

import "time"

// Outcome is a fight result: a kill, or a wipe at some remaining percentage.
type Outcome struct {
	Kill       bool
	Percentage Opt[float64]
}

// Record is the enriched output for one selected segment.
type Record struct {
	SegmentID  int
	SummaryURL string
	Opponent   string
	Outcome    Outcome
	Deaths     []DeathSummary
	// Failed is set when the death feed could not be fetched for this segment.
	Failed bool
}

// DeathSummary describes one sampled death.
type DeathSummary struct {
	Player  Opt[string]
	Elapsed Opt[time.Duration]
	URL     string
}
