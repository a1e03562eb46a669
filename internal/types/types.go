package types

import "time"

// Issue is a single linter finding, normalized from the linter's own output format.
type Issue struct {
	FilePath string
	Line     int
	Column   int
	RuleID   string
	Message  string
}

type RuleStats struct {
	Rule  string
	Count int
	Files map[string]int
}

type FileStats struct {
	Path  string
	Count int
	Rules map[string]int
	Lines int
}

type RuleLeaderboardEntry struct {
	Rank  int
	Rule  string
	Count int
	Files int
}

type FileLeaderboardEntry struct {
	Rank     int
	Path     string
	Count    int
	TopRule  string
	TopCount int
	Lines    int
}

// RunRecord captures the outcome of a single lint run for history logging.
type RunRecord struct {
	Timestamp time.Time
	Linter    string
	Dir       string
	ChildExit int
	Exit      int
	Issues    int // -1 when the run did not parse linter output
}
