package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"lintpilot/internal/config"
	"lintpilot/internal/types"
	"lintpilot/internal/utils"

	"github.com/charmbracelet/lipgloss"
)

// Aggregator folds linter issues into per-rule and per-file stats, honoring
// the config's ignore lists.
type Aggregator struct {
	cfg       *config.Config
	ruleStats map[string]*types.RuleStats
	fileStats map[string]*types.FileStats
	total     int
	skipped   int
}

func NewAggregator(cfg *config.Config) *Aggregator {
	return &Aggregator{
		cfg:       cfg,
		ruleStats: make(map[string]*types.RuleStats),
		fileStats: make(map[string]*types.FileStats),
	}
}

func (a *Aggregator) ProcessIssue(issue types.Issue) {
	if a.cfg != nil && (a.cfg.ShouldIgnoreRule(issue.RuleID) || a.cfg.ShouldIgnorePath(issue.FilePath)) {
		a.skipped++
		return
	}

	a.total++

	rule := issue.RuleID
	if rule == "" {
		rule = "unknown"
	}

	rs, ok := a.ruleStats[rule]
	if !ok {
		rs = &types.RuleStats{Rule: rule, Files: make(map[string]int)}
		a.ruleStats[rule] = rs
	}
	rs.Count++
	rs.Files[issue.FilePath]++

	fs, ok := a.fileStats[issue.FilePath]
	if !ok {
		fs = &types.FileStats{Path: issue.FilePath, Rules: make(map[string]int)}
		a.fileStats[issue.FilePath] = fs
	}
	fs.Count++
	fs.Rules[rule]++
}

func (a *Aggregator) Total() int   { return a.total }
func (a *Aggregator) Skipped() int { return a.skipped }

// FillLineCounts counts lines for every offending file, bounded by the
// configured concurrency.
func (a *Aggregator) FillLineCounts(dir string) {
	sem := utils.NewSemaphore(a.cfg.GetConcurrency())
	var wg sync.WaitGroup
	var mu sync.Mutex

	for path, fs := range a.fileStats {
		wg.Add(1)
		go func(path string, fs *types.FileStats) {
			defer wg.Done()
			sem.Do(func() {
				// Ruff reports absolute filenames in JSON output
				if !filepath.IsAbs(path) {
					path = filepath.Join(dir, path)
				}
				lines := countLines(path)
				mu.Lock()
				fs.Lines = lines
				mu.Unlock()
			})
		}(path, fs)
	}

	wg.Wait()
}

func countLines(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		lines++
	}
	return lines
}

func (a *Aggregator) GenerateRuleLeaderboard(topN int) []types.RuleLeaderboardEntry {
	var entries []types.RuleLeaderboardEntry
	for _, stats := range a.ruleStats {
		entries = append(entries, types.RuleLeaderboardEntry{
			Rule:  stats.Rule,
			Count: stats.Count,
			Files: len(stats.Files),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Rule < entries[j].Rule
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

func (a *Aggregator) GenerateFileLeaderboard(topN int) []types.FileLeaderboardEntry {
	var entries []types.FileLeaderboardEntry
	for _, stats := range a.fileStats {
		var topRule string
		var topCount int
		for rule, count := range stats.Rules {
			if count > topCount || (count == topCount && rule < topRule) {
				topRule = rule
				topCount = count
			}
		}
		if topRule == "" {
			topRule = "unknown"
		}

		entries = append(entries, types.FileLeaderboardEntry{
			Path:     stats.Path,
			Count:    stats.Count,
			TopRule:  topRule,
			TopCount: topCount,
			Lines:    stats.Lines,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Path < entries[j].Path
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5d5d5d")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C0C0C0"))

	rankStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD700"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))
)

func PrintRuleLeaderboard(entries []types.RuleLeaderboardEntry) {
	fmt.Println(titleStyle.Render("Rule Breakdown - Most Violated Rules"))

	if len(entries) == 0 {
		fmt.Println(cellStyle.Render("🎉 No violations. Smooth flight."))
		return
	}

	for _, entry := range entries {
		rank := rankStyle.Render(fmt.Sprintf("%2d", entry.Rank))
		rule := ruleStyle.Render(entry.Rule)
		fmt.Printf("%s. %s – %d issues across %d files\n", rank, rule, entry.Count, entry.Files)
	}
}

func PrintFileLeaderboard(entries []types.FileLeaderboardEntry) {
	fmt.Println(titleStyle.Render("File Breakdown - Most Problematic Files"))

	if len(entries) == 0 {
		fmt.Println(cellStyle.Render("🎉 No offending files."))
		return
	}

	for _, entry := range entries {
		rank := rankStyle.Render(fmt.Sprintf("%2d", entry.Rank))
		path := pathStyle.Render(entry.Path)
		line := fmt.Sprintf("%s. %s – %d issues, top rule: %s (%d)", rank, path, entry.Count, entry.TopRule, entry.TopCount)
		if entry.Lines > 0 {
			line += fmt.Sprintf(", %d lines", entry.Lines)
		}
		fmt.Println(line)
	}
}
