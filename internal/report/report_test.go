package report

import (
	"os"
	"path/filepath"
	"testing"

	"lintpilot/internal/config"
	"lintpilot/internal/types"
)

func sampleIssues() []types.Issue {
	return []types.Issue{
		{FilePath: "src/api/main.py", Line: 3, RuleID: "F401", Message: "os imported but unused"},
		{FilePath: "src/api/main.py", Line: 10, RuleID: "E501", Message: "Line too long"},
		{FilePath: "src/api/models.py", Line: 42, RuleID: "E501", Message: "Line too long"},
		{FilePath: "src/api/models.py", Line: 50, RuleID: "E501", Message: "Line too long"},
		{FilePath: "venv/lib/site.py", Line: 1, RuleID: "E501", Message: "Line too long"},
	}
}

func TestAggregatorRuleLeaderboard(t *testing.T) {
	a := NewAggregator(config.NewConfig())
	for _, issue := range sampleIssues() {
		a.ProcessIssue(issue)
	}

	// venv path is ignored by default config
	if a.Total() != 4 {
		t.Errorf("Expected 4 counted issues, but got %d", a.Total())
	}

	if a.Skipped() != 1 {
		t.Errorf("Expected 1 skipped issue, but got %d", a.Skipped())
	}

	entries := a.GenerateRuleLeaderboard(10)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 rules, but got %d", len(entries))
	}

	if entries[0].Rule != "E501" || entries[0].Count != 3 {
		t.Errorf("Expected E501 with 3 issues on top, but got %s with %d", entries[0].Rule, entries[0].Count)
	}

	if entries[0].Rank != 1 {
		t.Errorf("Expected top entry rank 1, but got %d", entries[0].Rank)
	}

	if entries[0].Files != 2 {
		t.Errorf("Expected E501 across 2 files, but got %d", entries[0].Files)
	}
}

func TestAggregatorFileLeaderboard(t *testing.T) {
	a := NewAggregator(config.NewConfig())
	for _, issue := range sampleIssues() {
		a.ProcessIssue(issue)
	}

	entries := a.GenerateFileLeaderboard(10)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 files, but got %d", len(entries))
	}

	if entries[0].Path != "src/api/main.py" && entries[0].Path != "src/api/models.py" {
		t.Errorf("Unexpected top file %s", entries[0].Path)
	}

	if entries[0].Count != 2 {
		t.Errorf("Expected 2 issues in top file, but got %d", entries[0].Count)
	}

	for _, entry := range entries {
		if entry.Path == "src/api/models.py" && entry.TopRule != "E501" {
			t.Errorf("Expected top rule E501 for models.py, but got %s", entry.TopRule)
		}
	}
}

func TestAggregatorIgnoredRule(t *testing.T) {
	cfg := config.NewConfig()
	cfg.IgnoredRules = []string{"E501"}

	a := NewAggregator(cfg)
	for _, issue := range sampleIssues() {
		a.ProcessIssue(issue)
	}

	if a.Total() != 1 {
		t.Errorf("Expected only the F401 issue counted, but got %d", a.Total())
	}
}

func TestAggregatorTopN(t *testing.T) {
	a := NewAggregator(config.NewConfig())
	for _, issue := range sampleIssues() {
		a.ProcessIssue(issue)
	}

	entries := a.GenerateRuleLeaderboard(1)
	if len(entries) != 1 {
		t.Errorf("Expected leaderboard capped at 1 entry, but got %d", len(entries))
	}
}

func TestFillLineCounts(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "src", "main.py"), []byte("import os\nprint('hi')\n"), 0644); err != nil {
		t.Fatal(err)
	}

	a := NewAggregator(config.NewConfig())
	a.ProcessIssue(types.Issue{FilePath: "src/main.py", Line: 1, RuleID: "F401"})
	a.ProcessIssue(types.Issue{FilePath: "src/gone.py", Line: 1, RuleID: "F401"})

	a.FillLineCounts(tmpDir)

	entries := a.GenerateFileLeaderboard(10)
	for _, entry := range entries {
		switch entry.Path {
		case "src/main.py":
			if entry.Lines != 2 {
				t.Errorf("Expected 2 lines for src/main.py, but got %d", entry.Lines)
			}
		case "src/gone.py":
			if entry.Lines != 0 {
				t.Errorf("Expected 0 lines for missing file, but got %d", entry.Lines)
			}
		}
	}
}

func TestFillLineCountsAbsolutePath(t *testing.T) {
	tmpDir := t.TempDir()
	absFile := filepath.Join(tmpDir, "app.py")
	if err := os.WriteFile(absFile, []byte("import os\nprint('hi')\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Ruff's JSON output carries absolute filenames
	a := NewAggregator(config.NewConfig())
	a.ProcessIssue(types.Issue{FilePath: absFile, Line: 1, RuleID: "F401"})

	a.FillLineCounts(tmpDir)

	entries := a.GenerateFileLeaderboard(10)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 file entry, but got %d", len(entries))
	}

	if entries[0].Lines != 2 {
		t.Errorf("Expected 2 lines for %s, but got %d", absFile, entries[0].Lines)
	}
}

func TestCountLinesNoTrailingNewline(t *testing.T) {
	tmpfile := filepath.Join(t.TempDir(), "x.py")
	if err := os.WriteFile(tmpfile, []byte("a\nb"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := countLines(tmpfile); got != 2 {
		t.Errorf("Expected 2 lines, but got %d", got)
	}
}
