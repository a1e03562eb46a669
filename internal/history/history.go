package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lintpilot/internal/types"
)

// writeCSV writes a generic report to a CSV file.
func writeCSV(dir, filename string, header []string, data [][]string) error {
	if dir == "" {
		return fmt.Errorf("log directory not specified")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	filePath := filepath.Join(dir, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", filePath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range data {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

var runHeader = []string{"Timestamp", "Linter", "Dir", "ChildExit", "Exit", "Issues"}

// AppendRunRecord appends one lint run to runs.csv, creating the file with a
// header on first use.
func AppendRunRecord(dir string, rec types.RunRecord) error {
	if dir == "" {
		return fmt.Errorf("log directory not specified")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	filePath := filepath.Join(dir, "runs.csv")
	_, statErr := os.Stat(filePath)
	newFile := os.IsNotExist(statErr)

	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open CSV file %s: %w", filePath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if newFile {
		if err := writer.Write(runHeader); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	row := []string{
		rec.Timestamp.Format(time.RFC3339),
		rec.Linter,
		rec.Dir,
		fmt.Sprintf("%d", rec.ChildExit),
		fmt.Sprintf("%d", rec.Exit),
		fmt.Sprintf("%d", rec.Issues),
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("failed to write CSV row: %w", err)
	}

	return nil
}

// WriteRuleLeaderboardCSV writes the rule breakdown to a timestamped CSV file.
func WriteRuleLeaderboardCSV(dir string, entries []types.RuleLeaderboardEntry) error {
	filename := fmt.Sprintf("rule_breakdown_%s.csv", time.Now().Format("20060102_150405"))
	header := []string{"Rank", "Rule", "Issues", "Files"}
	data := make([][]string, len(entries))
	for i, entry := range entries {
		data[i] = []string{
			fmt.Sprintf("%d", entry.Rank),
			entry.Rule,
			fmt.Sprintf("%d", entry.Count),
			fmt.Sprintf("%d", entry.Files),
		}
	}
	return writeCSV(dir, filename, header, data)
}

// WriteFileLeaderboardCSV writes the file breakdown to a timestamped CSV file.
func WriteFileLeaderboardCSV(dir string, entries []types.FileLeaderboardEntry) error {
	filename := fmt.Sprintf("file_breakdown_%s.csv", time.Now().Format("20060102_150405"))
	header := []string{"Rank", "Path", "Issues", "TopRule", "TopRuleCount", "Lines"}
	data := make([][]string, len(entries))
	for i, entry := range entries {
		data[i] = []string{
			fmt.Sprintf("%d", entry.Rank),
			entry.Path,
			fmt.Sprintf("%d", entry.Count),
			entry.TopRule,
			fmt.Sprintf("%d", entry.TopCount),
			fmt.Sprintf("%d", entry.Lines),
		}
	}
	return writeCSV(dir, filename, header, data)
}
