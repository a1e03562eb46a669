package ruff

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"lintpilot/internal/types"
)

// ruffIssue mirrors one entry of `ruff check --output-format=json`.
type ruffIssue struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Location struct {
		Row    int `json:"row"`
		Column int `json:"column"`
	} `json:"location"`
	Filename string `json:"filename"`
}

// Check runs ruff over dir with JSON output and returns normalized issues
// plus ruff's own exit code. env carries the prepared (virtualenv-scoped)
// environment; nil inherits the parent's.
func Check(dir string, env []string, selectRules []string, extraArgs []string) ([]types.Issue, int, error) {
	args := []string{"check", "--output-format=json"}

	if len(selectRules) > 0 {
		args = append(args, fmt.Sprintf("--select=%s", strings.Join(selectRules, ",")))
	}

	args = append(args, extraArgs...)

	cmd := exec.Command("ruff", args...)
	cmd.Dir = dir
	cmd.Env = env

	exitCode := 0
	output, err := cmd.Output()
	if err != nil {
		// Ruff exits non-zero when issues are found; the JSON still lands on
		// stdout, which cmd.Output has already captured.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			return nil, -1, fmt.Errorf("failed to run ruff: %w", err)
		}
	}

	issues, err := parseOutput(output)
	if err != nil {
		return nil, exitCode, err
	}

	return issues, exitCode, nil
}

func parseOutput(output []byte) ([]types.Issue, error) {
	var ruffIssues []ruffIssue
	if err := json.Unmarshal(output, &ruffIssues); err != nil {
		return nil, fmt.Errorf("failed to parse ruff output: %w", err)
	}

	var issues []types.Issue
	for _, issue := range ruffIssues {
		issues = append(issues, types.Issue{
			FilePath: filepath.ToSlash(issue.Filename),
			Line:     issue.Location.Row,
			Column:   issue.Location.Column,
			RuleID:   issue.Code,
			Message:  issue.Message,
		})
	}

	return issues, nil
}
