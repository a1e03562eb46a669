package suggest

import (
	"sort"

	"github.com/sajari/fuzzy"
)

// Linters we know how to spell. Used only for "did you mean" hints when the
// configured linter binary cannot be resolved; LintPilot will happily run
// anything the user configures.
var knownLinters = []string{
	"ruff",
	"flake8",
	"pylint",
	"mypy",
	"black",
	"isort",
	"bandit",
	"pycodestyle",
	"pyflakes",
	"pyright",
	"eslint",
	"golangci-lint",
	"staticcheck",
	"shellcheck",
}

type Suggester struct {
	model *fuzzy.Model
	known map[string]bool
}

func NewSuggester() *Suggester {
	// Initialize fuzzy model
	model := fuzzy.NewModel()
	model.SetThreshold(1) // Set edit distance threshold
	model.Train(knownLinters)

	known := make(map[string]bool, len(knownLinters))
	for _, name := range knownLinters {
		known[name] = true
	}

	return &Suggester{
		model: model,
		known: known,
	}
}

func (s *Suggester) IsKnown(name string) bool {
	return s.known[name]
}

// Suggest returns known linter names close to the given command name,
// best match first.
func (s *Suggester) Suggest(name string) []string {
	if s.known[name] {
		return nil
	}

	var suggestions []string
	seen := make(map[string]bool)
	for _, candidate := range s.model.Suggestions(name, false) {
		if s.known[candidate] && !seen[candidate] {
			suggestions = append(suggestions, candidate)
			seen[candidate] = true
		}
	}

	sort.Strings(suggestions)
	return suggestions
}
