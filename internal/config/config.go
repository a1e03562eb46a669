package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	ProjectDir         string
	VenvPath           string
	AutoVenv           bool
	Linter             string
	LinterArgs         []string
	IgnoredRules       []string
	IgnoredPaths       []string
	RuffSelect         []string
	MaxConcurrentStats int
	LogHistory         bool
	LogDir             string
	CustomSettings     map[string]string
}

func NewConfig() *Config {
	return &Config{
		ProjectDir:         ".",
		VenvPath:           "",
		AutoVenv:           true,
		Linter:             "ruff",
		LinterArgs:         []string{"check"},
		IgnoredRules:       []string{},
		IgnoredPaths:       []string{"venv", ".venv", "node_modules", "dist", "build", "migrations"},
		RuffSelect:         []string{},
		MaxConcurrentStats: 4,
		LogHistory:         false,
		LogDir:             ".lintpilot/history",
		CustomSettings:     make(map[string]string),
	}
}

func LoadConfig() (*Config, error) {
	config := NewConfig()

	// Look for config files in order of preference
	configFiles := []string{
		".lintpilot.rc",
		".lintpilot.config",
		"lintpilot.config",
		".lintpilot",
	}

	var configFile string
	for _, file := range configFiles {
		if _, err := os.Stat(file); err == nil {
			configFile = file
			break
		}
	}

	if configFile == "" {
		return config, nil // No config file found, return default config
	}

	fmt.Printf("🛫 Using config file: %s\n", configFile)
	return parseConfigFile(configFile, config)
}

func LoadConfigFromFile(filename string) (*Config, error) {
	config := NewConfig()
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("config file not found: %s", filename)
	}
	return parseConfigFile(filename, config)
}

func parseConfigFile(filename string, config *Config) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Parse key-value pairs
		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) == 2 {
				key := strings.TrimSpace(parts[0])
				value := strings.TrimSpace(parts[1])

				// Remove quotes if present
				value = strings.Trim(value, `"'`)

				if err := config.parseKeyValue(key, value); err != nil {
					fmt.Printf("Warning: Line %d: %v\n", lineNum, err)
				}
			}
		}
	}

	return config, scanner.Err()
}

func (c *Config) parseKeyValue(key, value string) error {
	switch key {
	case "project-dir":
		if value != "" {
			c.ProjectDir = value
		}
	case "venv-path":
		c.VenvPath = value
	case "auto-venv":
		c.AutoVenv = strings.ToLower(value) == "true"
	case "linter":
		if value != "" {
			c.Linter = value
		}
	case "linter-args":
		if args := parseArgs(value); len(args) > 0 {
			c.LinterArgs = args
		}
	case "ignore-rules":
		c.IgnoredRules = append(c.IgnoredRules, parseList(value)...)
	case "ignore-paths":
		c.IgnoredPaths = append(c.IgnoredPaths, parseList(value)...)
	case "ruff-select":
		c.RuffSelect = append(c.RuffSelect, parseList(value)...)
	case "max-concurrent-stats":
		if concurrent, err := strconv.Atoi(value); err == nil {
			c.MaxConcurrentStats = concurrent
		} else {
			return fmt.Errorf("invalid max-concurrent-stats value: %s", value)
		}
	case "log-history":
		c.LogHistory = strings.ToLower(value) == "true"
	case "log-dir":
		c.LogDir = value
	default:
		c.CustomSettings[key] = value
	}
	return nil
}

func parseList(value string) []string {
	// Split by comma and clean up
	items := strings.Split(value, ",")
	var result []string

	for _, item := range items {
		cleaned := strings.TrimSpace(item)
		if cleaned != "" {
			result = append(result, cleaned)
		}
	}

	return result
}

func parseArgs(value string) []string {
	return strings.Fields(value)
}

func (c *Config) ShouldIgnoreRule(ruleID string) bool {
	for _, ignored := range c.IgnoredRules {
		if ignored == ruleID {
			return true
		}
	}
	return false
}

func (c *Config) ShouldIgnorePath(filePath string) bool {
	segments := strings.Split(filepath.ToSlash(filePath), "/")
	for _, pattern := range c.IgnoredPaths {
		// Patterns with a separator match as substrings, plain patterns
		// match whole path segments only
		if strings.Contains(pattern, "/") {
			if strings.Contains(filepath.ToSlash(filePath), pattern) {
				return true
			}
			continue
		}
		for _, segment := range segments {
			if segment == pattern {
				return true
			}
		}
	}
	return false
}

func (c *Config) GetConcurrency() int {
	if c.MaxConcurrentStats > 0 {
		return c.MaxConcurrentStats
	}
	return 2 // Default
}

func GenerateConfigFile(filename string) error {
	if filename == "" {
		filename = ".lintpilot.rc"
	}

	content := `# LintPilot Configuration File 🛫
# Your lint, cleared for takeoff
# Lines starting with # are comments

# Project directory to lint (default: current directory)
project-dir = .

# Virtualenv to run the linter from (auto-detected when empty)
venv-path = ""

# Auto-detect a virtualenv (.venv, venv, env) under the project directory
auto-venv = true

# Linter command and the arguments passed before the target directory
linter = ruff
linter-args = check

# Rules to drop from summary reports
ignore-rules = "E501,F401"

# Paths excluded from summary reports
ignore-paths = "venv,.venv,node_modules,dist,build,migrations"

# Ruff rule selection for summary mode (empty = ruff defaults)
ruff-select = ""

# Maximum concurrent file stat operations in summary mode
max-concurrent-stats = 4

# Log every run to a CSV history file
log-history = false
log-dir = .lintpilot/history

# Custom project-specific settings
project-name = "My Project"
team-name = "Development Team"

`

	return os.WriteFile(filename, []byte(content), 0644)
}

func (c *Config) PrintSummary() {
	fmt.Printf("🛫 Configuration Summary:\n")
	fmt.Printf("  • Project dir: %s\n", c.ProjectDir)
	fmt.Printf("  • Linter: %s %s\n", c.Linter, strings.Join(c.LinterArgs, " "))
	if c.VenvPath != "" {
		fmt.Printf("  • Virtualenv: %s\n", c.VenvPath)
	} else {
		fmt.Printf("  • Virtualenv auto-detect: %t\n", c.AutoVenv)
	}
	fmt.Printf("  • Ignored rules: %d rules\n", len(c.IgnoredRules))
	fmt.Printf("  • Ignored paths: %d patterns\n", len(c.IgnoredPaths))
	fmt.Printf("  • Max concurrent stats: %d\n", c.MaxConcurrentStats)
	fmt.Printf("  • Log history: %t\n", c.LogHistory)
}
