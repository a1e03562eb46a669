package config

import (
	"os"
	"testing"
)

func TestNewConfig(t *testing.T) {
	c := NewConfig()

	if c.Linter != "ruff" {
		t.Errorf("Expected Linter to be ruff, but got %s", c.Linter)
	}

	if c.ProjectDir != "." {
		t.Errorf("Expected ProjectDir to be ., but got %s", c.ProjectDir)
	}

	if c.MaxConcurrentStats != 4 {
		t.Errorf("Expected MaxConcurrentStats to be 4, but got %d", c.MaxConcurrentStats)
	}

	if !c.AutoVenv {
		t.Errorf("Expected AutoVenv to be true, but got false")
	}

	if len(c.LinterArgs) != 1 || c.LinterArgs[0] != "check" {
		t.Errorf("Expected LinterArgs to be [check], but got %v", c.LinterArgs)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	// Create a temporary config file
	content := []byte("linter = flake8\nlinter-args = --max-line-length 100\nproject-dir = /srv/app\nignore-rules = E501,F401\nauto-venv = false")
	tmpfile, err := os.CreateTemp("", "config_test")
	if err != nil {
		t.Fatal(err)
	}

	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write(content); err != nil {
		t.Fatal(err)
	}

	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Load the config from the temporary file
	c, err := LoadConfigFromFile(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}

	if c.Linter != "flake8" {
		t.Errorf("Expected Linter to be flake8, but got %s", c.Linter)
	}

	if c.ProjectDir != "/srv/app" {
		t.Errorf("Expected ProjectDir to be /srv/app, but got %s", c.ProjectDir)
	}

	if len(c.LinterArgs) != 2 || c.LinterArgs[0] != "--max-line-length" {
		t.Errorf("Expected LinterArgs to be [--max-line-length 100], but got %v", c.LinterArgs)
	}

	if len(c.IgnoredRules) != 2 {
		t.Errorf("Expected 2 ignored rules, but got %d", len(c.IgnoredRules))
	}

	if c.IgnoredRules[0] != "E501" {
		t.Errorf("Expected ignored rule to be E501, but got %s", c.IgnoredRules[0])
	}

	if c.AutoVenv {
		t.Errorf("Expected AutoVenv to be false, but got true")
	}
}

func TestLoadConfigFromFileMissing(t *testing.T) {
	if _, err := LoadConfigFromFile("/nonexistent/.lintpilot.rc"); err == nil {
		t.Errorf("Expected error for missing config file, got nil")
	}
}

func TestShouldIgnoreRule(t *testing.T) {
	c := NewConfig()
	c.IgnoredRules = []string{"E501", "F401"}

	if !c.ShouldIgnoreRule("E501") {
		t.Errorf("Expected to ignore E501")
	}

	if c.ShouldIgnoreRule("E999") {
		t.Errorf("Expected not to ignore E999")
	}
}

func TestShouldIgnorePath(t *testing.T) {
	c := NewConfig()

	if !c.ShouldIgnorePath("src/venv/lib/foo.py") {
		t.Errorf("Expected to ignore paths under venv")
	}

	if c.ShouldIgnorePath("src/api/main.py") {
		t.Errorf("Expected not to ignore src/api/main.py")
	}

	// A pattern must match a whole path segment, not a substring of one
	if c.ShouldIgnorePath("/home/x/venv-tools/app.py") {
		t.Errorf("Expected not to ignore /home/x/venv-tools/app.py")
	}

	if !c.ShouldIgnorePath("/home/x/venv/lib/app.py") {
		t.Errorf("Expected to ignore /home/x/venv/lib/app.py")
	}
}

func TestShouldIgnorePathWithSeparator(t *testing.T) {
	c := NewConfig()
	c.IgnoredPaths = []string{"src/generated"}

	if !c.ShouldIgnorePath("src/generated/api.py") {
		t.Errorf("Expected to ignore src/generated/api.py")
	}

	if c.ShouldIgnorePath("src/api/generated.py") {
		t.Errorf("Expected not to ignore src/api/generated.py")
	}
}

func TestCustomSettings(t *testing.T) {
	c := NewConfig()
	if err := c.parseKeyValue("team-name", "Backend Crew"); err != nil {
		t.Fatal(err)
	}

	if c.CustomSettings["team-name"] != "Backend Crew" {
		t.Errorf("Expected custom setting team-name to be Backend Crew, but got %s", c.CustomSettings["team-name"])
	}
}

func TestGenerateConfigFile(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "generated_config")
	if err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()
	defer os.Remove(tmpfile.Name())

	if err := GenerateConfigFile(tmpfile.Name()); err != nil {
		t.Fatalf("GenerateConfigFile failed: %v", err)
	}

	// A generated config must parse back with defaults intact
	c, err := LoadConfigFromFile(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}

	if c.Linter != "ruff" {
		t.Errorf("Expected generated config to keep linter ruff, but got %s", c.Linter)
	}
}
