package venv

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Conventional virtualenv directory names probed under the project root.
var candidateDirs = []string{".venv", "venv", "env"}

// Resolve finds the virtualenv to run the linter from. Order: the explicit
// path from config, then $VIRTUAL_ENV, then conventional directories under
// the project root. An empty result with a nil error means no virtualenv was
// found and the ambient PATH should be used as-is. An explicit path that does
// not point at a virtualenv is an error.
func Resolve(projectDir, explicit string) (string, error) {
	if explicit != "" {
		path := explicit
		if !filepath.IsAbs(path) {
			path = filepath.Join(projectDir, path)
		}
		if !isVenv(path) {
			return "", fmt.Errorf("virtualenv not found at %s", path)
		}
		return path, nil
	}

	if active := os.Getenv("VIRTUAL_ENV"); active != "" && isVenv(active) {
		return active, nil
	}

	for _, name := range candidateDirs {
		path := filepath.Join(projectDir, name)
		if isVenv(path) {
			return path, nil
		}
	}

	return "", nil
}

// isVenv reports whether path looks like a virtualenv: a directory holding a
// pyvenv.cfg or an executable dir.
func isVenv(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if _, err := os.Stat(filepath.Join(path, "pyvenv.cfg")); err == nil {
		return true
	}
	if info, err := os.Stat(BinDir(path)); err == nil && info.IsDir() {
		return true
	}
	return false
}

// BinDir returns the virtualenv's executable directory.
func BinDir(venvPath string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvPath, "Scripts")
	}
	return filepath.Join(venvPath, "bin")
}

// Environ builds the environment for the lint subprocess: the parent
// environment with the virtualenv's bin dir prepended to PATH, VIRTUAL_ENV
// set, and PYTHONHOME dropped. The parent process environment is never
// mutated; activation is scoped to the child.
func Environ(venvPath string) []string {
	base := os.Environ()
	env := make([]string, 0, len(base)+1)

	pathSet := false
	for _, kv := range base {
		i := strings.Index(kv, "=")
		if i < 0 {
			env = append(env, kv)
			continue
		}
		key := kv[:i]
		switch {
		case strings.EqualFold(key, "PATH"):
			env = append(env, key+"="+BinDir(venvPath)+string(os.PathListSeparator)+kv[i+1:])
			pathSet = true
		case key == "PYTHONHOME" || key == "VIRTUAL_ENV":
			// dropped, re-added below for VIRTUAL_ENV
		default:
			env = append(env, kv)
		}
	}

	if !pathSet {
		env = append(env, "PATH="+BinDir(venvPath))
	}
	env = append(env, "VIRTUAL_ENV="+venvPath)

	return env
}
