package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lintpilot/internal/config"
	"lintpilot/internal/history"
	"lintpilot/internal/report"
	"lintpilot/internal/ruff"
	"lintpilot/internal/runner"
	"lintpilot/internal/suggest"
	"lintpilot/internal/types"
	"lintpilot/internal/venv"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

const VERSION = "1.0.0"
const PROJECT_NAME = "LintPilot"

// ASCII runway art
const PILOT_ART = `
    🛫 LintPilot 🛬

        __|__
   -----(_)-----

  Your Lint, Cleared
     for Takeoff
`

const MINI_PILOT = `🛫`

func main() {
	var (
		help     = flag.Bool("help", false, "Show help message")
		h        = flag.Bool("h", false, "Show help message (short)")
		version  = flag.Bool("version", false, "Show version information")
		v        = flag.Bool("v", false, "Show version information (short)")
		showLogo = flag.Bool("logo", false, "Show LintPilot ASCII art")

		// Lint run flags
		dirFlag    = flag.String("dir", "", "Project directory to lint (default from config, then current directory)")
		linterFlag = flag.String("linter", "", "Linter command to run (default from config: ruff)")
		argsFlag   = flag.String("args", "", "Arguments passed to the linter (space separated, overrides config)")
		noVenv     = flag.Bool("no-venv", false, "Skip virtualenv detection and use the ambient PATH")

		// Summary flags
		summaryMode = flag.Bool("summary", false, "Parse ruff JSON output and print rule/file breakdowns")
		topN        = flag.Int("top", 15, "Number of entries to show in summary breakdowns")

		// Configuration flags
		configFile     = flag.String("config", "", "Path to configuration file")
		generateConfig = flag.Bool("generate-config", false, "Generate a sample configuration file")
		showConfig     = flag.Bool("show-config", false, "Show current configuration and exit")

		// History logging flags
		logHistory = flag.Bool("log-history", false, "Enable logging of lint runs to CSV files")
		logDir     = flag.String("log-dir", "", "Directory to save CSV logs (default from config: .lintpilot/history)")

		// Display flags
		verbose = flag.Bool("verbose", false, "Enable verbose output")
		quiet   = flag.Bool("quiet", false, "Suppress non-essential output")
	)

	flag.Usage = showUsage
	flag.Parse()

	if *help || *h {
		showUsage()
		return
	}

	if *version || *v {
		showVersion()
		return
	}

	if *showLogo {
		showPilotArt()
		return
	}

	if *generateConfig {
		filename := ".lintpilot.rc"
		if err := config.GenerateConfigFile(filename); err != nil {
			log.Fatalf("Failed to generate config file: %v", err)
		}
		fmt.Printf("✅ Generated configuration file: %s\n", filename)
		return
	}

	// Load configuration
	var cfg *config.Config
	var err error

	if *configFile != "" {
		cfg, err = config.LoadConfigFromFile(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config file %s: %v", *configFile, err)
		}
	} else {
		cfg, err = config.LoadConfig()
		if err != nil {
			if !*quiet {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
			}
			cfg = config.NewConfig()
		}
	}

	if *showConfig {
		cfg.PrintSummary()
		return
	}

	if *logHistory {
		cfg.LogHistory = true
	}
	if *logDir != "" {
		cfg.LogDir = *logDir
	}

	// Resolve the project directory: flag, then positional argument, then config
	targetDir := cfg.ProjectDir
	if *dirFlag != "" {
		targetDir = *dirFlag
	} else if args := flag.Args(); len(args) > 0 {
		targetDir = args[0]
	}

	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		log.Fatalf("Failed to resolve path %s: %v", targetDir, err)
	}

	if info, err := os.Stat(absDir); err != nil || !info.IsDir() {
		log.Fatalf("Directory does not exist: %s", absDir)
	}

	linterName := cfg.Linter
	if *linterFlag != "" {
		linterName = *linterFlag
	}

	linterArgs := cfg.LinterArgs
	if *argsFlag != "" {
		linterArgs = strings.Fields(*argsFlag)
	}

	// Prepare the execution environment. Activation is scoped to the lint
	// subprocess; the wrapper's own environment is never mutated.
	var env []string
	if !*noVenv {
		venvPath, err := venv.Resolve(absDir, cfg.VenvPath)
		if err != nil {
			log.Fatalf("Failed to prepare environment: %v", err)
		}
		if venvPath != "" {
			env = venv.Environ(venvPath)
			if *verbose && !*quiet {
				fmt.Printf("%s Using virtualenv: %s\n", MINI_PILOT, venvPath)
			}
		} else if cfg.AutoVenv && *verbose && !*quiet {
			fmt.Printf("%s No virtualenv found, using ambient PATH\n", MINI_PILOT)
		}
	}

	if *verbose && !*quiet {
		cfg.PrintSummary()
		fmt.Println()
	}

	if *summaryMode {
		runSummary(cfg, absDir, linterName, env, *topN, *quiet, *verbose)
		return
	}

	runLint(cfg, absDir, linterName, linterArgs, env, *quiet)
}

// runLint performs the plain wrapper run: invoke the linter synchronously
// with its output passed through, then exit 0 on success and exactly 1 on
// any non-zero outcome.
func runLint(cfg *config.Config, dir, linter string, args, env []string, quiet bool) {
	if !quiet {
		fmt.Printf("%s %s\n", MINI_PILOT, color.BlueString("Linting %s with %s %s", dir, linter, strings.Join(args, " ")))
	}

	code, err := runner.Run(runner.Options{
		Dir:    dir,
		Linter: linter,
		Args:   args,
		Env:    env,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		if runner.IsNotFound(err) {
			if hints := suggest.NewSuggester().Suggest(linter); len(hints) > 0 {
				fmt.Fprintf(os.Stderr, "   Did you mean: %s?\n", strings.Join(hints, ", "))
			}
		}
		os.Exit(runner.ExitFailure)
	}

	mapped := runner.MapExitCode(code)

	if cfg.LogHistory {
		rec := types.RunRecord{
			Timestamp: time.Now(),
			Linter:    linter,
			Dir:       dir,
			ChildExit: code,
			Exit:      mapped,
			Issues:    -1,
		}
		if err := history.AppendRunRecord(cfg.LogDir, rec); err != nil && !quiet {
			fmt.Printf("❌ Failed to log run history: %v\n", err)
		}
	}

	if !quiet {
		if mapped == runner.ExitSuccess {
			fmt.Printf("%s %s\n", MINI_PILOT, color.GreenString("Clean - nothing to report"))
		} else {
			fmt.Printf("%s %s\n", MINI_PILOT, color.RedString("Lint reported failures (exit %d)", code))
		}
	}

	os.Exit(mapped)
}

// runSummary runs ruff in JSON mode, aggregates the findings into rule and
// file breakdowns, and exits with the same mapped status as a plain run.
func runSummary(cfg *config.Config, dir, linter string, env []string, topN int, quiet, verbose bool) {
	if linter != "ruff" {
		log.Fatalf("Summary mode supports ruff only, configured linter is %s", linter)
	}

	if !quiet {
		fmt.Printf("%s %s\n", MINI_PILOT, color.BlueString("Running ruff analysis on %s...", dir))
	}

	issues, code, err := ruff.Check(dir, env, cfg.RuffSelect, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		if runner.IsNotFound(err) {
			fmt.Fprintln(os.Stderr, "   Is ruff installed in the project's virtualenv?")
		}
		os.Exit(runner.ExitFailure)
	}

	if !quiet {
		fmt.Printf("📊 %d lint issues collected.\n", len(issues))
	}

	agg := report.NewAggregator(cfg)

	var bar *progressbar.ProgressBar
	if !quiet && len(issues) > 0 {
		bar = progressbar.Default(int64(len(issues)))
	}

	for _, issue := range issues {
		agg.ProcessIssue(issue)
		if bar != nil {
			bar.Add(1)
		}
	}

	if bar != nil {
		bar.Finish()
	}

	agg.FillLineCounts(dir)

	if verbose && agg.Skipped() > 0 && !quiet {
		fmt.Printf("🚫 %d issues skipped by ignore lists\n", agg.Skipped())
	}

	ruleEntries := agg.GenerateRuleLeaderboard(topN)
	fileEntries := agg.GenerateFileLeaderboard(topN)

	fmt.Println()
	report.PrintRuleLeaderboard(ruleEntries)
	fmt.Println()
	report.PrintFileLeaderboard(fileEntries)

	mapped := runner.MapExitCode(code)

	if cfg.LogHistory {
		rec := types.RunRecord{
			Timestamp: time.Now(),
			Linter:    linter,
			Dir:       dir,
			ChildExit: code,
			Exit:      mapped,
			Issues:    len(issues),
		}
		if err := history.AppendRunRecord(cfg.LogDir, rec); err != nil {
			fmt.Printf("❌ Failed to log run history: %v\n", err)
		} else {
			if err := history.WriteRuleLeaderboardCSV(cfg.LogDir, ruleEntries); err != nil {
				fmt.Printf("❌ Failed to log rule breakdown: %v\n", err)
			}
			if err := history.WriteFileLeaderboardCSV(cfg.LogDir, fileEntries); err != nil {
				fmt.Printf("❌ Failed to log file breakdown: %v\n", err)
			}
			if !quiet {
				fmt.Printf("✅ Run history logged to %s\n", cfg.LogDir)
			}
		}
	}

	if !quiet {
		if mapped == runner.ExitSuccess {
			fmt.Printf("\n%s %s\n", MINI_PILOT, color.GreenString("Clean codebase - smooth landing!"))
		} else {
			fmt.Printf("\n%s %s\n", MINI_PILOT, color.RedString("Lint reported failures (exit %d)", code))
		}
	}

	os.Exit(mapped)
}

func showPilotArt() {
	fmt.Print(color.CyanString(PILOT_ART))

	fmt.Println(color.New(color.Bold).Sprint("\nLintPilot v" + VERSION))
	fmt.Println("Run your linter from the right environment, every time")
}

func showVersion() {
	fmt.Printf("%s %s v%s\n", MINI_PILOT, PROJECT_NAME, VERSION)
	fmt.Printf("A lint-runner wrapper for Python projects\n")
	fmt.Printf("Activates the project virtualenv, runs the linter, propagates the result\n")
}

func showUsage() {
	fmt.Print(color.CyanString(PILOT_ART))
	fmt.Printf("%s\n", color.New(color.Bold).Sprint("LintPilot - Your Lint, Cleared for Takeoff"))
	fmt.Printf("\n%s\n", color.BlueString("USAGE:"))
	fmt.Printf("  %s [OPTIONS] [DIRECTORY]\n\n", os.Args[0])

	fmt.Printf("%s\n", color.BlueString("ARGUMENTS:"))
	fmt.Printf("  DIRECTORY              Project directory to lint (default: from config, then current directory)\n\n")

	fmt.Printf("%s\n", color.BlueString("LINT OPTIONS:"))
	fmt.Printf("  --dir DIR              Project directory to lint\n")
	fmt.Printf("  --linter CMD           Linter command to run (default: ruff)\n")
	fmt.Printf("  --args ARGS            Arguments passed to the linter (default: check)\n")
	fmt.Printf("  --no-venv              Skip virtualenv detection, use the ambient PATH\n\n")

	fmt.Printf("%s\n", color.BlueString("SUMMARY OPTIONS:"))
	fmt.Printf("  --summary              Parse ruff JSON output and print rule/file breakdowns\n")
	fmt.Printf("  --top N                Number of entries in summary breakdowns (default: 15)\n\n")

	fmt.Printf("%s\n", color.BlueString("CONFIGURATION OPTIONS:"))
	fmt.Printf("  --config FILE          Path to configuration file (.lintpilot.rc)\n")
	fmt.Printf("  --generate-config      Generate a sample configuration file\n")
	fmt.Printf("  --show-config          Show current configuration and exit\n\n")

	fmt.Printf("%s\n", color.BlueString("HISTORY LOGGING OPTIONS:"))
	fmt.Printf("  --log-history          Log every lint run to a CSV file\n")
	fmt.Printf("  --log-dir DIR          Directory for CSV logs (default: .lintpilot/history)\n\n")

	fmt.Printf("%s\n", color.BlueString("DISPLAY OPTIONS:"))
	fmt.Printf("  --logo                 Show LintPilot ASCII art\n")
	fmt.Printf("  --verbose              Enable verbose output\n")
	fmt.Printf("  --quiet                Suppress non-essential output\n\n")

	fmt.Printf("%s\n", color.BlueString("OTHER OPTIONS:"))
	fmt.Printf("  -h, --help             Show this help message\n")
	fmt.Printf("  -v, --version          Show version information\n\n")

	fmt.Printf("%s\n", color.BlueString("EXIT CODES:"))
	fmt.Printf("  0                      Linter ran and reported no failing conditions\n")
	fmt.Printf("  1                      Linter reported failures, or a setup step failed\n\n")

	fmt.Printf("%s\n", color.BlueString("EXAMPLES:"))
	fmt.Printf("  %s                                     # Lint the configured project directory\n", os.Args[0])
	fmt.Printf("  %s /srv/app                            # Lint a specific directory\n", os.Args[0])
	fmt.Printf("  %s --linter flake8 --args \"--select E\" # Run a different linter\n", os.Args[0])
	fmt.Printf("  %s --summary --top 10                  # Rule/file breakdowns from ruff\n", os.Args[0])
	fmt.Printf("  %s --generate-config                   # Create .lintpilot.rc file\n\n", os.Args[0])

	fmt.Printf("%s\n", color.BlueString("CONFIGURATION FILE:"))
	fmt.Printf("  LintPilot looks for configuration files in this order:\n")
	fmt.Printf("  1. .lintpilot.rc\n")
	fmt.Printf("  2. .lintpilot.config\n")
	fmt.Printf("  3. lintpilot.config\n\n")

	fmt.Printf("  Use --generate-config to create a sample configuration file.\n")
}
