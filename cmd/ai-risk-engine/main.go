// Command ai-risk-engine wires the governance pipeline's collaborators
// from environment configuration and either runs a single event
// through a named workflow or serves /healthz and /metrics.
package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	_ "github.com/lib/pq" // Postgres driver, registered for database/sql

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/config"
)

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run is the entrypoint proper, separated from main for testability.
func Run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()
	configureLogging(cfg.LogLevel)

	if len(args) < 2 {
		return runServe(cfg, stdout)
	}

	switch args[1] {
	case "run":
		return runEvent(cfg, args[2:], stdout, stderr)
	case "serve":
		return runServe(cfg, stdout)
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", args[1])
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage: ai-risk-engine <command> [arguments]")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "Commands:")
	_, _ = fmt.Fprintln(w, "  run    run a single event through a workflow and print the final state")
	_, _ = fmt.Fprintln(w, "  serve  serve /healthz and /metrics (default when no command given)")
}

func fatal(stderr io.Writer, err error) int {
	log.SetOutput(stderr)
	log.Printf("ai-risk-engine: %v", err)
	return 1
}

// configureLogging sets the default slog level from the "DEBUG"/"INFO"/
// "WARN"/"ERROR" strings Config.Load accepts, falling back to INFO for
// anything else.
func configureLogging(level string) {
	var lvl slog.Level
	switch level {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
