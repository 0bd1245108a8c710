package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/alexanderjulianmartinez/data-quality/internal/config"
	"github.com/alexanderjulianmartinez/data-quality/internal/logging"
	"github.com/alexanderjulianmartinez/data-quality/internal/pipeline"
)

// Exit codes.
const (
	exitOK     = 0
	exitError  = 1
	exitFailed = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code, err := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dataquality error: %v\n", err)
	}
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	if len(args) < 2 {
		printUsage(stdout)
		return exitOK, nil
	}

	switch args[1] {
	case "check":
		return runCheck(ctx, args[2:], stdout, stderr)
	case "help", "--help", "-h":
		printUsage(stdout)
		return exitOK, nil
	default:
		return exitError, fmt.Errorf("unknown command: %s", args[1])
	}
}

func runCheck(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config.yaml")
	input := fs.String("input", "", "Override source.path")
	output := fs.String("output", "", "Override report.path")
	strict := fs.Bool("strict", false, "Exit with status 2 when any check fails")

	if err := fs.Parse(args); err != nil {
		return exitError, err
	}

	if *configPath == "" {
		return exitError, fmt.Errorf("missing required flag: --config")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return exitError, err
	}
	if *input != "" {
		cfg.Source.Path = *input
	}
	if *output != "" {
		cfg.Report.Path = *output
	}
	if err := cfg.Validate(); err != nil {
		return exitError, err
	}

	logging.Setup(stderr, cfg.Logging.Level, cfg.Logging.Format)

	p, closeAll, err := pipeline.FromConfig(cfg, stdout)
	if err != nil {
		return exitError, err
	}
	defer func() {
		if err := closeAll(); err != nil {
			log.WithError(err).Warn("close resources")
		}
	}()

	out, err := p.Run(ctx)
	if err != nil && !errors.Is(err, pipeline.ErrSink) {
		return exitError, err
	}
	if err != nil {
		log.WithError(err).Warn("report produced but not fully delivered")
	}

	if out.Gated() || (*strict && !out.Report.Passed()) {
		return exitFailed, nil
	}
	return exitOK, nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `dataquality - sales dataset quality checks

Usage:
  dataquality check --config <path> [--input <csv>] [--output <xlsx>] [--strict]

Commands:
  check     Run validation checks and export the report
  help      Show this help message
`)
}
