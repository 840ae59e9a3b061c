// Command webagg aggregates web-analytics session counts and adds-to-cart
// exports into a four-sheet Excel report.
//
// Usage:
//
//	webagg [flags] <session_counts> <adds_to_cart>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"webagg/internal/app"
	"webagg/internal/config"
	"webagg/internal/errors"
	"webagg/pkg/contracts"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usageLine = "usage: webagg [flags] <session_counts> <adds_to_cart>"

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, nil))
}

// run executes one report generation and returns the process exit code.
// A nil logger uses the logger built from configuration.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, logger *slog.Logger) int {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}

	outPath := fs.String("out", "", "output workbook path (default "+config.DefaultOutputPath+")")
	csvDir := fs.String("csv-dir", "", "also export every sheet as CSV into this directory")
	window := fs.Int("window", config.DefaultTrailingWindowSize, "number of trailing months in the month-to-month comparison")
	top := fs.Int("top", config.DefaultTopNBrowsers, "number of browsers in the browser ranking")
	configFile := fs.String("config", "", "YAML configuration file")
	showVersion := fs.Bool("version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return exitOK
	}

	if fs.NArg() != 2 {
		fmt.Fprintf(stdout, "An error occurred: %v\n", errors.NewUsageError(usageLine))
		fs.Usage()
		return exitUsage
	}

	overrides := app.Overrides{OutputPath: *outPath, CSVDir: *csvDir}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "window":
			overrides.TrailingWindowSize = window
		case "top":
			overrides.TopNBrowsers = top
		}
	})

	application, err := app.NewApplication(ctx, app.Settings{
		ConfigFile: *configFile,
		Overrides:  overrides,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(stdout, "An error occurred: %v\n", err)
		return exitError
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = application.Shutdown(shutdownCtx)
	}()

	if err := application.Run(ctx, fs.Arg(0), fs.Arg(1)); err != nil {
		fmt.Fprintf(stdout, "An error occurred: %v\n", err)
		return exitError
	}

	fmt.Fprintln(stdout, "Excel file generated successfully.")
	return exitOK
}
