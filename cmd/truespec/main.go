// Command truespec is the CLI front end for the diff engine: it loads a
// base and head OpenAPI document and prints a Markdown difference
// report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/truespec/truespec"
	"github.com/truespec/truespec/engine"
	"github.com/truespec/truespec/internal/fileutil"
	"github.com/truespec/truespec/internal/httpapi"
	"github.com/truespec/truespec/internal/logging"
	"github.com/truespec/truespec/internal/reportstore"
	"github.com/truespec/truespec/internal/site"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version", "-v", "--version":
		fmt.Printf("truespec %s\n", truespec.Version())
	case "help", "-h", "--help":
		printUsage()
	case "diff":
		if err := handleDiff(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		handleServe()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`truespec — compare two OpenAPI documents and report the differences.

Usage:
  truespec diff [flags] <base-file> <head-file>
  truespec serve
  truespec version
  truespec help

Run "truespec diff -h" for diff's flags. "truespec serve" is an alias
for the reportsd HTTP adapter (cmd/reportsd), for installs that only
carry the single truespec binary.`)
}

// handleServe runs the same HTTP adapter cmd/reportsd runs, as a
// convenience alias for installs that only ship the one binary.
func handleServe() {
	logger := logging.NewSlogAdapter(slog.Default())

	cfg := httpapi.LoadConfig()
	store := reportstore.NewInMemoryStore()
	api := httpapi.New(cfg, store, logger)

	mux := http.NewServeMux()
	mux.Handle("/", site.Handler())
	api.Register(mux)

	addr := os.Getenv("TRUESPEC_REPORTS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err.Error())
		}
	}()

	logger.Info("truespec serve listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err.Error())
		os.Exit(1)
	}
}

type diffFlags struct {
	failOnBreaking bool
	output         string
}

func setupDiffFlags() (*flag.FlagSet, *diffFlags) {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	flags := &diffFlags{}
	fs.BoolVar(&flags.failOnBreaking, "fail-on-breaking", false, "exit with status 1 if any breaking changes are found")
	fs.StringVar(&flags.output, "output", "", "write the Markdown report to this file instead of stdout")

	fs.Usage = func() {
		output := fs.Output()
		fmt.Fprintf(output, "Usage: truespec diff [flags] <base-file> <head-file>\n\n")
		fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

func handleDiff(args []string) error {
	fs, flags := setupDiffFlags()
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("diff command requires exactly two file paths")
	}

	baseBytes, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading base file: %w", err)
	}
	headBytes, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("reading head file: %w", err)
	}

	report, err := engine.DiffText(baseBytes, headBytes)
	if err != nil {
		return fmt.Errorf("comparing documents: %w", err)
	}

	md := engine.Markdown(report)
	if flags.output != "" {
		// Reports may echo sensitive details from either document (internal
		// paths, header names), so write them owner-only rather than world
		// readable like generated source.
		if err := os.WriteFile(flags.output, []byte(md), fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("writing report to %s: %w", flags.output, err)
		}
	} else {
		fmt.Print(md)
	}

	if flags.failOnBreaking && report.Summary.Breaking > 0 {
		os.Exit(1)
	}
	return nil
}
