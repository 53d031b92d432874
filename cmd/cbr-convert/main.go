package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nais/cbr-convert/internal/cbr"
	"github.com/nais/cbr-convert/internal/config"
	"github.com/nais/cbr-convert/internal/currency"
	"github.com/nais/cbr-convert/internal/log"
)

const (
	exitCodeOK = iota
	exitCodeConfigError
	exitCodeUsageError
	exitCodeLoggerError
	exitCodeRunError
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

func main() {
	req, showVersion, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(exitCodeOK)
	}
	if err != nil {
		os.Exit(exitCodeUsageError)
	}
	if showVersion {
		fmt.Println(versionString())
		os.Exit(exitCodeOK)
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create config:", err)
		os.Exit(exitCodeConfigError)
	}

	logger, err := log.New(cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to create logger:", err)
		os.Exit(exitCodeLoggerError)
	}

	source := currency.NewLoggingSource(logger.WithField("component", "cbr"), cbr.New())

	err = run(context.Background(), source, req, os.Stdout)
	if err != nil {
		logger.WithError(err).
			WithField("from", req.From).
			WithField("to", req.To).
			Error("conversion failed")
		os.Exit(exitCodeRunError)
	}

	os.Exit(exitCodeOK)
}

func versionString() string {
	return fmt.Sprintf("cbr-convert %s (commit %s, built %s)", buildVersion, buildCommit, buildDate)
}

// parseArgs reads the conversion request from args. Usage and errors are written to stderr.
func parseArgs(args []string, stderr io.Writer) (currency.Request, bool, error) {
	fs := flag.NewFlagSet("cbr-convert", flag.ContinueOnError)
	fs.SetOutput(stderr)

	req := currency.Request{}
	var from, to string
	var showVersion bool

	fs.Float64Var(&req.Amount, "a", currency.DefaultAmount, "amount of input currency")
	fs.Float64Var(&req.Amount, "amount", currency.DefaultAmount, "amount of input currency")
	fs.StringVar(&from, "f", "", "currency to convert from (required)")
	fs.StringVar(&from, "from", "", "currency to convert from (required)")
	fs.StringVar(&to, "t", "", "currency to convert to (required)")
	fs.StringVar(&to, "to", "", "currency to convert to (required)")
	fs.BoolVar(&showVersion, "V", false, "print version and exit")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Convert currencies at today's Central Bank of Russia rates.")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Usage: cbr-convert [-a amount] -f FROM -t TO")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return currency.Request{}, false, err
	}
	if showVersion {
		return currency.Request{}, true, nil
	}
	if fs.NArg() > 0 {
		return usageError(fs, fmt.Errorf("unexpected arguments: %v", fs.Args()))
	}
	if from == "" || to == "" {
		return usageError(fs, errors.New("both -f/--from and -t/--to are required"))
	}

	req.From = currency.Code(from)
	req.To = currency.Code(to)
	return req, false, nil
}

func usageError(fs *flag.FlagSet, err error) (currency.Request, bool, error) {
	fmt.Fprintln(fs.Output(), err)
	fs.Usage()
	return currency.Request{}, false, err
}

// run converts req with rates from source and prints the result to out.
func run(ctx context.Context, source currency.RateSource, req currency.Request, out io.Writer) error {
	result, err := currency.Run(ctx, source, req)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, currency.FormatAmount(result))
	return err
}
