package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/swelljoe/wthr/internal/config"
	"github.com/swelljoe/wthr/internal/db"
	"github.com/swelljoe/wthr/internal/weather"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var (
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
)

type options struct {
	dbPath  string
	timeout time.Duration
	history bool
	country string
	verbose bool
	city    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	log.SetOutput(io.Discard)

	cfg, err := config.Load()
	if err != nil {
		failure.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	opts, err := parseArgs(args, cfg, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.verbose {
		log.SetOutput(stderr)
	}

	// Checked before the database is touched so a missing key leaves no file behind.
	if !opts.history {
		if err := cfg.Validate(); err != nil {
			failure.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}

	database, err := db.Open(opts.dbPath)
	if err != nil {
		failure.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer database.Close()
	log.Printf("Database opened at %s", opts.dbPath)

	client := weather.NewClient(cfg.APIKey, opts.timeout)
	client.BaseURL = cfg.BaseURL
	svc := weather.NewService(client, database)

	if opts.history {
		return printHistory(svc, opts, stdout, stderr)
	}

	report, err := svc.Run(ctx, opts.city)
	if err != nil {
		reportError(stderr, err)
		return exitError
	}

	success.Fprintln(stdout, report.Render())
	return exitOK
}

func parseArgs(args []string, cfg *config.Config, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("wthr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.dbPath, "db", cfg.DBPath, "SQLite database file")
	fs.DurationVar(&opts.timeout, "timeout", cfg.HTTPTimeout, "HTTP request timeout")
	fs.BoolVar(&opts.history, "history", false, "print stored history for the city instead of fetching")
	fs.StringVar(&opts.country, "country", "", "country code to narrow -history (e.g. GB)")
	fs.BoolVar(&opts.verbose, "v", false, "log progress to stderr")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Check the weather for a certain country/city.")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Usage: wthr [flags] <city name>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.city = strings.TrimSpace(strings.Join(fs.Args(), " "))
	if opts.city == "" {
		fmt.Fprintln(stderr, "error: a city name is required")
		fs.Usage()
		return nil, errors.New("missing city name")
	}
	if opts.timeout <= 0 {
		fmt.Fprintln(stderr, "error: -timeout must be positive")
		return nil, errors.New("invalid timeout")
	}

	return opts, nil
}

func reportError(w io.Writer, err error) {
	switch {
	case errors.Is(err, weather.ErrUnavailable):
		failure.Fprintln(w, "Error: Unable to retrieve weather information.")
		fmt.Fprintf(w, "  %v\n", err)
	case errors.Is(err, weather.ErrMalformedResponse):
		failure.Fprintln(w, "Error: The weather service returned an unexpected response.")
		fmt.Fprintf(w, "  %v\n", err)
	case errors.Is(err, db.ErrStorageWrite), errors.Is(err, db.ErrStorageUnavailable):
		failure.Fprintln(w, "Error: Unable to save weather history.")
		fmt.Fprintf(w, "  %v\n", err)
	default:
		failure.Fprintf(w, "Error: %v\n", err)
	}
}

func printHistory(svc *weather.Service, opts *options, stdout, stderr io.Writer) int {
	history, err := svc.History(opts.city, opts.country)
	if errors.Is(err, db.ErrCityNotFound) {
		fmt.Fprintf(stdout, "No history for %s.\n", placeName(opts.city, opts.country))
		return exitOK
	}
	if err != nil {
		failure.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	for _, h := range history {
		success.Fprintf(stdout, "%s (%d records)\n", placeName(h.City.Name, h.City.Country), len(h.Records))
		for _, r := range h.Records {
			glyph := weather.Glyph(r.Icon)
			if glyph == "" {
				glyph = " "
			}
			fmt.Fprintf(stdout, "  #%-5d %s %-24s %7.2f°C  feels like %7.2f°C\n",
				r.ID, glyph, r.Description, r.Temperature, r.FeelsLike)
		}
	}
	return exitOK
}

func placeName(city, country string) string {
	if country == "" {
		return city
	}
	return city + ", " + country
}
