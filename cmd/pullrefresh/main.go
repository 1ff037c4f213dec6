package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/pullrefresh/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintf(os.Stderr, "pullrefresh: %v\n", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "pullrefresh: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string) (app.Options, error) {
	fs := pflag.NewFlagSet("pullrefresh", pflag.ContinueOnError)
	opts := app.Options{}
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "override config path (optional)")
	fs.StringVarP(&opts.FeedPath, "feed", "f", "", "text file to page through instead of generated lines")
	fs.StringVar(&opts.FeedURL, "feed-url", "", "host:port or URL serving /api/feed pages")
	fs.IntVar(&opts.PageSize, "page-size", 0, "lines fetched per refresh or load-more (optional)")
	latency := fs.Duration("latency", 0, "simulated fetch latency, e.g. 250ms (optional)")
	fs.BoolVar(&opts.Debug, "debug", false, "log every refresh transition at debug level")
	if err := fs.Parse(args); err != nil {
		return app.Options{}, err
	}
	opts.Latency = -1
	if fs.Changed("latency") {
		if *latency < 0 {
			return app.Options{}, fmt.Errorf("--latency must not be negative")
		}
		opts.Latency = *latency
	}
	return opts, nil
}
