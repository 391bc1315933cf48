// Package main runs the SmileCare shell against a local file store.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/atinyakov/SmileCare/internal/client/shell"
	"github.com/atinyakov/SmileCare/internal/logger"
	"github.com/atinyakov/SmileCare/internal/service"
	"github.com/atinyakov/SmileCare/internal/storage"
)

var (
	version   string
	buildDate string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}

// run parses args and drives the shell over in and out.
func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	var (
		path        string
		logLevel    string
		latency     time.Duration
		persistCart bool
		showVer     bool
	)

	fs := flag.NewFlagSet("smilecare", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&path, "path", storage.DefaultFile, "path to the local storage file")
	fs.StringVar(&logLevel, "log", "error", "log level")
	fs.DurationVar(&latency, "latency", 0, "simulated delay for login and signup")
	fs.BoolVar(&persistCart, "persist-cart", false, "keep the cart between runs")
	fs.BoolVar(&showVer, "version", false, "show build version and date")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showVer {
		fmt.Fprintf(out, "SmileCare Shell\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return nil
	}

	l := logger.New()
	if err := l.Init(logLevel); err != nil {
		return err
	}
	defer func() { _ = l.Log.Sync() }()

	st, err := storage.NewFileStorage(path)
	if err != nil {
		return err
	}

	opts := []service.Option{service.WithLogger(l.Log), service.WithLatency(latency)}
	sessions, err := service.NewSessionStore(ctx, st, opts...)
	if err != nil {
		return err
	}
	cartOpts := append([]service.Option{}, opts...)
	if persistCart {
		cartOpts = append(cartOpts, service.WithCartStorage(st))
	}
	cart, err := service.NewCartStore(ctx, cartOpts...)
	if err != nil {
		return err
	}

	return shell.New(sessions, cart, in, out, l.Log).Run(ctx)
}
