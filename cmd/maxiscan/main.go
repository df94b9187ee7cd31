package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/ericlevine/maxigo/charset"
	"github.com/ericlevine/maxigo/internal/scan"
	"github.com/ericlevine/maxigo/internal/webapi"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/afero"
)

// Version is reported by the about endpoint.
var Version = "0.1.0"

func main() {
	asJSON := flag.Bool("json", false, "print one JSON report per line")
	charsetName := flag.String("charset", "", "also transcode text into this charset (name or ECI value)")
	inverted := flag.Bool("inverted", false, "retry images as negatives")
	workers := flag.Int("workers", 0, "files decoded at once (default GOMAXPROCS)")
	verbose := flag.Bool("v", false, "trace decoding to stderr")
	watchDir := flag.String("watch", "", "scan images moved into `dir` until interrupted")
	addr := flag.String("serve", "", "serve the HTTP API on `addr`")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: maxiscan [flags] <image-file> [image-file...]\n")
		fmt.Fprintf(os.Stderr, "       maxiscan [flags] -watch <dir>\n")
		fmt.Fprintf(os.Stderr, "       maxiscan [flags] -serve <addr>\n\n")
		fmt.Fprintf(os.Stderr, "Decode MaxiCode symbols in image files (PNG, JPEG, GIF, BMP, TIFF, WebP).\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	setupTracing(*verbose)

	if *charsetName != "" {
		if _, err := charset.Lookup(*charsetName); err != nil {
			fmt.Fprintf(os.Stderr, "maxiscan: %v\n", err)
			os.Exit(1)
		}
	}
	s := scan.New(afero.NewOsFs(), scan.Config{
		Workers:      *workers,
		AlsoInverted: *inverted,
		Charset:      *charsetName,
	})
	out := &printer{json: *asJSON, charset: *charsetName, prefix: flag.NArg() > 1 || *watchDir != ""}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *addr != "":
		os.Exit(serve(ctx, *addr, s))
	case *watchDir != "":
		err := s.Watch(ctx, *watchDir, func(o scan.Outcome) { out.print(o) })
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "maxiscan: %v\n", err)
			os.Exit(1)
		}
		os.Exit(out.exitCode)
	case flag.NArg() == 0:
		flag.Usage()
		os.Exit(1)
	}

	for _, o := range s.ScanFiles(ctx, flag.Args()) {
		out.print(o)
	}
	os.Exit(out.exitCode)
}

// traceKeys are the tracers of the scanner and of the decoder packages.
var traceKeys = []string{"maxiscan", "maxicode"}

// setupTracing logs errors to stderr, or everything down to debug output
// when verbose.
func setupTracing(verbose bool) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	level := tracing.LevelError
	if verbose {
		level = tracing.LevelDebug
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

type printer struct {
	json     bool
	charset  string
	prefix   bool
	exitCode int
}

func (p *printer) print(o scan.Outcome) {
	if o.Err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", o.Path, o.Err)
		p.exitCode = 1
		return
	}
	if !p.json {
		if p.prefix {
			fmt.Printf("%s: ", o.Path)
		}
		fmt.Println(strconv.Quote(o.Result.Text))
		return
	}
	report, err := scan.NewReport(o.Path, o.Result, p.charset)
	if err == nil {
		err = json.NewEncoder(os.Stdout).Encode(report)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", o.Path, err)
		p.exitCode = 1
	}
}

func serve(ctx context.Context, addr string, s *scan.Scanner) int {
	srv := &http.Server{
		Addr:              addr,
		Handler:           webapi.NewRouter(s, Version),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	tracing.Select("maxiscan").Infof("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "maxiscan: %v\n", err)
		return 1
	}
	return 0
}
