package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rotary-puebla/club-site-api/internal/adapters/contentclient"
	"github.com/rotary-puebla/club-site-api/internal/app/views"
	"github.com/rotary-puebla/club-site-api/internal/fallback"
	"github.com/rotary-puebla/club-site-api/internal/platform/clock"
	"github.com/rotary-puebla/club-site-api/internal/platform/logging"
	clockport "github.com/rotary-puebla/club-site-api/internal/ports/out/clock"
)

const usage = `usage: clubview [-api URL] <command> [flags]

commands:
  directory [-q text]            list members, optionally filtered
  events                         list upcoming events
  gallery [-interval d] [-for d] rotate through the gallery`

// clubview renders the public views in a terminal.
func main() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, clock.NewSystemClock()))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, clk clockport.TickerClock) int {
	fs := flag.NewFlagSet("clubview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apiURL := fs.String("api", getenv("CLUB_API_URL", "http://localhost:8080"), "content API base URL")
	timeout := fs.Duration("timeout", 10*time.Second, "per-request timeout")
	logLevel := fs.String("log-level", getenv("LOG_LEVEL", "warn"), "log level")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	log, err := logging.New(logging.Options{Level: *logLevel, Format: "console", Writer: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "invalid logging config: %v\n", err)
		return 1
	}
	api := contentclient.New(*apiURL, contentclient.WithTimeout(*timeout))
	ds := fallback.Default()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "directory":
		sub := flag.NewFlagSet("directory", flag.ContinueOnError)
		sub.SetOutput(stderr)
		query := sub.String("q", "", "filter by name, profession or services")
		if err := sub.Parse(rest); err != nil {
			return 2
		}
		d := views.LoadDirectory(ctx, api, ds, log)
		d.SetQuery(*query)
		printDirectory(stdout, d)
	case "events":
		printEvents(stdout, views.LoadEvents(ctx, api, ds, log))
	case "gallery":
		sub := flag.NewFlagSet("gallery", flag.ContinueOnError)
		sub.SetOutput(stderr)
		interval := sub.Duration("interval", views.DefaultRotationInterval, "rotation interval")
		runFor := sub.Duration("for", 0, "stop after this long (0 runs until interrupted)")
		if err := sub.Parse(rest); err != nil {
			return 2
		}
		g := views.LoadGallery(ctx, api, ds, clk, *interval, log)
		showGallery(ctx, stdout, g, *runFor)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s\n", cmd, usage)
		return 2
	}
	return 0
}

func printDirectory(w io.Writer, d *views.Directory) {
	if d.Fallback() {
		fmt.Fprintln(w, "(showing saved directory)")
	}
	visible := d.Visible()
	if len(visible) == 0 {
		fmt.Fprintf(w, "no members match %q\n", d.Query())
		return
	}
	for _, m := range visible {
		fmt.Fprintf(w, "%s | %s | %s\n", m.Name, m.Role, m.Profession)
		if m.BusinessHelp != "" {
			fmt.Fprintf(w, "    %s\n", m.BusinessHelp)
		}
	}
}

func printEvents(w io.Writer, v *views.EventsView) {
	if v.Fallback() {
		fmt.Fprintln(w, "(showing saved events)")
	}
	for _, e := range v.Events() {
		fmt.Fprintf(w, "%s\n    %s %s, %s\n", e.Title, e.Date, e.Time, e.Location)
	}
}

// showGallery prints the focused item each time the carousel moves.
func showGallery(ctx context.Context, w io.Writer, g *views.GalleryView, runFor time.Duration) {
	if g.Fallback() {
		fmt.Fprintln(w, "(showing saved gallery)")
	}
	items := g.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "gallery is empty")
		return
	}
	if runFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runFor)
		defer cancel()
	}
	g.Start(ctx)
	defer g.Close()

	last := -1
	poll := time.NewTicker(50 * time.Millisecond)
	defer poll.Stop()
	for {
		if idx := g.Carousel().Index(); idx != last {
			last = idx
			if item, ok := g.Focused(); ok {
				fmt.Fprintf(w, "[%d/%d] %s (%s)\n", idx+1, len(items), item.Caption, item.ImageURL)
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-poll.C:
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
