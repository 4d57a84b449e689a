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
	"github.com/rs/zerolog"

	"github.com/rotary-puebla/club-site-api/internal/adapters/contentclient"
	"github.com/rotary-puebla/club-site-api/internal/app/admin"
	"github.com/rotary-puebla/club-site-api/internal/fallback"
	"github.com/rotary-puebla/club-site-api/internal/platform/logging"
	"github.com/rotary-puebla/club-site-api/internal/platform/secret"
)

// clubadmin is the interactive content editor. It talks to the Content API
// over HTTP and checks the operator's secret locally before any write.
func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	apiURL     string
	timeout    time.Duration
	hashSecret string
	logLevel   string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("clubadmin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o options
	fs.StringVar(&o.apiURL, "api", getenv("CLUB_API_URL", "http://localhost:8080"), "content API base URL")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "per-request timeout")
	fs.StringVar(&o.hashSecret, "hash-secret", "", "print a bcrypt hash of the given secret for ADMIN_SECRET_BCRYPT and exit")
	fs.StringVar(&o.logLevel, "log-level", getenv("LOG_LEVEL", "warn"), "log level")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	if opts.hashSecret != "" {
		h, err := secret.Hash(opts.hashSecret)
		if err != nil {
			fmt.Fprintf(stderr, "hash secret: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, h)
		return 0
	}

	log, err := logging.New(logging.Options{Level: opts.logLevel, Format: "console", Writer: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "invalid logging config: %v\n", err)
		return 1
	}

	verifier, err := secret.FromConfig(os.Getenv("ADMIN_SECRET"), os.Getenv("ADMIN_SECRET_BCRYPT"))
	if err != nil {
		fmt.Fprintf(stderr, "admin secret: %v\n", err)
		return 1
	}
	if verifier == nil {
		fmt.Fprintln(stderr, "set ADMIN_SECRET or ADMIN_SECRET_BCRYPT before starting the editor")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := contentclient.New(opts.apiURL, contentclient.WithTimeout(opts.timeout))
	sh := newShell(stdin, stdout)
	if err := sh.attach(client, verifier, log); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	if err := sh.run(ctx); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

// attach builds the workflow with the shell as its confirmer.
func (s *shell) attach(client *contentclient.Client, v secret.Verifier, log zerolog.Logger) error {
	wf, err := admin.New(admin.Config{
		API:       client,
		Verifier:  v,
		Fallback:  fallback.Default(),
		Confirmer: s,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	s.wf = wf
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
