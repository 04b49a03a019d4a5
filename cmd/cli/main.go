// Command edu is a terminal client for the edu-web session and profile APIs.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/and161185/edu-web/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// errUsage makes run exit with status 2.
var errUsage = errors.New("usage")

func usage(w io.Writer) {
	fmt.Fprintf(w, `edu CLI
Usage:
  edu [-api URL] [-state-dir DIR] [-log-level LEVEL] <cmd> [args]

Commands:
  version
  signup     -email <email> -password <password> -confirm <password>
  login      -email <email> -password <password> [-next PATH]   (saves session)
  logout
  refresh
  status
  whoami                                                        (login required)
  profile show                                                  (login required)
  profile save -first F -last L -email E -phone P
               [-address A -city C -state S -country C -postal Z -bio B -avatar URL]

Environment: EDU_API_BASE_URL, EDU_STATE_DIR, EDU_HTTP_TIMEOUT, EDU_SEAL_SESSION, EDU_LOG_LEVEL
`)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses global flags, wires the client and dispatches one command.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		return fail(stderr, err)
	}

	fs := flag.NewFlagSet("edu", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	api := fs.String("api", cfg.APIBaseURL, "backend base url")
	stateDir := fs.String("state-dir", cfg.StateDir, "directory for the persisted session")
	logLevel := fs.String("log-level", cfg.LogLevel, "debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		usage(stderr)
		return 2
	}

	cfg.APIBaseURL, cfg.StateDir, cfg.LogLevel = *api, *stateDir, *logLevel
	if err := cfg.Normalize(); err != nil {
		return fail(stderr, err)
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	if cmd == "version" {
		fmt.Fprintf(stdout, "edu %s (%s)\n", version, buildDate)
		return 0
	}

	log, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer func() { _ = log.Sync() }()

	a := newApp(cfg, log, stdout)

	switch cmd {
	case "signup":
		err = a.cmdSignup(ctx, rest)
	case "login":
		err = a.cmdLogin(ctx, rest)
	case "logout":
		a.cmdLogout(ctx)
	case "refresh":
		err = a.cmdRefresh(ctx)
	case "status":
		a.cmdStatus()
	case "whoami":
		err = a.cmdWhoami()
	case "profile":
		err = a.cmdProfile(ctx, rest)
	default:
		err = errUsage
	}

	if errors.Is(err, errUsage) {
		usage(stderr)
		return 2
	}
	if err != nil {
		return fail(stderr, err)
	}
	return 0
}

// ---- helpers ----

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(w io.Writer, err error) int {
	fmt.Fprintln(w, err)
	return 1
}
