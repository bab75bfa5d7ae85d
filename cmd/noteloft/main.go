package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noteloft/noteloft/internal/auth"
	"github.com/noteloft/noteloft/internal/config"
	"github.com/noteloft/noteloft/internal/session"
	"github.com/noteloft/noteloft/internal/tui"
	"github.com/noteloft/noteloft/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("noteloft " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout(cfg)
		}
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	tokens := auth.FileTokenStore{Path: cfg.TokenFile}
	c := client.NewWithTimeout(cfg.APIURL, "", cfg.RequestTimeout)
	store := session.NewStore()
	gw := auth.NewGateway(c, store, tokens, logger, auth.Options{
		SignupAutoSession: cfg.SignupAutoSession,
		RatePerMinute:     cfg.AuthRatePerMinute,
		Burst:             cfg.AuthBurst,
	})

	app := tui.NewApp(c, store, gw, tui.Options{
		Breakpoint: cfg.Breakpoint,
		SiteURL:    siteURL(cfg.APIURL),
		Version:    version,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// newLogger opens a JSON logger on path. A TUI owns the terminal, so an
// empty path means logging is off entirely.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { f.Close() }, nil //nolint:errcheck // best-effort close
}

// runLogout drops the persisted token without starting the TUI.
func runLogout(cfg *config.Config) error {
	tokens := auth.FileTokenStore{Path: cfg.TokenFile}
	tok, err := tokens.Load()
	if err != nil {
		return err
	}
	if tok == "" {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := tokens.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

// siteURL derives the web app base from the API URL by dropping a leading
// "api." host label, mirroring how the service is deployed.
func siteURL(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil {
		return apiURL
	}
	host := u.Hostname()
	if strings.HasPrefix(host, "api.") {
		u.Host = strings.TrimPrefix(host, "api.")
		if u.Port() != "" {
			u.Host += ":" + u.Port()
		}
	}
	return u.String()
}

func printHelp() {
	fmt.Println(`noteloft — terminal shell for the Noteloft service

Usage:
  noteloft            start the shell
  noteloft logout     clear the persisted session token
  noteloft version    print the version

Environment:
  NOTELOFT_API_URL              API base URL
  NOTELOFT_TOKEN                session token (overrides the token file)
  NOTELOFT_BREAKPOINT           wide-viewport width in columns
  NOTELOFT_SIGNUP_AUTOSESSION   sign in immediately after signup
  NOTELOFT_LOG_FILE             structured log destination`)
}
