package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/robertmeta/recipe-cli/api"
	"github.com/robertmeta/recipe-cli/config"
	"github.com/robertmeta/recipe-cli/state"
	"github.com/robertmeta/recipe-cli/store"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitDataError    = 3
)

// Flags holds the global flags.
type Flags struct {
	ConfigDir string
	DBPath    string
	APIURL    string
	LogLevel  string
	NoColor   bool
}

func main() {
	if err := newApp(&Flags{}).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneralError)
	}
}

func newApp(flags *Flags) *cli.App {
	r := &runner{flags: flags}

	return &cli.App{
		Name:    "recipe-cli",
		Usage:   "Find recipes by ingredient and keep a list of favorites",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config-dir",
				Value:       config.DefaultDir(),
				Usage:       "Directory holding config.json and the token database",
				EnvVars:     []string{"RECIPE_CLI_CONFIG_DIR"},
				Destination: &flags.ConfigDir,
			},
			&cli.StringFlag{
				Name:        "db",
				Aliases:     []string{"d"},
				Usage:       "Token database path (default: <config-dir>/recipe-cli.db)",
				EnvVars:     []string{"RECIPE_CLI_DB"},
				Destination: &flags.DBPath,
			},
			&cli.StringFlag{
				Name:        "api",
				Usage:       "Recipe API base URL",
				EnvVars:     []string{"RECIPE_API_URL"},
				Destination: &flags.APIURL,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				EnvVars:     []string{"LOG_LEVEL"},
				Destination: &flags.LogLevel,
			},
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "disable colored output",
				EnvVars:     []string{"NO_COLOR"},
				Destination: &flags.NoColor,
			},
		},
		Before: r.before,
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in and store the access token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", EnvVars: []string{"RECIPE_CLI_PASSWORD"}},
				},
				Action: r.login,
			},
			{
				Name:  "register",
				Usage: "Create an account and store the access token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password"},
					&cli.StringFlag{Name: "confirm", Usage: "Password confirmation"},
				},
				Action: r.register,
			},
			{
				Name:   "logout",
				Usage:  "Erase the stored access token",
				Action: r.logout,
			},
			{
				Name:   "status",
				Usage:  "Show whether an access token is stored",
				Action: r.status,
			},
			{
				Name:   "categories",
				Usage:  "List meal categories",
				Flags:  []cli.Flag{formatFlag()},
				Action: r.categories,
			},
			{
				Name:   "search",
				Usage:  "Search recipes by ingredient",
				Flags:  append(searchFlags(), formatFlag()),
				Action: r.search,
			},
			{
				Name:   "favorites",
				Usage:  "List favorite recipes",
				Flags:  []cli.Flag{formatFlag()},
				Action: r.favorites,
			},
			{
				Name:      "toggle",
				Usage:     "Add or remove a recipe from favorites",
				ArgsUsage: "<recipe-id>",
				Action:    r.toggle,
			},
			{
				Name:      "show",
				Usage:     "Show a recipe from a search or from favorites",
				ArgsUsage: "<recipe-id>",
				Flags: append(searchFlags(),
					&cli.BoolFlag{Name: "favorites", Usage: "Look the recipe up in favorites instead of a search"},
					formatFlag(),
				),
				Action: r.show,
			},
			{
				Name:   "shell",
				Usage:  "Interactive session",
				Action: r.shell,
			},
			{
				Name:  "mock-server",
				Usage: "Run a local fake of the recipe API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: "127.0.0.1:5000", Usage: "Listen address"},
					&cli.StringSliceFlag{Name: "user", Usage: "Seed account as email:password (repeatable)"},
				},
				Action: r.mockServer,
			},
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   formatText,
		Usage:   "Output format: text, json, markdown, html",
	}
}

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{Name: "ingredient", Aliases: []string{"i"}, Usage: "Ingredient to search with (repeatable)"},
		&cli.StringFlag{Name: "meal-type", Aliases: []string{"m"}, Usage: "Meal category, or All"},
		&cli.StringFlag{Name: "total-time", Aliases: []string{"t"}, Usage: "Maximum total time (e.g., 30, 45m, 1h30m)"},
	}
}

func setupLogger(level string, noColor bool, w io.Writer) error {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, NoColor: noColor}).Level(parsedLevel)

	return nil
}

// runner carries global configuration into command actions.
type runner struct {
	flags *Flags
	cfg   *config.Config
}

func (r *runner) before(c *cli.Context) error {
	cfg, err := config.Load(r.flags.ConfigDir)
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}
	if r.flags.DBPath != "" {
		cfg.DBPath = r.flags.DBPath
	}
	if r.flags.APIURL != "" {
		cfg.APIBaseURL = r.flags.APIURL
	}
	if r.flags.LogLevel != "" {
		cfg.LogLevel = r.flags.LogLevel
	}
	r.cfg = cfg

	if err := setupLogger(cfg.LogLevel, r.flags.NoColor, c.App.ErrWriter); err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}
	return nil
}

// session is one opened token database plus the stores built on it.
type session struct {
	db  *store.Store
	app *state.App
}

func (s *session) Close() error {
	return s.db.Close()
}

func (r *runner) open() (*session, error) {
	dir := filepath.Dir(r.cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := store.New(r.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	clientOpts := []api.Option{
		api.WithTopN(r.cfg.TopN),
		api.WithLogger(log.Logger.With().Str("component", "api").Logger()),
	}
	if r.cfg.TimeoutSeconds > 0 {
		clientOpts = append(clientOpts, api.WithTimeout(r.cfg.Timeout()))
	}
	client := api.NewClient(r.cfg.APIBaseURL, db, clientOpts...)

	opts := []state.Option{state.WithLogger(log.Logger)}
	if r.cfg.LatestSearchOnly {
		opts = append(opts, state.WithLatestSearchOnly())
	}

	return &session{db: db, app: state.New(client, db, opts...)}, nil
}

// withSession opens a session, runs fn and closes the session.
func (r *runner) withSession(c *cli.Context, fn func(ctx context.Context, s *session) error) error {
	s, err := r.open()
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer s.Close()

	return fn(c.Context, s)
}

func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// exitErr maps a store error to a cli exit error. A 401 means the stored
// token is missing or stale.
func exitErr(err error) error {
	if api.IsUnauthorized(err) {
		return cli.Exit(err.Error()+" (run `recipe-cli login` first)", ExitGeneralError)
	}
	return authExitErr(err)
}

// authExitErr maps login and register failures, where a 401 means bad
// credentials rather than a missing token.
func authExitErr(err error) error {
	switch {
	case errors.Is(err, state.ErrMissingCredentials),
		errors.Is(err, state.ErrPasswordMismatch),
		errors.Is(err, state.ErrNoIngredients):
		return cli.Exit(err.Error(), ExitUsageError)
	case errors.Is(err, state.ErrNoRecipes):
		return cli.Exit(err.Error(), ExitDataError)
	default:
		return cli.Exit(err.Error(), ExitGeneralError)
	}
}
