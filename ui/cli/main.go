// Copyright (c) 2026 Passreader Team
// Passreader - read-only CLI for encrypted password databases
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for passreader using the Cobra
// library. It defines the root command and its flags, loads settings,
// configures logging, opens the database and dispatches one of the four
// retrieval modes.

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/toeirei/passreader/internal/config"
	"github.com/toeirei/passreader/internal/i18n"
	"github.com/toeirei/passreader/internal/logging"
	"github.com/toeirei/passreader/internal/search"
	"github.com/toeirei/passreader/internal/vault"
	"github.com/toeirei/passreader/ui/tui/prompt"
)

// Test seams.
var (
	openDatabase    = vault.Open
	runPrompt       = prompt.Run
	copyToClipboard = clipboard.WriteAll
)

var modeFlags = []string{"get", "enumerate", "search", "fuzzy-search"}

type mode int

const (
	modeGet mode = iota + 1
	modeEnumerate
	modeSearch
	modeFuzzySearch
)

// userError carries a translated, user-facing message while keeping the
// underlying error reachable for errors.Is.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func fail(err error, messageID string, args ...any) error {
	return &userError{msg: i18n.T(messageID, args...), err: err}
}

// loggedError marks an error that run already wrote to the configured logger.
type loggedError struct{ err error }

func (e *loggedError) Error() string { return e.err.Error() }
func (e *loggedError) Unwrap() error { return e.err }

// Execute runs the CLI entrypoint. Every returned error has been logged;
// main only has to turn it into an exit status with ExitCode.
func Execute() error {
	err := NewRootCmd().Execute()
	var logged *loggedError
	if err != nil && !errors.As(err, &logged) {
		log.Error(err.Error())
	}
	return err
}

// ExitCode maps the result of Execute to the process exit status.
func ExitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "passreader",
		Short:         i18n.T("app.short"),
		Long:          i18n.T("app.long"),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flag errors above still print usage; failures from here on do not.
			cmd.SilenceUsage = true
			return run(cmd)
		},
	}
	cmd.Version = compositeVersion()
	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		translateHelp(c.Root())
		defaultHelp(c, args)
	})

	f := cmd.Flags()
	f.StringP("database-path", "d", "", `Path to the database. (Can also be specified using "PASSREADER_DATABASE_PATH")`)
	f.StringP("database-password", "p", "", `Password of the database. (Can also be specified using "PASSREADER_DATABASE_PASSWORD")`)
	f.StringP("database-key-file", "k", "", `Path to the database key file if used. (Can also be specified using "PASSREADER_DATABASE_KEY_FILE")`)
	f.StringP("log-config", "l", "", "The location of the logging config json file")
	f.StringP("log-level", "L", "info", "Provide the log level: "+strings.Join(logging.Levels, ", "))
	f.StringP("get", "g", "", "The title of the entry to get the password of")
	f.BoolP("enumerate", "e", false, "List all the passwords in the database")
	f.BoolP("search", "s", false, "Interactively search for an entry in the database and return its password")
	f.BoolP("fuzzy-search", "f", false, "Interactively fuzzy search for an entry in the database and return its password")
	f.StringP("format", "o", "text", "Output format: text, json or yaml")
	f.BoolP("clipboard", "c", false, "Copy the password to the clipboard instead of printing it (get and search modes)")
	f.String("language", "en", `Language of messages ("en", "de")`)
	f.String("config", "", "config file (default is passreader.yaml in the user config dir)")

	cmd.MarkFlagsMutuallyExclusive(modeFlags...)
	cmd.MarkFlagsOneRequired(modeFlags...)
	cmd.MarkFlagsMutuallyExclusive("clipboard", "enumerate")
	_ = cmd.MarkFlagFilename("database-path", "kdbx")
	_ = cmd.MarkFlagFilename("database-key-file")
	_ = cmd.MarkFlagFilename("log-config", "json")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// translateHelp re-translates the root command texts in the language asked
// for on the command line or in the environment. Help is printed before run
// loads settings.
func translateHelp(root *cobra.Command) {
	lang, _ := root.Flags().GetString("language")
	if !root.Flags().Changed("language") {
		if env := os.Getenv(config.EnvPrefix + "_LANGUAGE"); env != "" {
			lang = env
		}
	}
	i18n.Init(lang)
	root.Short = i18n.T("app.short")
	root.Long = i18n.T("app.long")
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// selectedMode reports which retrieval flag was given. Cobra's flag groups
// guarantee exactly one.
func selectedMode(f *pflag.FlagSet) mode {
	switch {
	case f.Changed("get"):
		return modeGet
	case f.Changed("enumerate"):
		return modeEnumerate
	case f.Changed("search"):
		return modeSearch
	default:
		return modeFuzzySearch
	}
}

func run(cmd *cobra.Command) error {
	configFile, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}
	settings, err := config.LoadConfig[config.Settings](cmd, config.Defaults(), configFile)
	if err != nil {
		return fail(err, "config.error_load", err)
	}
	i18n.Init(settings.Language)

	closer, err := logging.Setup(settings.LogLevel, settings.LogConfig)
	switch {
	case errors.Is(err, logging.ErrInvalidConfig):
		return fail(err, "logging.invalid_config", settings.LogConfig)
	case errors.Is(err, logging.ErrUnknownLevel):
		return fail(err, "logging.unknown_level", settings.LogLevel)
	case err != nil:
		return fail(err, "logging.error_config", settings.LogConfig, err)
	}
	defer closer.Close()

	// Log here so a log file from the config is still open.
	if err := retrieve(cmd, settings); err != nil {
		log.Error(err.Error())
		return &loggedError{err: err}
	}
	return nil
}

// retrieve opens the database and runs the selected mode.
func retrieve(cmd *cobra.Command, settings config.Settings) error {
	format, err := parseFormat(settings.Format)
	if err != nil {
		return fail(err, "config.unknown_format", settings.Format)
	}

	if settings.DatabasePath == "" {
		return fail(nil, "config.missing_path")
	}
	password, err := resolvePassword(cmd, settings)
	if err != nil {
		return err
	}
	defer password.Zero()

	log.Debug("opening database", "path", settings.DatabasePath, "password", password, "key_file", settings.DatabaseKeyFile != "")
	db, err := openDatabase(settings.DatabasePath, password.Reveal(), settings.DatabaseKeyFile)
	if err != nil {
		log.Debug("database open failed", "err", err)
		return fail(err, "vault.error_open")
	}

	out := cmd.OutOrStdout()
	m := selectedMode(cmd.Flags())
	if m == modeEnumerate {
		return writeEntries(out, db.Entries(), format)
	}

	var title string
	switch m {
	case modeGet:
		title, _ = cmd.Flags().GetString("get")
	case modeSearch, modeFuzzySearch:
		var c search.Completer = search.NewSubstring(db)
		if m == modeFuzzySearch {
			c = search.NewFuzzy(c)
		}
		title, err = runPrompt(i18n.T("prompt.title"), c)
		if errors.Is(err, prompt.ErrCancelled) {
			log.Debug("prompt cancelled")
			return nil
		}
		if err != nil {
			return fail(err, "prompt.error", err)
		}
	}

	entry, err := db.Get(title)
	if err != nil {
		return fail(err, "entry.not_found", title)
	}

	if toClipboard, _ := cmd.Flags().GetBool("clipboard"); toClipboard {
		if err := copyToClipboard(entry.Password); err != nil {
			return fail(err, "entry.error_copy", err)
		}
		log.Info(i18n.T("entry.copied", entry.Title))
		return nil
	}
	return writeEntry(out, entry, format)
}
