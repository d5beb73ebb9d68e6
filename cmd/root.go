// Package cmd implements the imgtag CLI commands.
package cmd

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"imgtag/internal/config"
	"imgtag/internal/exifmeta"
	"imgtag/internal/logging"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
	color      string
}

// NewRootCmd creates the root imgtag command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(exifmeta.Default())
}

func newRootCmd(md exifmeta.Reader) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "imgtag",
		Short:         "imgtag - file photos into year/month folders by capture date",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML settings file")
	pf.StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.StringVar(&g.logFile, "log-file", "", "also append log lines to this file")
	pf.StringVar(&g.color, "color", "auto", "color output: auto, always or never")

	root.AddCommand(newReorganizeCmd(g, md))
	root.AddCommand(newDiagCmd(g, md))
	return root
}

// session is what a subcommand runs with once settings are merged.
type session struct {
	settings *config.Settings
	color    logging.ColorMode
	log      *logging.Logger
	runID    string
	errOut   io.Writer
}

func (s *session) close() {
	if err := s.log.Close(); err != nil {
		fmt.Fprintf(s.errOut, "warning: closing log file: %v\n", err)
	}
}

// openSession loads settings (CLI flag > config file > default) and builds
// the logger. The caller must close the session.
func openSession(cmd *cobra.Command, g *globalFlags) (*session, error) {
	settings := config.DefaultSettings()
	if g.configPath != "" {
		s, err := config.Load(g.configPath)
		if err != nil {
			return nil, err
		}
		settings = s
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.LogLevel = g.logLevel
	}
	if flags.Changed("log-file") {
		settings.LogFile = g.logFile
	}
	if flags.Changed("color") {
		settings.Color = g.color
	}

	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	color, err := logging.ParseColorMode(settings.Color)
	if err != nil {
		return nil, err
	}
	log, err := logging.NewLogger(logging.Options{
		Level:   level,
		Color:   color,
		Console: cmd.ErrOrStderr(),
		File:    settings.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	log.Debug("Run %s: %s", id, cmd.CommandPath())

	return &session{
		settings: settings,
		color:    color,
		log:      log,
		runID:    id.String(),
		errOut:   cmd.ErrOrStderr(),
	}, nil
}

// applyExtensions overrides the configured extensions when --ext was given.
func applyExtensions(cmd *cobra.Command, s *config.Settings, exts []string) {
	if cmd.Flags().Changed("ext") {
		s.Extensions = exts
	}
}

// applyExtractFlag overrides path extraction when --no-extract-date-from-path was given.
func applyExtractFlag(cmd *cobra.Command, s *config.Settings, noExtract bool) {
	if cmd.Flags().Changed("no-extract-date-from-path") {
		s.ExtractDatesFromPath = !noExtract
	}
}
