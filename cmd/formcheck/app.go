package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formfeedback/pkg/config"
	"github.com/dmitrymomot/formfeedback/pkg/feedback"
	"github.com/dmitrymomot/formfeedback/pkg/logger"
)

type appConfig struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	Feedback feedback.Config
}

type app struct {
	cfg appConfig
	log *slog.Logger
}

func (a *app) setup(cmd *cobra.Command, envFiles []string) error {
	if err := config.LoadEnv(envFiles...); err != nil {
		return err
	}
	if err := config.Load(&a.cfg); err != nil {
		return err
	}

	opts := []logger.Option{
		logger.WithEnvironment(a.cfg.Env, "formcheck"),
		logger.WithOutput(cmd.ErrOrStderr()),
	}
	if a.cfg.LogLevel != "" {
		level, err := logger.ParseLevel(a.cfg.LogLevel)
		if err != nil {
			return err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	if a.cfg.LogFormat != "" {
		format := logger.Format(a.cfg.LogFormat)
		if format != logger.FormatJSON && format != logger.FormatText {
			return logger.ErrInvalidFormat
		}
		opts = append(opts, logger.WithFormat(format))
	}
	a.log = logger.New(opts...)
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{log: logger.Discard()}
	var envFiles []string

	root := &cobra.Command{
		Use:           "formcheck",
		Short:         "Validate declarative form documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, envFiles)
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "read environment from these .env files")

	root.AddCommand(newValidateCmd(a), newSnapshotCmd(a))
	return root
}
