package cli

import (
	"errors"
	"io"
	"os"

	"github.com/m-mizutani/actnotify/pkg/controller/cli/config"
	"github.com/m-mizutani/actnotify/pkg/domain/types"
	"github.com/m-mizutani/actnotify/pkg/utils/logging"
	"github.com/urfave/cli/v2"
)

type runConfig struct {
	writer    io.Writer
	logWriter io.Writer
}

type Option func(*runConfig)

// WithWriter sets the destination of workflow commands. Default is stdout.
func WithWriter(w io.Writer) Option {
	return func(cfg *runConfig) {
		cfg.writer = w
	}
}

// WithLogWriter sets the destination of logs. Default is stderr.
func WithLogWriter(w io.Writer) Option {
	return func(cfg *runConfig) {
		cfg.logWriter = w
	}
}

func Run(argv []string, options ...Option) error {
	cfg := runConfig{
		writer:    os.Stdout,
		logWriter: os.Stderr,
	}
	for _, opt := range options {
		opt(&cfg)
	}

	var (
		logLevel  string
		logFormat string
		debug     bool

		sentryCfg config.Sentry
	)

	app := cli.App{
		Name:    types.AppName,
		Usage:   "Slack notification for GitHub Actions workflows",
		Version: types.AppVersion,
		Writer:  cfg.writer,

		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level (debug, info, warn, error)",
				EnvVars:     []string{"ACTNOTIFY_LOG_LEVEL"},
				Destination: &logLevel,
				Value:       "info",
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format (console, json)",
				EnvVars:     []string{"ACTNOTIFY_LOG_FORMAT"},
				Destination: &logFormat,
				Value:       "console",
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "Enable debug logging, including request and response of Slack",
				EnvVars:     []string{"ACTNOTIFY_DEBUG", "SHOW_DEBUG", "RUNNER_DEBUG"},
				Destination: &debug,
			},
		}, sentryCfg.Flags()...),

		Before: func(c *cli.Context) error {
			// Standard output is reserved for workflow commands.
			if err := logging.Configure(cfg.logWriter, logging.Level(logLevel, debug), logFormat); err != nil {
				return err
			}
			return sentryCfg.Configure()
		},

		Commands: []*cli.Command{
			cmdSend(),
		},
	}

	if err := app.Run(argv); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			logging.Default().Error("exit with failure", "err", err)
		}
		return err
	}

	return nil
}

// reportedError has already been reported to the runner and logged.
type reportedError struct {
	err error
}

func (x *reportedError) Error() string { return x.err.Error() }
func (x *reportedError) Unwrap() error { return x.err }
