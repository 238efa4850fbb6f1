package config

import (
	"log/slog"

	"github.com/m-mizutani/actnotify/pkg/domain/model"
	"github.com/m-mizutani/actnotify/pkg/infra/ghctx"
	"github.com/urfave/cli/v2"
)

// GitHub selects where the trigger context comes from.
type GitHub struct {
	contextJSON string
	envFile     string
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-context",
			Usage:       "GitHub context as JSON, e.g. ${{ toJSON(github) }}. GITHUB_* variables are used if empty",
			EnvVars:     InputEnv("github-context"),
			Destination: &x.contextJSON,
		},
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "dotenv file with GITHUB_* variables, for running outside of GitHub Actions",
			EnvVars:     []string{"ACTNOTIFY_ENV_FILE"},
			Destination: &x.envFile,
		},
	}
}

func (x *GitHub) TriggerContext() (*model.TriggerContext, error) {
	if x.envFile != "" {
		if err := ghctx.LoadEnvFile(x.envFile); err != nil {
			return nil, err
		}
	}

	if x.contextJSON != "" {
		return ghctx.FromJSON([]byte(x.contextJSON))
	}
	return ghctx.FromEnv()
}

func (x *GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("context_json", x.contextJSON != ""),
		slog.String("env_file", x.envFile),
	)
}
