package commands

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ynabsplit/internal/config"
	"github.com/cleared-dev/ynabsplit/internal/logger"
	"github.com/cleared-dev/ynabsplit/internal/ynab"
)

// env is what every command needs before doing its work.
type env struct {
	cfg *config.Config
	log zerolog.Logger
}

// setup loads .env, the config file and environment overrides, then builds a
// logger tagged with a fresh run ID. The default config file may be absent but
// one named with --config must exist.
func setup(cmd *cobra.Command, gf *globalFlags) (*env, error) {
	config.LoadEnv()

	load := config.LoadOptional
	if f := cmd.Flag("config"); f != nil && f.Changed {
		load = config.Load
	}
	cfg, err := load(gf.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if gf.logLevel != "" {
		cfg.Log.Level = gf.logLevel
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Out:    cmd.ErrOrStderr(),
	}).With().Str("run_id", uuid.NewString()).Str("command", cmd.Name()).Logger()

	log.Debug().Str("config", gf.configPath).Str("base_url", cfg.API.BaseURL).Msg("Configuration loaded")
	return &env{cfg: cfg, log: log}, nil
}

// client builds the API client. A missing access token is fatal.
func (e *env) client() (*ynab.Client, error) {
	token, err := config.TokenFromEnv()
	if err != nil {
		return nil, err
	}
	return ynab.NewClient(token,
		ynab.WithBaseURL(e.cfg.API.BaseURL),
		ynab.WithTimeout(e.cfg.API.Timeout),
		ynab.WithLogger(e.log),
	)
}

// csvPath prefers the flag value over the configured path.
func (e *env) csvPath(flag string) string {
	if flag != "" {
		return flag
	}
	return e.cfg.CSV.Path
}

// promptIO returns the command's streams for the prompter. The process's own
// stdin and stdout become nil so bubbletea opens the terminal itself.
func promptIO(cmd *cobra.Command) (io.Reader, io.Writer) {
	var in io.Reader = cmd.InOrStdin()
	var out io.Writer = cmd.OutOrStdout()
	if in == os.Stdin {
		in = nil
	}
	if out == os.Stdout {
		out = nil
	}
	return in, out
}
