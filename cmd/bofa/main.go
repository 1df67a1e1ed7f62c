package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/bofa/internal/banner"
	"github.com/san-kum/bofa/internal/config"
	"github.com/san-kum/bofa/internal/fx"
	"github.com/san-kum/bofa/internal/logging"
	"github.com/san-kum/bofa/internal/moon"
	"github.com/san-kum/bofa/internal/probe"
	"github.com/san-kum/bofa/internal/session"
)

var moonMode bool

func main() {
	rootCmd := &cobra.Command{
		Use:          "bofa",
		Short:        "have you heard of bofa?",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}
	rootCmd.Flags().BoolVar(&moonMode, "moon", false, "draw the moon instead of the animation")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, cmd.OutOrStdout(), probe.Detect(), os.Getenv, moonMode)
}

// execute picks the pipeline. A plain terminal gets the payload before any
// configuration is read, so a broken config never hides it.
func execute(ctx context.Context, out io.Writer, env probe.Environment, getenv func(string) string, drawMoon bool) error {
	if env.Plain() {
		fmt.Fprintln(out, banner.Payload)
		return nil
	}

	cfg, err := loadConfig(getenv)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}
	logger.Debug("terminal",
		"tty", env.TTY, "dumb", env.Dumb, "encoding", env.Encoding,
		"columns", env.Columns, "rows", env.Rows, "profile", env.Profile)

	if drawMoon {
		fmt.Fprintln(out, moon.Render(env.Columns, env.Rows, moon.Options{
			Payload:       banner.Payload,
			Seed:          cfg.Moon.Seed,
			CraterDivisor: cfg.Moon.CraterDivisor,
			MaxRadius:     cfg.Moon.MaxRadius,
			Aspect:        cfg.Moon.Aspect,
		}))
		return nil
	}

	if err := playSession(ctx, cfg, env, out, logger); err != nil {
		// Playback trouble never fails the joke.
		logger.Error("playback failed", "err", err)
		fmt.Fprintln(out, banner.Payload)
	}
	return nil
}

func playSession(ctx context.Context, cfg *config.Config, env probe.Environment, out io.Writer, logger *log.Logger) error {
	term := fx.DefaultTerminalConfig()
	term.FrameRate = cfg.Session.FrameRate
	term.Columns = env.Columns
	term.Profile = env.Profile

	s, err := session.New(session.Options{
		Seed:            cfg.Session.Seed,
		IntroWeights:    cfg.Session.IntroWeights,
		InterludeChance: cfg.Session.InterludeChance,
		Charset:         env.Charset(),
		Width:           env.Width(),
		Terminal:        term,
		Output:          fx.NewTerminalOutput(os.Stdin, out, term),
		Fallback:        out,
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	return s.Run(ctx)
}

// loadConfig reads BOFA_CONFIG, or the first file found under the XDG
// config directory, then applies env overrides.
func loadConfig(getenv func(string) string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	path := getenv("BOFA_CONFIG")
	if path == "" {
		path = config.Search()
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}
